package leveldata

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="64" height="64" tilewidth="8" tileheight="8" infinite="0" nextlayerid="10" nextobjectid="40">
`

const fullLevel = header + ` <objectgroup id="1" name="Colliders">
  <object id="1" name="planet" x="80" y="80" width="40" height="40">
   <ellipse/>
  </object>
  <object id="2" name="ledge" x="200" y="100">
   <properties>
    <property name="corner_radius" type="float" value="4"/>
   </properties>
   <polygon points="0,0 40,0 40,20 0,20"/>
  </object>
 </objectgroup>
 <objectgroup id="2" name="Colliders No Gravity">
  <object id="3" name="wall" x="10" y="10" width="8" height="64"/>
 </objectgroup>
 <objectgroup id="3" name="Killision">
  <object id="4" name="spikes" x="150" y="150">
   <polyline points="0,0 30,0"/>
  </object>
  <object id="5" name="safe" x="60" y="40"/>
 </objectgroup>
 <objectgroup id="4" name="Start">
  <object id="6" name="PLAYER" x="100" y="50"/>
  <object id="7" name="CAMERA" x="110" y="60"/>
 </objectgroup>
 <objectgroup id="5" name="Paths">
  <object id="8" name="lift" x="300" y="100">
   <properties>
    <property name="speed" type="float" value="1.5"/>
   </properties>
   <polyline points="0,0 100,0"/>
  </object>
  <object id="9" name="loop" x="300" y="200">
   <properties>
    <property name="speed" type="float" value="2"/>
    <property name="group" value="wheel"/>
   </properties>
   <polygon points="0,0 50,0 50,50"/>
  </object>
 </objectgroup>
 <objectgroup id="6" name="Moving colliders">
  <object id="10" x="290" y="90" width="20" height="20">
   <properties>
    <property name="group" value="lift"/>
   </properties>
   <ellipse/>
  </object>
  <object id="11" x="295" y="195" width="10" height="10">
   <properties>
    <property name="group" value="wheel"/>
    <property name="gravity" type="bool" value="false"/>
    <property name="lethal" type="bool" value="true"/>
   </properties>
   <ellipse/>
  </object>
 </objectgroup>
 <objectgroup id="7" name="Scroll stops">
  <object id="12" x="0" y="0">
   <polyline points="0,200 0,0"/>
  </object>
 </objectgroup>
 <objectgroup id="8" name="Items">
  <object id="13" name="Dash" x="120" y="40"/>
 </objectgroup>
 <objectgroup id="9" name="Mission logs">
  <object id="14" name="log1" x="100" y="40">
   <properties>
    <property name="text" value="Hello"/>
   </properties>
  </object>
 </objectgroup>
</map>
`

func loadString(t *testing.T, tmx string) (*Level, error) {
	t.Helper()
	fsys := fstest.MapFS{
		"levels/test.tmx": &fstest.MapFile{Data: []byte(tmx)},
	}
	return LoadLevel(fsys, "levels/test.tmx")
}

func TestLoadLevel(t *testing.T) {
	level, err := loadString(t, fullLevel)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	if level.Name != "test" {
		t.Errorf("Name = %q", level.Name)
	}
	if len(level.Colliders) != 2 {
		t.Fatalf("Colliders = %d, want 2", len(level.Colliders))
	}
	if level.Colliders[0].Kind != ShapeEllipse || level.Colliders[0].W != 40 {
		t.Errorf("planet = %+v", level.Colliders[0])
	}
	ledge := level.Colliders[1]
	if ledge.Kind != ShapePolygon || len(ledge.Points) != 4 || ledge.CornerRadius != 4 {
		t.Errorf("ledge = %+v", ledge)
	}
	if ledge.Points[2] != (Point{X: 240, Y: 120}) {
		t.Errorf("polygon points not absolute: %+v", ledge.Points)
	}
	if len(level.CollidersNoGravity) != 1 || level.CollidersNoGravity[0].Kind != ShapeRect {
		t.Errorf("CollidersNoGravity = %+v", level.CollidersNoGravity)
	}
	if len(level.Killision) != 1 || len(level.RecoveryPoints) != 1 {
		t.Errorf("Killision = %d shapes, %d recovery points", len(level.Killision), len(level.RecoveryPoints))
	}
	if level.PlayerStart != (Point{X: 100, Y: 50}) || level.CameraStart != (Point{X: 110, Y: 60}) {
		t.Errorf("start = %+v camera = %+v", level.PlayerStart, level.CameraStart)
	}

	if len(level.Paths) != 2 {
		t.Fatalf("Paths = %d, want 2", len(level.Paths))
	}
	if p := level.Paths[0]; p.Group != "lift" || p.Closed || p.Speed != 1.5 {
		t.Errorf("lift path = %+v", p)
	}
	if p := level.Paths[1]; p.Group != "wheel" || !p.Closed || len(p.Points) != 3 {
		t.Errorf("loop path = %+v", p)
	}
	if len(level.MovingColliders) != 2 {
		t.Fatalf("MovingColliders = %d, want 2", len(level.MovingColliders))
	}
	if m := level.MovingColliders[0]; !m.Gravitational || m.Lethal {
		t.Errorf("lift collider defaults wrong: %+v", m)
	}
	if m := level.MovingColliders[1]; m.Gravitational || !m.Lethal {
		t.Errorf("wheel collider flags wrong: %+v", m)
	}

	if len(level.ScrollStops) != 1 || len(level.ScrollStops[0]) != 2 {
		t.Errorf("ScrollStops = %+v", level.ScrollStops)
	}
	if len(level.Items) != 1 || level.Items[0].Name != "Dash" {
		t.Errorf("Items = %+v", level.Items)
	}
	if len(level.MissionLogs) != 1 || level.MissionLogs[0].Text != "Hello" {
		t.Errorf("MissionLogs = %+v", level.MissionLogs)
	}
}

func TestLoadLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		tmx  string
		want error
	}{
		{
			name: "missing colliders layer",
			tmx:  header + "</map>\n",
			want: ErrMissingLayer,
		},
		{
			name: "missing camera marker",
			tmx: strings.Replace(fullLevel,
				`<object id="7" name="CAMERA" x="110" y="60"/>`, "", 1),
			want: ErrMissingMarker,
		},
		{
			name: "path without speed",
			tmx: strings.Replace(fullLevel,
				`<property name="speed" type="float" value="1.5"/>`, "", 1),
			want: ErrMissingProperty,
		},
		{
			name: "scroll stop that is not a polyline",
			tmx: strings.Replace(fullLevel,
				`<polyline points="0,200 0,0"/>`, `<polygon points="0,200 0,0 10,0"/>`, 1),
			want: ErrUnsupportedShape,
		},
		{
			name: "moving collider without group",
			tmx: strings.Replace(fullLevel,
				`<property name="group" value="lift"/>`, "", 1),
			want: ErrMissingProperty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, tt.tmx)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadAllLevels(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/b.tmx": &fstest.MapFile{Data: []byte(fullLevel)},
		"levels/a.tmx": &fstest.MapFile{Data: []byte(fullLevel)},
	}
	levels, names, err := LoadAllLevels(fsys, "levels")
	if err != nil {
		t.Fatalf("LoadAllLevels: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v", names)
	}
	if levels["a"] == nil {
		t.Error("level a missing")
	}
}

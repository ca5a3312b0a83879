package systems

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/automoto/built-to-scale/shared/mapdata"
	"github.com/quasilyte/gdata"
)

// SavedProgress represents the per-level progress stored on disk
type SavedProgress struct {
	Level    string   `json:"level"`
	PowerUps []string `json:"powerUps"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for progress storage.
// Until it succeeds every save and load is a no-op.
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "built-to-scale",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

func progressKey(level string) string {
	return "progress_" + level
}

// LoadProgress returns the power-ups collected on level in a previous run.
func LoadProgress(level string) ([]mapdata.PowerUpKind, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(progressKey(level))
	if err != nil {
		log.Printf("Warning: Could not load progress: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var progress SavedProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		log.Printf("Warning: Could not parse saved progress: %v", err)
		return nil, err
	}
	return decodeKinds(progress.PowerUps), nil
}

// SaveProgress records the power-ups collected on level. Callers decide how
// to report a failure.
func SaveProgress(level string, kinds []mapdata.PowerUpKind) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	progress := &SavedProgress{Level: level}
	for _, k := range kinds {
		progress.PowerUps = append(progress.PowerUps, k.String())
	}

	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("serialize progress: %w", err)
	}
	if err := gdataManager.SaveItem(progressKey(level), data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// ClearProgress forgets everything saved for level.
func ClearProgress(level string) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}
	if err := gdataManager.DeleteItem(progressKey(level)); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// decodeKinds maps stored names back to kinds, skipping names this build
// does not know.
func decodeKinds(names []string) []mapdata.PowerUpKind {
	all := []mapdata.PowerUpKind{mapdata.PowerUpJumpBoost, mapdata.PowerUpDash, mapdata.PowerUpDoubleJump}
	var out []mapdata.PowerUpKind
	for _, name := range names {
		for _, k := range all {
			if k.String() == name {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

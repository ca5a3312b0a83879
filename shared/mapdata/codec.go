package mapdata

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-msgpack/v2/codec"
)

var ErrVersion = errors.New("unsupported map version")

var handle = &codec.MsgpackHandle{}

// Encode writes m as msgpack. The layout contains no Go maps, so the same
// Map always encodes to the same bytes.
func Encode(w io.Writer, m *Map) error {
	m.Version = Version
	if err := codec.NewEncoder(w, handle).Encode(m); err != nil {
		return fmt.Errorf("encode map %s: %w", m.Name, err)
	}
	return nil
}

// Decode reads a map written by Encode.
func Decode(r io.Reader) (*Map, error) {
	var m Map
	if err := codec.NewDecoder(r, handle).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	if m.Version != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersion, m.Version, Version)
	}
	return &m, nil
}

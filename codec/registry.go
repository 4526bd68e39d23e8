package codec

import (
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/arco/errs"
)

// Constructor builds a codec from its configuration record.
type Constructor func(cfg Config) (Codec, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Constructor)
)

// Register makes a codec constructor available under the given id.
//
// Codec packages call Register from an init function. Registering a nil
// constructor, an empty id, or the same id twice panics, since any of these
// is a programming error that must surface at startup.
func Register(id string, ctor Constructor) {
	if id == "" {
		panic("codec: Register with empty id")
	}
	if ctor == nil {
		panic("codec: Register with nil constructor for id " + id)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[id]; dup {
		panic("codec: Register called twice for id " + id)
	}
	registry[id] = ctor
}

// FromConfig reconstructs a codec from its configuration record.
//
// Returns:
//   - Codec: Codec built by the registered constructor
//   - error: errs.ErrInvalidConfig when the record has no id,
//     errs.ErrUnknownCodec when no constructor is registered for it, or any
//     error from the constructor itself
func FromConfig(cfg Config) (Codec, error) {
	id := cfg.ID()
	if id == "" {
		return nil, fmt.Errorf("%w: missing codec id", errs.ErrInvalidConfig)
	}

	registryMu.RLock()
	ctor, ok := registry[id]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownCodec, id)
	}

	return ctor(cfg)
}

// FromJSON reconstructs a codec from a JSON configuration record.
func FromJSON(data []byte) (Codec, error) {
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}

	return FromConfig(cfg)
}

// IDs returns the ids of all registered codecs in sorted order.
func IDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

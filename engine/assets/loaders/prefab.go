package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mirafall/strafe/engine/assets"
	"github.com/mirafall/strafe/engine/world"
)

// Prefab is a deserialized entity template. Gameplay packages register
// their own variants; the loader only dispatches on the type tag.
type Prefab interface {
	Spawn(w *world.World) world.Entity
}

// PrefabConstructor decodes one variant's JSON body.
type PrefabConstructor func(raw json.RawMessage) (Prefab, error)

var (
	prefabMu    sync.RWMutex
	prefabTypes = map[string]PrefabConstructor{}
)

// RegisterPrefabType adds a constructor for a type tag, in the manner of
// gob.Register: once per tag, at init time. Re-registering a tag panics.
func RegisterPrefabType(tag string, ctor PrefabConstructor) {
	prefabMu.Lock()
	defer prefabMu.Unlock()
	if _, dup := prefabTypes[tag]; dup {
		panic(fmt.Sprintf("prefab type %q registered twice", tag))
	}
	prefabTypes[tag] = ctor
}

type prefabEnvelope struct {
	Type string          `json:"type"`
	Body json.RawMessage `json:"body"`
}

// DecodePrefab parses a prefab document and dispatches to the registered
// constructor for its type tag.
func DecodePrefab(data []byte) (Prefab, error) {
	var env prefabEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("prefab envelope: %w", err)
	}
	prefabMu.RLock()
	ctor, ok := prefabTypes[env.Type]
	prefabMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown prefab type %q", env.Type)
	}
	return ctor(env.Body)
}

// NewPrefabLoader reads JSON prefab files under base.
func NewPrefabLoader(base string) assets.Loader[string, Prefab] {
	return &assets.SyncLoader[string, Prefab]{
		Resolve: func(key string) (Prefab, error) {
			data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(key)))
			if err != nil {
				return nil, fmt.Errorf("prefab %s: %w", key, err)
			}
			p, err := DecodePrefab(data)
			if err != nil {
				return nil, fmt.Errorf("prefab %s: %w", key, err)
			}
			return p, nil
		},
	}
}

package game

import (
	"encoding/json"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirafall/strafe/engine/assets/loaders"
	"github.com/mirafall/strafe/engine/world"
)

// ShipPrefab spawns the player ship. Authored as JSON under
// assets/prefabs/ with the envelope tag "ship".
type ShipPrefab struct {
	Texture string  `json:"texture"`
	Width   float32 `json:"width"`
	Height  float32 `json:"height"`
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Health  int32   `json:"health"`
}

func (p *ShipPrefab) Spawn(w *world.World) world.Entity {
	e := w.Spawn()
	w.SetTransform(e, world.Transform{Position: mgl32.Vec2{p.X, p.Y}})
	w.SetSprite(e, world.Sprite{TextureKey: p.Texture, Width: p.Width, Height: p.Height})
	w.SetHealth(e, world.Health{Current: p.Health, Max: p.Health})
	return e
}

// EnemyPrefab spawns one descending enemy. Tag "enemy".
type EnemyPrefab struct {
	Texture string  `json:"texture"`
	Width   float32 `json:"width"`
	Height  float32 `json:"height"`
	Speed   float32 `json:"speed"`
	Health  int32   `json:"health"`
}

func (p *EnemyPrefab) Spawn(w *world.World) world.Entity {
	e := w.Spawn()
	w.SetTransform(e, world.Transform{Velocity: mgl32.Vec2{0, p.Speed}})
	w.SetSprite(e, world.Sprite{TextureKey: p.Texture, Width: p.Width, Height: p.Height})
	w.SetHealth(e, world.Health{Current: p.Health, Max: p.Health})
	return e
}

func init() {
	loaders.RegisterPrefabType("ship", func(raw json.RawMessage) (loaders.Prefab, error) {
		p := &ShipPrefab{}
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, err
		}
		return p, nil
	})
	loaders.RegisterPrefabType("enemy", func(raw json.RawMessage) (loaders.Prefab, error) {
		p := &EnemyPrefab{}
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, err
		}
		return p, nil
	})
}

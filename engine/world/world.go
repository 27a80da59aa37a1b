// Package world holds the entity registry and the minimal component set
// the engine core needs: enough to exercise spawning, per-frame updates
// and the deferred-deletion path, not a full ECS.
package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity is a stable id for a spawned game object. Slots are reused after
// despawn, so holding an Entity across frames is only safe for systems
// that drain the deletion channel.
type Entity uint32

// InvalidEntity is never returned by Spawn.
const InvalidEntity Entity = 0xFFFFFFFF

// Transform places an entity in world space.
type Transform struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Rotation float32
}

// Sprite links an entity to a texture asset by key.
type Sprite struct {
	TextureKey    string
	Width, Height float32
}

// Health tracks damage state for shootable entities.
type Health struct {
	Current, Max int32
}

// World owns entity slots and component stores. Like the resource
// container, it belongs to the single-threaded game loop.
type World struct {
	owners     []bool
	transforms map[Entity]*Transform
	sprites    map[Entity]*Sprite
	healths    map[Entity]*Health
}

func New() *World {
	return &World{
		transforms: make(map[Entity]*Transform),
		sprites:    make(map[Entity]*Sprite),
		healths:    make(map[Entity]*Health),
	}
}

// Spawn allocates an entity id, reusing a free slot when one exists.
func (w *World) Spawn() Entity {
	for i, used := range w.owners {
		if !used {
			w.owners[i] = true
			return Entity(i)
		}
	}
	w.owners = append(w.owners, true)
	return Entity(len(w.owners) - 1)
}

// Despawn frees the entity's slot and drops its components. Despawning a
// dead or unknown entity is a no-op, since deletion events can arrive
// after the entity was already removed by another system.
func (w *World) Despawn(e Entity) {
	if !w.IsAlive(e) {
		return
	}
	w.owners[e] = false
	delete(w.transforms, e)
	delete(w.sprites, e)
	delete(w.healths, e)
}

func (w *World) IsAlive(e Entity) bool {
	return int(e) < len(w.owners) && w.owners[e]
}

// Count returns the number of live entities.
func (w *World) Count() int {
	n := 0
	for _, used := range w.owners {
		if used {
			n++
		}
	}
	return n
}

// Each calls fn for every live entity in slot order.
func (w *World) Each(fn func(Entity)) {
	for i, used := range w.owners {
		if used {
			fn(Entity(i))
		}
	}
}

func (w *World) mustBeAlive(e Entity) {
	if !w.IsAlive(e) {
		panic(fmt.Sprintf("world: component attached to dead entity %d", e))
	}
}

func (w *World) SetTransform(e Entity, t Transform) {
	w.mustBeAlive(e)
	w.transforms[e] = &t
}

func (w *World) Transform(e Entity) (*Transform, bool) {
	t, ok := w.transforms[e]
	return t, ok
}

func (w *World) SetSprite(e Entity, s Sprite) {
	w.mustBeAlive(e)
	w.sprites[e] = &s
}

func (w *World) Sprite(e Entity) (*Sprite, bool) {
	s, ok := w.sprites[e]
	return s, ok
}

func (w *World) SetHealth(e Entity, h Health) {
	w.mustBeAlive(e)
	w.healths[e] = &h
}

func (w *World) Health(e Entity) (*Health, bool) {
	h, ok := w.healths[e]
	return h, ok
}

// Integrate advances every transform by its velocity. dt is in seconds.
func (w *World) Integrate(dt float64) {
	for _, t := range w.transforms {
		t.Position = t.Position.Add(t.Velocity.Mul(float32(dt)))
	}
}

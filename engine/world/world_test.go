package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSpawnReusesFreedSlots(t *testing.T) {
	w := New()

	a := w.Spawn()
	b := w.Spawn()
	if a == b {
		t.Fatal("distinct spawns must yield distinct entities")
	}

	w.Despawn(a)
	c := w.Spawn()
	if c != a {
		t.Errorf("expected freed slot %d to be reused, got %d", a, c)
	}
	if w.Count() != 2 {
		t.Errorf("expected 2 live entities, got %d", w.Count())
	}
}

func TestDespawnDropsComponents(t *testing.T) {
	w := New()
	e := w.Spawn()
	w.SetTransform(e, Transform{Position: mgl32.Vec2{1, 2}})
	w.SetHealth(e, Health{Current: 3, Max: 3})

	w.Despawn(e)
	if w.IsAlive(e) {
		t.Error("entity should be dead")
	}
	if _, ok := w.Transform(e); ok {
		t.Error("transform should be dropped on despawn")
	}
	if _, ok := w.Health(e); ok {
		t.Error("health should be dropped on despawn")
	}

	// Deletion events may arrive late; a second despawn is a no-op.
	w.Despawn(e)
}

func TestIntegrateAdvancesByVelocity(t *testing.T) {
	w := New()
	e := w.Spawn()
	w.SetTransform(e, Transform{
		Position: mgl32.Vec2{0, 10},
		Velocity: mgl32.Vec2{100, -20},
	})

	w.Integrate(0.5)

	tr, _ := w.Transform(e)
	if tr.Position.X() != 50 || tr.Position.Y() != 0 {
		t.Errorf("expected (50, 0), got (%v, %v)", tr.Position.X(), tr.Position.Y())
	}
}

func TestComponentOnDeadEntityPanics(t *testing.T) {
	w := New()
	e := w.Spawn()
	w.Despawn(e)

	defer func() {
		if recover() == nil {
			t.Error("expected panic attaching component to dead entity")
		}
	}()
	w.SetSprite(e, Sprite{TextureKey: "ship.png"})
}

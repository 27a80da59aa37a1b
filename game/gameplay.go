package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirafall/strafe/engine/assets/loaders"
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/event"
	"github.com/mirafall/strafe/engine/gmath"
	"github.com/mirafall/strafe/engine/scene"
	"github.com/mirafall/strafe/engine/world"
)

const (
	shipSpeed    = 420.0
	bulletSpeed  = 640.0
	fireCooldown = 0.18

	baseEnemiesPerWave = 4
	enemiesPerWaveStep = 2

	laserSound     = "sounds/laser.wav"
	explosionSound = "sounds/explosion.wav"
	bulletTexture  = "textures/bullet.png"
)

// GameplayScene runs the wave loop. Entities it kills are never despawned
// inline; it writes EntityDeleted events and lets the engine apply them
// after the update, so collision handling below never observes a
// half-removed entity.
type GameplayScene struct {
	scene.BaseScene

	player  world.Entity
	bullets map[world.Entity]struct{}
	enemies map[world.Entity]struct{}

	wave     uint64
	cooldown float64

	fieldWidth  float32
	fieldHeight float32
}

func NewGameplayScene() *GameplayScene {
	return &GameplayScene{
		player:      world.InvalidEntity,
		bullets:     map[world.Entity]struct{}{},
		enemies:     map[world.Entity]struct{}{},
		fieldWidth:  1280,
		fieldHeight: 720,
	}
}

func (g *GameplayScene) OnCreate(ctx *scene.Context) {
	ship, ok := g.prefab(ctx, "prefabs/player.json")
	if !ok {
		core.LogError("player prefab missing, aborting gameplay")
		return
	}
	g.player = ship.Spawn(ctx.World)
	g.spawnWave(ctx)
	core.LogInfo("wave %d begins", g.wave)
}

func (g *GameplayScene) OnExit(ctx *scene.Context) {
	// Paused. Freeze the ship so held keys do not carry through.
	if tr, ok := ctx.World.Transform(g.player); ok {
		tr.Velocity = mgl32.Vec2{}
	}
}

func (g *GameplayScene) Update(ctx *scene.Context, dt float64) scene.Result {
	if !ctx.World.IsAlive(g.player) {
		return scene.Pop()
	}

	input, ok := fetchInput(ctx)
	if !ok {
		return scene.Pop()
	}
	if input.Get().IsActionPressed(ActionPause) {
		input.Release()
		return scene.Push(NewPauseScene())
	}

	g.steer(ctx, input.Get())
	wantsFire := input.Get().IsActionDown(ActionFire)
	input.Release()

	g.cooldown -= dt
	if wantsFire && g.cooldown <= 0 {
		g.fire(ctx)
		g.cooldown = fireCooldown
	}

	ctx.World.Integrate(dt)
	g.clampShip(ctx)
	g.resolveCollisions(ctx)
	g.cullEscaped(ctx)

	if h, ok := ctx.World.Health(g.player); ok && h.Current <= 0 {
		g.emitGameOver(ctx)
		return scene.Noop()
	}

	if len(g.enemies) == 0 {
		g.spawnWave(ctx)
		core.LogInfo("wave %d begins", g.wave)
	}
	return scene.Noop()
}

func (g *GameplayScene) ProcessEvent(ctx *scene.Context, e event.WindowEvent) {
	if r, ok := e.(event.WindowResized); ok {
		g.fieldWidth = float32(r.Width)
		g.fieldHeight = float32(r.Height)
	}
}

func (g *GameplayScene) steer(ctx *scene.Context, in *core.Input) {
	tr, ok := ctx.World.Transform(g.player)
	if !ok {
		return
	}
	var v mgl32.Vec2
	if in.IsActionDown(ActionMoveLeft) {
		v[0] -= shipSpeed
	}
	if in.IsActionDown(ActionMoveRight) {
		v[0] += shipSpeed
	}
	if in.IsActionDown(ActionMoveUp) {
		v[1] -= shipSpeed
	}
	if in.IsActionDown(ActionMoveDown) {
		v[1] += shipSpeed
	}
	tr.Velocity = v
}

func (g *GameplayScene) clampShip(ctx *scene.Context) {
	tr, ok := ctx.World.Transform(g.player)
	if !ok {
		return
	}
	sp, ok := ctx.World.Sprite(g.player)
	if !ok {
		return
	}
	half := mgl32.Vec2{sp.Width / 2, sp.Height / 2}
	tr.Position[0] = gmath.Clamp(tr.Position[0], half.X(), g.fieldWidth-half.X())
	tr.Position[1] = gmath.Clamp(tr.Position[1], half.Y(), g.fieldHeight-half.Y())
}

func (g *GameplayScene) fire(ctx *scene.Context) {
	tr, ok := ctx.World.Transform(g.player)
	if !ok {
		return
	}
	b := ctx.World.Spawn()
	ctx.World.SetTransform(b, world.Transform{
		Position: tr.Position,
		Velocity: mgl32.Vec2{0, -bulletSpeed},
	})
	ctx.World.SetSprite(b, world.Sprite{TextureKey: bulletTexture, Width: 8, Height: 16})
	g.bullets[b] = struct{}{}
	g.emitSound(ctx, laserSound)
}

func (g *GameplayScene) spawnWave(ctx *scene.Context) {
	proto, ok := g.prefab(ctx, "prefabs/enemy.json")
	if !ok {
		core.LogError("enemy prefab missing, cannot spawn wave")
		return
	}
	g.wave++
	count := baseEnemiesPerWave + int(g.wave-1)*enemiesPerWaveStep
	for i := 0; i < count; i++ {
		e := proto.Spawn(ctx.World)
		if tr, ok := ctx.World.Transform(e); ok {
			tr.Position = mgl32.Vec2{
				gmath.RandRange(40, g.fieldWidth-40),
				-gmath.RandRange(40, 320),
			}
		}
		g.enemies[e] = struct{}{}
	}
}

// resolveCollisions damages enemies hit by bullets. Kills are deferred
// through the deletion channel; the local sets are trimmed immediately so
// a dying enemy cannot be hit twice.
func (g *GameplayScene) resolveCollisions(ctx *scene.Context) {
	for b := range g.bullets {
		bt, ok := ctx.World.Transform(b)
		if !ok {
			continue
		}
		bs, _ := ctx.World.Sprite(b)
		for e := range g.enemies {
			et, ok := ctx.World.Transform(e)
			if !ok {
				continue
			}
			es, _ := ctx.World.Sprite(e)
			if !overlaps(bt.Position, bs, et.Position, es) {
				continue
			}
			delete(g.bullets, b)
			g.kill(ctx, b)
			if h, ok := ctx.World.Health(e); ok {
				h.Current--
				if h.Current > 0 {
					break
				}
			}
			delete(g.enemies, e)
			g.kill(ctx, e)
			g.emitSound(ctx, explosionSound)
			break
		}
	}
}

// cullEscaped removes bullets that left the top of the field and turns
// enemies that slipped past the bottom into player damage.
func (g *GameplayScene) cullEscaped(ctx *scene.Context) {
	for b := range g.bullets {
		if tr, ok := ctx.World.Transform(b); ok && tr.Position.Y() < -32 {
			delete(g.bullets, b)
			g.kill(ctx, b)
		}
	}
	for e := range g.enemies {
		tr, ok := ctx.World.Transform(e)
		if !ok || tr.Position.Y() <= g.fieldHeight+32 {
			continue
		}
		delete(g.enemies, e)
		g.kill(ctx, e)
		if h, ok := ctx.World.Health(g.player); ok {
			h.Current--
		}
	}
}

func overlaps(ap mgl32.Vec2, as *world.Sprite, bp mgl32.Vec2, bs *world.Sprite) bool {
	dx := ap.X() - bp.X()
	if dx < 0 {
		dx = -dx
	}
	dy := ap.Y() - bp.Y()
	if dy < 0 {
		dy = -dy
	}
	return dx*2 < as.Width+bs.Width && dy*2 < as.Height+bs.Height
}

func (g *GameplayScene) prefab(ctx *scene.Context, key string) (prefab loaders.Prefab, ok bool) {
	pre, found := fetchPrefabs(ctx)
	if !found {
		return nil, false
	}
	defer pre.Release()
	h, found := pre.Get().HandleFor(key)
	if !found {
		return nil, false
	}
	cell, found := pre.Get().Get(h)
	if !found {
		return nil, false
	}
	return cell.Get()
}

func (g *GameplayScene) kill(ctx *scene.Context, e world.Entity) {
	ch, ok := mutDeletions(ctx)
	if !ok {
		return
	}
	defer ch.Release()
	ch.Get().SingleWrite(event.EntityDeleted{Entity: uint32(e)})
}

func (g *GameplayScene) emitSound(ctx *scene.Context, key string) {
	ch, ok := mutSFX(ctx)
	if !ok {
		return
	}
	defer ch.Release()
	ch.Get().SingleWrite(event.PlaySound{Key: key})
}

func (g *GameplayScene) emitGameOver(ctx *scene.Context) {
	ch, ok := mutGameOvers(ctx)
	if !ok {
		return
	}
	defer ch.Release()
	ch.Get().SingleWrite(event.GameOver{Wave: g.wave})
}

package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirafall/strafe/engine/assets"
	"github.com/mirafall/strafe/engine/assets/loaders"
	"github.com/mirafall/strafe/engine/containers"
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/event"
	"github.com/mirafall/strafe/engine/scene"
	"github.com/mirafall/strafe/engine/world"
)

// newTestContext seeds a resource container the way the engine does, with
// synchronous in-memory loaders so every asset settles on the first poll.
func newTestContext(t *testing.T) *scene.Context {
	t.Helper()

	ctx := &scene.Context{
		World:     world.New(),
		Resources: containers.NewResourceContainer(),
	}

	textures := assets.NewManager(&assets.SyncLoader[string, *loaders.TextureData]{
		Resolve: func(key string) (*loaders.TextureData, error) {
			return &loaders.TextureData{
				Width: 1, Height: 1,
				Pixels:  []byte{0xff, 0xff, 0xff, 0xff},
				Sampler: loaders.DefaultSampler(),
			}, nil
		},
	}, nil)
	sounds := assets.NewManager(&assets.SyncLoader[string, *loaders.SoundData]{
		Resolve: func(key string) (*loaders.SoundData, error) {
			return &loaders.SoundData{}, nil
		},
	}, nil)
	prefabLib := map[string]loaders.Prefab{
		"prefabs/player.json": &ShipPrefab{
			Texture: "textures/ship.png", Width: 48, Height: 48,
			X: 640, Y: 640, Health: 3,
		},
		"prefabs/enemy.json": &EnemyPrefab{
			Texture: "textures/enemy.png", Width: 40, Height: 40,
			Speed: 120, Health: 1,
		},
	}
	prefabs := assets.NewManager(&assets.SyncLoader[string, loaders.Prefab]{
		Resolve: func(key string) (loaders.Prefab, error) {
			return prefabLib[key], nil
		},
	}, nil)

	// Request the gameplay manifests up front, as LoadingScene would have:
	// GameplayScene resolves prefabs through HandleFor, which only hits
	// keys that were requested.
	for _, key := range textureManifest {
		textures.Load(key)
	}
	for _, key := range soundManifest {
		sounds.Load(key)
	}
	for _, key := range prefabManifest {
		prefabs.Load(key)
	}

	containers.Insert(ctx.Resources, core.NewInput(core.DefaultBindings()))
	containers.Insert(ctx.Resources, textures)
	containers.Insert(ctx.Resources, sounds)
	containers.Insert(ctx.Resources, prefabs)
	containers.Insert(ctx.Resources, event.NewChannel[event.EntityDeleted]())
	containers.Insert(ctx.Resources, event.NewChannel[event.PlaySound]())
	containers.Insert(ctx.Resources, event.NewChannel[event.GameOver]())

	if err := setup(ctx); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return ctx
}

// pressKey produces a clean press edge: the key is released, the snapshot
// rolls over so the release lands in the previous frame, then the key goes
// down in the current frame.
func pressKey(t *testing.T, ctx *scene.Context, key core.KeyCode) {
	t.Helper()
	in, ok := containersInput(ctx)
	if !ok {
		t.Fatal("input missing")
	}
	defer in.Release()
	in.Get().ProcessKey(key, false)
	in.Get().Update()
	in.Get().ProcessKey(key, true)
}

func releaseKeys(t *testing.T, ctx *scene.Context) {
	t.Helper()
	in, ok := containersInput(ctx)
	if !ok {
		t.Fatal("input missing")
	}
	defer in.Release()
	in.Get().Update()
}

func TestMenuToGameplayFlow(t *testing.T) {
	ctx := newTestContext(t)
	st := scene.NewStack()
	st.Push(ctx, NewMenuScene())

	// Idle frame: menu stays put.
	st.Step(ctx, 1.0/60)
	if _, ok := st.Top().(*MenuScene); !ok {
		t.Fatalf("expected menu on top, got %T", st.Top())
	}

	// Confirm pushes the loading screen.
	pressKey(t, ctx, core.KEY_ENTER)
	st.Step(ctx, 1.0/60)
	if _, ok := st.Top().(*LoadingScene); !ok {
		t.Fatalf("expected loading on top, got %T", st.Top())
	}
	if st.Len() != 2 {
		t.Fatalf("menu should stay resident, stack len = %d", st.Len())
	}

	// Sync loaders settle immediately, so the next step lands in gameplay.
	releaseKeys(t, ctx)
	st.Step(ctx, 1.0/60)
	if _, ok := st.Top().(*GameplayScene); !ok {
		t.Fatalf("expected gameplay on top, got %T", st.Top())
	}
	if st.Len() != 2 {
		t.Fatalf("loading should have replaced itself, stack len = %d", st.Len())
	}
}

func TestContextResolvesGameplayPrefabs(t *testing.T) {
	ctx := newTestContext(t)
	g := NewGameplayScene()
	for _, key := range prefabManifest {
		if _, ok := g.prefab(ctx, key); !ok {
			t.Fatalf("prefab %s should resolve after the manifest was requested", key)
		}
	}
}

func TestGameplaySpawnsPlayerAndWave(t *testing.T) {
	ctx := newTestContext(t)
	g := NewGameplayScene()
	g.OnCreate(ctx)

	if !ctx.World.IsAlive(g.player) {
		t.Fatal("player not spawned")
	}
	if len(g.enemies) != baseEnemiesPerWave {
		t.Fatalf("wave 1 enemies = %d, want %d", len(g.enemies), baseEnemiesPerWave)
	}
	if ctx.World.Count() != 1+baseEnemiesPerWave {
		t.Fatalf("world count = %d", ctx.World.Count())
	}
	if g.wave != 1 {
		t.Fatalf("wave = %d, want 1", g.wave)
	}
}

func TestFireSpawnsBulletAndSoundEvent(t *testing.T) {
	ctx := newTestContext(t)
	sfx, _ := containers.Fetch[*event.Channel[event.PlaySound]](ctx.Resources)
	reader := sfx.Get().RegisterReader()
	sfx.Release()

	g := NewGameplayScene()
	g.OnCreate(ctx)

	pressKey(t, ctx, core.KEY_SPACE)
	g.Update(ctx, 1.0/60)

	if len(g.bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(g.bullets))
	}

	sfx, _ = containers.Fetch[*event.Channel[event.PlaySound]](ctx.Resources)
	defer sfx.Release()
	var heard []event.PlaySound
	for s := range sfx.Get().Read(reader) {
		heard = append(heard, s)
	}
	if len(heard) != 1 || heard[0].Key != laserSound {
		t.Fatalf("sound events = %v", heard)
	}
}

func TestBulletKillDefersDeletionThroughChannel(t *testing.T) {
	ctx := newTestContext(t)
	del, _ := containers.Fetch[*event.Channel[event.EntityDeleted]](ctx.Resources)
	reader := del.Get().RegisterReader()
	del.Release()

	g := NewGameplayScene()
	g.OnCreate(ctx)

	// Park a bullet directly on top of one enemy.
	var target world.Entity
	for e := range g.enemies {
		target = e
		break
	}
	et, _ := ctx.World.Transform(target)
	et.Position = mgl32.Vec2{200, 200}
	et.Velocity = mgl32.Vec2{}

	b := ctx.World.Spawn()
	ctx.World.SetTransform(b, world.Transform{Position: mgl32.Vec2{200, 200}})
	ctx.World.SetSprite(b, world.Sprite{TextureKey: bulletTexture, Width: 8, Height: 16})
	g.bullets[b] = struct{}{}

	g.resolveCollisions(ctx)

	if _, still := g.enemies[target]; still {
		t.Fatal("enemy should leave the live set on lethal hit")
	}
	if _, still := g.bullets[b]; still {
		t.Fatal("bullet should leave the live set on impact")
	}
	// Deletion is deferred: both entities are still alive until the engine
	// drains the channel.
	if !ctx.World.IsAlive(target) || !ctx.World.IsAlive(b) {
		t.Fatal("entities despawned inline instead of via the channel")
	}

	del, _ = containers.Fetch[*event.Channel[event.EntityDeleted]](ctx.Resources)
	defer del.Release()
	var killed []event.EntityDeleted
	for d := range del.Get().Read(reader) {
		killed = append(killed, d)
	}
	if len(killed) != 2 {
		t.Fatalf("deletion events = %d, want 2", len(killed))
	}
}

func TestClampShipToleratesMissingSprite(t *testing.T) {
	ctx := newTestContext(t)
	g := NewGameplayScene()
	g.player = ctx.World.Spawn()
	ctx.World.SetTransform(g.player, world.Transform{Position: mgl32.Vec2{-50, 900}})

	g.clampShip(ctx)

	tr, _ := ctx.World.Transform(g.player)
	if tr.Position.X() != -50 || tr.Position.Y() != 900 {
		t.Fatalf("spriteless ship should be left alone, got %v", tr.Position)
	}
}

func TestPauseFreezesShipAndPops(t *testing.T) {
	ctx := newTestContext(t)
	st := scene.NewStack()
	g := NewGameplayScene()
	st.Push(ctx, g)

	// Hold right so the ship has velocity going into the pause.
	pressKey(t, ctx, core.KEY_RIGHT)
	st.Step(ctx, 1.0/60)
	tr, _ := ctx.World.Transform(g.player)
	if tr.Velocity.X() == 0 {
		t.Fatal("ship should be moving")
	}

	pressKey(t, ctx, core.KEY_P)
	st.Step(ctx, 1.0/60)
	if _, ok := st.Top().(*PauseScene); !ok {
		t.Fatalf("expected pause on top, got %T", st.Top())
	}
	if tr.Velocity.X() != 0 {
		t.Fatal("pause should freeze the ship")
	}

	pressKey(t, ctx, core.KEY_P)
	st.Step(ctx, 1.0/60)
	if _, ok := st.Top().(*GameplayScene); !ok {
		t.Fatalf("expected gameplay back on top, got %T", st.Top())
	}
}

func TestGameOverEventCarriesWave(t *testing.T) {
	ctx := newTestContext(t)
	overs, _ := containers.Fetch[*event.Channel[event.GameOver]](ctx.Resources)
	reader := overs.Get().RegisterReader()
	overs.Release()

	g := NewGameplayScene()
	g.OnCreate(ctx)

	if h, ok := ctx.World.Health(g.player); ok {
		h.Current = 0
	}
	releaseKeys(t, ctx)
	g.Update(ctx, 1.0/60)

	overs, _ = containers.Fetch[*event.Channel[event.GameOver]](ctx.Resources)
	defer overs.Release()
	var got []event.GameOver
	for o := range overs.Get().Read(reader) {
		got = append(got, o)
	}
	if len(got) != 1 || got[0].Wave != 1 {
		t.Fatalf("game over events = %v", got)
	}
}

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/mirafall/strafe/engine/assets"
	"github.com/mirafall/strafe/engine/assets/loaders"
	"github.com/mirafall/strafe/engine/audio"
	"github.com/mirafall/strafe/engine/containers"
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/event"
	"github.com/mirafall/strafe/engine/jobs"
	"github.com/mirafall/strafe/engine/persist"
	"github.com/mirafall/strafe/engine/platform"
	"github.com/mirafall/strafe/engine/renderer"
	"github.com/mirafall/strafe/engine/scene"
	"github.com/mirafall/strafe/engine/world"
)

type Stage uint8

const (
	// Engine is not yet initialized
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently on the main loop
	EngineStageRunning
	// Engine is currently shutting down
	EngineStageShuttingDown
)

const loaderQueueSize = 64

// Engine owns the main loop. It pumps the platform, feeds input and window
// events to the active scene, steps the scene stack, applies deferred
// effects drained from the event channels and drives the renderer, in that
// order, once per tick.
type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *Config

	isRunning   bool
	isSuspended bool
	width       uint32
	height      uint32

	platform *platform.Platform
	backend  renderer.Backend
	clock    *core.Clock
	metrics  *core.Metrics
	lastTime float64

	world     *world.World
	resources *containers.ResourceContainer
	stack     *scene.Stack
	sceneCtx  *scene.Context

	pool    *jobs.Pool
	watcher *assets.Watcher

	textures *assets.Manager[string, *loaders.TextureData]
	shaders  *assets.Manager[loaders.ShaderKey, *loaders.ShaderProgram]
	sounds   *assets.Manager[string, *loaders.SoundData]
	prefabs  *assets.Manager[string, loaders.Prefab]
	fonts    *assets.Manager[string, *loaders.FontData]

	player *audio.Player
	store  *persist.Store

	deletions *event.Channel[event.EntityDeleted]
	sfx       *event.Channel[event.PlaySound]
	gameOvers *event.Channel[event.GameOver]

	deletionsReader event.ReaderID
	sfxReader       event.ReaderID
	gameOversReader event.ReaderID

	input          *core.Input
	platformEvents []platform.Event
	pendingInput   []event.InputEvent
	pendingWindow  []event.WindowEvent
}

// New builds an engine around g. The strafe.toml configuration, the asset
// pipeline and the resource container are all assembled here; nothing
// touches the OS until Initialize.
func New(g *Game) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("engine: nil game")
	}

	cfg, err := LoadConfig(ConfigFileName)
	if err != nil {
		return nil, err
	}
	core.SetLogLevel(cfg.logLevel())

	if g.ApplicationConfig == nil {
		g.ApplicationConfig = applicationConfigFrom(cfg)
	}

	backend := g.Backend
	if backend == nil {
		backend = renderer.NewHeadless()
	}

	pool, err := jobs.NewPool(runtime.NumCPU(), loaderQueueSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       cfg,
		platform:     nil,
		backend:      backend,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		world:        world.New(),
		resources:    containers.NewResourceContainer(),
		stack:        scene.NewStack(),
		pool:         pool,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}
	e.platform, err = platform.New()
	if err != nil {
		return nil, err
	}

	base := cfg.Assets.BasePath
	e.textures = assets.NewManager(e.textureLoader(base), &loaders.TextureUploader{Backend: backend})
	e.shaders = assets.NewManager(loaders.NewShaderLoader(base), &loaders.ShaderUploader{Backend: backend})
	e.sounds = assets.NewManager[string](loaders.NewAudioLoader(base, pool), nil)
	e.prefabs = assets.NewManager[string](loaders.NewPrefabLoader(base), nil)
	e.fonts = assets.NewManager[string](loaders.NewFontLoader(base), nil)

	e.player = audio.NewPlayer(e.sounds)
	e.store = persist.Open(base)

	e.deletions = event.NewChannel[event.EntityDeleted]()
	e.sfx = event.NewChannel[event.PlaySound]()
	e.gameOvers = event.NewChannel[event.GameOver]()
	e.deletionsReader = e.deletions.RegisterReader()
	e.sfxReader = e.sfx.RegisterReader()
	e.gameOversReader = e.gameOvers.RegisterReader()

	bindings, err := core.LoadBindings(filepath.Join(base, "bindings.json"))
	if err != nil {
		core.LogWarn("using default bindings: %s", err)
		bindings = core.DefaultBindings()
	}
	e.input = core.NewInput(bindings)

	e.seedResources()
	e.sceneCtx = &scene.Context{World: e.world, Resources: e.resources}

	e.currentStage = EngineStageInitializing
	return e, nil
}

// textureLoader prefers the packed atlas named in the config and falls back
// to loose files under the asset base for anything the pack misses.
func (e *Engine) textureLoader(base string) assets.Loader[string, *loaders.TextureData] {
	loose := loaders.NewTextureLoader(base, e.pool)
	if e.config.Assets.Pack == "" {
		return loose
	}
	blob, err := os.ReadFile(filepath.Join(base, e.config.Assets.Pack))
	if err != nil {
		core.LogWarn("texture pack %s unavailable, loading loose files: %s", e.config.Assets.Pack, err)
		return loose
	}
	packed, err := loaders.NewPackedTextureLoader(blob)
	if err != nil {
		core.LogWarn("texture pack %s unreadable, loading loose files: %s", e.config.Assets.Pack, err)
		return loose
	}
	return &assets.Chain[string, *loaders.TextureData]{Primary: packed, Fallback: loose}
}

// seedResources publishes everything scenes fetch from the container.
func (e *Engine) seedResources() {
	containers.Insert(e.resources, e.input)
	containers.Insert(e.resources, e.metrics)
	containers.Insert(e.resources, e.store)
	containers.Insert(e.resources, e.player)
	containers.Insert(e.resources, e.textures)
	containers.Insert(e.resources, e.shaders)
	containers.Insert(e.resources, e.sounds)
	containers.Insert(e.resources, e.prefabs)
	containers.Insert(e.resources, e.fonts)
	containers.Insert(e.resources, e.deletions)
	containers.Insert(e.resources, e.sfx)
	containers.Insert(e.resources, e.gameOvers)
}

// Initialize opens the window, starts the renderer and audio and pushes the
// game's initial scene.
func (e *Engine) Initialize() error {
	g := e.gameInstance

	if err := e.platform.Startup(
		g.ApplicationConfig.Name,
		uint32(g.ApplicationConfig.StartPosX),
		uint32(g.ApplicationConfig.StartPosY),
		g.ApplicationConfig.StartWidth,
		g.ApplicationConfig.StartHeight,
	); err != nil {
		return err
	}

	if err := e.backend.Startup(g.ApplicationConfig.Name, e.width, e.height); err != nil {
		return err
	}

	if e.config.Audio.Enabled {
		if err := e.player.Initialize(); err != nil {
			core.LogWarn("audio unavailable: %s", err)
		}
	}

	if e.config.Assets.HotReload {
		w, err := assets.NewWatcher(e.config.Assets.BasePath)
		if err != nil {
			core.LogWarn("hot reload disabled: %s", err)
		} else {
			e.watcher = w
		}
	}

	if g.FnSetup != nil {
		if err := g.FnSetup(e.sceneCtx); err != nil {
			return err
		}
	}
	if g.FnInitialScene == nil {
		return fmt.Errorf("engine: game has no initial scene")
	}
	e.stack.Push(e.sceneCtx, g.FnInitialScene(e.sceneCtx))

	e.currentStage = EngineStageInitialized
	return nil
}

// Run executes the main loop until the window closes, Escape is pressed,
// the scene stack empties or the renderer fails.
func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning = true

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	targetFrameSeconds := 1.0 / float64(e.config.FrameRate)

	for e.isRunning {
		e.platform.PumpMessages()
		if e.platform.Window.ShouldClose() {
			e.isRunning = false
		}

		if e.isSuspended {
			time.Sleep(time.Duration(targetFrameSeconds * float64(time.Second)))
			e.pumpInput()
			e.deliverPendingEvents()
			// Keep the delta baseline moving so resuming does not hand the
			// first frame a huge dt.
			e.clock.Update()
			e.lastTime = e.clock.Elapsed()
			continue
		}

		e.clock.Update()
		current := e.clock.Elapsed()
		delta := current - e.lastTime
		frameStartTime := time.Now()

		e.pumpInput()
		if e.input.IsKeyPressed(core.KEY_ESCAPE) {
			e.isRunning = false
		}

		e.stack.Step(e.sceneCtx, delta)
		if e.stack.IsEmpty() {
			e.isRunning = false
		}
		e.deliverPendingEvents()
		e.stack.PrepareGUI(e.sceneCtx)

		e.applyDeferredEffects()
		e.pumpAssets()

		if err := e.renderFrame(delta); err != nil {
			core.LogError("renderer failed: %s", err)
			e.isRunning = false
		}

		frameElapsed := time.Since(frameStartTime).Seconds()
		e.metrics.Update(frameElapsed)

		// Soft frame budget. Oversleeping a late frame is fine; there is
		// no catch-up stepping.
		if remaining := targetFrameSeconds - frameElapsed; remaining > 0 {
			time.Sleep(time.Duration(remaining * float64(time.Second)))
		}

		e.lastTime = current
	}

	return e.Shutdown()
}

// pumpInput drains the platform queue and mutates the input snapshot. Edge
// state rolls over first so IsKeyPressed reflects this tick only. Scene
// delivery does not happen here: events are queued and handed to the stack
// by deliverPendingEvents after the frame's transition, so a scene pushed
// this frame receives the frame's trailing events.
func (e *Engine) pumpInput() {
	e.input.Update()
	e.platformEvents = e.platform.Drain(e.platformEvents[:0])

	for _, pe := range e.platformEvents {
		switch pe.Kind {
		case platform.EventKey:
			if e.input.ProcessKey(pe.Key, pe.Pressed) {
				e.pendingInput = append(e.pendingInput, event.KeyEvent{Key: pe.Key, Pressed: pe.Pressed})
			}
		case platform.EventButton:
			if e.input.ProcessButton(pe.Button, pe.Pressed) {
				e.pendingInput = append(e.pendingInput, event.MouseButtonEvent{Button: pe.Button, Pressed: pe.Pressed})
			}
		case platform.EventCursor:
			if e.input.ProcessMouseMove(pe.X, pe.Y) {
				e.pendingInput = append(e.pendingInput, event.MouseMoveEvent{X: pe.X, Y: pe.Y})
			}
		case platform.EventResize:
			e.onResized(pe.Width, pe.Height)
		case platform.EventClose:
			e.pendingWindow = append(e.pendingWindow, event.QuitRequested{})
			e.isRunning = false
		}
	}
}

// deliverPendingEvents forwards the frame's queued window and input events
// to the stack top. Called after Step so delivery is against the
// post-transition top.
func (e *Engine) deliverPendingEvents() {
	for _, ev := range e.pendingWindow {
		e.stack.DeliverEvent(e.sceneCtx, ev)
	}
	for _, ev := range e.pendingInput {
		e.stack.DeliverInput(e.sceneCtx, ev)
	}
	e.pendingWindow = e.pendingWindow[:0]
	e.pendingInput = e.pendingInput[:0]
}

func (e *Engine) onResized(width, height uint32) {
	// 0x0 means minimized. Suspend until the window comes back.
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	e.width = width
	e.height = height
	e.backend.Resized(width, height)
	e.pendingWindow = append(e.pendingWindow, event.WindowResized{Width: width, Height: height})
}

// applyDeferredEffects drains the engine-owned channels. Effects written by
// scenes during Update land here, one tick at the latest after the write.
func (e *Engine) applyDeferredEffects() {
	for d := range e.deletions.Read(e.deletionsReader) {
		e.world.Despawn(world.Entity(d.Entity))
	}
	for s := range e.sfx.Read(e.sfxReader) {
		e.player.Play(s.Key)
	}
	for g := range e.gameOvers.Read(e.gameOversReader) {
		core.LogInfo("game over at wave %d", g.Wave)
		if e.store.RecordWave(g.Wave) {
			core.LogInfo("new wave record: %d", g.Wave)
		}
		// Game over tears the process down on the spot.
		os.Exit(0)
	}
}

// pumpAssets uploads freshly loaded GPU assets and requeues anything the
// file watcher saw change on disk.
func (e *Engine) pumpAssets() {
	e.textures.ProcessUploads()
	e.shaders.ProcessUploads()

	if e.watcher == nil {
		return
	}
	for _, key := range e.watcher.Dirty() {
		if _, ok := e.textures.HandleFor(key); ok {
			core.LogInfo("hot reloading texture %s", key)
			e.textures.Reload(key)
		}
		if _, ok := e.sounds.HandleFor(key); ok {
			core.LogInfo("hot reloading sound %s", key)
			e.sounds.Reload(key)
		}
	}
}

// renderFrame draws every entity that has both a transform and a sprite
// whose texture has reached the GPU.
func (e *Engine) renderFrame(delta float64) error {
	if err := e.backend.BeginFrame(delta); err != nil {
		return err
	}

	e.world.Each(func(en world.Entity) {
		sp, ok := e.world.Sprite(en)
		if !ok {
			return
		}
		tr, ok := e.world.Transform(en)
		if !ok {
			return
		}
		h, ok := e.textures.HandleFor(sp.TextureKey)
		if !ok {
			return
		}
		cell, ok := e.textures.Get(h)
		if !ok {
			return
		}
		td, ok := cell.Get()
		if !ok || td.GPU == 0 {
			return
		}
		e.backend.DrawSprite(renderer.SpriteDraw{
			Texture:  td.GPU,
			X:        tr.Position.X(),
			Y:        tr.Position.Y(),
			Width:    sp.Width,
			Height:   sp.Height,
			Rotation: tr.Rotation,
		})
	})

	return e.backend.EndFrame()
}

// Shutdown unwinds the scene stack and tears the subsystems down in reverse
// startup order.
func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	core.LogInfo("shutting down")

	e.stack.UnwindAll(e.sceneCtx)

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("watcher close: %s", err)
		}
	}
	if err := e.pool.Shutdown(); err != nil {
		core.LogWarn("worker pool shutdown: %s", err)
	}
	e.player.Shutdown()
	if err := e.store.Write(); err != nil {
		core.LogWarn("save write failed: %s", err)
	}

	if err := e.backend.Shutdown(); err != nil {
		core.LogError("renderer shutdown: %s", err)
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}

	e.clock.Stop()
	return nil
}

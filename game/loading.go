package game

import (
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/scene"
)

// Everything gameplay needs. Loading kicks all of it off at once; the
// loaders resolve on the worker pool while this scene polls.
var (
	textureManifest = []string{
		"textures/ship.png",
		"textures/enemy.png",
		"textures/bullet.png",
	}
	soundManifest = []string{
		"sounds/laser.wav",
		"sounds/explosion.wav",
	}
	prefabManifest = []string{
		"prefabs/player.json",
		"prefabs/enemy.json",
	}
)

// LoadingScene requests the gameplay asset set and polls until every cell
// settles. All loaded: replace self with gameplay. Any cell in error: log
// the causes and pop back to the menu instead of crashing.
type LoadingScene struct {
	scene.BaseScene
}

func NewLoadingScene() *LoadingScene {
	return &LoadingScene{}
}

func (l *LoadingScene) OnCreate(ctx *scene.Context) {
	if tex, ok := mutTextures(ctx); ok {
		for _, key := range textureManifest {
			tex.Get().Load(key)
		}
		tex.Release()
	}
	if snd, ok := mutSounds(ctx); ok {
		for _, key := range soundManifest {
			snd.Get().Load(key)
		}
		snd.Release()
	}
	if pre, ok := mutPrefabs(ctx); ok {
		for _, key := range prefabManifest {
			pre.Get().Load(key)
		}
		pre.Release()
	}
	core.LogInfo("loading %d assets", len(textureManifest)+len(soundManifest)+len(prefabManifest))
}

func (l *LoadingScene) Update(ctx *scene.Context, dt float64) scene.Result {
	tex, ok := fetchTextures(ctx)
	if !ok {
		return scene.Pop()
	}
	defer tex.Release()
	snd, ok := fetchSounds(ctx)
	if !ok {
		return scene.Pop()
	}
	defer snd.Release()
	pre, ok := fetchPrefabs(ctx)
	if !ok {
		return scene.Pop()
	}
	defer pre.Release()

	if !tex.Get().AllSettled() || !snd.Get().AllSettled() || !pre.Get().AllSettled() {
		return scene.Noop()
	}

	failed := false
	for key, err := range tex.Get().Errors() {
		core.LogError("texture %s failed to load: %s", key, err)
		failed = true
	}
	for key, err := range snd.Get().Errors() {
		core.LogError("sound %s failed to load: %s", key, err)
		failed = true
	}
	for key, err := range pre.Get().Errors() {
		core.LogError("prefab %s failed to load: %s", key, err)
		failed = true
	}
	if failed {
		return scene.Pop()
	}
	return scene.Replace(NewGameplayScene())
}

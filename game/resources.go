package game

import (
	"errors"

	"github.com/mirafall/strafe/engine/assets"
	"github.com/mirafall/strafe/engine/assets/loaders"
	"github.com/mirafall/strafe/engine/containers"
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/event"
	"github.com/mirafall/strafe/engine/scene"
)

var errNoInput = errors.New("game: input resource missing from container")

// Typed fetch helpers. Scenes go through these so the verbose generic
// instantiations live in one place.

func containersInput(ctx *scene.Context) (*containers.WriteGuard[*core.Input], bool) {
	return containers.FetchMut[*core.Input](ctx.Resources)
}

func fetchInput(ctx *scene.Context) (*containers.ReadGuard[*core.Input], bool) {
	return containers.Fetch[*core.Input](ctx.Resources)
}

func mutTextures(ctx *scene.Context) (*containers.WriteGuard[*assets.Manager[string, *loaders.TextureData]], bool) {
	return containers.FetchMut[*assets.Manager[string, *loaders.TextureData]](ctx.Resources)
}

func fetchTextures(ctx *scene.Context) (*containers.ReadGuard[*assets.Manager[string, *loaders.TextureData]], bool) {
	return containers.Fetch[*assets.Manager[string, *loaders.TextureData]](ctx.Resources)
}

func mutSounds(ctx *scene.Context) (*containers.WriteGuard[*assets.Manager[string, *loaders.SoundData]], bool) {
	return containers.FetchMut[*assets.Manager[string, *loaders.SoundData]](ctx.Resources)
}

func fetchSounds(ctx *scene.Context) (*containers.ReadGuard[*assets.Manager[string, *loaders.SoundData]], bool) {
	return containers.Fetch[*assets.Manager[string, *loaders.SoundData]](ctx.Resources)
}

func mutPrefabs(ctx *scene.Context) (*containers.WriteGuard[*assets.Manager[string, loaders.Prefab]], bool) {
	return containers.FetchMut[*assets.Manager[string, loaders.Prefab]](ctx.Resources)
}

func fetchPrefabs(ctx *scene.Context) (*containers.ReadGuard[*assets.Manager[string, loaders.Prefab]], bool) {
	return containers.Fetch[*assets.Manager[string, loaders.Prefab]](ctx.Resources)
}

func mutDeletions(ctx *scene.Context) (*containers.WriteGuard[*event.Channel[event.EntityDeleted]], bool) {
	return containers.FetchMut[*event.Channel[event.EntityDeleted]](ctx.Resources)
}

func mutSFX(ctx *scene.Context) (*containers.WriteGuard[*event.Channel[event.PlaySound]], bool) {
	return containers.FetchMut[*event.Channel[event.PlaySound]](ctx.Resources)
}

func mutGameOvers(ctx *scene.Context) (*containers.WriteGuard[*event.Channel[event.GameOver]], bool) {
	return containers.FetchMut[*event.Channel[event.GameOver]](ctx.Resources)
}

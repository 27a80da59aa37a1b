package game

import (
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/scene"
)

// PauseScene sits on top of gameplay. Gameplay stays resident underneath
// (its OnExit fired, freezing the ship) and resumes through OnEnter when
// this scene pops itself.
type PauseScene struct {
	scene.BaseScene
}

func NewPauseScene() *PauseScene {
	return &PauseScene{}
}

func (p *PauseScene) OnCreate(ctx *scene.Context) {
	core.LogInfo("paused")
}

func (p *PauseScene) Update(ctx *scene.Context, dt float64) scene.Result {
	input, ok := fetchInput(ctx)
	if !ok {
		return scene.Pop()
	}
	defer input.Release()

	if input.Get().IsActionPressed(ActionPause) || input.Get().IsActionPressed(ActionConfirm) {
		return scene.Pop()
	}
	return scene.Noop()
}

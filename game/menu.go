package game

import (
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/scene"
)

// MenuScene is the entry scene. Confirm pushes the loading screen on top;
// when loading finishes the loading scene replaces itself with gameplay, so
// the menu stays resident underneath and a pop from gameplay lands back
// here.
type MenuScene struct {
	scene.BaseScene
}

func NewMenuScene() *MenuScene {
	return &MenuScene{}
}

func (m *MenuScene) OnCreate(ctx *scene.Context) {
	core.LogInfo("menu ready, press Enter to start")
}

func (m *MenuScene) OnEnter(ctx *scene.Context) {
	core.LogInfo("back at menu")
}

func (m *MenuScene) Update(ctx *scene.Context, dt float64) scene.Result {
	input, ok := fetchInput(ctx)
	if !ok {
		return scene.Noop()
	}
	defer input.Release()

	if input.Get().IsActionPressed(ActionConfirm) {
		return scene.Push(NewLoadingScene())
	}
	return scene.Noop()
}

// Package game is the arcade shooter built on the strafe engine: a menu,
// an asset loading screen and a wave-based gameplay scene.
package game

import (
	"github.com/mirafall/strafe/engine"
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/scene"
)

// Input actions the scenes react to. Keys map to these through the binding
// table so players can rebind without touching scene code.
const (
	ActionMoveLeft  core.Action = "move_left"
	ActionMoveRight core.Action = "move_right"
	ActionMoveUp    core.Action = "move_up"
	ActionMoveDown  core.Action = "move_down"
	ActionFire      core.Action = "fire"
	ActionConfirm   core.Action = "confirm"
	ActionPause     core.Action = "pause"
)

// NewShooterGame wires the scenes into an engine.Game. The engine owns the
// window and the loop; everything game-specific enters through FnSetup and
// the initial scene.
func NewShooterGame() *engine.Game {
	return &engine.Game{
		FnSetup:        setup,
		FnInitialScene: initialScene,
	}
}

func setup(ctx *scene.Context) error {
	input, ok := containersInput(ctx)
	if !ok {
		return errNoInput
	}
	defer input.Release()

	b := input.Get().Bindings
	b.Bind(core.KEY_LEFT, ActionMoveLeft)
	b.Bind(core.KEY_RIGHT, ActionMoveRight)
	b.Bind(core.KEY_UP, ActionMoveUp)
	b.Bind(core.KEY_DOWN, ActionMoveDown)
	b.Bind(core.KEY_SPACE, ActionFire)
	b.Bind(core.KEY_ENTER, ActionConfirm)
	b.Bind(core.KEY_P, ActionPause)
	return nil
}

func initialScene(ctx *scene.Context) scene.Scene {
	return NewMenuScene()
}

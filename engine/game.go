package engine

import (
	"github.com/mirafall/strafe/engine/renderer"
	"github.com/mirafall/strafe/engine/scene"
)

// Setup runs once after the engine has built the resource container and the
// world, before the first scene is created. Games use it to register
// resources, bindings and anything else scenes expect to find.
type Setup func(ctx *scene.Context) error

// InitialScene produces the scene pushed onto the stack at startup.
type InitialScene func(ctx *scene.Context) scene.Scene

// Game describes an application to the engine. Backend may be nil, in which
// case the headless renderer is used.
type Game struct {
	ApplicationConfig *ApplicationConfig
	Backend           renderer.Backend

	FnSetup        Setup
	FnInitialScene InitialScene
}

// Package scene implements the stack-based state machine that drives game
// flow. Only the top scene of the stack is updated each frame; scenes
// below it stay resident but dormant. Transitions are requested
// declaratively through the Result a scene returns from Update and are
// applied by the stack after Update returns, never mid-frame.
package scene

import (
	"github.com/mirafall/strafe/engine/containers"
	"github.com/mirafall/strafe/engine/event"
	"github.com/mirafall/strafe/engine/world"
)

// Context carries the world and resource container into every scene hook.
type Context struct {
	World     *world.World
	Resources *containers.ResourceContainer
}

// Scene is the capability set a unit of game flow can implement. Embed
// BaseScene to get no-op defaults and override only what you need.
//
// OnCreate/OnDestroy bracket a scene's whole lifetime, exactly once per
// push/pop pair. OnExit/OnEnter fire only when a scene moves between top
// and non-top, letting it pause ambient behavior (music, timers) without
// re-initializing.
type Scene interface {
	OnCreate(ctx *Context)
	OnDestroy(ctx *Context)
	OnEnter(ctx *Context)
	OnExit(ctx *Context)
	Update(ctx *Context, dt float64) Result
	PrepareGUI(ctx *Context)
	ProcessEvent(ctx *Context, e event.WindowEvent)
	ProcessInput(ctx *Context, e event.InputEvent)
}

// BaseScene provides no-op implementations of every Scene hook.
type BaseScene struct{}

func (BaseScene) OnCreate(*Context)                        {}
func (BaseScene) OnDestroy(*Context)                       {}
func (BaseScene) OnEnter(*Context)                         {}
func (BaseScene) OnExit(*Context)                          {}
func (BaseScene) Update(*Context, float64) Result          { return Noop() }
func (BaseScene) PrepareGUI(*Context)                      {}
func (BaseScene) ProcessEvent(*Context, event.WindowEvent) {}
func (BaseScene) ProcessInput(*Context, event.InputEvent)  {}

type resultKind int

const (
	kindNoop resultKind = iota
	kindPush
	kindPop
	kindReplace
	kindReplaceAll
)

// Result is the command a scene's Update returns to request a transition.
// The zero value is Noop.
type Result struct {
	kind resultKind
	next Scene
}

// Noop requests no transition.
func Noop() Result { return Result{} }

// Push makes s the new active scene on top of the current one.
func Push(s Scene) Result { return Result{kind: kindPush, next: s} }

// Pop destroys the active scene and resumes the one below it.
func Pop() Result { return Result{kind: kindPop} }

// Replace destroys the active scene and puts s in its place.
func Replace(s Scene) Result { return Result{kind: kindReplace, next: s} }

// ReplaceAll destroys every scene on the stack and starts fresh with s.
func ReplaceAll(s Scene) Result { return Result{kind: kindReplaceAll, next: s} }

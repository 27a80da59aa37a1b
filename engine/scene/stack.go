package scene

import (
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/event"
)

// Stack owns the ordered scene stack. The engine calls Step once per
// frame; everything else is driven by the Results scenes return.
type Stack struct {
	scenes []Scene
}

func NewStack() *Stack {
	return &Stack{}
}

// Len returns the stack depth.
func (st *Stack) Len() int {
	return len(st.scenes)
}

// IsEmpty reports whether no scene is left to run. The engine exits when
// the stack empties.
func (st *Stack) IsEmpty() bool {
	return len(st.scenes) == 0
}

// Top returns the active scene, or nil for an empty stack.
func (st *Stack) Top() Scene {
	if len(st.scenes) == 0 {
		return nil
	}
	return st.scenes[len(st.scenes)-1]
}

// Step updates the active scene and applies exactly one resulting
// transition. Commands never compound within one frame.
func (st *Stack) Step(ctx *Context, dt float64) {
	top := st.Top()
	if top == nil {
		return
	}
	st.apply(ctx, top.Update(ctx, dt))
}

// DeliverEvent forwards a window event to the active scene. Delivery is
// against the post-transition top, so a scene pushed this frame receives
// the frame's trailing events.
func (st *Stack) DeliverEvent(ctx *Context, e event.WindowEvent) {
	if top := st.Top(); top != nil {
		top.ProcessEvent(ctx, e)
	}
}

// DeliverInput forwards an input event to the active scene.
func (st *Stack) DeliverInput(ctx *Context, e event.InputEvent) {
	if top := st.Top(); top != nil {
		top.ProcessInput(ctx, e)
	}
}

// PrepareGUI lets the active scene lay out its per-frame GUI state.
func (st *Stack) PrepareGUI(ctx *Context) {
	if top := st.Top(); top != nil {
		top.PrepareGUI(ctx)
	}
}

// Push puts s on top of the stack. The previous top exits, the new scene
// is created. No OnEnter fires: creation covers it.
func (st *Stack) Push(ctx *Context, s Scene) {
	if top := st.Top(); top != nil {
		top.OnExit(ctx)
	}
	st.scenes = append(st.scenes, s)
	s.OnCreate(ctx)
}

// Pop destroys the top scene. The scene below, if any, re-enters.
func (st *Stack) Pop(ctx *Context) {
	top := st.Top()
	if top == nil {
		core.LogWarn("Pop on an empty scene stack.")
		return
	}
	top.OnDestroy(ctx)
	st.scenes = st.scenes[:len(st.scenes)-1]
	if next := st.Top(); next != nil {
		next.OnEnter(ctx)
	}
}

// Replace swaps the top scene for s: one OnDestroy, one OnCreate, no
// enter/exit pair since the slot below never becomes top.
func (st *Stack) Replace(ctx *Context, s Scene) {
	if top := st.Top(); top != nil {
		top.OnDestroy(ctx)
		st.scenes = st.scenes[:len(st.scenes)-1]
	}
	st.scenes = append(st.scenes, s)
	s.OnCreate(ctx)
}

// ReplaceAll destroys every scene top-down, then pushes s. The scenes
// uncovered along the way never become active, so no OnEnter/OnExit fire.
func (st *Stack) ReplaceAll(ctx *Context, s Scene) {
	for len(st.scenes) > 0 {
		st.scenes[len(st.scenes)-1].OnDestroy(ctx)
		st.scenes = st.scenes[:len(st.scenes)-1]
	}
	st.scenes = append(st.scenes, s)
	s.OnCreate(ctx)
}

// UnwindAll empties the stack on shutdown, destroying scenes top-down.
func (st *Stack) UnwindAll(ctx *Context) {
	for len(st.scenes) > 0 {
		st.scenes[len(st.scenes)-1].OnDestroy(ctx)
		st.scenes = st.scenes[:len(st.scenes)-1]
	}
}

func (st *Stack) apply(ctx *Context, r Result) {
	switch r.kind {
	case kindNoop:
	case kindPush:
		st.Push(ctx, r.next)
	case kindPop:
		st.Pop(ctx)
	case kindReplace:
		st.Replace(ctx, r.next)
	case kindReplaceAll:
		st.ReplaceAll(ctx, r.next)
	}
}

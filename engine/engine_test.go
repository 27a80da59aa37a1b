package engine

import (
	"testing"

	"github.com/mirafall/strafe/engine/containers"
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/event"
	"github.com/mirafall/strafe/engine/scene"
	"github.com/mirafall/strafe/engine/world"
)

// recordingScene notes the input and window events it receives and can
// push a follower on its first update.
type recordingScene struct {
	scene.BaseScene
	name   string
	pushes scene.Scene
	inputs []event.InputEvent
	window []event.WindowEvent
}

func (s *recordingScene) Update(ctx *scene.Context, dt float64) scene.Result {
	if s.pushes != nil {
		next := s.pushes
		s.pushes = nil
		return scene.Push(next)
	}
	return scene.Noop()
}

func (s *recordingScene) ProcessInput(ctx *scene.Context, e event.InputEvent) {
	s.inputs = append(s.inputs, e)
}

func (s *recordingScene) ProcessEvent(ctx *scene.Context, e event.WindowEvent) {
	s.window = append(s.window, e)
}

func newLoopHarness() *Engine {
	return &Engine{
		stack: scene.NewStack(),
		sceneCtx: &scene.Context{
			World:     world.New(),
			Resources: containers.NewResourceContainer(),
		},
	}
}

// A frame's events must reach the scene that is on top after the frame's
// transition was applied, not the one that requested it.
func TestEventsDeliveredToPostTransitionTop(t *testing.T) {
	e := newLoopHarness()
	pushed := &recordingScene{name: "pushed"}
	root := &recordingScene{name: "root", pushes: pushed}
	e.stack.Push(e.sceneCtx, root)

	e.pendingInput = append(e.pendingInput, event.KeyEvent{Key: core.KEY_SPACE, Pressed: true})
	e.pendingWindow = append(e.pendingWindow, event.WindowResized{Width: 800, Height: 600})

	e.stack.Step(e.sceneCtx, 1.0/60)
	e.deliverPendingEvents()

	if len(root.inputs) != 0 || len(root.window) != 0 {
		t.Fatalf("pre-transition scene received %d input / %d window events",
			len(root.inputs), len(root.window))
	}
	if len(pushed.inputs) != 1 {
		t.Fatalf("post-transition scene inputs = %d, want 1", len(pushed.inputs))
	}
	if ke, ok := pushed.inputs[0].(event.KeyEvent); !ok || ke.Key != core.KEY_SPACE {
		t.Fatalf("input event = %#v", pushed.inputs[0])
	}
	if len(pushed.window) != 1 {
		t.Fatalf("post-transition scene window events = %d, want 1", len(pushed.window))
	}
}

func TestDeliverPendingEventsClearsQueues(t *testing.T) {
	e := newLoopHarness()
	top := &recordingScene{name: "top"}
	e.stack.Push(e.sceneCtx, top)

	e.pendingInput = append(e.pendingInput, event.KeyEvent{Key: core.KEY_ENTER, Pressed: true})
	e.pendingWindow = append(e.pendingWindow, event.QuitRequested{})

	e.deliverPendingEvents()
	e.deliverPendingEvents()

	if len(top.inputs) != 1 || len(top.window) != 1 {
		t.Fatalf("events delivered more than once: %d input, %d window",
			len(top.inputs), len(top.window))
	}
}

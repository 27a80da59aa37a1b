// Package platform wraps the windowing layer. Callbacks translate GLFW
// input into engine events queued for the next tick; nothing here touches
// game state directly.
package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/mirafall/strafe/engine/containers"
	"github.com/mirafall/strafe/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type EventKind int

const (
	EventKey EventKind = iota
	EventButton
	EventCursor
	EventResize
	EventClose
)

// Event is one windowing occurrence, drained by the engine each tick.
type Event struct {
	Kind    EventKind
	Key     core.KeyCode
	Button  core.Button
	Pressed bool
	X, Y    int32
	Width   uint32
	Height  uint32
}

const eventQueueSize = 512

type Platform struct {
	Window *glfw.Window
	queue  *containers.RingQueue[Event]
}

func New() (*Platform, error) {
	return &Platform{
		queue: containers.NewRingQueue[Event](eventQueueSize),
	}, nil
}

func (p *Platform) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetCloseCallback(p.closeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() error {
	glfw.Terminate()
	return nil
}

// PumpMessages polls the OS; callbacks fill the event queue.
func (p *Platform) PumpMessages() {
	glfw.PollEvents()
}

// Drain empties the queued events in arrival order.
func (p *Platform) Drain(into []Event) []Event {
	for !p.queue.IsEmpty() {
		e, _ := p.queue.Dequeue()
		into = append(into, e)
	}
	return into
}

func (p *Platform) push(e Event) {
	if err := p.queue.Enqueue(e); err != nil {
		core.LogWarn("platform event queue full, dropping event kind %d", e.Kind)
	}
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code, ok := translateKey(key)
	if !ok {
		return
	}
	p.push(Event{Kind: EventKey, Key: code, Pressed: action == glfw.Press})
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := translateButton(button)
	if !ok {
		return
	}
	p.push(Event{Kind: EventButton, Button: b, Pressed: action == glfw.Press})
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.push(Event{Kind: EventCursor, X: int32(xpos), Y: int32(ypos)})
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.push(Event{Kind: EventResize, Width: uint32(width), Height: uint32(height)})
}

func (p *Platform) closeCallback(w *glfw.Window) {
	p.push(Event{Kind: EventClose})
}

func translateButton(b glfw.MouseButton) (core.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.BUTTON_LEFT, true
	case glfw.MouseButtonRight:
		return core.BUTTON_RIGHT, true
	case glfw.MouseButtonMiddle:
		return core.BUTTON_MIDDLE, true
	}
	return 0, false
}

func translateKey(k glfw.Key) (core.KeyCode, bool) {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return core.KEY_A + core.KeyCode(k-glfw.KeyA), true
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return core.KEY_F1 + core.KeyCode(k-glfw.KeyF1), true
	}
	switch k {
	case glfw.KeySpace:
		return core.KEY_SPACE, true
	case glfw.KeyEscape:
		return core.KEY_ESCAPE, true
	case glfw.KeyEnter:
		return core.KEY_ENTER, true
	case glfw.KeyTab:
		return core.KEY_TAB, true
	case glfw.KeyBackspace:
		return core.KEY_BACKSPACE, true
	case glfw.KeyLeft:
		return core.KEY_LEFT, true
	case glfw.KeyRight:
		return core.KEY_RIGHT, true
	case glfw.KeyUp:
		return core.KEY_UP, true
	case glfw.KeyDown:
		return core.KEY_DOWN, true
	case glfw.KeyLeftShift:
		return core.KEY_LSHIFT, true
	case glfw.KeyRightShift:
		return core.KEY_RSHIFT, true
	case glfw.KeyLeftControl:
		return core.KEY_LCONTROL, true
	case glfw.KeyRightControl:
		return core.KEY_RCONTROL, true
	}
	return 0, false
}

package event

// InputEvent is the closed set of per-frame input events delivered to the
// active scene: KeyEvent, MouseButtonEvent, MouseMoveEvent.
type InputEvent interface {
	inputEvent()
}

func (KeyEvent) inputEvent()         {}
func (MouseButtonEvent) inputEvent() {}
func (MouseMoveEvent) inputEvent()   {}

// WindowEvent is the closed set of windowing events delivered to the
// active scene: WindowResized, QuitRequested.
type WindowEvent interface {
	windowEvent()
}

func (WindowResized) windowEvent() {}
func (QuitRequested) windowEvent() {}

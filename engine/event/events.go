package event

import "github.com/mirafall/strafe/engine/core"

// Engine-level event types. Gameplay code defines its own event structs
// and channels; these are the ones the engine itself produces or drains.

// KeyEvent is emitted on a key state change.
type KeyEvent struct {
	Key     core.KeyCode
	Pressed bool
}

// MouseButtonEvent is emitted on a mouse button state change.
type MouseButtonEvent struct {
	Button  core.Button
	Pressed bool
}

// MouseMoveEvent is emitted when the cursor position changes.
type MouseMoveEvent struct {
	X, Y int32
}

// WindowResized is emitted when the OS resizes the framebuffer.
type WindowResized struct {
	Width, Height uint32
}

// QuitRequested asks the engine to exit after the current frame.
type QuitRequested struct{}

// EntityDeleted marks an entity for despawn at the end of the frame.
type EntityDeleted struct {
	Entity uint32
}

// PlaySound asks the audio player to fire a one-shot sound by asset key.
type PlaySound struct {
	Key string
}

// GameOver reports the run that just ended.
type GameOver struct {
	Wave uint64
}

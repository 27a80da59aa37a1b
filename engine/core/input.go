package core

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_ENTER     KeyCode = 0x0D
	KEY_TAB       KeyCode = 0x09
	KEY_SHIFT     KeyCode = 0x10
	KEY_PAUSE     KeyCode = 0x13
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F2        KeyCode = 0x71
	KEY_F3        KeyCode = 0x72
	KEY_F4        KeyCode = 0x73
	KEY_F5        KeyCode = 0x74
	KEY_F6        KeyCode = 0x75
	KEY_F7        KeyCode = 0x76
	KEY_F8        KeyCode = 0x77
	KEY_F9        KeyCode = 0x78
	KEY_F10       KeyCode = 0x79
	KEY_F11       KeyCode = 0x7A
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0x100
)

var keyNames = map[string]KeyCode{
	"Backspace": KEY_BACKSPACE,
	"Enter":     KEY_ENTER,
	"Tab":       KEY_TAB,
	"Shift":     KEY_SHIFT,
	"Escape":    KEY_ESCAPE,
	"Space":     KEY_SPACE,
	"Left":      KEY_LEFT,
	"Up":        KEY_UP,
	"Right":     KEY_RIGHT,
	"Down":      KEY_DOWN,
}

func init() {
	for c := KEY_A; c <= KEY_Z; c++ {
		keyNames[string(rune('A'+c-KEY_A))] = c
	}
	for i := 0; i < 12; i++ {
		keyNames[fmt.Sprintf("F%d", i+1)] = KEY_F1 + KeyCode(i)
	}
}

// ParseKeyName resolves a human-readable key name ("Space", "W", "F5")
// as used in binding files.
func ParseKeyName(name string) (KeyCode, bool) {
	code, ok := keyNames[strings.TrimSpace(name)]
	return code, ok
}

// Action is an abstract input action a key can be bound to ("fire",
// "move_left"). Gameplay code matches on actions, never raw key codes.
type Action string

const ActionNone Action = ""

// Bindings maps physical keys to abstract actions. The table is a plain
// JSON object of key name to action name on disk.
type Bindings struct {
	byKey map[KeyCode]Action
}

func DefaultBindings() *Bindings {
	return &Bindings{byKey: map[KeyCode]Action{}}
}

// LoadBindings reads a binding table from a JSON file. Unknown key names
// are logged and skipped rather than failing the whole table.
func LoadBindings(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing bindings %s: %w", path, err)
	}
	b := DefaultBindings()
	for name, action := range raw {
		code, ok := ParseKeyName(name)
		if !ok {
			LogWarn("Unknown key name %q in %s, skipping.", name, path)
			continue
		}
		b.byKey[code] = Action(action)
	}
	return b, nil
}

func (b *Bindings) Bind(key KeyCode, action Action) {
	b.byKey[key] = action
}

func (b *Bindings) ActionFor(key KeyCode) Action {
	return b.byKey[key]
}

// Mouse state structure
type MouseState struct {
	X       int32
	Y       int32
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// Input holds current and previous keyboard/mouse states plus the action
// binding table. It is stored in the resource container and updated once
// per frame by the engine, never from platform callbacks directly.
type Input struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
	Bindings         *Bindings
}

func NewInput(bindings *Bindings) *Input {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Input{Bindings: bindings}
}

// Update copies current states to previous states. Call at the start of a
// frame, before processing the frame's platform events.
func (in *Input) Update() {
	in.KeyboardPrevious = in.KeyboardCurrent
	in.MousePrevious = in.MouseCurrent
}

// ProcessKey records a key state change. Returns true if the state
// actually changed, so the caller knows whether to publish an event.
func (in *Input) ProcessKey(key KeyCode, pressed bool) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	if in.KeyboardCurrent.Keys[key] == pressed {
		return false
	}
	in.KeyboardCurrent.Keys[key] = pressed
	return true
}

func (in *Input) ProcessButton(button Button, pressed bool) bool {
	if in.MouseCurrent.Buttons[button] == pressed {
		return false
	}
	in.MouseCurrent.Buttons[button] = pressed
	return true
}

func (in *Input) ProcessMouseMove(x, y int32) bool {
	if in.MouseCurrent.X == x && in.MouseCurrent.Y == y {
		return false
	}
	in.MouseCurrent.X = x
	in.MouseCurrent.Y = y
	return true
}

func (in *Input) IsKeyDown(key KeyCode) bool {
	return in.KeyboardCurrent.Keys[key]
}

func (in *Input) IsKeyUp(key KeyCode) bool {
	return !in.KeyboardCurrent.Keys[key]
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	return in.KeyboardPrevious.Keys[key]
}

// IsKeyPressed reports a down edge: down this frame, up the previous one.
func (in *Input) IsKeyPressed(key KeyCode) bool {
	return in.KeyboardCurrent.Keys[key] && !in.KeyboardPrevious.Keys[key]
}

func (in *Input) IsButtonDown(button Button) bool {
	return in.MouseCurrent.Buttons[button]
}

func (in *Input) WasButtonDown(button Button) bool {
	return in.MousePrevious.Buttons[button]
}

func (in *Input) MousePosition() (int32, int32) {
	return in.MouseCurrent.X, in.MouseCurrent.Y
}

// IsActionPressed reports a down edge on any key bound to the action.
func (in *Input) IsActionPressed(action Action) bool {
	for key, a := range in.Bindings.byKey {
		if a == action && in.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// IsActionDown reports whether any key bound to the action is held.
func (in *Input) IsActionDown(action Action) bool {
	for key, a := range in.Bindings.byKey {
		if a == action && in.IsKeyDown(key) {
			return true
		}
	}
	return false
}

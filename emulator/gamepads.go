package emulator

import (
	"github.com/gekko3d/webvr"
	"github.com/go-gl/mathgl/mgl32"
)

// Gamepads is a mutable input enumeration.
type Gamepads struct {
	pads []*webvr.Gamepad
}

func NewGamepads() *Gamepads {
	return &Gamepads{}
}

// Connect adds a tracked controller at the origin with buttons released.
func (g *Gamepads) Connect(id string, hand webvr.Hand, buttons int) *webvr.Gamepad {
	position := mgl32.Vec3{}
	orientation := mgl32.QuatIdent()
	pad := &webvr.Gamepad{
		ID:      id,
		Hand:    hand,
		HasPose: true,
		Pose: &webvr.Pose{
			Position:    &position,
			Orientation: &orientation,
			HasPosition: true,
		},
		Buttons: make([]webvr.GamepadButton, buttons),
	}
	g.pads = append(g.pads, pad)
	return pad
}

func (g *Gamepads) Disconnect(pad *webvr.Gamepad) {
	for i, p := range g.pads {
		if p == pad {
			// Indices are stable, so leave a hole.
			g.pads[i] = nil
			return
		}
	}
}

// Press sets a button state; out-of-range indices are ignored.
func (g *Gamepads) Press(pad *webvr.Gamepad, button int, pressed bool) {
	if button < 0 || button >= len(pad.Buttons) {
		return
	}
	pad.Buttons[button].Pressed = pressed
	if pressed {
		pad.Buttons[button].Value = 1
	} else {
		pad.Buttons[button].Value = 0
	}
}

func (g *Gamepads) Gamepads() []*webvr.Gamepad {
	return g.pads
}

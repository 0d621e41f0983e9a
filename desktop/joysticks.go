package desktop

import (
	"github.com/gekko3d/webvr"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Joysticks exposes connected GLFW joysticks as untracked controllers. Desktop
// pads report no position, so the tracker places them at its default offset.
//
// Alias, when set, replaces every joystick name so a plain gamepad can stand in
// for a known controller family (for example "OpenVR Gamepad").
type Joysticks struct {
	Alias string
	Hand  webvr.Hand

	pads []*webvr.Gamepad
}

// Gamepads must be called on the main thread after glfw.PollEvents.
func (j *Joysticks) Gamepads() []*webvr.Gamepad {
	j.pads = j.pads[:0]
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if !joy.Present() {
			j.pads = append(j.pads, nil)
			continue
		}

		id := joy.GetName()
		if j.Alias != "" {
			id = j.Alias
		}

		actions := joy.GetButtons()
		buttons := make([]webvr.GamepadButton, len(actions))
		for i, a := range actions {
			if a == glfw.Press {
				buttons[i] = webvr.GamepadButton{Pressed: true, Value: 1}
			}
		}

		j.pads = append(j.pads, &webvr.Gamepad{
			ID:      id,
			Hand:    j.Hand,
			HasPose: true,
			Pose:    &webvr.Pose{HasPosition: false},
			Buttons: buttons,
		})
	}
	return j.pads
}

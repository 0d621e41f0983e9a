package webvr

import (
	"github.com/gekko3d/webvr/core"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultControllerOffset is where an orientation-only controller is assumed to sit
// relative to the head.
var DefaultControllerOffset = mgl32.Vec3{0.2, -0.6, -0.05}

// Controller is the scene node for one controller slot. Its matrix is written by
// the tracker, so automatic matrix updates are off.
type Controller struct {
	core.Node
	Dispatcher[EventType, Event]

	slot   int
	family string

	trigger bool
	grip    bool
}

func newController(slot int) *Controller {
	c := &Controller{slot: slot}
	c.Node.Reset()
	c.Node.Name = "controller"
	c.MatrixAutoUpdate = false
	c.Visible = false
	return c
}

func (c *Controller) Slot() int {
	return c.slot
}

// Family is the tag of the controller family last bound to this slot.
func (c *Controller) Family() string {
	return c.family
}

// ControllerTracker binds input devices to controller slots, poses the slot nodes
// and turns button samples into select/squeeze events.
type ControllerTracker struct {
	table       ControllerTable
	offset      mgl32.Vec3
	controllers []*Controller
	log         Logger
}

func NewControllerTracker(table ControllerTable, offset mgl32.Vec3, logger Logger) *ControllerTracker {
	return &ControllerTracker{
		table:  table,
		offset: offset,
		log:    WithComponent(logger, "controllers"),
	}
}

// Controller returns the node for slot, creating it on first use.
func (t *ControllerTracker) Controller(slot int) *Controller {
	if slot < 0 {
		return nil
	}
	for len(t.controllers) <= slot {
		t.controllers = append(t.controllers, nil)
	}
	if t.controllers[slot] == nil {
		t.controllers[slot] = newController(slot)
	}
	return t.controllers[slot]
}

// Match finds the first known device whose hand binds to slot.
func (t *ControllerTracker) Match(slot int, gamepads []*Gamepad) (*Gamepad, ControllerFamily, bool) {
	for _, gp := range gamepads {
		if gp == nil {
			continue
		}
		family, ok := t.table.Lookup(gp.ID)
		if !ok {
			continue
		}
		if s, ok := family.SlotFor(gp.Hand); ok && s == slot {
			return gp, family, true
		}
	}
	return nil, ControllerFamily{}, false
}

// Update runs one frame of controller tracking. A bound device that has no pose
// sample this frame ends the pass early; controllers not yet visited keep their
// previous state.
func (t *ControllerTracker) Update(input InputSource, standing mgl32.Mat4) {
	if len(t.controllers) == 0 {
		return
	}

	var gamepads []*Gamepad
	if input != nil {
		gamepads = input.Gamepads()
	}

	for slot, c := range t.controllers {
		if c == nil {
			continue
		}

		gp, family, ok := t.Match(slot, gamepads)
		if !ok || !gp.HasPose {
			c.Visible = false
			continue
		}
		if gp.Pose == nil {
			t.log.Debugf("controller %d: %s has no pose this frame", slot, gp.ID)
			return
		}

		if c.family != family.Tag {
			t.log.Debugf("controller %d bound to %s (%s)", slot, gp.ID, family.Tag)
			c.family = family.Tag
		}

		t.updateTransform(c, gp.Pose, standing)
		t.updateButtons(c, gp, family.Buttons)
	}
}

func (t *ControllerTracker) updateTransform(c *Controller, pose *Pose, standing mgl32.Mat4) {
	if !pose.HasPosition {
		c.Position = t.offset
	}
	if pose.Position != nil {
		c.Position = *pose.Position
	}
	if pose.Orientation != nil {
		c.Rotation = *pose.Orientation
	}

	c.Matrix = standing.Mul4(core.Compose(c.Position, c.Rotation, c.Scale))
	c.Position, c.Rotation, c.Scale = core.Decompose(c.Matrix)
	c.MatrixWorldNeedsUpdate = true
	c.Visible = true
}

func (t *ControllerTracker) updateButtons(c *Controller, gp *Gamepad, layout ButtonLayout) {
	if layout.Trigger < len(gp.Buttons) {
		c.trigger = t.edge(c, c.trigger, gp.Buttons[layout.Trigger].Pressed, EventSelectStart, EventSelectEnd, EventSelect)
	}
	// Not every controller has a grip.
	if layout.Grip < len(gp.Buttons) {
		c.grip = t.edge(c, c.grip, gp.Buttons[layout.Grip].Pressed, EventSqueezeStart, EventSqueezeEnd, EventSqueeze)
	}
}

// edge emits start on a press, end then the completed action on a release, and
// nothing while the button is held or stays up. It returns the new state.
func (t *ControllerTracker) edge(c *Controller, was, pressed bool, start, end, action EventType) bool {
	if was == pressed {
		return pressed
	}
	if pressed {
		c.Dispatch(start, Event{Type: start, Controller: c})
	} else {
		c.Dispatch(end, Event{Type: end, Controller: c})
		c.Dispatch(action, Event{Type: action, Controller: c})
	}
	return pressed
}

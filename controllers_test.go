package webvr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type padList []*Gamepad

func (p padList) Gamepads() []*Gamepad { return p }

func trackedPad(id string, hand Hand, buttons int) *Gamepad {
	position := mgl32.Vec3{0.1, -0.2, -0.3}
	orientation := mgl32.QuatIdent()
	return &Gamepad{
		ID:      id,
		Hand:    hand,
		HasPose: true,
		Pose:    &Pose{Position: &position, Orientation: &orientation, HasPosition: true},
		Buttons: make([]GamepadButton, buttons),
	}
}

func newTestTracker() *ControllerTracker {
	return NewControllerTracker(DefaultControllerTable, DefaultControllerOffset, nil)
}

// recordEvents collects every controller event type on c in order.
func recordEvents(c *Controller) *[]EventType {
	var got []EventType
	for kind := EventSelectStart; kind <= EventSqueeze; kind++ {
		c.Subscribe(kind, func(e Event) { got = append(got, e.Type) })
	}
	return &got
}

func TestTriggerEdgeDetection(t *testing.T) {
	tests := []struct {
		name     string
		sequence []bool
		want     []EventType
	}{
		{"press and release", []bool{false, true, false}, []EventType{EventSelectStart, EventSelectEnd, EventSelect}},
		{"held", []bool{true, true, true}, []EventType{EventSelectStart}},
		{"never pressed", []bool{false, false, false}, nil},
		{"two clicks", []bool{true, false, true, false}, []EventType{EventSelectStart, EventSelectEnd, EventSelect, EventSelectStart, EventSelectEnd, EventSelect}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := newTestTracker()
			c := tr.Controller(0)
			got := recordEvents(c)

			pad := trackedPad("OpenVR Gamepad", HandRight, 4)
			for _, pressed := range tc.sequence {
				pad.Buttons[1].Pressed = pressed
				tr.Update(padList{pad}, mgl32.Ident4())
			}
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestHeldTriggerEmitsNothing(t *testing.T) {
	tr := newTestTracker()
	c := tr.Controller(0)
	pad := trackedPad("OpenVR Gamepad", HandRight, 4)

	pad.Buttons[1].Pressed = true
	tr.Update(padList{pad}, mgl32.Ident4())

	got := recordEvents(c)
	for i := 0; i < 5; i++ {
		tr.Update(padList{pad}, mgl32.Ident4())
	}
	assert.Empty(t, *got)
}

func TestDaydreamTriggerIsButtonZero(t *testing.T) {
	tr := newTestTracker()
	got := recordEvents(tr.Controller(0))
	pad := trackedPad("Daydream Controller", HandNone, 1)

	for _, pressed := range []bool{false, true, false} {
		pad.Buttons[0].Pressed = pressed
		tr.Update(padList{pad}, mgl32.Ident4())
	}

	assert.Equal(t, []EventType{EventSelectStart, EventSelectEnd, EventSelect}, *got)
	assert.Equal(t, "daydream", tr.Controller(0).Family())
}

func TestGripEvents(t *testing.T) {
	tr := newTestTracker()
	got := recordEvents(tr.Controller(0))
	pad := trackedPad("Oculus Touch (Right)", HandRight, 3)

	for _, pressed := range []bool{false, true, false} {
		pad.Buttons[2].Pressed = pressed
		tr.Update(padList{pad}, mgl32.Ident4())
	}

	assert.Equal(t, []EventType{EventSqueezeStart, EventSqueezeEnd, EventSqueeze}, *got)
}

func TestGripSkippedWithoutThirdButton(t *testing.T) {
	for _, n := range []int{0, 1, 2} {
		tr := newTestTracker()
		got := recordEvents(tr.Controller(0))
		pad := trackedPad("Gear VR Controller", HandNone, n)

		for _, pressed := range []bool{false, true, false, true} {
			for i := range pad.Buttons {
				pad.Buttons[i].Pressed = pressed
			}
			tr.Update(padList{pad}, mgl32.Ident4())
		}

		for _, e := range *got {
			assert.NotContains(t, []EventType{EventSqueezeStart, EventSqueezeEnd, EventSqueeze}, e, "%d buttons", n)
		}
		assert.True(t, tr.Controller(0).Visible, "pad with %d buttons is still tracked", n)
	}
}

func TestHandBinding(t *testing.T) {
	tests := []struct {
		hand Hand
		slot int
	}{
		{HandNone, 0},
		{HandRight, 0},
		{HandLeft, 1},
	}

	for _, tc := range tests {
		t.Run(string(tc.hand), func(t *testing.T) {
			tr := newTestTracker()
			tr.Controller(0)
			tr.Controller(1)

			tr.Update(padList{trackedPad("Oculus Touch (Left)", tc.hand, 4)}, mgl32.Ident4())

			assert.Equal(t, tc.slot == 0, tr.Controller(0).Visible)
			assert.Equal(t, tc.slot == 1, tr.Controller(1).Visible)
		})
	}
}

func TestUnknownDeviceStaysInvisible(t *testing.T) {
	tr := newTestTracker()
	c := tr.Controller(0)
	c.Visible = true

	tr.Update(padList{nil, trackedPad("Xbox Wireless Controller", HandNone, 16)}, mgl32.Ident4())

	assert.False(t, c.Visible)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.Position, "transform untouched")
}

func TestPoselessDeviceStaysInvisible(t *testing.T) {
	tr := newTestTracker()
	c := tr.Controller(0)
	pad := trackedPad("Oculus Go Controller", HandNone, 2)
	pad.HasPose = false
	pad.Pose = nil

	tr.Update(padList{pad}, mgl32.Ident4())

	assert.False(t, c.Visible)
}

func TestMissingPoseSampleSkipsFrame(t *testing.T) {
	tr := newTestTracker()
	right := tr.Controller(0)
	left := tr.Controller(1)

	rpad := trackedPad("Oculus Touch (Right)", HandRight, 4)
	lpad := trackedPad("Oculus Touch (Left)", HandLeft, 4)
	tr.Update(padList{rpad, lpad}, mgl32.Ident4())
	require.True(t, right.Visible)
	require.True(t, left.Visible)

	got := recordEvents(left)
	rpad.Pose = nil
	lpad.Buttons[1].Pressed = true
	lpad.HasPose = false
	tr.Update(padList{rpad, lpad}, mgl32.Ident4())

	assert.True(t, right.Visible, "state is kept, not reset")
	assert.True(t, left.Visible, "later slots are not visited this frame")
	assert.Empty(t, *got)
}

func TestControllerTransform(t *testing.T) {
	tr := newTestTracker()
	c := tr.Controller(0)
	pad := trackedPad("OpenVR Gamepad", HandNone, 4)
	standing := mgl32.Translate3D(0, 1.6, 0)

	tr.Update(padList{pad}, standing)

	assert.True(t, c.Visible)
	assert.True(t, c.MatrixWorldNeedsUpdate)
	assertVec3Near(t, mgl32.Vec3{0.1, 1.4, -0.3}, c.Position, 1e-6)
	assertMat4Near(t, standing.Mul4(mgl32.Translate3D(0.1, -0.2, -0.3)), c.Matrix, 1e-6)

	// The tracker owns the matrix; the world pass must not recompose it.
	c.UpdateMatrixWorld(false)
	assertMat4Near(t, c.Matrix, c.MatrixWorld, 1e-6)
}

func TestOrientationOnlyControllerUsesDefaultOffset(t *testing.T) {
	tr := newTestTracker()
	c := tr.Controller(0)

	yaw := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	pad := &Gamepad{
		ID:      "Daydream Controller",
		HasPose: true,
		Pose:    &Pose{Orientation: &yaw, HasPosition: false},
		Buttons: make([]GamepadButton, 1),
	}

	tr.Update(padList{pad}, mgl32.Ident4())

	assertVec3Near(t, DefaultControllerOffset, c.Position, 1e-6)
	assertSameRotation(t, yaw, c.Rotation, 1e-6)
}

func TestControllerSlotsAreLazy(t *testing.T) {
	tr := newTestTracker()

	c1 := tr.Controller(1)
	require.NotNil(t, c1)
	assert.Same(t, c1, tr.Controller(1))
	assert.False(t, c1.Visible)
	assert.False(t, c1.MatrixAutoUpdate)
	assert.Equal(t, 1, c1.Slot())
	assert.Nil(t, tr.Controller(-1))

	// Slot 0 was never requested; only slot 1 is tracked.
	tr.Update(padList{trackedPad("OpenVR Gamepad", HandLeft, 4)}, mgl32.Ident4())
	assert.True(t, c1.Visible)
}

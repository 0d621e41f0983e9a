package webvr

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
)

func (e Eye) String() string {
	if e == EyeRight {
		return "right"
	}
	return "left"
}

// EyeParameters is the per-eye render resolution reported by the display.
type EyeParameters struct {
	RenderWidth  float32
	RenderHeight float32
}

// StageParameters describes a room-scale play area.
type StageParameters struct {
	SittingToStanding mgl32.Mat4
	SizeX, SizeZ      float32
}

// Pose is a tracked pose sample. Nil fields contribute nothing this frame.
type Pose struct {
	Position    *mgl32.Vec3
	Orientation *mgl32.Quat
	HasPosition bool
}

// FrameData is one frame's snapshot from the display. Matrices are column-major,
// exactly as the device hands them out.
type FrameData struct {
	Timestamp float64
	Pose      *Pose

	LeftView        mgl32.Mat4
	RightView       mgl32.Mat4
	LeftProjection  mgl32.Mat4
	RightProjection mgl32.Mat4
}

// Layer carries optional normalized viewport bounds (x, y, w, h) per eye.
type Layer struct {
	LeftBounds  []float32
	RightBounds []float32
}

type FrameHandle int

// FrameRequester schedules a callback for the next display frame.
type FrameRequester interface {
	RequestAnimationFrame(fn func(time float64)) FrameHandle
	CancelAnimationFrame(handle FrameHandle)
}

// Device is the head-mounted display.
type Device interface {
	FrameRequester

	IsPresenting() bool
	EyeParameters(eye Eye) EyeParameters
	// StageParameters returns nil when the display has no stage.
	StageParameters() *StageParameters
	SetDepthNear(near float32)
	SetDepthFar(far float32)
	// FrameData fills fd with the current frame and reports whether it is valid.
	FrameData(fd *FrameData) bool
	Layers() []Layer
	SubmitFrame()
}

type Hand string

const (
	HandNone  Hand = ""
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

type GamepadButton struct {
	Pressed bool
	Value   float32
}

// Gamepad is one entry of the platform input enumeration.
type Gamepad struct {
	ID   string
	Hand Hand

	// HasPose is false for devices that expose no pose at all. A pose-capable
	// device with a nil Pose has no sample for this frame.
	HasPose bool
	Pose    *Pose

	Buttons []GamepadButton
}

// InputSource enumerates connected input devices. Entries may be nil.
type InputSource interface {
	Gamepads() []*Gamepad
}

// FrameScheduler drives the per-frame callback off a FrameRequester.
type FrameScheduler interface {
	SetCallback(fn func(time float64))
	SetContext(ctx FrameRequester)
	Start()
	Stop()
}

type Size struct {
	Width, Height float32
}

// RenderSurface is the renderer's output surface.
type RenderSurface interface {
	PixelRatio() float32
	Size() Size
	SetDrawingBufferSize(width, height, pixelRatio float32)
}

// Package emulator provides an in-process head-mounted display and controllers
// for tests and desktop previews.
package emulator

import (
	"sort"

	"github.com/gekko3d/webvr"
	"github.com/gekko3d/webvr/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Display emulates a headset. Frame callbacks only run when Tick is called.
type Display struct {
	ID   uuid.UUID
	Name string

	Eye  webvr.EyeParameters
	IPD  float32
	FovY float32 // degrees

	// Stage is nil for seated-only hardware.
	Stage *webvr.StageParameters

	HeadPosition     mgl32.Vec3
	HeadOrientation  mgl32.Quat
	PositionTracking bool

	// OnPresentChange is called after every presenting transition.
	OnPresentChange func()

	presenting bool
	layers     []webvr.Layer

	depthNear, depthFar float32

	nextHandle webvr.FrameHandle
	pending    map[webvr.FrameHandle]func(float64)

	submitted int
}

func NewDisplay(name string) *Display {
	return &Display{
		ID:               uuid.New(),
		Name:             name,
		Eye:              webvr.EyeParameters{RenderWidth: 1080, RenderHeight: 1200},
		IPD:              0.064,
		FovY:             100,
		HeadOrientation:  mgl32.QuatIdent(),
		PositionTracking: true,
		depthNear:        0.1,
		depthFar:         1000,
		pending:          make(map[webvr.FrameHandle]func(float64)),
	}
}

func (d *Display) RequestPresent(layers ...webvr.Layer) {
	d.layers = layers
	d.setPresenting(true)
}

func (d *Display) ExitPresent() {
	d.setPresenting(false)
}

func (d *Display) setPresenting(p bool) {
	if d.presenting == p {
		return
	}
	d.presenting = p
	if d.OnPresentChange != nil {
		d.OnPresentChange()
	}
}

func (d *Display) IsPresenting() bool {
	return d.presenting
}

func (d *Display) EyeParameters(eye webvr.Eye) webvr.EyeParameters {
	return d.Eye
}

func (d *Display) StageParameters() *webvr.StageParameters {
	return d.Stage
}

func (d *Display) SetDepthNear(near float32) {
	d.depthNear = near
}

func (d *Display) SetDepthFar(far float32) {
	d.depthFar = far
}

func (d *Display) Depth() (near, far float32) {
	return d.depthNear, d.depthFar
}

func (d *Display) Layers() []webvr.Layer {
	return d.layers
}

func (d *Display) SubmitFrame() {
	d.submitted++
}

func (d *Display) SubmittedFrames() int {
	return d.submitted
}

// FrameData renders the current head pose into per-eye view and projection
// matrices in sitting space.
func (d *Display) FrameData(fd *webvr.FrameData) bool {
	head := core.Compose(d.HeadPosition, d.HeadOrientation, mgl32.Vec3{1, 1, 1})
	half := d.IPD / 2

	fd.LeftView = head.Mul4(mgl32.Translate3D(-half, 0, 0)).Inv()
	fd.RightView = head.Mul4(mgl32.Translate3D(half, 0, 0)).Inv()

	aspect := float32(1)
	if d.Eye.RenderHeight > 0 {
		aspect = d.Eye.RenderWidth / d.Eye.RenderHeight
	}
	proj := mgl32.Perspective(mgl32.DegToRad(d.FovY), aspect, d.depthNear, d.depthFar)
	fd.LeftProjection = proj
	fd.RightProjection = proj

	orientation := d.HeadOrientation
	pose := &webvr.Pose{Orientation: &orientation, HasPosition: d.PositionTracking}
	if d.PositionTracking {
		position := d.HeadPosition
		pose.Position = &position
	}
	fd.Pose = pose
	return true
}

func (d *Display) RequestAnimationFrame(fn func(time float64)) webvr.FrameHandle {
	d.nextHandle++
	d.pending[d.nextHandle] = fn
	return d.nextHandle
}

func (d *Display) CancelAnimationFrame(handle webvr.FrameHandle) {
	delete(d.pending, handle)
}

// Tick runs the callbacks requested before this call, oldest first, and returns
// how many ran. Callbacks requested during the tick wait for the next one.
func (d *Display) Tick(time float64) int {
	handles := make([]webvr.FrameHandle, 0, len(d.pending))
	for h := range d.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	ran := 0
	for _, h := range handles {
		fn, ok := d.pending[h]
		if !ok {
			continue
		}
		delete(d.pending, h)
		fn(time)
		ran++
	}
	return ran
}

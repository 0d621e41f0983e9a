package webvr

import (
	"github.com/gekko3d/webvr/core"
	"github.com/go-gl/mathgl/mgl32"
)

// frameScratch holds intermediates of one UpdateFromFrame call. It belongs to the
// rig, is overwritten every frame and must not be read outside that call.
type frameScratch struct {
	standingInverse mgl32.Mat4
	parentInverse   mgl32.Mat4
}

// StereoRig turns display frame data into the left/right eye cameras and the
// combined culling camera. A rig is not reentrant: the camera it exposes is
// rewritten in place every frame, so callers must copy anything they keep.
type StereoRig struct {
	camera *core.StereoCamera

	renderWidth  float32
	renderHeight float32

	scratch frameScratch
}

func NewStereoRig() *StereoRig {
	return &StereoRig{camera: core.NewStereoCamera()}
}

func (r *StereoRig) Camera() *core.StereoCamera {
	return r.camera
}

func (r *StereoRig) RenderSize() (width, height float32) {
	return r.renderWidth, r.renderHeight
}

// ConfigureEyes sizes the side-by-side render target and tiles it between the eyes.
func (r *StereoRig) ConfigureEyes(eye EyeParameters, scale float32) {
	r.renderWidth = 2 * eye.RenderWidth * scale
	r.renderHeight = eye.RenderHeight * scale

	half := r.renderWidth / 2
	r.camera.Left.Viewport = mgl32.Vec4{0, 0, half, r.renderHeight}
	r.camera.Right.Viewport = mgl32.Vec4{half, 0, half, r.renderHeight}
}

// UpdateFromFrame loads the eye matrices from frame. standing is non-nil only in
// floor-relative mode; parentWorld is the world matrix of the pose target's parent,
// nil when the target is a root.
func (r *StereoRig) UpdateFromFrame(frame *FrameData, near, far float32, standing, parentWorld *mgl32.Mat4) {
	left, right := r.camera.Left, r.camera.Right

	left.Near, right.Near = near, near
	left.Far, right.Far = far, far

	left.MatrixWorldInverse = frame.LeftView
	right.MatrixWorldInverse = frame.RightView

	if standing != nil {
		r.scratch.standingInverse = standing.Inv()
		left.MatrixWorldInverse = left.MatrixWorldInverse.Mul4(r.scratch.standingInverse)
		right.MatrixWorldInverse = right.MatrixWorldInverse.Mul4(r.scratch.standingInverse)
	}

	if parentWorld != nil {
		r.scratch.parentInverse = parentWorld.Inv()
		left.MatrixWorldInverse = left.MatrixWorldInverse.Mul4(r.scratch.parentInverse)
		right.MatrixWorldInverse = right.MatrixWorldInverse.Mul4(r.scratch.parentInverse)
	}

	// Reflections and mirrors read the forward world matrix.
	left.MatrixWorld = left.MatrixWorldInverse.Inv()
	right.MatrixWorld = right.MatrixWorldInverse.Inv()

	left.ProjectionMatrix = frame.LeftProjection
	right.ProjectionMatrix = frame.RightProjection

	core.SetProjectionFromUnion(&r.camera.PerspectiveCamera, left, right)
}

// ApplyLayerBounds overrides eye viewports from normalized layer bounds. Bounds
// that are not exactly four values leave the viewport as it was.
func (r *StereoRig) ApplyLayerBounds(leftBounds, rightBounds []float32) {
	r.viewportFromBounds(&r.camera.Left.Viewport, leftBounds)
	r.viewportFromBounds(&r.camera.Right.Viewport, rightBounds)
}

func (r *StereoRig) viewportFromBounds(viewport *mgl32.Vec4, bounds []float32) {
	if len(bounds) != 4 {
		return
	}
	*viewport = mgl32.Vec4{
		bounds[0] * r.renderWidth,
		bounds[1] * r.renderHeight,
		bounds[2] * r.renderWidth,
		bounds[3] * r.renderHeight,
	}
}

package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Layers is a bitmask of render layers a camera sees.
type Layers uint32

func (l *Layers) Enable(layer uint) {
	*l |= 1 << layer
}

func (l Layers) Test(layer uint) bool {
	return l&(1<<layer) != 0
}

type PerspectiveCamera struct {
	Node

	Near, Far float32

	// Viewport is x, y, width, height in drawing-buffer pixels.
	Viewport mgl32.Vec4

	ProjectionMatrix   mgl32.Mat4
	MatrixWorldInverse mgl32.Mat4

	Layers Layers
}

func NewPerspectiveCamera(fovY, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Near:               near,
		Far:                far,
		ProjectionMatrix:   mgl32.Perspective(mgl32.DegToRad(fovY), aspect, near, far),
		MatrixWorldInverse: mgl32.Ident4(),
		Layers:             1,
	}
	c.Node.Reset()
	return c
}

// StereoCamera is the combined camera handed to the renderer. Its own projection is
// the union of both eye frusta and is only meant for visibility culling; the eyes
// carry the matrices used for drawing.
type StereoCamera struct {
	PerspectiveCamera

	Left  *PerspectiveCamera
	Right *PerspectiveCamera
}

func NewStereoCamera() *StereoCamera {
	left := NewPerspectiveCamera(50, 1, 0.1, 2000)
	left.Layers.Enable(1)

	right := NewPerspectiveCamera(50, 1, 0.1, 2000)
	right.Layers.Enable(2)

	s := &StereoCamera{
		PerspectiveCamera: *NewPerspectiveCamera(50, 1, 0.1, 2000),
		Left:              left,
		Right:             right,
	}
	s.Layers.Enable(1)
	s.Layers.Enable(2)
	return s
}

func (s *StereoCamera) Cameras() [2]*PerspectiveCamera {
	return [2]*PerspectiveCamera{s.Left, s.Right}
}

// FrustumPlanes returns the culling planes of the union frustum.
func (s *StereoCamera) FrustumPlanes() [6]mgl32.Vec4 {
	return ExtractFrustum(s.ProjectionMatrix.Mul4(s.MatrixWorldInverse))
}

// frustumExtents reads near/far and the left/right/top/bottom tangents back out of
// a GL-style perspective projection.
type frustumExtents struct {
	near, far                float32
	left, right, top, bottom float32
}

func extentsOf(p mgl32.Mat4) frustumExtents {
	return frustumExtents{
		near:   p[14] / (p[10] - 1),
		far:    p[14] / (p[10] + 1),
		left:   (p[8] - 1) / p[0],
		right:  (p[8] + 1) / p[0],
		top:    (p[9] + 1) / p[5],
		bottom: (p[9] - 1) / p[5],
	}
}

// SetProjectionFromUnion sets camera's projection and world placement to a frustum
// that contains both eye frusta. Near is the closer of the two, far the farther, and
// each side takes the wider tangent. The union apex is pulled back behind the eyes
// by the inter-pupillary distance so the near planes stay put in world space.
func SetProjectionFromUnion(camera *PerspectiveCamera, left, right *PerspectiveCamera) {
	leftPos := left.MatrixWorld.Col(3).Vec3()
	rightPos := right.MatrixWorld.Col(3).Vec3()
	ipd := leftPos.Sub(rightPos).Len()

	l := extentsOf(left.ProjectionMatrix)
	r := extentsOf(right.ProjectionMatrix)

	near := min32(l.near, r.near)
	far := max32(l.far, r.far)
	leftFov := min32(l.left, r.left)
	rightFov := max32(l.right, r.right)
	topFov := max32(l.top, r.top)
	bottomFov := min32(l.bottom, r.bottom)

	var zOffset, xOffset float32
	if span := rightFov - leftFov; span > 0 {
		zOffset = ipd / span
		xOffset = zOffset * -leftFov
	}

	position, rotation, scale := Decompose(left.MatrixWorld)
	camera.Position = position.Add(rotation.Rotate(mgl32.Vec3{xOffset, 0, zOffset}))
	camera.Rotation = rotation
	camera.Scale = scale
	camera.MatrixWorld = Compose(camera.Position, camera.Rotation, camera.Scale)
	camera.MatrixWorldInverse = camera.MatrixWorld.Inv()

	near2 := near + zOffset
	far2 := far + zOffset
	left2 := near*leftFov - xOffset
	right2 := near*rightFov + (ipd - xOffset)
	top2 := topFov * far / far2 * near2
	bottom2 := bottomFov * far / far2 * near2

	camera.Near = near2
	camera.Far = far2
	camera.ProjectionMatrix = mgl32.Frustum(left2, right2, bottom2, top2, near2, far2)
}

// ExtractFrustum extracts the 6 planes of the frustum from the view-projection matrix.
// Returns planes in order: Left, Right, Bottom, Top, Near, Far.
// Plane is Ax + By + Cz + D = 0.
func ExtractFrustum(vp mgl32.Mat4) [6]mgl32.Vec4 {
	var planes [6]mgl32.Vec4

	row := func(i int) mgl32.Vec4 {
		return vp.Row(i)
	}

	planes[0] = row(3).Add(row(0))
	planes[1] = row(3).Sub(row(0))
	planes[2] = row(3).Add(row(1))
	planes[3] = row(3).Sub(row(1))
	// OpenGL-style -1..1 depth
	planes[4] = row(3).Add(row(2))
	planes[5] = row(3).Sub(row(2))

	for i := 0; i < 6; i++ {
		length := float32(math.Sqrt(float64(planes[i][0]*planes[i][0] + planes[i][1]*planes[i][1] + planes[i][2]*planes[i][2])))
		if length > 0 {
			planes[i] = planes[i].Mul(1.0 / length)
		}
	}

	return planes
}

// AABBInFrustum checks if an AABB is visible within the frustum defined by 6 planes.
// Planes are expected to be in Ax+By+Cz+D=0 form, with the normal pointing INSIDE.
func AABBInFrustum(aabb [2]mgl32.Vec3, planes [6]mgl32.Vec4) bool {
	for i := 0; i < 6; i++ {
		plane := planes[i]

		// Most-inside corner; if even that one is behind the plane the box is out.
		var p mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			if plane[axis] > 0 {
				p[axis] = aabb[1][axis]
			} else {
				p[axis] = aabb[0][axis]
			}
		}

		if plane[0]*p[0]+plane[1]*p[1]+plane[2]*p[2]+plane[3] < 0 {
			return false
		}
	}
	return true
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

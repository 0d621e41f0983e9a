package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is a scene-graph object with a local TRS transform, a cached local matrix
// and a cached world matrix.
type Node struct {
	Name string

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	Matrix      mgl32.Mat4
	MatrixWorld mgl32.Mat4

	// When false, Matrix is owned by the caller and UpdateMatrixWorld does not
	// recompose it from Position/Rotation/Scale.
	MatrixAutoUpdate       bool
	MatrixWorldNeedsUpdate bool
	Visible                bool

	parent   *Node
	children []*Node
}

func NewNode() *Node {
	n := &Node{}
	n.Reset()
	return n
}

// Reset puts the node back to the identity transform without touching the hierarchy.
func (n *Node) Reset() {
	n.Position = mgl32.Vec3{0, 0, 0}
	n.Rotation = mgl32.QuatIdent()
	n.Scale = mgl32.Vec3{1, 1, 1}
	n.Matrix = mgl32.Ident4()
	n.MatrixWorld = mgl32.Ident4()
	n.MatrixAutoUpdate = true
	n.MatrixWorldNeedsUpdate = false
	n.Visible = true
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child to n, detaching it from any previous parent first.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// UpdateMatrix recomposes the local matrix from Position, Rotation and Scale.
func (n *Node) UpdateMatrix() {
	n.Matrix = Compose(n.Position, n.Rotation, n.Scale)
	n.MatrixWorldNeedsUpdate = true
}

// UpdateMatrixWorld refreshes the world matrix of n and its subtree. The parent's
// world matrix is read as-is; it is not refreshed here.
func (n *Node) UpdateMatrixWorld(force bool) {
	if n.MatrixAutoUpdate {
		n.UpdateMatrix()
	}

	if n.MatrixWorldNeedsUpdate || force {
		if n.parent == nil {
			n.MatrixWorld = n.Matrix
		} else {
			n.MatrixWorld = n.parent.MatrixWorld.Mul4(n.Matrix)
		}
		n.MatrixWorldNeedsUpdate = false
		force = true
	}

	for _, c := range n.children {
		c.UpdateMatrixWorld(force)
	}
}

// Compose builds M = T * R * S.
func Compose(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	translate := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	rotate := rotation.Mat4()
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())

	return translate.Mul4(rotate).Mul4(s)
}

// Decompose splits an affine matrix into translation, rotation and scale.
// A negative determinant is folded into the X scale.
func Decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	sx, sy, sz := mgl32.Extract3DScale(m)
	if m.Det() < 0 {
		sx = -sx
	}

	rot := mgl32.Ident4()
	if sx != 0 && sy != 0 && sz != 0 {
		rot.SetCol(0, m.Col(0).Mul(1/sx))
		rot.SetCol(1, m.Col(1).Mul(1/sy))
		rot.SetCol(2, m.Col(2).Mul(1/sz))
	}

	return m.Col(3).Vec3(), mgl32.Mat4ToQuat(rot), mgl32.Vec3{sx, sy, sz}
}

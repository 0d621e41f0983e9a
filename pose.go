package webvr

import (
	"github.com/gekko3d/webvr/core"
	"github.com/go-gl/mathgl/mgl32"
)

type ReferenceSpaceType int

const (
	// ReferenceSpaceLocalFloor places the origin on the floor below the user.
	ReferenceSpaceLocalFloor ReferenceSpaceType = iota
	// ReferenceSpaceLocal places the origin at the seated head position.
	ReferenceSpaceLocal
)

func (r ReferenceSpaceType) String() string {
	switch r {
	case ReferenceSpaceLocalFloor:
		return "local-floor"
	case ReferenceSpaceLocal:
		return "local"
	default:
		return "unknown"
	}
}

// ParseReferenceSpaceType accepts the names produced by String.
func ParseReferenceSpaceType(s string) (ReferenceSpaceType, bool) {
	switch s {
	case "local-floor":
		return ReferenceSpaceLocalFloor, true
	case "local":
		return ReferenceSpaceLocal, true
	}
	return 0, false
}

const DefaultUserHeight float32 = 1.6

// PoseResolver owns the standing transform and writes resolved head poses into
// scene nodes.
type PoseResolver struct {
	UserHeight float32

	standing mgl32.Mat4
}

func NewPoseResolver(userHeight float32) *PoseResolver {
	if userHeight <= 0 {
		userHeight = DefaultUserHeight
	}
	return &PoseResolver{
		UserHeight: userHeight,
		standing:   mgl32.Ident4(),
	}
}

func (p *PoseResolver) StandingMatrix() mgl32.Mat4 {
	return p.standing
}

// ComputeStandingTransform refreshes the standing transform for floor-relative
// tracking. Any other mode leaves the previous value in place, so switching away
// from local-floor keeps the last floor offset.
func (p *PoseResolver) ComputeStandingTransform(mode ReferenceSpaceType, stage *StageParameters) mgl32.Mat4 {
	if mode != ReferenceSpaceLocalFloor {
		return p.standing
	}
	if stage != nil {
		p.standing = stage.SittingToStanding
	} else {
		p.standing = mgl32.Translate3D(0, p.UserHeight, 0)
	}
	return p.standing
}

// ApplyPose rebuilds target's transform from the standing baseline plus the pose,
// then refreshes the world matrices of target and everything below it. Calling it
// repeatedly with the same inputs gives the same result.
func (p *PoseResolver) ApplyPose(target *core.Node, pose *Pose) {
	target.Matrix = p.standing
	target.Position, target.Rotation, target.Scale = core.Decompose(p.standing)
	standingRotation := target.Rotation

	if pose != nil {
		if pose.Orientation != nil {
			target.Rotation = target.Rotation.Mul(*pose.Orientation)
		}
		if pose.Position != nil {
			target.Position = target.Position.Add(standingRotation.Rotate(*pose.Position))
		}
	}

	target.UpdateMatrix()
	target.UpdateMatrixWorld(true)
}

package webvr

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}

func assertMat4Near(t *testing.T, want, got mgl32.Mat4, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}

// assertSameRotation compares quaternions up to sign.
func assertSameRotation(t *testing.T, want, got mgl32.Quat, delta float64) bool {
	t.Helper()
	d := want.Dot(got)
	if d < 0 {
		d = -d
	}
	return assert.InDelta(t, 1, d, delta, "rotation %v != %v", got, want)
}

package waypoint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	up      = mgl64.Vec3{0, 0, 1}
	forward = mgl64.Vec3{1, 0, 0}
	side    = mgl64.Vec3{0, 1, 0}
)

const directionEpsilon = 1e-9

// LookRotation returns the orientation whose forward axis (+X) points along dir
// while keeping +Z up. It reports false when dir has no length.
func LookRotation(dir mgl64.Vec3) (mgl64.Quat, bool) {
	if dir.Len() < directionEpsilon {
		return mgl64.QuatIdent(), false
	}
	yaw := math.Atan2(dir.Y(), dir.X())
	pitch := math.Atan2(dir.Z(), math.Hypot(dir.X(), dir.Y()))
	q := mgl64.QuatRotate(yaw, up).Mul(mgl64.QuatRotate(-pitch, side))
	return q.Normalize(), true
}

// Angle returns the angle in degrees between two orientations.
func Angle(a, b mgl64.Quat) float64 {
	dot := math.Abs(a.Normalize().Dot(b.Normalize()))
	if dot > 1-1e-12 {
		return 0
	}
	return mgl64.RadToDeg(2 * math.Acos(math.Min(dot, 1)))
}

// Forward returns the unit forward axis of q.
func Forward(q mgl64.Quat) mgl64.Vec3 {
	return q.Normalize().Rotate(forward)
}

// Yaw returns the heading of q in the XY plane, in radians.
func Yaw(q mgl64.Quat) float64 {
	f := Forward(q)
	return math.Atan2(f.Y(), f.X())
}

// FromYaw is the planar orientation with the given heading.
func FromYaw(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, up)
}

package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid world-space pose: translation then rotation
// A card's face normal is its Forward vector
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// FromXYZ returns an unrotated transform at the given position
func FromXYZ(x, y, z float64) Transform {
	return Transform{
		Translation: mgl64.Vec3{x, y, z},
		Rotation:    mgl64.QuatIdent(),
	}
}

// YawRotation returns a rotation of theta radians about world up
func YawRotation(theta float64) mgl64.Quat {
	return mgl64.QuatRotate(theta, Up)
}

// WithYaw returns a copy rotated to an absolute yaw
func (t Transform) WithYaw(theta float64) Transform {
	t.Rotation = YawRotation(theta)
	return t
}

// Forward is local -Z in world space
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(Forward)
}

// Right is local +X in world space
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// UpAxis is local +Y in world space
func (t Transform) UpAxis() mgl64.Vec3 {
	return t.Rotation.Rotate(Up)
}

// Matrix returns the local-to-world matrix
func (t Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).Mul4(t.Rotation.Mat4())
}

// LookingAt orients the transform so Forward points at target with the given up hint
// Returns the transform unchanged if target coincides with the position or is collinear with up
func (t Transform) LookingAt(target, up mgl64.Vec3) Transform {
	f := target.Sub(t.Translation)
	if f.Len() < Epsilon {
		return t
	}
	f = f.Normalize()
	r := f.Cross(up)
	if r.Len() < Epsilon {
		return t
	}
	r = r.Normalize()
	u := r.Cross(f)

	basis := mgl64.Mat3FromCols(r, u, f.Mul(-1))
	t.Rotation = mgl64.Mat4ToQuat(basis.Mat4()).Normalize()
	return t
}

// FaceTowardsYaw rotates about world up only so Forward points at target's horizontal projection
// Returns false and leaves the rotation untouched when target is straight above or below
func (t *Transform) FaceTowardsYaw(target mgl64.Vec3) bool {
	dx := target.X() - t.Translation.X()
	dz := target.Z() - t.Translation.Z()
	if dx*dx+dz*dz < Epsilon {
		return false
	}
	t.Rotation = YawRotation(math.Atan2(-dx, -dz))
	return true
}

// Yaw extracts the rotation about world up from Forward
func (t Transform) Yaw() float64 {
	f := t.Forward()
	return math.Atan2(-f.X(), -f.Z())
}

package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon below which a ray is considered parallel to a plane
const Epsilon = 1e-9

// Reference plane heights
const (
	BoardPlaneY = 0.0 // Board-level hit testing
	DragPlaneY  = 2.0 // Dragged cards ride at hover-lift height
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, -1}
)

// Ray is a half-line in world space, Direction is unit length
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay builds a ray with a normalized direction
// Returns false for a zero direction
func NewRay(origin, direction mgl64.Vec3) (Ray, bool) {
	if direction.Len() < Epsilon {
		return Ray{}, false
	}
	return Ray{Origin: origin, Direction: direction.Normalize()}, true
}

// IntersectPlane returns the signed distance along the ray to the plane through
// planeOrigin with planeNormal
// No result when the ray is parallel to the plane or the hit lies behind the origin
func (r Ray) IntersectPlane(planeOrigin, planeNormal mgl64.Vec3) (float64, bool) {
	denom := planeNormal.Dot(r.Direction)
	if math.Abs(denom) < Epsilon {
		return 0, false
	}
	distance := planeOrigin.Sub(r.Origin).Dot(planeNormal) / denom
	if distance < 0 {
		return 0, false
	}
	return distance, true
}

// Point returns Origin + Direction*distance
func (r Ray) Point(distance float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(distance))
}

// HorizontalPlaneHit intersects the ray with the horizontal plane at height y
// The returned point's Y is exactly y
func (r Ray) HorizontalPlaneHit(y float64) (mgl64.Vec3, bool) {
	d, ok := r.IntersectPlane(mgl64.Vec3{0, y, 0}, Up)
	if !ok {
		return mgl64.Vec3{}, false
	}
	p := r.Point(d)
	p[1] = y
	return p, true
}

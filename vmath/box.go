package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned box given by its center and half extents
type Box struct {
	Center mgl64.Vec3
	Half   mgl64.Vec3
}

// Intersect returns the entry distance and the outward normal of the face hit
// Rays starting inside the box report no hit
func (b Box) Intersect(r Ray) (float64, mgl64.Vec3, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	axis, sign := -1, 0.0

	for i := 0; i < 3; i++ {
		lo := b.Center[i] - b.Half[i]
		hi := b.Center[i] + b.Half[i]
		o, d := r.Origin[i], r.Direction[i]

		if math.Abs(d) < Epsilon {
			if o < lo || o > hi {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}

		t1, t2 := (lo-o)/d, (hi-o)/d
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}
		if t1 > tMin {
			tMin, axis, sign = t1, i, s
		}
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, mgl64.Vec3{}, false
		}
	}

	if axis < 0 || tMin < 0 {
		return 0, mgl64.Vec3{}, false
	}
	var normal mgl64.Vec3
	normal[axis] = sign
	return tMin, normal, true
}

package vmath

import "math"

// Quad is an oriented rectangle centered on a transform, lying in its local XY plane
type Quad struct {
	Pose  Transform
	HalfW float64
	HalfH float64
}

// QuadHit describes where a ray crossed a quad
type QuadHit struct {
	Distance float64
	U, V     float64 // Local coordinates in [-1, 1]
	Front    bool    // Ray approached from the Forward side
}

// Intersect tests a ray against the quad, both faces count
func (q Quad) Intersect(r Ray) (QuadHit, bool) {
	normal := q.Pose.Forward()
	d, ok := r.IntersectPlane(q.Pose.Translation, normal)
	if !ok {
		return QuadHit{}, false
	}

	local := r.Point(d).Sub(q.Pose.Translation)
	lx := local.Dot(q.Pose.Right())
	ly := local.Dot(q.Pose.UpAxis())
	if math.Abs(lx) > q.HalfW || math.Abs(ly) > q.HalfH {
		return QuadHit{}, false
	}

	return QuadHit{
		Distance: d,
		U:        lx / q.HalfW,
		V:        ly / q.HalfH,
		Front:    r.Direction.Dot(normal) < 0,
	}, true
}

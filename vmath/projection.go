package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport is the drawable area in pixel space, origin top-left, Y down
type Viewport struct {
	Width  float64
	Height float64
}

// Valid reports whether the viewport has a drawable area
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Contains reports whether a pixel position lies inside the viewport
func (v Viewport) Contains(p mgl64.Vec2) bool {
	return p.X() >= 0 && p.Y() >= 0 && p.X() < v.Width && p.Y() < v.Height
}

// Aspect returns width over height
func (v Viewport) Aspect() float64 {
	return v.Width / v.Height
}

// Perspective is a symmetric perspective projection
type Perspective struct {
	FovY float64 // Radians
	Near float64
	Far  float64
}

// DefaultPerspective matches a 45 degree vertical field of view
func DefaultPerspective() Perspective {
	return Perspective{FovY: math.Pi / 4, Near: 0.1, Far: 1000}
}

// Matrix returns the clip-space projection for the given aspect ratio
func (p Perspective) Matrix(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(p.FovY, aspect, p.Near, p.Far)
}

// ViewProjection combines the camera's inverse pose with the projection
func (p Perspective) ViewProjection(camera Transform, vp Viewport) mgl64.Mat4 {
	view := camera.Matrix().Inv()
	return p.Matrix(vp.Aspect()).Mul4(view)
}

// ViewportToWorld casts a ray from the near plane through a cursor pixel
// Returns false when the cursor is outside the viewport or the camera is degenerate
func (p Perspective) ViewportToWorld(camera Transform, vp Viewport, cursor mgl64.Vec2) (Ray, bool) {
	if !vp.Valid() || !vp.Contains(cursor) {
		return Ray{}, false
	}

	ndcX := 2*cursor.X()/vp.Width - 1
	ndcY := 1 - 2*cursor.Y()/vp.Height

	inv := p.ViewProjection(camera, vp).Inv()
	near := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	if math.Abs(near.W()) < Epsilon || math.Abs(far.W()) < Epsilon {
		return Ray{}, false
	}

	nearPoint := near.Vec3().Mul(1 / near.W())
	farPoint := far.Vec3().Mul(1 / far.W())
	return NewRay(nearPoint, farPoint.Sub(nearPoint))
}

// WorldToViewport projects a world point to pixel space
// Returns false when the point is behind the camera
func (p Perspective) WorldToViewport(camera Transform, vp Viewport, point mgl64.Vec3) (mgl64.Vec2, bool) {
	if !vp.Valid() {
		return mgl64.Vec2{}, false
	}
	clip := p.ViewProjection(camera, vp).Mul4x1(point.Vec4(1))
	if clip.W() <= Epsilon {
		return mgl64.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl64.Vec2{
		(ndc.X() + 1) / 2 * vp.Width,
		(1 - ndc.Y()) / 2 * vp.Height,
	}, true
}

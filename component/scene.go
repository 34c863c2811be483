package component

import "github.com/lixenwraith/tabletop/vmath"

// CameraComponent holds the projection of the (single) scene camera
type CameraComponent struct {
	Projection vmath.Perspective
}

// TileComponent is one board square, Shade 0 is dark and 1 is light
type TileComponent struct {
	Shade float64
}

// LightComponent is a point light
type LightComponent struct {
	Intensity float64
}

// PropComponent is a static axis-aligned cube centered on its transform
type PropComponent struct {
	Size float64
}

package render

import "github.com/gdamore/tcell/v2"

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Palette
var (
	RGBSky        = RGB{18, 20, 30}
	RGBTileDark   = RGB{58, 62, 74}
	RGBTileLight  = RGB{196, 194, 182}
	RGBProp       = RGB{182, 96, 44}
	RGBCardFace   = RGB{236, 234, 220}
	RGBCardBack   = RGB{44, 72, 160}
	RGBCardInk    = RGB{30, 30, 36}
	RGBHover      = RGB{255, 228, 120}
	RGBDrag       = RGB{255, 168, 40}
	RGBHUDText    = RGB{200, 200, 210}
	RGBHUDDim     = RGB{100, 100, 110}
	RGBHUDWarning = RGB{255, 90, 90}
	RGBHUDBg      = RGB{10, 10, 14}
)

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Lerp linearly interpolates between two colors, t in [0,1]
func Lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: clamp(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: clamp(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: clamp(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// Scale multiplies every channel by f
func Scale(c RGB, f float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * f),
		G: clamp(float64(c.G) * f),
		B: clamp(float64(c.B) * f),
	}
}

// Tcell converts to a true color tcell.Color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

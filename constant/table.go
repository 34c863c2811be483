package constant

import "time"

// Frame timing
const (
	DefaultFPS = 60

	// FrameUpdateInterval is the frame interval at DefaultFPS
	FrameUpdateInterval = time.Second / DefaultFPS
)

// Card heights, a card's Y is always exactly one of these
const (
	RestHeight = 0.0
	HoverLift  = 2.0
)

// Hand layout
const (
	HandSize    = 5
	HandStartX  = -2.0
	HandSpacing = 1.0
	PlayerHandZ = 4.5
	EnemyHandZ  = -4.5
)

// Card geometry, an upright 0.8 x 2.0 slab
const (
	CardHalfWidth  = 0.4
	CardHalfHeight = 1.0
)

// Board
const (
	BoardSize    = 8
	BoardOffset  = 4.0
	TileSize     = 1.0
	PropCubeSize = 1.0
)

// Scene defaults
const (
	LightIntensity = 1500.0
)

// EventQueueSize is the fixed capacity of the event ring buffer, a power of two
const (
	EventQueueSize  = 256
	EventBufferMask = EventQueueSize - 1
)

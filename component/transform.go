package component

import "github.com/lixenwraith/tabletop/vmath"

// TransformComponent is the world pose handed to the renderer each frame
type TransformComponent struct {
	vmath.Transform
}

package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/constant"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/engine"
	"github.com/lixenwraith/tabletop/vmath"
)

// SceneConfig places the camera and light
type SceneConfig struct {
	CameraPosition mgl64.Vec3
	CameraTarget   mgl64.Vec3
	FovY           float64 // Radians
	LightPosition  mgl64.Vec3
}

// DefaultSceneConfig looks down at the board from the player's side
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		CameraPosition: mgl64.Vec3{0, 12, 8},
		CameraTarget:   mgl64.Vec3{0, 0, 0},
		FovY:           vmath.DefaultPerspective().FovY,
		LightPosition:  mgl64.Vec3{4, 8, 4},
	}
}

// SetupScene spawns the static board, prop, light and camera, returns the camera entity
func SetupScene(w *engine.World, cfg SceneConfig) core.Entity {
	transforms := engine.GetStore[component.TransformComponent](w)
	tiles := engine.GetStore[component.TileComponent](w)
	props := engine.GetStore[component.PropComponent](w)
	lights := engine.GetStore[component.LightComponent](w)
	cameras := engine.GetStore[component.CameraComponent](w)

	for x := 0; x < constant.BoardSize; x++ {
		for z := 0; z < constant.BoardSize; z++ {
			e := w.CreateEntity()
			transforms.Set(e, component.TransformComponent{
				Transform: vmath.FromXYZ(float64(x)-constant.BoardOffset, 0, float64(z)-constant.BoardOffset),
			})
			tiles.Set(e, component.TileComponent{Shade: float64((x + z) % 2)})
		}
	}

	prop := w.CreateEntity()
	transforms.Set(prop, component.TransformComponent{Transform: vmath.FromXYZ(0, constant.PropCubeSize/2, 0)})
	props.Set(prop, component.PropComponent{Size: constant.PropCubeSize})

	light := w.CreateEntity()
	lp := cfg.LightPosition
	transforms.Set(light, component.TransformComponent{Transform: vmath.FromXYZ(lp.X(), lp.Y(), lp.Z())})
	lights.Set(light, component.LightComponent{Intensity: constant.LightIntensity})

	camera := w.CreateEntity()
	cp := cfg.CameraPosition
	transforms.Set(camera, component.TransformComponent{
		Transform: vmath.FromXYZ(cp.X(), cp.Y(), cp.Z()).LookingAt(cfg.CameraTarget, vmath.Up),
	})
	projection := vmath.DefaultPerspective()
	if cfg.FovY > 0 {
		projection.FovY = cfg.FovY
	}
	cameras.Set(camera, component.CameraComponent{Projection: projection})

	return camera
}

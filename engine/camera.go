package engine

import (
	"fmt"
	"log/slog"

	"github.com/lixenwraith/tabletop/component"
	"github.com/lixenwraith/tabletop/core"
	"github.com/lixenwraith/tabletop/event"
	"github.com/lixenwraith/tabletop/vmath"
)

// CameraView is the resolved unique camera
type CameraView struct {
	Entity     core.Entity
	Pose       vmath.Transform
	Projection vmath.Perspective
}

// SingleCamera resolves the one camera entity
// Zero or several cameras is a broken scene, reported as ErrNoCamera or ErrMultipleCameras
func SingleCamera(w *World) (CameraView, error) {
	cameras := GetStore[component.CameraComponent](w)
	transforms := GetStore[component.TransformComponent](w)

	found := w.Query().With(cameras).With(transforms).Execute()
	switch len(found) {
	case 0:
		return CameraView{}, ErrNoCamera
	case 1:
	default:
		return CameraView{}, fmt.Errorf("%w: found %d", ErrMultipleCameras, len(found))
	}

	e := found[0]
	cam, _ := cameras.Get(e)
	tr, _ := transforms.Get(e)
	return CameraView{Entity: e, Pose: tr.Transform, Projection: cam.Projection}, nil
}

// ActiveViewport returns the window viewport or ErrNoViewport
func ActiveViewport(w *World) (vmath.Viewport, error) {
	vr, ok := GetResource[*ViewportResource](w.Resources)
	if !ok || !vr.Present || !vr.Viewport.Valid() {
		return vmath.Viewport{}, ErrNoViewport
	}
	return vr.Viewport, nil
}

// ReportPrecondition records a skipped update for system
// The first occurrence of each distinct failure is logged and published
func ReportPrecondition(w *World, system string, err error) {
	diag := MustGetResource[*DiagnosticsResource](w.Resources)
	if !diag.Report(system, err) {
		return
	}
	slog.Error("system skipped frame", "system", system, "error", err)
	w.PushEvent(event.EventPrecondition, &event.PreconditionPayload{System: system, Err: err})
}

// ClearPrecondition marks system healthy again
func ClearPrecondition(w *World, system string) {
	diag := MustGetResource[*DiagnosticsResource](w.Resources)
	if diag.Clear(system) {
		slog.Info("system recovered", "system", system)
	}
}

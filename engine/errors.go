package engine

import "errors"

var (
	// ErrNoCamera means the scene has no camera entity
	ErrNoCamera = errors.New("no camera entity")
	// ErrMultipleCameras means more than one camera entity exists
	ErrMultipleCameras = errors.New("multiple camera entities")
	// ErrNoViewport means there is no window to cast cursor rays through
	ErrNoViewport = errors.New("no viewport")
	// ErrInvalidTransition is returned for a phase change the session does not allow
	ErrInvalidTransition = errors.New("invalid phase transition")
	// ErrSystemOrder means a system's declared ordering is violated
	ErrSystemOrder = errors.New("system order violated")
)

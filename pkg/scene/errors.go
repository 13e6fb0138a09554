package scene

import "errors"

var (
	// ErrUnknownScene is returned by Load for a name with no registered builder
	ErrUnknownScene = errors.New("scene: unknown scene")

	// ErrFrozen is returned when mutating a scene after Setup
	ErrFrozen = errors.New("scene: scene is frozen")

	// ErrInvalidConfig wraps every configuration validation failure
	ErrInvalidConfig = errors.New("scene: invalid config")
)

package composite

import "errors"

var (
	// ErrMissingSceneSettings marks a composite whose AudioVideoSettings
	// block is absent or not a set of positive integers. Fatal for the
	// whole import.
	ErrMissingSceneSettings = errors.New("composite: missing or invalid AudioVideoSettings")

	// ErrMissingCamera marks a composite without a CameraLayer. Recoverable:
	// the import still applies settings and anchors, then reports Cancelled.
	ErrMissingCamera = errors.New("composite: no CameraLayer in document")

	// ErrMalformedAnchor marks a PointLayer missing its name or position.
	// Such anchors are skipped individually, never fatal.
	ErrMalformedAnchor = errors.New("composite: malformed point layer")
)

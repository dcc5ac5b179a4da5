// Package scene defines the host-side surface of the importer. The import
// pipeline only talks to the Sink interface; the shipped implementation is
// an in-memory Document serialized to YAML for a host-side applier.
package scene

import "github.com/camtools/hfcs2scene/internal/transform"

// Status is the outcome of one import operation.
type Status string

const (
	// StatusFinished means the full camera animation and all anchors were
	// imported.
	StatusFinished Status = "FINISHED"

	// StatusCancelled means no camera layer was found. Scene settings and
	// anchors may still have been applied.
	StatusCancelled Status = "CANCELLED"
)

// Sink receives the built scene. It mirrors the host application's
// animation system: objects are created, the current time advances, and
// keyframes are recorded at the current time.
type Sink interface {
	// SetRenderSettings writes resolution and frame rate into the target
	// scene's output settings.
	SetRenderSettings(width, height, frameRate int)

	// SetFrameEnd sets the scene's end-of-animation marker.
	SetFrameEnd(frame int)

	// SetCurrentFrame advances the scene's current animation time.
	SetCurrentFrame(frame int)

	// AddCamera creates the camera object and returns a handle for
	// keyframing it.
	AddCamera(name string, displaySize float64) Camera

	// AddMarker creates one static marker object with the given world
	// transform.
	AddMarker(name string, world transform.Matrix4, displaySize float64)
}

// Camera is the handle for the created camera object.
type Camera interface {
	// SetLens sets the camera's focal length in millimeters.
	SetLens(mm float64)

	// InsertLensKey records a focal-length keyframe at the sink's current
	// frame.
	InsertLensKey()

	// SetWorld sets the camera's world transform.
	SetWorld(m transform.Matrix4)

	// InsertTransformKey records a location/rotation keyframe at the sink's
	// current frame.
	InsertTransformKey()
}

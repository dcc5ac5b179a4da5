package lens

import "math"

// PixelsPerMM is the fixed sensor calibration constant of the AR capture
// device. Composite documents store zoom values in pixel-equivalent units;
// this converts them to millimeters.
const PixelsPerMM = 2.8352

// SensorWidthMM is the 36mm reference sensor width of the target engine's
// default camera.
const SensorWidthMM = 36.0

// ZoomToLens converts a pixel-space zoom value to a focal length in
// millimeters for a composite of the given pixel width. The caller must
// guarantee compWidthPixels > 0.
func ZoomToLens(lensZoomPixels, compWidthPixels float64) float64 {
	lensZoomMM := lensZoomPixels / PixelsPerMM
	compWidthMM := compWidthPixels / PixelsPerMM
	return SensorWidthMM * lensZoomMM / compWidthMM
}

// FOV returns the vertical field of view in radians for a pixel-space zoom
// value and composite height. Diagnostic alternative to ZoomToLens; the
// import pipeline keys focal length directly.
func FOV(lensZoomPixels, compHeightPixels float64) float64 {
	lensZoomMM := lensZoomPixels / PixelsPerMM
	compHeightMM := compHeightPixels / PixelsPerMM
	return 2.0 * math.Atan((compHeightMM*0.5)/lensZoomMM)
}

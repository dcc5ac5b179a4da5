// Package timeline reconciles the camera's independently sampled animation
// channels onto one per-frame time axis.
package timeline

import (
	"errors"
	"fmt"

	"github.com/camtools/hfcs2scene/internal/composite"
	"github.com/camtools/hfcs2scene/internal/transform"
)

// ErrChannelLengthMismatch marks camera channels that disagree in sample
// count. The channels are recorded on a shared clock, so a mismatch is a
// data-integrity failure, fatal for the import.
var ErrChannelLengthMismatch = errors.New("timeline: animation channels differ in length")

// Frame is one synchronized per-frame record. Channel values are nil when
// the corresponding channel is absent from the composite.
type Frame struct {
	Index    int
	Position *transform.Vec3
	Rotation *transform.Vec3
	Zoom     *float64
}

// Synchronize validates that every non-empty channel shares one sample count
// and emits the per-frame records, indexed 0..N-1. Empty channels are
// tolerated and do not constrain the others. A nil or empty channel set
// yields zero frames, which also means no camera animation. The result
// length defines the scene's total animated frame count.
func Synchronize(ch *composite.CameraChannels) ([]Frame, error) {
	if ch == nil {
		return nil, nil
	}

	n := 0
	for _, length := range []int{len(ch.Position), len(ch.Rotation), len(ch.Zoom)} {
		if length == 0 {
			continue
		}
		if n == 0 {
			n = length
			continue
		}
		if length != n {
			return nil, fmt.Errorf("%w: position=%d rotation=%d zoom=%d",
				ErrChannelLengthMismatch, len(ch.Position), len(ch.Rotation), len(ch.Zoom))
		}
	}
	if n == 0 {
		return nil, nil
	}

	frames := make([]Frame, n)
	for i := range frames {
		frames[i].Index = i
		if len(ch.Position) > 0 {
			v := ch.Position[i].Value
			frames[i].Position = &v
		}
		if len(ch.Rotation) > 0 {
			v := ch.Rotation[i].Value
			frames[i].Rotation = &v
		}
		if len(ch.Zoom) > 0 {
			v := ch.Zoom[i].Value
			frames[i].Zoom = &v
		}
	}
	return frames, nil
}

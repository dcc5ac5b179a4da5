// Package composite parses the .hfcs project files exported by the AR
// capture app: a single camera layer with independently sampled position,
// orientation and zoom channels, plus any number of static point layers.
package composite

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/camtools/hfcs2scene/internal/transform"
)

// SceneSettings carries the composite's output resolution and frame rate.
// All three values are required positive integers.
type SceneSettings struct {
	Width     int
	Height    int
	FrameRate int
}

// PointSample is one position keyframe: a time ordinal (used directly as a
// frame index) and a source-space point.
type PointSample struct {
	Time  int
	Value transform.Vec3
}

// EulerSample is one orientation keyframe in degrees, stored inverted
// relative to the target engine's convention.
type EulerSample struct {
	Time  int
	Value transform.Vec3
}

// ZoomSample is one lens zoom keyframe in pixel-equivalent units.
type ZoomSample struct {
	Time  int
	Value float64
}

// CameraChannels holds the camera layer's raw animation channels. Each
// channel is independently optional; non-empty channels must agree in
// length, which the timeline package enforces.
type CameraChannels struct {
	Position []PointSample
	Rotation []EulerSample
	Zoom     []ZoomSample
}

// AnchorPoint is a tracked static reference point: a name and one
// source-space position.
type AnchorPoint struct {
	Name     string
	Position transform.Vec3
}

// Composite is the parsed document. Camera is nil when the document has no
// CameraLayer, which is a recoverable condition, not a parse error.
type Composite struct {
	Settings       SceneSettings
	Camera         *CameraChannels
	Anchors        []AnchorPoint
	SkippedAnchors int
}

// ParseFile reads and parses a composite document from disk.
func ParseFile(path string) (*Composite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("composite: open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a composite document. Element names are matched at any depth,
// mirroring the loose descendant lookups the capture app's own tooling
// relies on.
func Parse(r io.Reader) (*Composite, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("composite: decode: %w", err)
	}

	c := &Composite{}

	settings, err := parseSettings(&root)
	if err != nil {
		return nil, err
	}
	c.Settings = settings

	if cam := root.find("CameraLayer"); cam != nil {
		channels, err := parseCamera(cam)
		if err != nil {
			return nil, err
		}
		c.Camera = channels
	}

	// Anchors are found by a whole-document layer scan, independent of
	// camera presence. A malformed point layer fails only that anchor.
	for i, pl := range root.findAll("PointLayer") {
		anchor, err := parseAnchor(pl)
		if err != nil {
			log.Printf("[!] Skipping point layer %d: %v", i, err)
			c.SkippedAnchors++
			continue
		}
		c.Anchors = append(c.Anchors, anchor)
	}

	return c, nil
}

func parseSettings(root *node) (SceneSettings, error) {
	av := root.find("AudioVideoSettings")
	if av == nil {
		return SceneSettings{}, fmt.Errorf("%w: no AudioVideoSettings element", ErrMissingSceneSettings)
	}

	var s SceneSettings
	for _, field := range []struct {
		name string
		dst  *int
	}{
		{"Width", &s.Width},
		{"Height", &s.Height},
		{"FrameRate", &s.FrameRate},
	} {
		child := av.child(field.name)
		if child == nil {
			return SceneSettings{}, fmt.Errorf("%w: missing %s", ErrMissingSceneSettings, field.name)
		}
		v, err := strconv.Atoi(strings.TrimSpace(child.Text))
		if err != nil || v <= 0 {
			return SceneSettings{}, fmt.Errorf("%w: bad %s %q", ErrMissingSceneSettings, field.name, child.Text)
		}
		*field.dst = v
	}
	return s, nil
}

func parseCamera(cam *node) (*CameraChannels, error) {
	ch := &CameraChannels{}

	if anim := animationUnder(cam, "position"); anim != nil {
		for i := range anim.Children {
			key := &anim.Children[i]
			p := key.find("FXPoint3_32f")
			if p == nil {
				return nil, fmt.Errorf("composite: position key %d: missing FXPoint3_32f", i)
			}
			v, err := vecFromAttrs(p)
			if err != nil {
				return nil, fmt.Errorf("composite: position key %d: %w", i, err)
			}
			ch.Position = append(ch.Position, PointSample{Time: keyTime(key, i), Value: v})
		}
	}

	if anim := animationUnder(cam, "orientation"); anim != nil {
		for i := range anim.Children {
			key := &anim.Children[i]
			e := key.find("Orientation3D")
			if e == nil {
				return nil, fmt.Errorf("composite: orientation key %d: missing Orientation3D", i)
			}
			v, err := vecFromAttrs(e)
			if err != nil {
				return nil, fmt.Errorf("composite: orientation key %d: %w", i, err)
			}
			ch.Rotation = append(ch.Rotation, EulerSample{Time: keyTime(key, i), Value: v})
		}
	}

	if anim := animationUnder(cam, "zoom"); anim != nil {
		for i := range anim.Children {
			key := &anim.Children[i]
			value := key.find("Value")
			if value == nil {
				return nil, fmt.Errorf("composite: zoom key %d: missing Value", i)
			}
			f := value.find("float")
			if f == nil {
				return nil, fmt.Errorf("composite: zoom key %d: missing float value", i)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(f.Text), 64)
			if err != nil {
				return nil, fmt.Errorf("composite: zoom key %d: bad value %q", i, f.Text)
			}
			ch.Zoom = append(ch.Zoom, ZoomSample{Time: keyTime(key, i), Value: v})
		}
	}

	return ch, nil
}

func parseAnchor(pl *node) (AnchorPoint, error) {
	name := pl.find("Name")
	if name == nil || strings.TrimSpace(name.Text) == "" {
		return AnchorPoint{}, fmt.Errorf("%w: missing Name", ErrMalformedAnchor)
	}

	pos := pl.find("position")
	if pos == nil {
		return AnchorPoint{}, fmt.Errorf("%w: missing position", ErrMalformedAnchor)
	}
	def := pos.find("Default")
	if def == nil {
		return AnchorPoint{}, fmt.Errorf("%w: missing Default position", ErrMalformedAnchor)
	}
	p3 := def.find("p3")
	if p3 == nil {
		return AnchorPoint{}, fmt.Errorf("%w: missing p3 point", ErrMalformedAnchor)
	}
	v, err := vecFromAttrs(p3)
	if err != nil {
		return AnchorPoint{}, fmt.Errorf("%w: %v", ErrMalformedAnchor, err)
	}

	return AnchorPoint{Name: strings.TrimSpace(name.Text), Position: v}, nil
}

// animationUnder locates the Animation element of a named camera property
// (position, orientation, zoom). Returns nil when the channel is absent.
func animationUnder(cam *node, property string) *node {
	prop := cam.find(property)
	if prop == nil {
		return nil
	}
	return prop.find("Animation")
}

// keyTime reads the keyframe's Time attribute, falling back to its sequence
// position. In practice the recorded ordinals are direct frame indices.
func keyTime(key *node, index int) int {
	raw, ok := key.attr("Time")
	if !ok {
		return index
	}
	t, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return index
	}
	return t
}

func vecFromAttrs(n *node) (transform.Vec3, error) {
	var v transform.Vec3
	for _, axis := range []struct {
		name string
		dst  *float64
	}{
		{"X", &v.X},
		{"Y", &v.Y},
		{"Z", &v.Z},
	} {
		raw, ok := n.attr(axis.name)
		if !ok {
			return transform.Vec3{}, fmt.Errorf("missing %s attribute on %s", axis.name, n.XMLName.Local)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return transform.Vec3{}, fmt.Errorf("bad %s attribute %q on %s", axis.name, raw, n.XMLName.Local)
		}
		*axis.dst = f
	}
	return v, nil
}

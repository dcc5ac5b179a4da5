package scene

import "github.com/camtools/hfcs2scene/internal/transform"

// RenderSettings is the target scene's output configuration.
type RenderSettings struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	FrameRate int `yaml:"frame_rate"`
}

// LensKey is a focal-length keyframe.
type LensKey struct {
	Frame int     `yaml:"frame"`
	Lens  float64 `yaml:"lens_mm"`
}

// TransformKey is a world-transform keyframe.
type TransformKey struct {
	Frame int               `yaml:"frame"`
	World transform.Matrix4 `yaml:"world"`
}

// CameraNode is the animated camera object.
type CameraNode struct {
	Name          string         `yaml:"name"`
	DisplaySize   float64        `yaml:"display_size"`
	LensKeys      []LensKey      `yaml:"lens_keys,omitempty"`
	TransformKeys []TransformKey `yaml:"transform_keys,omitempty"`

	doc   *Document
	lens  float64
	world transform.Matrix4
}

// Marker is one static anchor object.
type Marker struct {
	Name        string            `yaml:"name"`
	World       transform.Matrix4 `yaml:"world"`
	DisplaySize float64           `yaml:"display_size"`
}

// Document is the in-memory Sink implementation: the complete built scene,
// ready for serialization.
type Document struct {
	Render   RenderSettings `yaml:"render"`
	FrameEnd int            `yaml:"frame_end"`
	Camera   *CameraNode    `yaml:"camera,omitempty"`
	Markers  []Marker       `yaml:"markers,omitempty"`

	currentFrame int
}

// NewDocument returns an empty scene document.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) SetRenderSettings(width, height, frameRate int) {
	d.Render = RenderSettings{Width: width, Height: height, FrameRate: frameRate}
}

func (d *Document) SetFrameEnd(frame int) {
	d.FrameEnd = frame
}

func (d *Document) SetCurrentFrame(frame int) {
	d.currentFrame = frame
}

// CurrentFrame reports the scene's current animation time.
func (d *Document) CurrentFrame() int {
	return d.currentFrame
}

func (d *Document) AddCamera(name string, displaySize float64) Camera {
	cam := &CameraNode{Name: name, DisplaySize: displaySize, doc: d}
	d.Camera = cam
	return cam
}

func (d *Document) AddMarker(name string, world transform.Matrix4, displaySize float64) {
	d.Markers = append(d.Markers, Marker{Name: name, World: world, DisplaySize: displaySize})
}

func (c *CameraNode) SetLens(mm float64) {
	c.lens = mm
}

func (c *CameraNode) InsertLensKey() {
	c.LensKeys = append(c.LensKeys, LensKey{Frame: c.doc.currentFrame, Lens: c.lens})
}

func (c *CameraNode) SetWorld(m transform.Matrix4) {
	c.world = m
}

func (c *CameraNode) InsertTransformKey() {
	c.TransformKeys = append(c.TransformKeys, TransformKey{Frame: c.doc.currentFrame, World: c.world})
}

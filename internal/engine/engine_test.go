package engine

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camtools/hfcs2scene/internal/composite"
	"github.com/camtools/hfcs2scene/internal/config"
	"github.com/camtools/hfcs2scene/internal/lens"
	"github.com/camtools/hfcs2scene/internal/scene"
)

func writeComposite(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.hfcs")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func runImport(t *testing.T, doc string) (*scene.Document, scene.Status, error) {
	t.Helper()
	sink := scene.NewDocument()
	project := NewImportProject(&config.Config{InputPath: writeComposite(t, doc)}, sink)
	status, err := project.Run()
	return sink, status, err
}

const constantZoomComposite = `<Composite>
  <AudioVideoSettings><Width>1920</Width><Height>1080</Height><FrameRate>30</FrameRate></AudioVideoSettings>
  <CameraLayer>
    <position><Animation>
      <Key Time="0"><value><FXPoint3_32f X="0" Y="0" Z="0"/></value></Key>
      <Key Time="1"><value><FXPoint3_32f X="500" Y="0" Z="0"/></value></Key>
      <Key Time="2"><value><FXPoint3_32f X="1000" Y="0" Z="0"/></value></Key>
    </Animation></position>
    <orientation><Animation>
      <Key Time="0"><value><Orientation3D X="0" Y="0" Z="0"/></value></Key>
      <Key Time="1"><value><Orientation3D X="0" Y="0" Z="0"/></value></Key>
      <Key Time="2"><value><Orientation3D X="0" Y="0" Z="0"/></value></Key>
    </Animation></orientation>
    <zoom><Animation>
      <Key Time="0"><Value><float>100</float></Value></Key>
      <Key Time="1"><Value><float>100</float></Value></Key>
      <Key Time="2"><Value><float>100</float></Value></Key>
    </Animation></zoom>
  </CameraLayer>
</Composite>`

func TestImportConstantZoom(t *testing.T) {
	doc, status, err := runImport(t, constantZoomComposite)
	require.NoError(t, err)
	assert.Equal(t, scene.StatusFinished, status)

	assert.Equal(t, scene.RenderSettings{Width: 1920, Height: 1080, FrameRate: 30}, doc.Render)
	assert.Equal(t, 3, doc.FrameEnd)
	require.NotNil(t, doc.Camera)
	assert.Equal(t, "ARCamera", doc.Camera.Name)
	assert.Equal(t, 0.2, doc.Camera.DisplaySize)

	// Constant zoom keys a constant focal length at every frame.
	want := lens.ZoomToLens(100, 1920)
	require.Len(t, doc.Camera.LensKeys, 3)
	for i, k := range doc.Camera.LensKeys {
		assert.Equal(t, i, k.Frame)
		assert.InDelta(t, want, k.Lens, 1e-9)
	}

	require.Len(t, doc.Camera.TransformKeys, 3)
	// X positions scale by 2.8352/1000 and stay on X through the basis change.
	for i, k := range doc.Camera.TransformKeys {
		wantX := float64(i) * 500.0 / 1000.0 * 2.8352
		assert.InDelta(t, wantX, k.World[0][3], 1e-9, "frame %d", i)
		assert.InDelta(t, 0, k.World[1][3], 1e-9)
		assert.InDelta(t, 0, k.World[2][3], 1e-9)
	}

	// Current time is reset after keyframing.
	assert.Equal(t, 0, doc.CurrentFrame())
}

func TestImportNoCameraStillImportsAnchors(t *testing.T) {
	const noCamera = `<Composite>
	  <AudioVideoSettings><Width>1280</Width><Height>720</Height><FrameRate>24</FrameRate></AudioVideoSettings>
	  <PointLayer><Name>A</Name><position><Default><p3 X="1000" Y="0" Z="0"/></Default></position></PointLayer>
	  <PointLayer><Name>B</Name><position><Default><p3 X="0" Y="1000" Z="0"/></Default></position></PointLayer>
	</Composite>`

	doc, status, err := runImport(t, noCamera)
	require.NoError(t, err)
	assert.Equal(t, scene.StatusCancelled, status)

	// Settings are applied before the camera presence check.
	assert.Equal(t, scene.RenderSettings{Width: 1280, Height: 720, FrameRate: 24}, doc.Render)
	assert.Nil(t, doc.Camera)
	assert.Equal(t, 0, doc.FrameEnd)

	require.Len(t, doc.Markers, 2)
	assert.Equal(t, "A", doc.Markers[0].Name)
	assert.Equal(t, "B", doc.Markers[1].Name)
	assert.Equal(t, 0.1, doc.Markers[0].DisplaySize)

	// Anchor at (1000,0,0) lands at (2.8352,0,0): X is unchanged by the
	// basis change.
	assert.InDelta(t, 2.8352, doc.Markers[0].World[0][3], 1e-9)
	// Anchor at (0,1000,0): source up maps to target Z.
	assert.InDelta(t, 2.8352, doc.Markers[1].World[2][3], 1e-9)
}

func TestImportChannelMismatchFails(t *testing.T) {
	const mismatch = `<Composite>
	  <AudioVideoSettings><Width>1920</Width><Height>1080</Height><FrameRate>30</FrameRate></AudioVideoSettings>
	  <CameraLayer>
	    <position><Animation>
	      <Key Time="0"><value><FXPoint3_32f X="0" Y="0" Z="0"/></value></Key>
	      <Key Time="1"><value><FXPoint3_32f X="1" Y="0" Z="0"/></value></Key>
	    </Animation></position>
	    <zoom><Animation>
	      <Key Time="0"><Value><float>100</float></Value></Key>
	    </Animation></zoom>
	  </CameraLayer>
	</Composite>`

	_, status, err := runImport(t, mismatch)
	assert.Error(t, err)
	assert.Equal(t, scene.StatusCancelled, status)
}

func TestImportMissingSettingsFails(t *testing.T) {
	_, _, err := runImport(t, `<Composite><Layers/></Composite>`)
	assert.ErrorIs(t, err, composite.ErrMissingSceneSettings)
}

func TestImportPositionOnlyCamera(t *testing.T) {
	const positionOnly = `<Composite>
	  <AudioVideoSettings><Width>1920</Width><Height>1080</Height><FrameRate>30</FrameRate></AudioVideoSettings>
	  <CameraLayer>
	    <position><Animation>
	      <Key Time="0"><value><FXPoint3_32f X="0" Y="0" Z="1000"/></value></Key>
	      <Key Time="1"><value><FXPoint3_32f X="0" Y="0" Z="2000"/></value></Key>
	    </Animation></position>
	  </CameraLayer>
	</Composite>`

	doc, status, err := runImport(t, positionOnly)
	require.NoError(t, err)
	assert.Equal(t, scene.StatusFinished, status)

	require.NotNil(t, doc.Camera)
	assert.Empty(t, doc.Camera.LensKeys, "no zoom channel, no lens keys")
	require.Len(t, doc.Camera.TransformKeys, 2)

	// Source forward (Z) maps to target -Y.
	assert.InDelta(t, -2.8352, doc.Camera.TransformKeys[0].World[1][3], 1e-9)
	assert.InDelta(t, -2*2.8352, doc.Camera.TransformKeys[1].World[1][3], 1e-9)

	// Identity rotation contributed for the absent orientation channel:
	// the rotational part is exactly the basis change (+90 about X).
	world := doc.Camera.TransformKeys[0].World
	assert.InDelta(t, 1, world[0][0], 1e-9)
	assert.InDelta(t, -1, world[1][2], 1e-9)
	assert.InDelta(t, 1, world[2][1], 1e-9)
	assert.InDelta(t, math.Cos(math.Pi/2), world[1][1], 1e-9)
}

package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/camtools/hfcs2scene/internal/scene"
	"github.com/camtools/hfcs2scene/internal/transform"
)

func TestRender(t *testing.T) {
	doc := scene.NewDocument()
	cam := doc.AddCamera("ARCamera", 0.2)
	for i := 0; i < 3; i++ {
		doc.SetCurrentFrame(i)
		cam.SetWorld(transform.CameraWorld(transform.Vec3{X: float64(i * 100)}, transform.Vec3{}))
		cam.InsertTransformKey()
	}
	doc.AddMarker("Anchor", transform.AnchorWorld(transform.Vec3{X: 1000}), 0.1)

	path := filepath.Join(t.TempDir(), "preview.png")
	if err := Render(doc, path); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected preview file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty preview file")
	}
}

func TestRenderEmptyScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := Render(scene.NewDocument(), path); err != nil {
		t.Fatalf("Render failed on empty scene: %v", err)
	}
}

package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestComposite(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, age time.Duration) {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("<Composite/>"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		stamp := time.Now().Add(-age)
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			t.Fatalf("Chtimes failed: %v", err)
		}
	}

	write("old.hfcs", 2*time.Hour)
	write("newest.hfcs", time.Minute)
	write("ignored.xml", 0)

	got, err := FindLatestComposite(dir)
	if err != nil {
		t.Fatalf("FindLatestComposite failed: %v", err)
	}
	if filepath.Base(got) != "newest.hfcs" {
		t.Errorf("Expected newest.hfcs, got %s", got)
	}
}

func TestFindLatestCompositeEmpty(t *testing.T) {
	if _, err := FindLatestComposite(t.TempDir()); err == nil {
		t.Error("Expected error for directory without composites")
	}
}

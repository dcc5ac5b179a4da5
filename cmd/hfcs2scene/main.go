package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/camtools/hfcs2scene/internal/config"
	"github.com/camtools/hfcs2scene/internal/engine"
	"github.com/camtools/hfcs2scene/internal/preview"
	"github.com/camtools/hfcs2scene/internal/scene"
	"github.com/camtools/hfcs2scene/internal/system"
)

var buildVersion = "dev"

func main() {
	outputPtr := flag.String("output", "", "Scene file path (single input only; default: derived from the input name)")
	outDirPtr := flag.String("outdir", "output", "Directory for generated scene files")
	previewPtr := flag.Bool("preview", false, "Write a top-down camera path PNG next to each scene")
	cameraNamePtr := flag.String("camera-name", "ARCamera", "Name for the created camera object")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Parallel imports in batch mode")
	statsPtr := flag.Bool("stats", false, "Print an import report per file")

	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		latest, err := system.FindLatestComposite("input")
		if err != nil {
			log.Fatalf("[-] No composite given: %v. Pass .hfcs paths or drop one into input/", err)
		}
		inputs = []string{latest}
		fmt.Printf("[*] Selected composite: %s\n", latest)
	}
	if *outputPtr != "" && len(inputs) > 1 {
		log.Fatalf("[-] -output applies to a single input; use -outdir for batches")
	}

	if err := os.MkdirAll(*outDirPtr, 0755); err != nil {
		log.Fatalf("[-] Cannot create %s: %v", *outDirPtr, err)
	}

	// Each composite is an independent import with its own sink; only the
	// fan-out is concurrent.
	var g errgroup.Group
	g.SetLimit(*workersPtr)
	var cancelled atomic.Int64

	for _, input := range inputs {
		input := input
		g.Go(func() error {
			scenePath := *outputPtr
			if scenePath == "" {
				scenePath = filepath.Join(*outDirPtr, sceneName(input))
			}

			cfg := &config.Config{
				InputPath:    input,
				OutputScene:  scenePath,
				CameraName:   *cameraNamePtr,
				ShowStats:    *statsPtr,
				BuildVersion: buildVersion,
			}

			doc := scene.NewDocument()
			status, err := engine.NewImportProject(cfg, doc).Run()
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			if err := scene.Write(doc, scenePath); err != nil {
				return fmt.Errorf("%s: write scene: %w", input, err)
			}

			if *previewPtr {
				previewPath := strings.TrimSuffix(scenePath, filepath.Ext(scenePath)) + ".png"
				if err := preview.Render(doc, previewPath); err != nil {
					log.Printf("[!] Preview for %s failed: %v", input, err)
				} else {
					fmt.Printf("[*] Preview: %s\n", previewPath)
				}
			}

			if status == scene.StatusCancelled {
				cancelled.Add(1)
				log.Printf("[!] %s: cancelled (no camera layer); wrote %s", input, scenePath)
				return nil
			}

			fmt.Printf("[+++] %s -> %s\n", input, scenePath)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("[-] Import failed: %v", err)
	}
	if n := cancelled.Load(); n > 0 {
		log.Printf("[!] %d import(s) cancelled", n)
		os.Exit(1)
	}
}

// sceneName derives an output file name from the composite path.
func sceneName(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, " ", "_") + ".scene.yaml"
}

package batch

import (
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phambaophuc/copyright-stamp/internal/models"
	"github.com/phambaophuc/copyright-stamp/internal/services/processor"
)

func newTestProcessor(t *testing.T) *processor.ImageProcessor {
	t.Helper()
	f, err := processor.ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	cfg := models.DefaultWatermarkConfig()
	cfg.FontPath = processor.BuiltinFontPath
	cfg.Color = models.Color{R: 255, G: 255, B: 255, A: 255}
	return processor.NewImageProcessor(cfg, f, 90)
}

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".jpg":
		err = jpeg.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestProcessFileWritesSibling(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writeImage(t, src, 200, 100)

	d := NewDriver(newTestProcessor(t), zaptest.NewLogger(t), 1)
	out, err := d.ProcessFile(src)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if want := filepath.Join(dir, "watermarked_photo.png"); out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Errorf("output bounds %v", img.Bounds())
	}

	var lit bool
	for y := 0; y < 100 && !lit; y++ {
		for x := 0; x < 200; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r > 0 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("no watermark pixels in output")
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	for _, workers := range []int{1, 3} {
		t.Run(map[int]string{1: "sequential", 3: "pool"}[workers], func(t *testing.T) {
			dir := t.TempDir()
			writeImage(t, filepath.Join(dir, "a.png"), 120, 80)
			writeImage(t, filepath.Join(dir, "b.jpg"), 120, 80)
			if err := os.WriteFile(filepath.Join(dir, "c.png"), []byte("not an image"), 0o644); err != nil {
				t.Fatal(err)
			}
			writeImage(t, filepath.Join(dir, "d.png"), 120, 80)

			files, _, err := Collect(dir)
			if err != nil {
				t.Fatal(err)
			}

			core, logs := observer.New(zap.ErrorLevel)
			d := NewDriver(newTestProcessor(t), zap.New(core), workers)
			report := d.Run(context.Background(), files)

			if report.RunID == "" {
				t.Error("missing run id")
			}
			if report.Succeeded() != 3 || report.Failed() != 1 {
				t.Fatalf("succeeded=%d failed=%d", report.Succeeded(), report.Failed())
			}
			for i, res := range report.Results {
				if res.Input != files[i] {
					t.Errorf("result %d is for %q, want %q", i, res.Input, files[i])
				}
			}

			failed := report.Errors()
			if failed[0].Input != filepath.Join(dir, "c.png") || !errors.Is(failed[0].Err, models.ErrDecode) {
				t.Errorf("unexpected failure %+v", failed[0])
			}

			for _, name := range []string{"a.png", "b.jpg", "d.png"} {
				if _, err := os.Stat(filepath.Join(dir, "watermarked_"+name)); err != nil {
					t.Errorf("missing output for %s: %v", name, err)
				}
			}
			if _, err := os.Stat(filepath.Join(dir, "watermarked_c.png")); !os.IsNotExist(err) {
				t.Errorf("corrupt input produced output: %v", err)
			}

			entries := logs.FilterMessage("Failed to stamp image").All()
			if len(entries) != 1 {
				t.Fatalf("logged %d failures, want 1", len(entries))
			}
			if got := entries[0].ContextMap()["path"]; got != filepath.Join(dir, "c.png") {
				t.Errorf("logged path = %v", got)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writeImage(t, src, 50, 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver(newTestProcessor(t), zaptest.NewLogger(t), 2)
	report := d.Run(ctx, []string{src})
	if report.Failed() != 1 || !errors.Is(report.Results[0].Err, context.Canceled) {
		t.Errorf("results = %+v", report.Results)
	}
}

func TestRunReplacesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writeImage(t, src, 60, 40)
	out := filepath.Join(dir, "watermarked_a.png")
	if err := os.WriteFile(out, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDriver(newTestProcessor(t), zaptest.NewLogger(t), 1)
	if report := d.Run(context.Background(), []string{src}); report.Failed() != 0 {
		t.Fatalf("errors: %+v", report.Errors())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output not replaced: %v", err)
	}
}

package batch

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/phambaophuc/copyright-stamp/internal/models"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsImageFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.JPEG", "c.Png", "d.gif", "e.bmp", "f.webp", "g.txt", "noext"} {
		touch(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := map[string]bool{
		"a.jpg":    true,
		"b.JPEG":   true,
		"c.Png":    true,
		"d.gif":    true,
		"e.bmp":    true,
		"f.webp":   true,
		"g.txt":    false,
		"noext":    false,
		"sub.png":  false,
		"gone.png": false,
	}
	for name, want := range tests {
		if got := IsImageFile(filepath.Join(dir, name)); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCollectDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.jpg", "notes.txt", "B.webp"} {
		touch(t, filepath.Join(dir, name))
	}
	nested := filepath.Join(dir, "nested")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(nested, "deep.png"))

	files, single, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if single {
		t.Error("directory reported as single file")
	}
	want := []string{
		filepath.Join(dir, "B.webp"),
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "c.png"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestCollectSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	touch(t, path)

	files, single, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !single || len(files) != 1 || files[0] != path {
		t.Errorf("got %v single=%v", files, single)
	}
}

func TestCollectInvalidInput(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "readme.txt")
	touch(t, text)

	for _, input := range []string{text, filepath.Join(dir, "missing.png")} {
		if _, _, err := Collect(input); !errors.Is(err, models.ErrInvalidInputPath) {
			t.Errorf("Collect(%q) error = %v, want ErrInvalidInputPath", input, err)
		}
	}
}

func TestCollectEmptyDirectory(t *testing.T) {
	files, single, err := Collect(t.TempDir())
	if err != nil || single || len(files) != 0 {
		t.Errorf("got %v, %v, %v", files, single, err)
	}
}

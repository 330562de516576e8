package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/scene"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// testTGA builds a minimal uncompressed 24-bit true-color TGA with a
// top-left origin.
func testTGA(t *testing.T, w, h int) []byte {
	t.Helper()
	header := []byte{
		0, 0, 2,
		0, 0, 0, 0, 0,
		0, 0, 0, 0,
		byte(w), byte(w >> 8), byte(h), byte(h >> 8),
		24, 0x20,
	}
	buf := bytes.NewBuffer(header)
	for range w * h {
		buf.Write([]byte{0, 0, 200}) // BGR
	}
	return buf.Bytes()
}

func TestLoadDispatchesOnSignature(t *testing.T) {
	dir := t.TempDir()

	var jpegBuf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	if err := jpeg.Encode(&jpegBuf, img, nil); err != nil {
		t.Fatal(err)
	}

	files := map[string][]byte{
		"a.png": testPNG(t, 4, 4),
		"b.jpg": jpegBuf.Bytes(),
		"c.tga": testTGA(t, 4, 4),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	l := NewImageLoader(WithBaseDir(dir))
	for name := range files {
		img, err := l.Load(context.Background(), name)
		if err != nil {
			t.Errorf("Load(%s): %v", name, err)
			continue
		}
		if img.Bounds().Dx() == 0 {
			t.Errorf("Load(%s) decoded an empty image", name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "front.png")
	if err := os.WriteFile(path, testPNG(t, 640, 514), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewImageLoader()
	img, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 514 {
		t.Errorf("bounds = %v, want 640x514", b)
	}
}

func TestLoadDownscalesOversized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.png")
	if err := os.WriteFile(path, testPNG(t, 8192, 16), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewImageLoader()
	img, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4096 || b.Dy() != 8 {
		t.Errorf("bounds = %v, want 4096x8", b)
	}
}

func TestLoadFileRelativeToBaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), testPNG(t, 10, 10), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewImageLoader(WithBaseDir(dir))
	if _, err := l.Load(context.Background(), "logo.png"); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	l := NewImageLoader()
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	if errors.GetCode(err) != errors.ErrCodeAssetLoad {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeAssetLoad)
	}
}

func TestLoadDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(testPNG(t, 4, 4))
	src := "data:image/png;base64," + payload

	l := NewImageLoader()
	img, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", b)
	}
}

func TestLoadDataURLMalformed(t *testing.T) {
	l := NewImageLoader()
	for _, src := range []string{"data:image/png;base64", "data:image/png,notbase64"} {
		if _, err := l.Load(context.Background(), src); err == nil {
			t.Errorf("Load(%q) succeeded, want error", src)
		}
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(testPNG(t, 8, 8))
	}))
	defer srv.Close()

	l := NewImageLoader(WithHTTPClient(srv.Client()))
	img, err := l.Load(context.Background(), srv.URL+"/tpl.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 {
		t.Errorf("bounds = %v, want 8x8", b)
	}
}

func TestLoadHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	l := NewImageLoader(WithHTTPClient(srv.Client()))
	_, err := l.Load(context.Background(), srv.URL+"/missing.png")
	if errors.GetCode(err) != errors.ErrCodeAssetLoad {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeAssetLoad)
	}
}

func TestLoadEmptySource(t *testing.T) {
	l := NewImageLoader()
	if _, err := l.Load(context.Background(), ""); err == nil {
		t.Error("Load(\"\") succeeded, want error")
	}
}

func TestTemplateSetSource(t *testing.T) {
	set := TemplateSet{Front: "f.png", Back: "b.png", Collar: "c.png"}

	tests := []struct {
		view scene.View
		want string
	}{
		{scene.ViewFront, "f.png"},
		{scene.ViewBack, "b.png"},
		{scene.ViewLeftSleeve, ""},
		{scene.ViewCollar, "c.png"},
	}
	for _, tt := range tests {
		got, err := set.Source(tt.view)
		if err != nil {
			t.Errorf("Source(%s): %v", tt.view, err)
		}
		if got != tt.want {
			t.Errorf("Source(%s) = %q, want %q", tt.view, got, tt.want)
		}
	}

	if _, err := set.Source(scene.View("hood")); errors.GetCode(err) != errors.ErrCodeInvalidView {
		t.Errorf("Source(hood) code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidView)
	}
}

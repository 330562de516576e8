package export

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/dotstitch/dotstitch/pkg/fonts"
	"github.com/dotstitch/dotstitch/pkg/geom"
	"github.com/dotstitch/dotstitch/pkg/scene"
)

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func sceneWithPicture() *scene.Scene {
	s := scene.New()
	s.Add(&scene.Picture{
		Kind:    scene.KindTemplate,
		Source:  "front.png",
		Img:     solidImage(200, 150, color.RGBA{R: 255, A: 255}),
		X:       100,
		Y:       50,
		ScaleX:  1,
		ScaleY:  1,
		Anchor:  scene.AnchorTopLeft,
		Visible: true,
	})
	return s
}

func TestRenderSizeAtPrintMultiplier(t *testing.T) {
	s := sceneWithPicture()
	lib := fonts.NewLibrary()

	b := geom.Rect{Left: 100, Top: 50, Width: 200, Height: 150}
	img, err := Render(s, lib, b, Options{Format: FormatPNG, Multiplier: Multiplier300})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := img.Bounds()
	if got.Dx() != 625 || got.Dy() != 469 {
		t.Errorf("raster = %dx%d, want 625x469", got.Dx(), got.Dy())
	}
}

func TestRenderCropsToBounds(t *testing.T) {
	s := sceneWithPicture()
	lib := fonts.NewLibrary()

	b := *scene.DesignBounds(s, lib)
	img, err := Render(s, lib, b, Options{Format: FormatPNG, Multiplier: 1})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// The template fills the crop flush to the edges.
	r, _, _, _ := img.At(0, 0).RGBA()
	if r == 0 {
		t.Error("top-left pixel transparent, expected template content")
	}
	r, _, _, _ = img.At(199, 149).RGBA()
	if r == 0 {
		t.Error("bottom-right pixel transparent, expected template content")
	}
}

func TestRenderDesignEmptySceneRefuses(t *testing.T) {
	s := scene.New()
	// Only a label: presentation-only, not design content.
	s.Add(&scene.Text{
		Kind: scene.KindLabel, Content: "Jordan #23",
		X: 16, Y: 704, FontSizePx: 10,
		Anchor: scene.AnchorBottomLeft, Visible: true,
	})

	_, err := RenderDesign(s, fonts.NewLibrary(), Options{Format: FormatPNG})
	if err == nil {
		t.Fatal("RenderDesign succeeded on label-only scene")
	}
}

func TestRenderKindCropsToThatKind(t *testing.T) {
	s := sceneWithPicture()
	s.Add(&scene.Picture{
		Kind:    scene.KindCustomLogo,
		Source:  "logo.png",
		Img:     solidImage(40, 40, color.RGBA{B: 255, A: 255}),
		X:       500,
		Y:       400,
		ScaleX:  1,
		ScaleY:  1,
		Anchor:  scene.AnchorCenter,
		Visible: true,
	})
	lib := fonts.NewLibrary()

	img, err := RenderKind(s, lib, scene.KindCustomLogo, Options{Format: FormatPNG, Multiplier: 1})
	if err != nil {
		t.Fatalf("RenderKind: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("raster = %dx%d, want 40x40", b.Dx(), b.Dy())
	}

	if _, err := RenderKind(s, lib, scene.KindPlayerName, Options{Format: FormatPNG}); err == nil {
		t.Error("RenderKind succeeded for a kind with no content")
	}
}

func TestRenderJPEGBackgroundOpaque(t *testing.T) {
	s := sceneWithPicture()
	lib := fonts.NewLibrary()

	// Crop wider than the picture so the margin shows the background.
	b := geom.Rect{Left: 0, Top: 0, Width: 400, Height: 300}
	img, err := Render(s, lib, b, Options{
		Format:     FormatJPEG,
		Multiplier: 1,
		Background: "#00ff00",
	})
	if err != nil {
		t.Fatal(err)
	}
	_, g, _, a := img.At(0, 0).RGBA()
	if a != 0xffff {
		t.Error("JPEG export has transparent pixels")
	}
	if g < 0xf000 {
		t.Errorf("background green channel = %#x, want near full", g)
	}
}

func TestEncodeFormats(t *testing.T) {
	img := solidImage(8, 8, color.RGBA{B: 255, A: 255})
	for _, f := range []Format{FormatPNG, FormatJPEG, FormatWebP} {
		var buf bytes.Buffer
		if err := Encode(&buf, img, Options{Format: f}); err != nil {
			t.Errorf("Encode(%s): %v", f, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Encode(%s) wrote nothing", f)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, Options{Format: "bmp"}); err == nil {
		t.Error("Encode(bmp) succeeded, want unsupported-format error")
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name, number string
		view         scene.View
		format       Format
		want         string
	}{
		{"Jordan Mars", "23", scene.ViewBack, FormatPNG, "Jordan_Mars_23_back.png"},
		{"O'Neil", "00", scene.ViewFront, FormatJPEG, "O_Neil_00_front.jpg"},
		{"design", "", scene.ViewCollar, FormatWebP, "design__collar.webp"},
	}
	for _, tt := range tests {
		if got := FileName(tt.name, tt.number, tt.view, tt.format); got != tt.want {
			t.Errorf("FileName(%q, %q, %s, %s) = %q, want %q",
				tt.name, tt.number, tt.view, tt.format, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#000000", color.RGBA{A: 255}},
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"#0f0", color.RGBA{G: 255, A: 255}},
		{"ffffff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		r, g, b, a := parseHexColor(tt.in).RGBA()
		wr, wg, wb, wa := tt.want.RGBA()
		if r != wr || g != wg || b != wb || a != wa {
			t.Errorf("parseHexColor(%q) = %v", tt.in, parseHexColor(tt.in))
		}
	}
}

func TestMultiplierPresets(t *testing.T) {
	if Multiplier300 != 3.125 {
		t.Errorf("Multiplier300 = %v", Multiplier300)
	}
	if MultiplierForDPI(96) != 1 {
		t.Errorf("MultiplierForDPI(96) = %v", MultiplierForDPI(96))
	}
	if got := PresetMedium.Multiplier(); got != Multiplier200 {
		t.Errorf("medium preset multiplier = %v, want %v", got, Multiplier200)
	}
	if got := Preset("bogus").Multiplier(); got != Multiplier300 {
		t.Errorf("unknown preset multiplier = %v, want %v", got, Multiplier300)
	}
}

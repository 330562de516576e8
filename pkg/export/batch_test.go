package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotstitch/dotstitch/pkg/assets"
	"github.com/dotstitch/dotstitch/pkg/composer"
	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/roster"
	"github.com/dotstitch/dotstitch/pkg/scene"
	"github.com/dotstitch/dotstitch/pkg/store"
)

type stubLoader struct {
	sizes map[string]image.Point
}

func (s *stubLoader) Load(_ context.Context, src string) (image.Image, error) {
	size, ok := s.sizes[src]
	if !ok {
		return nil, fmt.Errorf("no such asset: %s", src)
	}
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for y := range size.Y {
		for x := range size.X {
			img.Set(x, y, color.RGBA{B: 200, A: 255})
		}
	}
	return img, nil
}

func TestAllViewsExportsEachConfiguredView(t *testing.T) {
	loader := &stubLoader{sizes: map[string]image.Point{
		"front.png": {X: 640, Y: 514},
		"back.png":  {X: 640, Y: 514},
	}}
	positions := store.NewPositions(store.NewMemoryBackend())
	c := composer.New(positions, loader, composer.WithTemplates(assets.TemplateSet{
		Front: "front.png",
		Back:  "back.png",
	}))

	ctx := context.Background()
	player := roster.Player{PlayerName: "Sam Reyes", JerseyNumber: "7", Size: "34"}
	if err := c.SelectPlayer(ctx, player); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	paths, err := AllViews(ctx, c, dir, Options{Format: FormatPNG, Multiplier: 1})
	if err != nil {
		t.Fatalf("AllViews: %v", err)
	}

	// Sleeves and collar have no template and no placements: skipped.
	want := []string{
		filepath.Join(dir, "Sam_Reyes_7_front.png"),
		filepath.Join(dir, "Sam_Reyes_7_back.png"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, p, want[i])
		}
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("stat %s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestCurrentViewPartExportsOnlyThatKind(t *testing.T) {
	loader := &stubLoader{sizes: map[string]image.Point{
		"front.png": {X: 640, Y: 514},
		"logo.png":  {X: 40, Y: 40},
	}}
	positions := store.NewPositions(store.NewMemoryBackend())
	c := composer.New(positions, loader, composer.WithTemplates(assets.TemplateSet{
		Front: "front.png",
	}))

	ctx := context.Background()
	player := roster.Player{PlayerName: "Sam Reyes", JerseyNumber: "7", Size: "34"}
	if err := c.SelectPlayer(ctx, player); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddCustomLogo(ctx, "logo.png"); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := CurrentViewPart(ctx, c, dir, scene.KindCustomLogo, Options{Format: FormatPNG, Multiplier: 1})
	if err != nil {
		t.Fatalf("CurrentViewPart: %v", err)
	}
	want := filepath.Join(dir, "Sam_Reyes_7_front_logo.png")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("exported part is empty")
	}

	// No custom text was added, so the text part has nothing to render.
	_, err = CurrentViewPart(ctx, c, dir, scene.KindCustomText, Options{Format: FormatPNG, Multiplier: 1})
	if !errors.Is(err, errors.ErrCodeEmptyExport) {
		t.Errorf("text part error = %v, want %s", err, errors.ErrCodeEmptyExport)
	}
}

func TestCurrentViewRequiresSelection(t *testing.T) {
	positions := store.NewPositions(store.NewMemoryBackend())
	c := composer.New(positions, &stubLoader{sizes: map[string]image.Point{}})

	_, err := CurrentView(context.Background(), c, t.TempDir(), Options{Format: FormatPNG})
	if err == nil {
		t.Fatal("CurrentView succeeded with no view selected")
	}
}

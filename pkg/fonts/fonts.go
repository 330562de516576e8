// Package fonts resolves font families to renderable faces.
//
// Families are looked up on the system with go-findfont so installed fonts
// (e.g. the Anton jersey font) are used when present. When a family cannot
// be found the embedded Go fonts are used instead, keeping rendering and
// measurement deterministic on machines without the named font.
//
// Faces are cached per (family, size); a Library is safe for concurrent use.
package fonts

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is the jersey lettering font used when a placement record
// carries no family of its own.
const DefaultFamily = "Anton"

type faceKey struct {
	family string
	size   float64
}

// Library loads and caches font faces.
type Library struct {
	mu     sync.Mutex
	fonts  map[string]*truetype.Font
	faces  map[faceKey]font.Face
	fallbk *truetype.Font
	bold   *truetype.Font
}

// NewLibrary creates a font library with the embedded Go fonts parsed as
// fallbacks. Parsing the embedded fonts cannot fail at runtime, so the
// errors are discarded.
func NewLibrary() *Library {
	regular, _ := truetype.Parse(goregular.TTF)
	bold, _ := truetype.Parse(gobold.TTF)
	return &Library{
		fonts:  make(map[string]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
		fallbk: regular,
		bold:   bold,
	}
}

// Face returns a face for the family at the given pixel size. Unknown
// families fall back to the embedded fonts; Face never fails.
func (l *Library) Face(family string, sizePx float64) font.Face {
	if sizePx <= 0 {
		sizePx = 1
	}
	key := faceKey{family: family, size: sizePx}

	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.faces[key]; ok {
		return f
	}

	f := truetype.NewFace(l.font(family), &truetype.Options{
		Size: sizePx,
		DPI:  72, // size in points == size in pixels at 72 DPI
	})
	l.faces[key] = f
	return f
}

// font resolves a family to a parsed font, caching the result. Must be
// called with l.mu held.
func (l *Library) font(family string) *truetype.Font {
	norm := strings.ToLower(strings.TrimSpace(family))
	if f, ok := l.fonts[norm]; ok {
		return f
	}

	f := l.locate(norm)
	if f == nil {
		f = l.fallbackFor(norm)
	}
	l.fonts[norm] = f
	return f
}

func (l *Library) locate(family string) *truetype.Font {
	if family == "" {
		return nil
	}
	path, err := findfont.Find(strings.ReplaceAll(family, " ", "") + ".ttf")
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil
	}
	return f
}

// fallbackFor picks between the embedded regular and bold faces. Jersey
// lettering fonts (Anton and friends) are heavy display faces, so the bold
// fallback keeps default renders closer to the intended look.
func (l *Library) fallbackFor(family string) *truetype.Font {
	if family == strings.ToLower(DefaultFamily) || strings.Contains(family, "bold") {
		return l.bold
	}
	return l.fallbk
}

// MeasureText returns the rendered width and height of a single text run.
// Implements the scene.Measurer contract.
func (l *Library) MeasureText(content, family string, sizePx float64) (w, h float64) {
	face := l.Face(family, sizePx)
	adv := font.MeasureString(face, content)
	m := face.Metrics()
	return float64(adv) / 64, float64(m.Ascent+m.Descent) / 64
}

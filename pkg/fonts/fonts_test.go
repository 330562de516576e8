package fonts

import "testing"

func TestFaceFallback(t *testing.T) {
	l := NewLibrary()

	// An unknown family must still yield a usable face.
	f := l.Face("definitely-not-installed-font", 24)
	if f == nil {
		t.Fatal("Face returned nil for unknown family")
	}

	// Faces are cached per (family, size).
	if l.Face("definitely-not-installed-font", 24) != f {
		t.Error("Face not cached for repeated lookup")
	}
	if l.Face("definitely-not-installed-font", 25) == f {
		t.Error("different size returned the cached face")
	}
}

func TestMeasureText(t *testing.T) {
	l := NewLibrary()

	w1, h := l.MeasureText("AB", DefaultFamily, 38)
	if w1 <= 0 || h <= 0 {
		t.Fatalf("MeasureText = %vx%v, want positive", w1, h)
	}

	// Longer text is wider; larger size is wider.
	w2, _ := l.MeasureText("ABCD", DefaultFamily, 38)
	if w2 <= w1 {
		t.Errorf("width(ABCD)=%v not greater than width(AB)=%v", w2, w1)
	}
	w3, _ := l.MeasureText("AB", DefaultFamily, 76)
	if w3 <= w1 {
		t.Errorf("width at 76px=%v not greater than width at 38px=%v", w3, w1)
	}
}

func TestMeasureMonotonicShrink(t *testing.T) {
	// The auto-center heuristic shrinks a font 1px at a time until the text
	// fits; measurement must shrink monotonically for it to terminate.
	l := NewLibrary()
	prev, _ := l.MeasureText("LONGNAME", DefaultFamily, 60)
	for size := 59.0; size >= 12; size-- {
		w, _ := l.MeasureText("LONGNAME", DefaultFamily, size)
		if w > prev+0.5 {
			t.Fatalf("width grew from %v to %v at size %v", prev, w, size)
		}
		prev = w
	}
}

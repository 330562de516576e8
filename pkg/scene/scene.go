// Package scene holds the live, renderable object collection for one garment
// view: the template part plus player name, number, custom texts, and custom
// logos, each with a uniform pose contract (position, rotation, scale).
//
// The scene is a plain ordered list. It carries no font or image handling of
// its own: text measurement is injected via Measurer, and rendering happens
// in pkg/export. The scene is owned by the view composer for the duration of
// a view and is not safe for concurrent mutation.
package scene

import "github.com/dotstitch/dotstitch/pkg/geom"

// View identifies one of the five garment facets.
type View string

const (
	ViewFront       View = "front"
	ViewBack        View = "back"
	ViewLeftSleeve  View = "leftSleeve"
	ViewRightSleeve View = "rightSleeve"
	ViewCollar      View = "collar"
)

// Views lists all facets in export order.
func Views() []View {
	return []View{ViewFront, ViewBack, ViewLeftSleeve, ViewRightSleeve, ViewCollar}
}

// Valid reports whether v names a known facet.
func (v View) Valid() bool {
	switch v {
	case ViewFront, ViewBack, ViewLeftSleeve, ViewRightSleeve, ViewCollar:
		return true
	}
	return false
}

// Default canvas dimensions, matching the design surface the placement
// coordinates are expressed in.
const (
	DefaultWidth  = 960
	DefaultHeight = 720
)

// Scene is the live object collection for the currently displayed view.
type Scene struct {
	Width   float64
	Height  float64
	objects []Object
}

// New creates an empty scene with the default canvas size.
func New() *Scene {
	return &Scene{Width: DefaultWidth, Height: DefaultHeight}
}

// Add appends an object to the scene, on top of existing objects.
func (s *Scene) Add(o Object) {
	s.objects = append(s.objects, o)
}

// SendToBack moves o to the bottom of the paint order. Template parts are
// pushed back so texts and logos always paint above them.
func (s *Scene) SendToBack(o Object) {
	for i, cur := range s.objects {
		if cur == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			s.objects = append([]Object{o}, s.objects...)
			return
		}
	}
}

// Remove deletes o from the scene. Removing an absent object is a no-op.
func (s *Scene) Remove(o Object) {
	for i, cur := range s.objects {
		if cur == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

// Clear removes all objects.
func (s *Scene) Clear() {
	s.objects = nil
}

// Objects returns the objects in paint order. The slice is shared; callers
// must not mutate it.
func (s *Scene) Objects() []Object {
	return s.objects
}

// Find returns the first object with the given kind, or nil.
func (s *Scene) Find(k Kind) Object {
	for _, o := range s.objects {
		if o.Role() == k {
			return o
		}
	}
	return nil
}

// FindAll returns all objects with the given kind, in scene order.
func (s *Scene) FindAll(k Kind) []Object {
	var out []Object
	for _, o := range s.objects {
		if o.Role() == k {
			out = append(out, o)
		}
	}
	return out
}

// Texts returns all Text objects with the given kind, in scene order.
func (s *Scene) Texts(k Kind) []*Text {
	var out []*Text
	for _, o := range s.objects {
		if t, ok := o.(*Text); ok && t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// Pictures returns all Picture objects with the given kind, in scene order.
func (s *Scene) Pictures(k Kind) []*Picture {
	var out []*Picture
	for _, o := range s.objects {
		if p, ok := o.(*Picture); ok && p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}

// Template returns the view's template part, or nil if none is loaded.
func (s *Scene) Template() *Picture {
	for _, o := range s.objects {
		if p, ok := o.(*Picture); ok && p.Kind == KindTemplate {
			return p
		}
	}
	return nil
}

// IsDesignContent applies the role filter for bounds and export: visible
// template parts, player name/number, custom texts, and custom logos count;
// the identifier label does not, even though it is visible. Image-backed
// objects without a kind tag are treated as design content, which covers
// sleeve and collar images added without a role.
func IsDesignContent(o Object) bool {
	if !o.IsVisible() {
		return false
	}
	switch o.Role() {
	case KindTemplate, KindPlayerName, KindPlayerNumber, KindCustomText, KindCustomLogo:
		return true
	case KindLabel:
		return false
	}
	if p, ok := o.(*Picture); ok && p.Source != "" {
		return true
	}
	return false
}

// DesignBounds computes the tight union of every design-relevant visible
// object's rendered rectangle. No padding is added: exports crop flush to
// content. Returns nil when nothing qualifies.
func DesignBounds(s *Scene, m Measurer) *geom.Rect {
	return boundsWhere(s, m, IsDesignContent)
}

// KindBounds computes bounds over visible objects of the given kind only.
// Used for per-part exports (a single sleeve or the collar).
func KindBounds(s *Scene, m Measurer, k Kind) *geom.Rect {
	return boundsWhere(s, m, func(o Object) bool {
		return o.IsVisible() && o.Role() == k
	})
}

func boundsWhere(s *Scene, m Measurer, keep func(Object) bool) *geom.Rect {
	var acc *geom.Rect
	for _, o := range s.objects {
		if !keep(o) {
			continue
		}
		b := o.Bounds(m)
		if acc == nil {
			acc = &b
			continue
		}
		u := acc.Union(b)
		acc = &u
	}
	return acc
}

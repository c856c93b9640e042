// Package entity implements the generated content tree: every entity kind,
// its generation rules, its description and its two serialized forms.
package entity

import (
	"starforge/internal/rules"
)

// ID uniquely identifies an entity within a workspace
type ID int64

// Style carries display hints that have no bearing on generation
type Style struct {
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Color  string `json:"color,omitempty"`
}

func (s Style) IsZero() bool {
	return s == Style{}
}

// NameOrigin records how the naming pass last assigned an entity's name
type NameOrigin string

const (
	NameOriginPlaceholder NameOrigin = ""
	NameOriginProcedural  NameOrigin = "procedural"
	NameOriginEvocative   NameOrigin = "evocative"
)

// Entity is a node of the generated tree. The set of implementations is
// closed: every kind lives in this package.
type Entity interface {
	Base() *BaseEntity
	Kind() Kind

	// Reset discards everything a previous generation pass produced:
	// children, derived counters and rolled fields. Structural inputs set by
	// the parent (such as whether a Planet is a moon) survive.
	Reset()

	// UpdateDescription rebuilds Description from the entity's fields
	// without rolling anything.
	UpdateDescription(settings rules.Settings)

	populate(s *Session) error
	state() any
	exportState() any
}

// BaseEntity holds the fields and tree links shared by every kind
type BaseEntity struct {
	ID             ID
	Name           string
	NameCustomized bool
	Description    string
	CustomNote     string
	Reference      rules.Reference
	Style          Style

	kind       Kind
	nameOrigin NameOrigin
	evocative  bool
	parent     Entity
	children   []Entity
}

func newBase(kind Kind) BaseEntity {
	return BaseEntity{kind: kind, Name: kind.Placeholder()}
}

func (b *BaseEntity) Base() *BaseEntity { return b }

func (b *BaseEntity) Kind() Kind { return b.kind }

// Parent is a non-owning link used for upward lookups only
func (b *BaseEntity) Parent() Entity { return b.parent }

// Children returns the owned children in discovery order. The slice must
// not be modified.
func (b *BaseEntity) Children() []Entity { return b.children }

func (b *BaseEntity) ChildCount() int { return len(b.children) }

// NameOrigin reports how the current name was assigned
func (b *BaseEntity) NameOrigin() NameOrigin { return b.nameOrigin }

// Rename sets a user-chosen name that the naming pass will never overwrite
func (b *BaseEntity) Rename(name string) {
	b.Name = name
	b.NameCustomized = true
}

// resetBase clears generated state shared by every kind
func (b *BaseEntity) resetBase() {
	for _, c := range b.children {
		c.Base().parent = nil
	}
	b.children = nil
	b.Description = ""
	b.Reference = rules.Reference{}
	b.evocative = false
	if !b.NameCustomized {
		b.Name = b.kind.Placeholder()
		b.nameOrigin = NameOriginPlaceholder
	}
}

// setGeneratedName assigns a name unless the user has chosen one
func (b *BaseEntity) setGeneratedName(name string, origin NameOrigin) {
	if b.NameCustomized {
		return
	}
	b.Name = name
	b.nameOrigin = origin
}

func attach(parent, child Entity) {
	pb := parent.Base()
	child.Base().parent = parent
	pb.children = append(pb.children, child)
}

// Detach removes e from its parent. Aggregates kept by the parent, such as
// a Zone's hazard counts, are recomputed from the surviving children.
func Detach(e Entity) bool {
	parent := e.Base().parent
	if parent == nil {
		return false
	}
	pb := parent.Base()
	for i, c := range pb.children {
		if c == e {
			pb.children = append(pb.children[:i:i], pb.children[i+1:]...)
			e.Base().parent = nil
			if z, ok := parent.(*Zone); ok {
				z.RecountHazards()
			}
			return true
		}
	}
	return false
}

// Walk visits e and its descendants depth first. Returning false from fn
// skips the entity's children.
func Walk(e Entity, fn func(Entity) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Base().children {
		Walk(c, fn)
	}
}

// Count returns the number of entities in the subtree rooted at e
func Count(e Entity) int {
	n := 0
	Walk(e, func(Entity) bool { n++; return true })
	return n
}

// Find returns the entity with the given id in the subtree, or nil
func Find(root Entity, id ID) Entity {
	var found Entity
	Walk(root, func(e Entity) bool {
		if found != nil {
			return false
		}
		if e.Base().ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// MaxID returns the highest identity used in the subtree
func MaxID(root Entity) ID {
	var highest ID
	Walk(root, func(e Entity) bool {
		highest = max(highest, e.Base().ID)
		return true
	})
	return highest
}

// SystemOf returns the System that e belongs to, or nil for loose entities
func SystemOf(e Entity) *System {
	for cur := e; cur != nil; cur = cur.Base().parent {
		if sys, ok := cur.(*System); ok {
			return sys
		}
	}
	return nil
}

// ZoneOf returns the nearest enclosing Zone, or nil
func ZoneOf(e Entity) *Zone {
	for cur := e.Base().parent; cur != nil; cur = cur.Base().parent {
		if z, ok := cur.(*Zone); ok {
			return z
		}
	}
	return nil
}

// Root returns the top-most ancestor of e
func Root(e Entity) Entity {
	for e.Base().parent != nil {
		e = e.Base().parent
	}
	return e
}

// RefreshDescriptions rebuilds the description of every entity in the subtree
func RefreshDescriptions(e Entity, settings rules.Settings) {
	Walk(e, func(n Entity) bool {
		n.UpdateDescription(settings)
		return true
	})
}

func childrenOfKind[T Entity](e Entity) []T {
	var out []T
	for _, c := range e.Base().children {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func countKind(e Entity, kind Kind) int {
	n := 0
	for _, c := range e.Base().children {
		if c.Kind() == kind {
			n++
		}
	}
	return n
}

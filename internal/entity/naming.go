package entity

import (
	"starforge/internal/naming"
)

// assignNames runs the naming pass over the scope affected by regenerating
// e and returns the root of that scope. Inside a System the whole System is
// renamed so that body letters stay in zone-then-discovery order.
func assignNames(e Entity, s *Session) Entity {
	if sys := SystemOf(e); sys != nil {
		nameSystem(sys, s)
		return sys
	}
	root := Root(e)
	switch root.(type) {
	case *Planet, *GasGiant:
		nameLooseBody(root, s)
	}
	return root
}

// RefreshNames reruns the naming pass over the scope containing e, without
// rolling anything else, and rebuilds the descriptions in that scope. Call it
// after a rename or removal so derived names follow.
func RefreshNames(e Entity, s *Session) {
	scope := assignNames(e, s)
	RefreshDescriptions(scope, s.Settings)
}

func nameSystem(sys *System, s *Session) {
	gen := naming.NewGenerator()
	Walk(sys, func(e Entity) bool {
		b := e.Base()
		if b.NameCustomized || b.nameOrigin == NameOriginEvocative {
			gen.Reserve(b.Name)
		}
		return true
	})

	if sys.nameOrigin == NameOriginPlaceholder {
		sys.setGeneratedName(gen.Unique(s.Dice), NameOriginEvocative)
	}

	forced := sys.HasHumanHomeworld()
	for i, body := range sys.Bodies() {
		b := body.Base()
		evocative := forced || hasMajorSettlement(body) ||
			(sys.NamingStyle == NamingEvocative && b.evocative)

		switch {
		case b.NameCustomized:
		case evocative && b.nameOrigin == NameOriginEvocative:
		case evocative:
			b.setGeneratedName(gen.Unique(s.Dice), NameOriginEvocative)
		default:
			b.setGeneratedName(naming.Body(sys.Name, i), NameOriginProcedural)
		}
		nameSatellites(body, evocative)
	}
}

// nameLooseBody names a body that belongs to no System. Without a system
// name to letter from, it always takes an evocative name.
func nameLooseBody(body Entity, s *Session) {
	b := body.Base()
	if b.nameOrigin == NameOriginPlaceholder {
		gen := naming.NewGenerator()
		b.setGeneratedName(gen.Unique(s.Dice), NameOriginEvocative)
	}
	nameSatellites(body, true)
}

// nameSatellites numbers everything in the body's orbital features by
// discovery order, regardless of satellite kind
func nameSatellites(body Entity, evocative bool) {
	of := orbitalFeaturesOf(body)
	if of == nil {
		return
	}
	name := body.Base().Name
	for i, m := range of.children {
		m.Base().setGeneratedName(naming.Moon(name, i+1, evocative), NameOriginProcedural)
	}
}

// hasMajorSettlement reports whether the body, or anything orbiting it,
// hosts inhabitants of a major development tier
func hasMajorSettlement(body Entity) bool {
	found := false
	Walk(body, func(e Entity) bool {
		switch x := e.(type) {
		case *Planet:
			found = found || x.Inhabitants.IsMajor()
		case *GasGiant:
			found = found || x.Inhabitants.IsMajor()
		}
		return !found
	})
	return found
}

func orbitalFeaturesOf(body Entity) *OrbitalFeatures {
	for _, c := range body.Base().children {
		if of, ok := c.(*OrbitalFeatures); ok {
			return of
		}
	}
	return nil
}

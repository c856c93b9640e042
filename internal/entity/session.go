package entity

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"starforge/internal/dice"
	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
)

// IDAllocator hands out identities for newly created entities
type IDAllocator interface {
	NextID() ID
}

// Counter is a monotonic IDAllocator
type Counter struct {
	next ID
}

// NewCounter returns a counter whose first identity is last+1
func NewCounter(last ID) *Counter {
	return &Counter{next: last}
}

func (c *Counter) NextID() ID {
	c.next++
	return c.next
}

// Last returns the most recently issued identity
func (c *Counter) Last() ID {
	return c.next
}

// Session carries everything a single generation pass needs: the dice, the
// host settings and the identity source. It is not safe for concurrent use.
type Session struct {
	ID       uuid.UUID
	Dice     *dice.Roller
	Settings rules.Settings
	IDs      IDAllocator
	Logger   *slog.Logger

	// loose is the creation rules record shared by entities generated
	// outside any System during the current pass
	loose *rules.CreationRules
}

// NewSession builds a session. A nil logger falls back to slog.Default().
func NewSession(seed uint64, settings rules.Settings, ids IDAllocator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if ids == nil {
		ids = NewCounter(0)
	}
	id := uuid.New()
	return &Session{
		ID:       id,
		Dice:     dice.New(seed),
		Settings: settings,
		IDs:      ids,
		Logger:   logger.With("session_id", id.String(), "seed", seed),
	}
}

// rulesFor returns the creation rules governing e. Entities inside a System
// share the System's record; loose entities share a record scoped to the
// current pass.
func (s *Session) rulesFor(e Entity) *rules.CreationRules {
	if sys := SystemOf(e); sys != nil {
		if sys.Rules == nil {
			sys.Rules = rules.NewCreationRules()
		}
		return sys.Rules
	}
	if s.loose == nil {
		s.loose = rules.NewCreationRules()
	}
	return s.loose
}

// spawn creates an empty child of the given kind under parent
func (s *Session) spawn(parent Entity, kind Kind) Entity {
	if !CanContain(parent.Kind(), kind) {
		panic(fmt.Sprintf("entity: %s cannot contain %s", parent.Kind(), kind))
	}
	child := mustNew(kind)
	child.Base().ID = s.IDs.NextID()
	if p, ok := child.(*Planet); ok && parent.Kind() == KindOrbitalFeatures {
		p.IsMoon = true
		p.Name = moonPlaceholder
	}
	attach(parent, child)
	return child
}

// generateChild spawns a child and populates it
func (s *Session) generateChild(parent Entity, kind Kind) (Entity, error) {
	child := s.spawn(parent, kind)
	if err := child.populate(s); err != nil {
		return nil, err
	}
	return child, nil
}

// Generate resets e and rolls it afresh together with every child it owns,
// then runs the naming pass and rebuilds descriptions for the affected
// subtree.
func Generate(e Entity, s *Session) error {
	logger := s.Logger.With(
		"component", "generator",
		"operation", "generate",
		"kind", e.Kind(),
		"entity_id", e.Base().ID,
	)
	logger.Debug("Generating entity")

	s.loose = nil
	e.Reset()
	if err := e.populate(s); err != nil {
		logger.Warn("Generation failed", "error", err)
		return fmt.Errorf("failed to generate %s: %w", e.Kind(), err)
	}

	scope := assignNames(e, s)
	RefreshDescriptions(scope, s.Settings)

	logger.Info("Entity generated",
		"name", e.Base().Name,
		"children", e.Base().ChildCount(),
		"nodes", Count(e),
		"draws", s.Dice.Calls(),
	)
	return nil
}

// CreateChild adds a freshly generated child of the given kind to parent
func CreateChild(parent Entity, kind Kind, s *Session) (Entity, error) {
	if !CanContain(parent.Kind(), kind) || kind == KindZone {
		return nil, apperrors.Validationf("%s cannot contain a new %s", parent.Kind(), kind)
	}
	if kind == KindOrbitalFeatures && orbitalFeaturesOf(parent) != nil {
		return nil, apperrors.Validationf("%s#%d already has orbital features", parent.Kind(), parent.Base().ID)
	}
	child := s.spawn(parent, kind)
	if err := Generate(child, s); err != nil {
		Detach(child)
		return nil, err
	}
	if z, ok := parent.(*Zone); ok {
		z.RecountHazards()
		z.UpdateDescription(s.Settings)
	}
	return child, nil
}

// Create allocates and generates a new root entity of the given kind
func Create(kind Kind, s *Session) (Entity, error) {
	e, err := New(kind)
	if err != nil {
		return nil, err
	}
	e.Base().ID = s.IDs.NextID()
	if err := Generate(e, s); err != nil {
		return nil, err
	}
	return e, nil
}

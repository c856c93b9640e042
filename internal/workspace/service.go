// Package workspace manages a collection of generated root entities, the
// identity counter they share, and their saved and exported documents.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"starforge/internal/dice"
	"starforge/internal/entity"
	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
)

type Service struct {
	repo     *Repository
	counter  *entity.Counter
	settings rules.Settings
	logger   *slog.Logger
	now      func() time.Time
	// edits seeds the naming passes that follow a rename or removal
	edits *dice.Roller
}

func NewService(repo *Repository, settings rules.Settings, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		counter:  entity.NewCounter(repo.MaxID()),
		settings: settings,
		logger:   logger.With("component", "workspace"),
		now:      time.Now,
		edits:    dice.New(uint64(time.Now().UnixNano())),
	}
}

// editSalt separates the edit seeds from the generation draws of the same seed
const editSalt = 0x5eed_ed17

// session starts a generation pass and reseeds the source of edit seeds
// from seed.
func (s *Service) session(seed uint64) *entity.Session {
	s.edits = dice.New(seed ^ editSalt)
	return entity.NewSession(seed, s.settings, s.counter, s.logger)
}

// editSession starts a naming pass for an edit
func (s *Service) editSession() *entity.Session {
	return entity.NewSession(s.edits.Uint64(), s.settings, s.counter, s.logger)
}

// Settings returns the host settings in effect
func (s *Service) Settings() rules.Settings {
	return s.settings
}

// SetSettings replaces the host settings and rebuilds every description
func (s *Service) SetSettings(settings rules.Settings) {
	s.settings = settings
	for _, root := range s.repo.Roots() {
		entity.RefreshDescriptions(root, settings)
	}
}

// LastID returns the most recently issued identity
func (s *Service) LastID() entity.ID {
	return s.counter.Last()
}

func (s *Service) Roots() []entity.Entity {
	return s.repo.Roots()
}

// Find returns the entity with the given id anywhere in the workspace
func (s *Service) Find(id entity.ID) (entity.Entity, error) {
	if e := s.repo.Find(id); e != nil {
		return e, nil
	}
	return nil, apperrors.NotFoundf("entity %d not found", id)
}

// Create generates a new root entity
func (s *Service) Create(kind entity.Kind, seed uint64) (entity.Entity, error) {
	logger := s.logger.With("operation", "create", "kind", kind)
	logger.Debug("Creating root entity")

	if !entity.CanBeRoot(kind) {
		return nil, apperrors.Validationf("%s cannot be created at the workspace root", kind)
	}
	e, err := entity.Create(kind, s.session(seed))
	if err != nil {
		return nil, err
	}
	s.repo.Add(e)

	logger.Info("Root entity created", "entity_id", e.Base().ID, "name", e.Base().Name)
	return e, nil
}

// CreateChild generates a new child under the entity with the given id
func (s *Service) CreateChild(parentID entity.ID, kind entity.Kind, seed uint64) (entity.Entity, error) {
	logger := s.logger.With("operation", "create_child", "parent_id", parentID, "kind", kind)
	logger.Debug("Creating child entity")

	parent, err := s.Find(parentID)
	if err != nil {
		return nil, err
	}
	child, err := entity.CreateChild(parent, kind, s.session(seed))
	if err != nil {
		return nil, err
	}

	logger.Info("Child entity created", "entity_id", child.Base().ID, "name", child.Base().Name)
	return child, nil
}

// Generate rerolls the entity with the given id and everything it owns
func (s *Service) Generate(id entity.ID, seed uint64) (entity.Entity, error) {
	e, err := s.Find(id)
	if err != nil {
		return nil, err
	}
	if err := entity.Generate(e, s.session(seed)); err != nil {
		return nil, err
	}
	return e, nil
}

// Rename gives an entity a customized name. Names derived from it, such as
// moon and lettered body names, are refreshed.
func (s *Service) Rename(id entity.ID, name string) (entity.Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("name cannot be empty")
	}
	e, err := s.Find(id)
	if err != nil {
		return nil, err
	}
	e.Base().Rename(name)
	entity.RefreshNames(e, s.editSession())

	s.logger.Info("Entity renamed", "operation", "rename", "entity_id", id, "name", name)
	return e, nil
}

// SetNote replaces the entity's custom note. Generation never touches it.
func (s *Service) SetNote(id entity.ID, note string) error {
	e, err := s.Find(id)
	if err != nil {
		return err
	}
	e.Base().CustomNote = note
	return nil
}

// Remove deletes an entity and its descendants. Zones cannot be removed
// from their System.
func (s *Service) Remove(id entity.ID) error {
	e, err := s.Find(id)
	if err != nil {
		return err
	}
	if s.repo.IsRoot(e) {
		s.repo.Remove(id)
		s.logger.Info("Root entity removed", "operation", "remove", "entity_id", id)
		return nil
	}
	if e.Kind() == entity.KindZone {
		return apperrors.Validationf("a System always keeps its three zones")
	}

	parent := e.Base().Parent()
	entity.Detach(e)
	if of, ok := parent.(*entity.OrbitalFeatures); ok && of.IsEmpty() {
		host := of.Parent()
		entity.Detach(of)
		parent = host
	}
	entity.RefreshNames(parent, s.editSession())

	s.logger.Info("Entity removed", "operation", "remove", "entity_id", id, "kind", e.Kind())
	return nil
}

// Save captures the workspace as a document
func (s *Service) Save() (Document, error) {
	doc := Document{
		Version:       FormatVersion,
		RootNodes:     make([]entity.Record, 0, len(s.repo.Roots())),
		NodeIDCounter: s.counter.Last(),
	}
	for _, root := range s.repo.Roots() {
		rec, err := entity.ToRecord(root)
		if err != nil {
			return Document{}, err
		}
		doc.RootNodes = append(doc.RootNodes, rec)
	}
	return doc, nil
}

// Load replaces the workspace contents with a saved document. Roots that
// fail to restore are skipped and reported together; the rest are kept.
// The counter resumes past every identity in use.
func (s *Service) Load(doc Document) error {
	logger := s.logger.With("operation", "load", "version", doc.Version)
	logger.Debug("Loading workspace", "roots", len(doc.RootNodes))

	var (
		roots []entity.Entity
		errs  []error
		owner = make(map[entity.ID]int)
	)
	for i, rec := range doc.RootNodes {
		e, err := entity.Restore(rec, s.settings)
		if err != nil {
			errs = append(errs, fmt.Errorf("root %d: %w", i, err))
			continue
		}
		if !entity.CanBeRoot(e.Kind()) {
			errs = append(errs, apperrors.MalformedInputf("root %d: %s#%d cannot be a root", i, e.Kind(), rec.ID))
			continue
		}
		ids := entity.IDs(e)
		if err := checkUnclaimed(ids, owner); err != nil {
			errs = append(errs, apperrors.WrapMalformedInput(fmt.Sprintf("root %d: %s#%d", i, e.Kind(), rec.ID), err))
			continue
		}
		for _, id := range ids {
			owner[id] = i
		}
		roots = append(roots, e)
	}

	s.repo.Replace(roots)
	s.counter = entity.NewCounter(max(doc.NodeIDCounter, s.repo.MaxID()))

	if len(errs) > 0 {
		logger.Warn("Workspace loaded with errors", "roots", len(roots), "failed", len(errs))
		return errors.Join(errs...)
	}
	logger.Info("Workspace loaded", "roots", len(roots), "last_id", s.counter.Last())
	return nil
}

// Export renders every root, with descendants, in the external form
func (s *Service) Export() ExportDocument {
	doc := ExportDocument{
		ExportDate: s.now().UTC().Format(time.RFC3339),
		Nodes:      make([]entity.ExportRecord, 0, len(s.repo.Roots())),
	}
	for _, root := range s.repo.Roots() {
		doc.Nodes = append(doc.Nodes, entity.Export(root, true))
	}
	return doc
}

// ExportNode renders a single entity in the external form, with its
// descendants when merged is set
func (s *Service) ExportNode(id entity.ID, merged bool) (entity.ExportRecord, error) {
	e, err := s.Find(id)
	if err != nil {
		return entity.ExportRecord{}, err
	}
	return entity.Export(e, merged), nil
}

// checkUnclaimed reports the first id already owned by an earlier root
func checkUnclaimed(ids []entity.ID, owner map[entity.ID]int) error {
	for _, id := range ids {
		if root, ok := owner[id]; ok {
			return fmt.Errorf("id %d is already used by root %d", id, root)
		}
	}
	return nil
}

package entity

import (
	"encoding/json"
	"fmt"

	"starforge/internal/rules"
	apperrors "starforge/internal/shared/errors"
)

// Record is the lossless internal form of an entity. Descriptions are not
// stored: they are rebuilt from state after a restore.
type Record struct {
	Type           Kind             `json:"type"`
	ID             ID               `json:"id"`
	Name           string           `json:"name"`
	NameCustomized bool             `json:"nameCustomized,omitempty"`
	NameOrigin     NameOrigin       `json:"nameOrigin,omitempty"`
	Evocative      bool             `json:"evocative,omitempty"`
	CustomNote     string           `json:"customDescription,omitempty"`
	PageReference  *rules.Reference `json:"pageReference,omitempty"`
	Style          *Style           `json:"style,omitempty"`
	Data           json.RawMessage  `json:"data,omitempty"`
	Children       []Record         `json:"children,omitempty"`
}

// ExportRecord is the cleaned external form. It carries no identity,
// styling or citation and cannot be restored.
type ExportRecord struct {
	Type        Kind           `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Notes       string         `json:"notes,omitempty"`
	Details     any            `json:"details,omitempty"`
	Children    []ExportRecord `json:"children,omitempty"`
}

// ToRecord converts e and its descendants to the internal form
func ToRecord(e Entity) (Record, error) {
	b := e.Base()
	rec := Record{
		Type:           e.Kind(),
		ID:             b.ID,
		Name:           b.Name,
		NameCustomized: b.NameCustomized,
		NameOrigin:     b.nameOrigin,
		Evocative:      b.evocative,
		CustomNote:     b.CustomNote,
	}
	if !b.Reference.IsZero() {
		ref := b.Reference
		rec.PageReference = &ref
	}
	if !b.Style.IsZero() {
		style := b.Style
		rec.Style = &style
	}

	data, err := json.Marshal(e.state())
	if err != nil {
		return Record{}, apperrors.WrapInternal(fmt.Sprintf("failed to encode %s#%d", e.Kind(), b.ID), err)
	}
	rec.Data = data

	for _, c := range b.children {
		child, err := ToRecord(c)
		if err != nil {
			return Record{}, err
		}
		rec.Children = append(rec.Children, child)
	}
	return rec, nil
}

// Export converts e to the external form. Children are included only when
// merged is set.
func Export(e Entity, merged bool) ExportRecord {
	b := e.Base()
	out := ExportRecord{
		Type:        e.Kind(),
		Name:        b.Name,
		Description: b.Description,
		Notes:       b.CustomNote,
		Details:     e.exportState(),
	}
	if merged {
		for _, c := range b.children {
			out.Children = append(out.Children, Export(c, true))
		}
	}
	return out
}

// Restore rebuilds a typed tree from its internal form and refreshes every
// description. Errors name the path of the offending node.
func Restore(rec Record, settings rules.Settings) (Entity, error) {
	e, err := restore(rec, nil, rootPath(rec), make(map[ID]string))
	if err != nil {
		return nil, err
	}
	RefreshDescriptions(e, settings)
	return e, nil
}

func rootPath(rec Record) string {
	return fmt.Sprintf("%s#%d", displayKind(rec.Type), rec.ID)
}

func displayKind(k Kind) string {
	if k == "" {
		return "?"
	}
	return string(k)
}

// restore rebuilds one node and its children. seen maps every identity
// restored so far to its path.
func restore(rec Record, parent Entity, path string, seen map[ID]string) (Entity, error) {
	e, err := New(rec.Type)
	if err != nil {
		return nil, apperrors.WrapMalformedInput(path, err)
	}
	if parent != nil && !CanContain(parent.Kind(), e.Kind()) {
		return nil, apperrors.MalformedInputf("%s: %s cannot contain %s", path, parent.Kind(), e.Kind())
	}
	if other, ok := seen[rec.ID]; ok {
		return nil, apperrors.MalformedInputf("%s: id %d is already used by %s", path, rec.ID, other)
	}
	seen[rec.ID] = path

	b := e.Base()
	b.ID = rec.ID
	b.Name = rec.Name
	b.NameCustomized = rec.NameCustomized
	b.nameOrigin = rec.NameOrigin
	b.evocative = rec.Evocative
	b.CustomNote = rec.CustomNote
	if rec.PageReference != nil {
		b.Reference = *rec.PageReference
	}
	if rec.Style != nil {
		b.Style = *rec.Style
	}
	if len(rec.Data) > 0 {
		if err := json.Unmarshal(rec.Data, e.state()); err != nil {
			return nil, apperrors.WrapMalformedInput(path+": invalid data", err)
		}
	}

	for i, child := range rec.Children {
		c, err := restore(child, e, fmt.Sprintf("%s/%s[%d]", path, displayKind(child.Type), i), seen)
		if err != nil {
			return nil, err
		}
		attach(e, c)
	}
	if err := checkShape(e); err != nil {
		return nil, apperrors.MalformedInputf("%s: %s", path, err)
	}
	return e, nil
}

// checkShape verifies the structure generation guarantees: a System holds
// the three zones in order, and a body has at most one orbital features
// container.
func checkShape(e Entity) error {
	switch x := e.(type) {
	case *System:
		zones := x.Zones()
		want := ZoneKinds()
		if len(x.children) != len(want) || len(zones) != len(want) {
			return fmt.Errorf("a System needs exactly %d zones, found %d children", len(want), len(x.children))
		}
		for i, z := range zones {
			if z.Zone != want[i] {
				return fmt.Errorf("zone %d is %q, want %q", i, z.Zone, want[i])
			}
		}
	case *Planet, *GasGiant:
		if n := countKind(e, KindOrbitalFeatures); n > 1 {
			return fmt.Errorf("%s has %d orbital features containers", e.Kind(), n)
		}
	}
	return nil
}

// IDs returns every identity used in the tree rooted at e
func IDs(e Entity) []ID {
	var ids []ID
	Walk(e, func(x Entity) bool {
		ids = append(ids, x.Base().ID)
		return true
	})
	return ids
}

package workspace

import (
	"encoding/json"

	"starforge/internal/entity"
	apperrors "starforge/internal/shared/errors"
)

// FormatVersion is written into every saved document
const FormatVersion = "1.0"

// Document is the persisted state of a workspace. Host settings are not
// part of it.
type Document struct {
	Version       string          `json:"version"`
	RootNodes     []entity.Record `json:"rootNodes"`
	NodeIDCounter entity.ID       `json:"nodeIdCounter"`
}

// ExportDocument is the external form of several root entities
type ExportDocument struct {
	ExportDate string                `json:"exportDate"`
	Nodes      []entity.ExportRecord `json:"nodes"`
}

// DecodeDocument parses a saved workspace
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, apperrors.WrapMalformedInput("invalid workspace document", err)
	}
	if doc.Version == "" {
		return Document{}, apperrors.MalformedInputf("workspace document has no version")
	}
	return doc, nil
}

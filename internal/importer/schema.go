// Package importer defines the project export document and the conversions
// between it and the store.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/shutterflow/internal/domain"
)

// FormatVersion is written into every export.
const FormatVersion = "1.0"

// ExportDocument is the top-level JSON structure of a project export.
type ExportDocument struct {
	Version      string          `json:"version" validate:"required"`
	ExportDate   time.Time       `json:"exportDate"`
	Project      *domain.Project `json:"project" validate:"required"`
	RelatedNotes []*domain.Note  `json:"relatedNotes"`
	Metadata     Metadata        `json:"metadata"`
}

// Metadata describes the tool that produced an export.
type Metadata struct {
	AppVersion string `json:"appVersion"`
	Platform   string `json:"platform"`
	ExportedBy string `json:"exportedBy"`
}

// LoadDocument reads and parses an export file.
func LoadDocument(path string) (*ExportDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDocument(f)
}

// ParseDocument parses an export document. It does not validate it.
func ParseDocument(r io.Reader) (*ExportDocument, error) {
	var doc ExportDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &doc, nil
}

// WriteDocument writes doc as indented JSON.
func WriteDocument(w io.Writer, doc *ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

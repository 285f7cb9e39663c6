package importer

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// BuildDocument assembles the export for project. Related notes are picked
// from notes by keyword match.
func BuildDocument(project *domain.Project, notes []*domain.Note, meta Metadata, now time.Time) *ExportDocument {
	return &ExportDocument{
		Version:      FormatVersion,
		ExportDate:   now.UTC(),
		Project:      project,
		RelatedNotes: RelatedNotes(project, notes),
		Metadata:     meta,
	}
}

var lower = cases.Lower(language.French)

// Keywords returns the lowercased project name, city and building names used
// to associate notes with a project. Empty values are skipped.
func Keywords(p *domain.Project) []string {
	var out []string
	add := func(s string) {
		s = strings.TrimSpace(lower.String(s))
		if s != "" {
			out = append(out, s)
		}
	}
	add(p.Name)
	add(p.City)
	for _, b := range p.Buildings {
		add(b.Name)
	}
	return out
}

// RelatedNotes returns the notes whose title, description, location, content
// or tags contain any project keyword. The result is never nil.
func RelatedNotes(p *domain.Project, notes []*domain.Note) []*domain.Note {
	related := []*domain.Note{}
	keywords := Keywords(p)
	if len(keywords) == 0 {
		return related
	}
	for _, n := range notes {
		text := lower.String(strings.Join(append([]string{
			n.Title, n.Description, n.Location, n.Content,
		}, n.Tags...), " "))
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				related = append(related, n)
				break
			}
		}
	}
	return related
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeFileName strips diacritics and replaces every character outside
// [A-Za-z0-9_-] with an underscore.
func SanitizeFileName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	return unsafeFileChars.ReplaceAllString(stripped, "_")
}

// ExportFileName returns "<sanitized name>_<YYYY-MM-DD>.json".
func ExportFileName(projectName string, date time.Time) string {
	base := SanitizeFileName(projectName)
	if base == "" {
		base = "export"
	}
	return base + "_" + date.Format("2006-01-02") + ".json"
}

package store

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var folder = cases.Lower(language.French)

// SearchShutters returns every shutter whose combined text contains all
// whitespace-separated tokens of query, in tree order. A blank query matches
// nothing.
func (s *Store) SearchShutters(ctx context.Context, query string) []SearchResult {
	tokens := strings.Fields(folder.String(query))
	if len(tokens) == 0 {
		return nil
	}

	s.ensureLoaded(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []SearchResult
	for _, p := range s.projects {
		for _, b := range p.Buildings {
			for _, z := range b.FunctionalZones {
				for _, sh := range z.Shutters {
					haystack := folder.String(strings.Join([]string{
						sh.Name, z.Name, b.Name, p.Name, p.City, sh.Remarks,
					}, " "))
					if containsAll(haystack, tokens) {
						results = append(results, SearchResult{Project: p, Building: b, Zone: z, Shutter: sh})
					}
				}
			}
		}
	}
	return results
}

func containsAll(haystack string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

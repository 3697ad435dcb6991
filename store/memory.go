package store

import (
	"context"
	"sort"
	"strings"
)

// MemoryStore is an in-process StructuredStore fixture, used by tests and
// by any deployment small enough not to need Postgres.
type MemoryStore struct {
	statutes []Statute
	cases    []Case
	mappings []Mapping
}

var _ StructuredStore = (*MemoryStore)(nil)

// NewMemoryStore builds a store over the given fixtures.
func NewMemoryStore(statutes []Statute, cases []Case, mappings []Mapping) *MemoryStore {
	return &MemoryStore{statutes: statutes, cases: cases, mappings: mappings}
}

func (m *MemoryStore) GetSection(ctx context.Context, sectionNumber, actCode string) (*Statute, error) {
	for i := range m.statutes {
		s := m.statutes[i]
		if s.SectionNumber == sectionNumber && strings.EqualFold(s.ActCode, actCode) {
			return &s, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) SearchStatutes(ctx context.Context, query string, actCodes []string, domain string, limit int) ([]Statute, error) {
	q := strings.ToLower(query)
	allowed := toSet(actCodes)
	var out []Statute
	for _, s := range m.statutes {
		if len(allowed) > 0 && !allowed[strings.ToUpper(s.ActCode)] {
			continue
		}
		if domain != "" && domain != "all" && s.Domain != domain {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(s.Title), q) && !strings.Contains(strings.ToLower(s.Content), q) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) GetIPCBNSMapping(ctx context.Context, ipcSection string) (*Mapping, error) {
	for i := range m.mappings {
		if m.mappings[i].IPCSection == ipcSection {
			mp := m.mappings[i]
			return &mp, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) GetCasesBySection(ctx context.Context, sectionNumber string, limit int) ([]Case, error) {
	var out []Case
	for _, c := range m.cases {
		if containsString(c.CitedSections, sectionNumber) {
			out = append(out, c)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MemoryStore) SearchCases(ctx context.Context, query string, court, domain string, limit int) ([]Case, error) {
	q := strings.ToLower(query)
	var out []Case
	for _, c := range m.cases {
		if court != "" && c.Court != court {
			continue
		}
		if domain != "" && domain != "all" && c.Domain != domain {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.CaseName), q) && !strings.Contains(strings.ToLower(c.Summary), q) {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) GetLandmarkCases(ctx context.Context, domain string, limit int) ([]Case, error) {
	var out []Case
	for _, c := range m.cases {
		if !c.IsLandmark {
			continue
		}
		if domain != "" && domain != "all" && c.Domain != domain {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReportingYear > out[j].ReportingYear })
	return out, nil
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[strings.ToUpper(item)] = true
	}
	return out
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/lexindia/agent/domain"
	"github.com/lexindia/agent/store"
)

// CitationBuilder is stage S5: turns statutes, cases, and mappings into
// verifiable citation records with a deterministic URL per §4.5, then
// dedupes by URL preserving first occurrence. Grounded on
// original_source's citation_agent.py.
type CitationBuilder struct{}

var _ Stage = (*CitationBuilder)(nil)

func NewCitationBuilder() *CitationBuilder { return &CitationBuilder{} }

func (b *CitationBuilder) Name() StageName { return StageCitationBuilder }

func (b *CitationBuilder) Process(ctx context.Context, rc *RequestContext) error {
	var citations []Citation
	nextID := 1

	for _, st := range rc.Statutes {
		citations = append(citations, statuteCitation(st, nextID))
		nextID++
	}
	for _, cs := range rc.CaseLaws {
		citations = append(citations, caseCitation(cs, nextID))
		nextID++
	}
	for _, mp := range rc.IPCBNSMappings {
		citations = append(citations, mappingCitation(mp, nextID))
		nextID++
	}

	rc.Citations = dedupeByURL(citations)
	return nil
}

func statuteCitation(s store.Statute, id int) Citation {
	var url, sourceKey string
	switch s.ActCode {
	case "IPC":
		if docID, ok := domain.IPCDocumentIDs[s.SectionNumber]; ok {
			url = domain.DocumentURL(docID)
		} else {
			url = domain.SearchURL(fmt.Sprintf("section %s IPC", s.SectionNumber))
		}
		sourceKey = "indiankanoon"
	case "BNS":
		url = domain.SearchURL(fmt.Sprintf("section %s BNS Bharatiya Nyaya Sanhita", s.SectionNumber))
		sourceKey = "indiankanoon"
	default:
		url = domain.SearchURL(fmt.Sprintf("%s section %s", s.ActCode, s.SectionNumber))
		sourceKey = "indiankanoon"
	}

	excerpt := truncateRunes(s.Content, 500)
	if excerpt == "" {
		excerpt = fmt.Sprintf("Section %s of %s: %s", s.SectionNumber, s.ActName, s.Title)
	}
	excerpt = domain.CleanLegalText(excerpt)

	title := citationTitle(s.ActName, s.ActCode, s.SectionNumber, s.Title)

	return Citation{
		ID:            strconv.Itoa(id),
		Type:          CitationStatute,
		Title:         title,
		SourceKey:     sourceKey,
		SourceName:    domain.OfficialSources["indiankanoon"].Name,
		URL:           url,
		Excerpt:       excerpt,
		Year:          s.YearEnacted,
		Verified:      true,
		SectionNumber: s.SectionNumber,
		ActCode:       s.ActCode,
	}
}

func citationTitle(actName, actCode, section, title string) string {
	name := actName
	if name == "" {
		name = actCode
	}
	switch {
	case section != "" && title != "":
		return fmt.Sprintf("%s - Section %s: %s", name, section, title)
	case section != "":
		return fmt.Sprintf("%s - Section %s", name, section)
	case title != "":
		return fmt.Sprintf("%s: %s", name, title)
	default:
		return name + " - Legal Provision"
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

func caseCitation(c store.Case, id int) Citation {
	url := c.SourceURL
	sourceKey := "indiankanoon"
	if url == "" {
		safeName := nonAlphanumeric.ReplaceAllString(c.CaseName, "")
		query := strings.TrimSpace(safeName)
		switch c.Court {
		case "supreme_court":
			url = domain.SearchURL(query + " supreme court")
		case "high_court":
			url = domain.SearchURL(query + " high court")
		default:
			url = domain.SearchURL(query)
		}
	} else if !strings.Contains(url, "indiankanoon") {
		sourceKey = "sci"
	}

	title := c.CaseName
	if c.CitationString != "" {
		title = fmt.Sprintf("%s (%s)", c.CaseName, c.CitationString)
	}

	excerpt := ""
	if c.Summary != "" {
		excerpt = domain.CleanLegalText(truncateRunes(c.Summary, 300))
	}

	return Citation{
		ID:         strconv.Itoa(id),
		Type:       CitationCase,
		Title:      title,
		SourceKey:  sourceKey,
		SourceName: domain.OfficialSources[sourceKey].Name,
		URL:        url,
		Excerpt:    excerpt,
		Year:       c.ReportingYear,
		Verified:   true,
		IsLandmark: c.IsLandmark,
	}
}

func mappingCitation(m store.Mapping, id int) Citation {
	return Citation{
		ID:         strconv.Itoa(id),
		Type:       CitationMapping,
		Title:      fmt.Sprintf("IPC Section %s → BNS Section %s Mapping", m.IPCSection, m.BNSSection),
		TitleHi:    fmt.Sprintf("IPC धारा %s → BNS धारा %s मैपिंग", m.IPCSection, m.BNSSection),
		SourceKey:  "gazette",
		SourceName: domain.OfficialSources["gazette"].Name,
		URL:        "https://egazette.gov.in/WriteReadData/2023/248044.pdf",
		Excerpt:    fmt.Sprintf("Cross-reference between old IPC Section %s and new BNS Section %s", m.IPCSection, m.BNSSection),
		Year:       2023,
		Verified:   true,
	}
}

// dedupeByURL removes repeat citations pointing at the same URL, keeping the
// first occurrence's ID and ordering (§3's citation invariant).
func dedupeByURL(citations []Citation) []Citation {
	return lo.UniqBy(citations, func(c Citation) string { return c.URL })
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

package pipeline

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/lexindia/agent/domain"
	syncutil "github.com/lexindia/agent/pkg/sync"
	"github.com/lexindia/agent/search"
	"github.com/lexindia/agent/store"
)

const defaultRetrievalConcurrency = 8

// StatuteRetriever is stage S2: direct section lookup, hybrid semantic
// retrieval over the document corpus, and a keyword-search fallback,
// followed by IPC<->BNS mapping lookup for whatever IPC sections surfaced.
// Grounded on original_source's statute_agent.py.
type StatuteRetriever struct {
	store       store.StructuredStore
	engine      *search.Engine // optional: nil degrades to structured-store-only retrieval
	concurrency int            // caps concurrent per-section structured-store lookups
}

var _ Stage = (*StatuteRetriever)(nil)

// NewStatuteRetriever wires a StatuteRetriever. concurrency bounds how many
// section lookups run at once; <= 0 falls back to defaultRetrievalConcurrency.
func NewStatuteRetriever(st store.StructuredStore, engine *search.Engine, concurrency int) *StatuteRetriever {
	if concurrency <= 0 {
		concurrency = defaultRetrievalConcurrency
	}
	return &StatuteRetriever{store: st, engine: engine, concurrency: concurrency}
}

func (s *StatuteRetriever) Name() StageName { return StageStatuteRetriever }

type sectionLookup struct{ section, act string }

func (s *StatuteRetriever) Process(ctx context.Context, rc *RequestContext) error {
	sections := lo.FilterMap(rc.Entities, func(e Entity, _ int) (string, bool) {
		return e.Value, e.Kind == "section"
	})

	acts := rc.ApplicableActs
	if len(acts) == 0 {
		acts = []string{"IPC", "BNS"}
	}

	var lookups []sectionLookup
	for _, section := range sections {
		for _, act := range acts {
			lookups = append(lookups, sectionLookup{section, act})
		}
	}

	found := make([]*store.Statute, len(lookups))
	if len(lookups) > 0 {
		limiter := syncutil.NewLimiter(s.concurrency)
		g, gctx := errgroup.WithContext(ctx)
		for i, lk := range lookups {
			i, lk := i, lk
			g.Go(func() error {
				limiter.Acquire()
				defer limiter.Release()
				st, err := s.store.GetSection(gctx, lk.section, lk.act)
				if err != nil {
					return fmt.Errorf("get section %s %s: %w", lk.act, lk.section, err)
				}
				found[i] = st
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	seen := map[string]bool{}
	var retrieved []store.Statute
	for _, st := range found {
		if st != nil && !seen[st.ID] {
			seen[st.ID] = true
			retrieved = append(retrieved, *st)
		}
	}

	query := rc.ReformulatedQuery
	if query == "" {
		query = rc.Query
	}

	effectiveDomain := string(rc.SpecifiedDomain)
	if effectiveDomain == "" || effectiveDomain == domain.DomainWildcard {
		effectiveDomain = string(rc.DetectedDomain)
	}

	if s.engine != nil {
		filters := search.Filters{Domain: effectiveDomain}
		hits, err := s.engine.Search(ctx, query, filters, 5, true)
		if err != nil {
			rc.AppendError(s.Name(), fmt.Sprintf("semantic statute search degraded: %v", err))
		}
		for _, h := range hits {
			id := h.Metadata.Filename
			if id == "" {
				id = h.Content
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			retrieved = append(retrieved, store.Statute{
				ID:      id,
				ActName: h.Metadata.ActName,
				Content: h.Content,
				Domain:  h.Metadata.Domain,
				Source:  "document",
			})
		}
	}

	if len(retrieved) == 0 {
		found, err := s.store.SearchStatutes(ctx, query, acts, effectiveDomain, 5)
		if err != nil {
			return fmt.Errorf("search statutes: %w", err)
		}
		retrieved = found
	}

	var mappings []store.Mapping
	for _, st := range retrieved {
		if st.ActCode != "IPC" {
			continue
		}
		mp, err := s.store.GetIPCBNSMapping(ctx, st.SectionNumber)
		if err != nil {
			return fmt.Errorf("get ipc-bns mapping %s: %w", st.SectionNumber, err)
		}
		if mp != nil {
			mappings = append(mappings, *mp)
		}
	}

	if len(retrieved) > 5 {
		retrieved = retrieved[:5]
	}

	rc.Statutes = retrieved
	rc.IPCBNSMappings = lo.UniqBy(mappings, func(m store.Mapping) string { return m.IPCSection })
	return nil
}

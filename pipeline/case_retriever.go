package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lexindia/agent/domain"
	syncutil "github.com/lexindia/agent/pkg/sync"
	"github.com/lexindia/agent/search"
	"github.com/lexindia/agent/store"
)

// CaseRetriever is stage S3: cases tied to the statutes already found,
// domain-scoped search, landmark cases, and an optional semantic top-up.
// Grounded on original_source's case_agent.py.
type CaseRetriever struct {
	store       store.StructuredStore
	engine      *search.Engine
	concurrency int // caps concurrent per-statute case lookups
}

var _ Stage = (*CaseRetriever)(nil)

// NewCaseRetriever wires a CaseRetriever. concurrency bounds how many
// per-statute case lookups run at once; <= 0 falls back to defaultRetrievalConcurrency.
func NewCaseRetriever(st store.StructuredStore, engine *search.Engine, concurrency int) *CaseRetriever {
	if concurrency <= 0 {
		concurrency = defaultRetrievalConcurrency
	}
	return &CaseRetriever{store: st, engine: engine, concurrency: concurrency}
}

func (c *CaseRetriever) Name() StageName { return StageCaseRetriever }

func (c *CaseRetriever) Process(ctx context.Context, rc *RequestContext) error {
	seen := map[string]bool{}
	var caseLaws []store.Case

	add := func(cs []store.Case) {
		for _, cse := range cs {
			if !seen[cse.ID] {
				seen[cse.ID] = true
				caseLaws = append(caseLaws, cse)
			}
		}
	}

	top := rc.Statutes
	if len(top) > 3 {
		top = top[:3]
	}

	related := make([][]store.Case, len(top))
	if len(top) > 0 {
		limiter := syncutil.NewLimiter(c.concurrency)
		g, gctx := errgroup.WithContext(ctx)
		for i, st := range top {
			i, st := i, st
			if st.SectionNumber == "" {
				continue
			}
			g.Go(func() error {
				limiter.Acquire()
				defer limiter.Release()
				cs, err := c.store.GetCasesBySection(gctx, st.SectionNumber, 2)
				if err != nil {
					return fmt.Errorf("get cases by section %s: %w", st.SectionNumber, err)
				}
				related[i] = cs
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	for _, cs := range related {
		add(cs)
	}

	searchDomain := string(rc.SpecifiedDomain)
	if searchDomain == "" || searchDomain == domain.DomainWildcard {
		searchDomain = string(rc.DetectedDomain)
	}

	if len(caseLaws) == 0 && searchDomain != "" {
		found, err := c.store.SearchCases(ctx, rc.Query, "", searchDomain, 3)
		if err != nil {
			return fmt.Errorf("search cases: %w", err)
		}
		add(found)
	}

	landmarkDomain := searchDomain
	if landmarkDomain == "" {
		landmarkDomain = string(domain.DomainDefault)
	}
	landmark, err := c.store.GetLandmarkCases(ctx, landmarkDomain, 3)
	if err != nil {
		return fmt.Errorf("get landmark cases: %w", err)
	}
	add(landmark)

	if c.engine != nil {
		query := rc.ReformulatedQuery
		if query == "" {
			query = rc.Query
		}
		hits, err := c.engine.Search(ctx, query, search.Filters{Domain: searchDomain}, 3, true)
		if err != nil {
			rc.AppendError(c.Name(), fmt.Sprintf("semantic case search degraded: %v", err))
		}
		for _, h := range hits {
			if h.Metadata.Source != "case_law" {
				continue
			}
			id := h.Metadata.Filename
			if id == "" {
				id = h.Content
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			caseLaws = append(caseLaws, store.Case{
				ID:        id,
				CaseName:  h.Metadata.Filename,
				Summary:   h.Content,
				Domain:    h.Metadata.Domain,
				SourceURL: "",
			})
		}
	}

	if len(caseLaws) > 5 {
		caseLaws = caseLaws[:5]
	}
	rc.CaseLaws = caseLaws
	return nil
}

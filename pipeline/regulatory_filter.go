package pipeline

import (
	"context"
	"slices"
	"sort"

	"github.com/lexindia/agent/domain"
	"github.com/lexindia/agent/store"
)

// RegulatoryFilter is stage S4: attaches the fixed per-domain regulatory
// bundle and re-sorts statutes/cases by a simple relevance score, stable on
// ties. Grounded on original_source's regulatory_agent.py, with the act
// list left untouched since §4.1 already fixed applicable_acts
// deterministically.
type RegulatoryFilter struct{}

var _ Stage = (*RegulatoryFilter)(nil)

func NewRegulatoryFilter() *RegulatoryFilter { return &RegulatoryFilter{} }

func (f *RegulatoryFilter) Name() StageName { return StageRegulatoryFilter }

func (f *RegulatoryFilter) Process(ctx context.Context, rc *RequestContext) error {
	d := f.determineDomain(rc)

	bundle, ok := domain.RegulatoryBundles[d]
	if ok {
		rc.RegulatoryNotes = &RegulatoryNotes{
			Jurisdiction:       bundle.Jurisdiction,
			ApplicableActs:     bundle.ApplicableActs,
			KeyAuthorities:     bundle.KeyAuthorities,
			FilingRequirements: bundle.FilingRequirements,
			TimeLimits:         bundle.TimeLimits,
		}
	}

	domainActs := domain.ActsByDomain[d]

	statuteScore := func(s store.Statute) int {
		score := 0
		if s.Domain == string(d) {
			score += 10
		}
		if slices.Contains(domainActs, s.ActCode) {
			score += 5
		}
		return score
	}
	sort.SliceStable(rc.Statutes, func(i, j int) bool {
		return statuteScore(rc.Statutes[i]) > statuteScore(rc.Statutes[j])
	})

	caseScore := func(c store.Case) int {
		score := 0
		if c.Domain == string(d) {
			score += 10
		}
		if c.IsLandmark {
			score += 5
		}
		return score
	}
	sort.SliceStable(rc.CaseLaws, func(i, j int) bool {
		return caseScore(rc.CaseLaws[i]) > caseScore(rc.CaseLaws[j])
	})

	return nil
}

// determineDomain prefers the detected domain, falling back to inference
// from the retrieved act codes, then the package default.
func (f *RegulatoryFilter) determineDomain(rc *RequestContext) domain.Domain {
	if rc.DetectedDomain != "" {
		return rc.DetectedDomain
	}
	for _, s := range rc.Statutes {
		switch s.ActCode {
		case "IPC", "BNS":
			return domain.DomainCriminal
		case "IT Act":
			return domain.DomainITCyber
		}
	}
	return domain.DomainDefault
}

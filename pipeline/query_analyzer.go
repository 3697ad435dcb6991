package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/lexindia/agent/domain"
	"github.com/lexindia/agent/search"
)

var sectionPattern = regexp.MustCompile(`(?i)(?:section|sec|u/s|धारा|§)\s*(\d+[a-zA-Z]?)`)

var standaloneNumberPattern = regexp.MustCompile(`\b(\d{2,3}[a-zA-Z]?)\b`)

// commonSections is consulted when a bare number appears without a
// "section"/"धारा" marker, per query_agent.py's standalone-number rule.
var commonSections = map[string]bool{
	"302": true, "307": true, "376": true, "420": true, "498": true, "498A": true,
	"304": true, "306": true, "323": true, "354": true, "506": true, "379": true, "380": true,
}

var ipcPattern = regexp.MustCompile(`(?i)\b(?:ipc|indian penal code|भारतीय दंड संहिता)\b`)
var bnsPattern = regexp.MustCompile(`(?i)\b(?:bns|bhartiya nyaya sanhita|भारतीय न्याय संहिता)\b`)

// QueryAnalyzer is stage S1: language/script detection, domain
// classification and gating, section/keyword extraction, and query
// reformulation. Grounded on original_source's query_agent.py, with the
// original's LLM-router domain detection replaced by the deterministic
// two-signal classifier in the domain package (§4.1.3/§4.1.4).
type QueryAnalyzer struct {
	classifier *domain.Classifier
}

var _ Stage = (*QueryAnalyzer)(nil)

// NewQueryAnalyzer builds the stage over a shared classifier instance.
func NewQueryAnalyzer(classifier *domain.Classifier) *QueryAnalyzer {
	return &QueryAnalyzer{classifier: classifier}
}

func (a *QueryAnalyzer) Name() StageName { return StageQueryAnalyzer }

func (a *QueryAnalyzer) Process(ctx context.Context, rc *RequestContext) error {
	script, lang := domain.DetectScriptLanguage(rc.Query)
	rc.DetectedScript = script
	rc.DetectedLanguage = lang

	sections := extractSections(rc.Query)
	for _, s := range sections {
		rc.Entities = append(rc.Entities, Entity{Kind: "section", Value: s})
	}

	fused, err := a.classifier.Classify(ctx, rc.Query)
	if err != nil {
		// §4.1: the analyzer must never fail the request outright — an
		// embedder/BM25 outage degrades to a fixed fallback instead of
		// aborting the pipeline.
		rc.AppendError(a.Name(), fmt.Sprintf("domain classification degraded: %v", err))
		rc.DetectedLanguage = domain.LanguageEnglish
		rc.DetectedDomain = domain.DomainCriminal
		rc.IsRelevant = true
		rc.AddApplicableAct("IPC")
		rc.AddApplicableAct("BNS")
	} else {
		rc.DetectedDomain = fused.Predicted

		if rc.SpecifiedDomain != "" && rc.SpecifiedDomain != domain.DomainWildcard {
			if domain.Gate(fused, rc.SpecifiedDomain) {
				rc.IsRelevant = true
			} else {
				rc.Reject(rejectionReason(rc.SpecifiedDomain, fused.Predicted))
			}
		} else {
			rc.IsRelevant = true
		}
	}

	if ipcPattern.MatchString(rc.Query) {
		rc.AddApplicableAct("IPC")
	}
	if bnsPattern.MatchString(rc.Query) {
		rc.AddApplicableAct("BNS")
	}

	if len(rc.ApplicableActs) == 0 {
		effectiveDomain := rc.DetectedDomain
		if rc.SpecifiedDomain != "" && rc.SpecifiedDomain != domain.DomainWildcard {
			effectiveDomain = rc.SpecifiedDomain
		}
		for _, act := range domain.ActsByDomain[effectiveDomain] {
			rc.AddApplicableAct(act)
		}
	}
	if len(rc.ApplicableActs) == 0 && len(sections) > 0 {
		rc.AddApplicableAct("IPC")
		rc.AddApplicableAct("BNS")
	}

	rc.Keywords = extractKeywords(rc.Query)
	rc.ReformulatedQuery = reformulateQuery(rc)

	return nil
}

func rejectionReason(specified, detected domain.Domain) string {
	return "query appears to concern " + string(detected) + " law, but " + string(specified) + " was specified"
}

func extractSections(text string) []string {
	seen := map[string]bool{}
	var out []string

	for _, m := range sectionPattern.FindAllStringSubmatch(text, -1) {
		s := strings.ToUpper(m[1])
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, m := range standaloneNumberPattern.FindAllString(text, -1) {
		s := strings.ToUpper(m)
		if commonSections[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	return out
}

var analyzerStopWords = map[string]bool{
	"what": true, "is": true, "the": true, "of": true, "for": true, "in": true,
	"and": true, "or": true, "a": true, "an": true, "to": true, "how": true,
	"can": true, "under": true, "about": true, "which": true,
	"क्या": true, "है": true, "के": true, "का": true, "की": true,
	"में": true, "और": true, "या": true, "एक": true, "कैसे": true,
}

func extractKeywords(text string) []string {
	var out []string
	for _, tok := range search.Tokenize(text) {
		if analyzerStopWords[tok] || len(tok) <= 2 {
			continue
		}
		out = append(out, tok)
		if len(out) == 10 {
			break
		}
	}
	return out
}

func reformulateQuery(rc *RequestContext) string {
	var parts []string
	if rc.DetectedDomain != "" {
		parts = append(parts, "["+string(rc.DetectedDomain)+"]")
	}
	parts = append(parts, rc.Query)

	var sections []string
	for _, e := range rc.Entities {
		if e.Kind == "section" {
			sections = append(sections, e.Value)
		}
	}
	if len(sections) > 0 {
		parts = append(parts, "(Sections: "+strings.Join(sections, ", ")+")")
	}

	return strings.Join(parts, " ")
}

// Package pipeline implements the seven-stage agent orchestration pipeline:
// RequestContext flows through QueryAnalyzer, StatuteRetriever,
// CaseRetriever, RegulatoryFilter, CitationBuilder, Summarizer, and
// Responder under the Orchestrator's control.
package pipeline

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lexindia/agent/domain"
	"github.com/lexindia/agent/store"
)

// StageName identifies one of the seven pipeline stages for tracing.
type StageName string

const (
	StageQueryAnalyzer    StageName = "query_analyzer"
	StageStatuteRetriever StageName = "statute_retriever"
	StageCaseRetriever    StageName = "case_retriever"
	StageRegulatoryFilter StageName = "regulatory_filter"
	StageCitationBuilder  StageName = "citation_builder"
	StageSummarizer       StageName = "summarizer"
	StageResponder        StageName = "responder"
)

// StageState is one of the four states a stage's tracing record may hold.
type StageState string

const (
	StatePending   StageState = "pending"
	StateRunning   StageState = "running"
	StateCompleted StageState = "completed"
	StateError     StageState = "error"
)

// StepRecord is one stage's tracing entry in RequestContext.Steps. Per §3's
// invariant, at most one record exists per stage — Orchestrator updates it
// in place rather than appending a new one.
type StepRecord struct {
	Stage     StageName
	State     StageState
	StartedAt time.Time
	EndedAt   time.Time
	Note      string
}

// ErrorRecord is one entry in RequestContext.Errors, per §7's propagation
// policy: stages never throw upward, they append here instead.
type ErrorRecord struct {
	Stage   StageName
	Message string
	At      time.Time
}

// Entity is a single extracted entity, e.g. a statute section reference.
type Entity struct {
	Kind  string // "section", ...
	Value string
}

// RequestContext is the single mutable value threaded through the pipeline
// for one request (§3). It is owned exclusively by the Orchestrator that
// created it; no stage may retain a reference past its own call, and no
// stage may reorder or remove items a later stage produced.
//
// Grounded on Tangerg/lynx/ai/rag/query.go's Query{Text, History, Extra}
// shape and its Clone() via slices.Clone/maps.Clone.
type RequestContext struct {
	RequestID string
	StartedAt time.Time

	// Inputs
	Query              string
	RequestedLanguage  domain.Language
	SessionID          string
	SpecifiedDomain    domain.Domain
	AttachedDocument   string // raw text of a document supplied with the request, if any
	AttachedDocumentType string // "judgment" | "statute" | ..., defaults to "judgment"

	// Analysis outputs
	DetectedLanguage   domain.Language
	DetectedScript     domain.Script
	DetectedDomain     domain.Domain
	ReformulatedQuery  string
	Entities           []Entity
	Keywords           []string
	ApplicableActs     []string // ordered set: insertion order, no duplicates
	IsRelevant         bool
	RejectionReason    string

	// Retrieval outputs
	Statutes         []store.Statute
	CaseLaws         []store.Case
	IPCBNSMappings   []store.Mapping
	RegulatoryNotes  *RegulatoryNotes

	// Synthesis outputs
	Citations         []Citation
	ResponsePrimary   string
	ResponseSecondary string
	DocumentSummary   *DocumentSummary

	// Tracing
	Steps  []StepRecord
	Errors []ErrorRecord
}

// RegulatoryNotes is the §4.4 fixed bundle attached to the context.
type RegulatoryNotes struct {
	Jurisdiction       string
	ApplicableActs     []string
	KeyAuthorities     []string
	FilingRequirements []string
	TimeLimits         []string
}

// CitationType enumerates §3's Citation record's type values.
type CitationType string

const (
	CitationStatute CitationType = "statute"
	CitationCase    CitationType = "case_law"
	CitationMapping CitationType = "mapping"
)

// Citation is the §3 Citation record.
type Citation struct {
	ID            string
	Type          CitationType
	Title         string
	TitleHi       string
	SourceKey     string
	SourceName    string
	URL           string
	Excerpt       string
	Year          int
	Verified      bool
	IsLandmark    bool
	SectionNumber string
	ActCode       string
	Takeaway      string
}

// DocumentSummary is §4.6's Summarizer output record.
type DocumentSummary struct {
	Parties           []string
	CourtName         string
	Date              string
	CaseType          string
	CitedSections     []CitedSection
	Verdict           string
	CaseSummary       []string
	KeyArguments      []string
	LegalIssues       []string
	RatioDecidendi    string
}

// CitedSection is one {act, section} pair extracted by the Summarizer.
type CitedSection struct {
	Act     string
	Section string
}

// NewRequestContext starts a fresh context for one request, per §3's
// lifecycle: "created by the Orchestrator at request entry".
func NewRequestContext(query, sessionID string, requestedLanguage domain.Language, specifiedDomain domain.Domain) *RequestContext {
	return &RequestContext{
		RequestID:         uuid.NewString(),
		StartedAt:         time.Now(),
		Query:             query,
		RequestedLanguage: requestedLanguage,
		SessionID:         sessionID,
		SpecifiedDomain:   specifiedDomain,
		IsRelevant:        true,
	}
}

// RecordStep writes or updates the tracing entry for stage, keyed by stage
// identity as required by §3's invariant.
func (c *RequestContext) RecordStep(stage StageName, state StageState, note string) {
	now := time.Now()
	for i := range c.Steps {
		if c.Steps[i].Stage == stage {
			c.Steps[i].State = state
			c.Steps[i].Note = note
			if state == StateRunning && c.Steps[i].StartedAt.IsZero() {
				c.Steps[i].StartedAt = now
			}
			if state == StateCompleted || state == StateError {
				c.Steps[i].EndedAt = now
			}
			return
		}
	}
	rec := StepRecord{Stage: stage, State: state, Note: note}
	if state == StateRunning {
		rec.StartedAt = now
	}
	c.Steps = append(c.Steps, rec)
}

// AppendError records a stage failure as data, per §7's propagation policy.
func (c *RequestContext) AppendError(stage StageName, message string) {
	c.Errors = append(c.Errors, ErrorRecord{Stage: stage, Message: message, At: time.Now()})
}

// AddApplicableAct appends act to ApplicableActs if not already present,
// preserving insertion order (§3's "ordered set of act codes").
func (c *RequestContext) AddApplicableAct(act string) {
	if act == "" || slices.Contains(c.ApplicableActs, act) {
		return
	}
	c.ApplicableActs = append(c.ApplicableActs, act)
}

// Reject marks the request as out of domain, per §4.1.4's gate.
func (c *RequestContext) Reject(reason string) {
	c.IsRelevant = false
	c.RejectionReason = reason
}

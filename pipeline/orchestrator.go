package pipeline

import (
	"context"

	"github.com/lexindia/agent/domain"
)

// Orchestrator sequences the seven stages over one RequestContext,
// short-circuiting S2-S6 when the domain gate rejects the request (§9) but
// always running the Responder so a rejection message reaches the caller.
// Grounded on original_source's orchestrator.py, restructured around the
// Stage interface instead of a list of heterogeneous agent objects.
type Orchestrator struct {
	stages []Stage
}

// NewOrchestrator wires the fixed S1-S7 stage sequence.
func NewOrchestrator(
	queryAnalyzer *QueryAnalyzer,
	statuteRetriever *StatuteRetriever,
	caseRetriever *CaseRetriever,
	regulatoryFilter *RegulatoryFilter,
	citationBuilder *CitationBuilder,
	summarizer *Summarizer,
	responder *Responder,
) *Orchestrator {
	return &Orchestrator{
		stages: []Stage{
			queryAnalyzer,
			statuteRetriever,
			caseRetriever,
			regulatoryFilter,
			citationBuilder,
			summarizer,
			responder,
		},
	}
}

// Process runs a fresh RequestContext through the full pipeline and returns
// it once the Responder has produced a final answer.
func (o *Orchestrator) Process(ctx context.Context, query, sessionID string, requestedLanguage domain.Language, specifiedDomain domain.Domain) *RequestContext {
	rc := NewRequestContext(query, sessionID, requestedLanguage, specifiedDomain)

	for _, stage := range o.stages {
		if ctx.Err() != nil {
			rc.AppendError(stage.Name(), ctx.Err().Error())
			break
		}

		if !rc.IsRelevant && stage.Name() != StageResponder {
			skipStage(stage, rc)
			continue
		}

		runStage(ctx, stage, rc)
	}

	return rc
}

package pipeline

import (
	"context"
	"time"

	"github.com/lexindia/agent/domain"
	syncutil "github.com/lexindia/agent/pkg/sync"
	"github.com/lexindia/agent/store"
)

// EventType tags one streaming update, per §4.9/§6's event sequence.
type EventType string

const (
	EventStart       EventType = "start"
	EventAgentStatus EventType = "agent_status"
	EventStatutes    EventType = "statutes"
	EventCaseLaws    EventType = "case_laws"
	EventCitations   EventType = "citations"
	EventResponse    EventType = "response"
	EventComplete    EventType = "complete"
	EventCancelled   EventType = "cancelled"
)

// AgentStatus is the status carried by an agent_status event.
type AgentStatus string

const (
	AgentStatusRunning   AgentStatus = "running"
	AgentStatusCompleted AgentStatus = "completed"
	AgentStatusError     AgentStatus = "error"
)

// Event is one item in the streaming sequence. Data is one of the *Data
// types below, keyed by Type.
type Event struct {
	Type EventType
	Data any
}

type StartData struct {
	SessionID string
	Query     string
}

type AgentStatusData struct {
	Stage   StageName
	Status  AgentStatus
	Message string
}

type StatutesData struct{ Statutes []store.Statute }

type CaseLawsData struct{ CaseLaws []store.Case }

type CitationsData struct{ Citations []Citation }

type ResponseData struct {
	Content   string
	ContentHi string
	Citations []Citation
	Statutes  []store.Statute
	CaseLaws  []store.Case
	Mappings  []store.Mapping
}

type TerminalData struct{ SessionID string }

// streamingPace is the small inter-stage delay §4.9 permits purely for UI
// pacing; it is skipped the instant the caller cancels.
const streamingPace = 50 * time.Millisecond

// Stream runs the pipeline emitting a typed update sequence on the returned
// channel, closing it once a terminal event (response/complete/cancelled)
// has been sent. Grounded on original_source's
// process_query_streaming, restructured around the Stage interface.
func (o *Orchestrator) Stream(ctx context.Context, query, sessionID string, requestedLanguage domain.Language, specifiedDomain domain.Domain) <-chan Event {
	out := make(chan Event, 8)

	// dispatched through the package-level pool (a plain recovering goroutine
	// by default) so a deployment can swap in a bounded pool via
	// syncutil.SetDefaultPool without touching this stage loop.
	_ = syncutil.DefaultPool().Submit(func() {
		defer close(out)

		rc := NewRequestContext(query, sessionID, requestedLanguage, specifiedDomain)
		out <- Event{Type: EventStart, Data: StartData{SessionID: rc.RequestID, Query: query}}

		for _, stage := range o.stages {
			select {
			case <-ctx.Done():
				out <- Event{Type: EventCancelled, Data: TerminalData{SessionID: rc.RequestID}}
				return
			default:
			}

			out <- Event{Type: EventAgentStatus, Data: AgentStatusData{Stage: stage.Name(), Status: AgentStatusRunning}}

			if !rc.IsRelevant && stage.Name() != StageResponder {
				skipStage(stage, rc)
				continue
			}

			runStage(ctx, stage, rc)

			if rec := findStep(rc, stage.Name()); rec != nil && rec.State == StateError {
				out <- Event{Type: EventAgentStatus, Data: AgentStatusData{Stage: stage.Name(), Status: AgentStatusError, Message: rec.Note}}
			} else {
				out <- Event{Type: EventAgentStatus, Data: AgentStatusData{Stage: stage.Name(), Status: AgentStatusCompleted}}
			}

			switch stage.Name() {
			case StageStatuteRetriever:
				if len(rc.Statutes) > 0 {
					out <- Event{Type: EventStatutes, Data: StatutesData{Statutes: top(rc.Statutes, 5)}}
				}
			case StageCaseRetriever:
				if len(rc.CaseLaws) > 0 {
					out <- Event{Type: EventCaseLaws, Data: CaseLawsData{CaseLaws: top(rc.CaseLaws, 3)}}
				}
			case StageCitationBuilder:
				if len(rc.Citations) > 0 {
					out <- Event{Type: EventCitations, Data: CitationsData{Citations: rc.Citations}}
				}
			}

			select {
			case <-ctx.Done():
				out <- Event{Type: EventCancelled, Data: TerminalData{SessionID: rc.RequestID}}
				return
			case <-time.After(streamingPace):
			}
		}

		out <- Event{Type: EventResponse, Data: ResponseData{
			Content:   rc.ResponsePrimary,
			ContentHi: rc.ResponseSecondary,
			Citations: rc.Citations,
			Statutes:  rc.Statutes,
			CaseLaws:  rc.CaseLaws,
			Mappings:  rc.IPCBNSMappings,
		}}
		out <- Event{Type: EventComplete, Data: TerminalData{SessionID: rc.RequestID}}
	})

	return out
}

func findStep(rc *RequestContext, stage StageName) *StepRecord {
	for i := range rc.Steps {
		if rc.Steps[i].Stage == stage {
			return &rc.Steps[i]
		}
	}
	return nil
}

package pipeline

import (
	"time"

	"github.com/lexindia/agent/store"
)

// Response is the §6 unary JSON output shape.
type Response struct {
	ID                 string            `json:"id"`
	SessionID          string            `json:"session_id"`
	Query              string            `json:"query"`
	DetectedLanguage   string            `json:"detected_language"`
	DetectedDomain     string            `json:"detected_domain"`
	Response           ResponseBody      `json:"response"`
	Statutes           []store.Statute   `json:"statutes"`
	CaseLaws           []store.Case      `json:"case_laws"`
	IPCBNSMappings     []store.Mapping   `json:"ipc_bns_mappings"`
	Citations          []Citation        `json:"citations"`
	AgentPipeline      []AgentStepView   `json:"agent_pipeline"`
	Errors             []string          `json:"errors"`
	ExecutionTimeSecs  float64           `json:"execution_time_seconds"`
	Timestamp          time.Time         `json:"timestamp"`
}

// ResponseBody is the §6 response.{content, content_hi?} sub-object.
type ResponseBody struct {
	Content   string `json:"content"`
	ContentHi string `json:"content_hi,omitempty"`
}

// AgentStepView is one §6 agent_pipeline[] entry.
type AgentStepView struct {
	Agent         StageName  `json:"agent"`
	State         StageState `json:"state"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	ResultSummary string     `json:"result_summary,omitempty"`
}

// ToResponse renders the final §6 output shape from a completed
// RequestContext, called once the Orchestrator has run every stage.
func (c *RequestContext) ToResponse() Response {
	steps := make([]AgentStepView, 0, len(c.Steps))
	for _, s := range c.Steps {
		view := AgentStepView{Agent: s.Stage, State: s.State, ResultSummary: s.Note}
		if !s.StartedAt.IsZero() {
			t := s.StartedAt
			view.StartedAt = &t
		}
		if !s.EndedAt.IsZero() {
			t := s.EndedAt
			view.EndedAt = &t
		}
		steps = append(steps, view)
	}

	errs := make([]string, 0, len(c.Errors))
	for _, e := range c.Errors {
		errs = append(errs, string(e.Stage)+": "+e.Message)
	}

	return Response{
		ID:               c.RequestID,
		SessionID:        c.SessionID,
		Query:            c.Query,
		DetectedLanguage: string(c.DetectedLanguage),
		DetectedDomain:   string(c.DetectedDomain),
		Response: ResponseBody{
			Content:   c.ResponsePrimary,
			ContentHi: c.ResponseSecondary,
		},
		Statutes:          c.Statutes,
		CaseLaws:          c.CaseLaws,
		IPCBNSMappings:    c.IPCBNSMappings,
		Citations:         c.Citations,
		AgentPipeline:     steps,
		Errors:            errs,
		ExecutionTimeSecs: time.Since(c.StartedAt).Seconds(),
		Timestamp:         time.Now(),
	}
}

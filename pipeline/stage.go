package pipeline

import (
	"context"
	"fmt"

	"github.com/lexindia/agent/pkg/safe"
)

// Stage is one of the seven pipeline steps. Process must not retain rc past
// the call and must never reorder or remove items a prior stage produced.
//
// Grounded on Tangerg/lynx/ai/rag/pipeline.go's sequential stage functions,
// generalized into an interface since every stage here shares one shape
// (mutate a RequestContext) rather than the teacher's per-stage types.
type Stage interface {
	Name() StageName
	Process(ctx context.Context, rc *RequestContext) error
}

// runStage executes one stage with tracing and panic-to-error conversion,
// per §7: no stage may throw upward, it converts to an ErrorRecord instead.
func runStage(ctx context.Context, stage Stage, rc *RequestContext) {
	name := stage.Name()
	rc.RecordStep(name, StateRunning, "")

	var stageErr error
	safe.WithRecover(func() {
		stageErr = stage.Process(ctx, rc)
	}, func(err error) {
		stageErr = fmt.Errorf("%s: recovered: %w", name, err)
	})()

	if stageErr != nil {
		rc.RecordStep(name, StateError, stageErr.Error())
		rc.AppendError(name, stageErr.Error())
		return
	}
	rc.RecordStep(name, StateCompleted, "")
}

// skipStage marks a stage as skipped without running it, used when the
// domain gate has rejected the request (§4.1.4, §9's short-circuit rule).
func skipStage(stage Stage, rc *RequestContext) {
	rc.RecordStep(stage.Name(), StateCompleted, "skipped: request out of domain")
}

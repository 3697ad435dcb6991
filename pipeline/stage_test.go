package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexindia/agent/domain"
)

type fakeStage struct {
	name  StageName
	err   error
	panic any
}

func (f *fakeStage) Name() StageName { return f.name }

func (f *fakeStage) Process(ctx context.Context, rc *RequestContext) error {
	if f.panic != nil {
		panic(f.panic)
	}
	return f.err
}

func TestRunStage_Success(t *testing.T) {
	rc := NewRequestContext("q", "", domain.LanguageEnglish, "")
	stage := &fakeStage{name: StageQueryAnalyzer}

	runStage(context.Background(), stage, rc)

	require.Len(t, rc.Steps, 1)
	assert.Equal(t, StateCompleted, rc.Steps[0].State)
	assert.Empty(t, rc.Errors)
}

func TestRunStage_Error(t *testing.T) {
	rc := NewRequestContext("q", "", domain.LanguageEnglish, "")
	stage := &fakeStage{name: StageStatuteRetriever, err: errors.New("store unavailable")}

	runStage(context.Background(), stage, rc)

	require.Len(t, rc.Steps, 1)
	assert.Equal(t, StateError, rc.Steps[0].State)
	require.Len(t, rc.Errors, 1)
	assert.Contains(t, rc.Errors[0].Message, "store unavailable")
}

func TestRunStage_PanicConvertedToError(t *testing.T) {
	rc := NewRequestContext("q", "", domain.LanguageEnglish, "")
	stage := &fakeStage{name: StageCaseRetriever, panic: "boom"}

	assert.NotPanics(t, func() {
		runStage(context.Background(), stage, rc)
	})

	require.Len(t, rc.Steps, 1)
	assert.Equal(t, StateError, rc.Steps[0].State)
	require.Len(t, rc.Errors, 1)
}

func TestSkipStage(t *testing.T) {
	rc := NewRequestContext("q", "", domain.LanguageEnglish, "")
	stage := &fakeStage{name: StageSummarizer}

	skipStage(stage, rc)

	require.Len(t, rc.Steps, 1)
	assert.Equal(t, StateCompleted, rc.Steps[0].State)
	assert.Contains(t, rc.Steps[0].Note, "skipped")
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexindia/agent/domain"
)

func TestRequestContext_ToResponse_MapsStepsAndErrors(t *testing.T) {
	rc := NewRequestContext("what is section 302", "sess-1", domain.LanguageEnglish, domain.DomainCriminal)
	rc.DetectedDomain = domain.DomainCriminal
	rc.DetectedLanguage = domain.LanguageEnglish
	rc.ResponsePrimary = "Section 302 covers murder."
	rc.ResponseSecondary = "धारा 302 हत्या से संबंधित है।"
	rc.RecordStep(StageQueryAnalyzer, StateCompleted, "")
	rc.AppendError(StageStatuteRetriever, "store unavailable")

	resp := rc.ToResponse()

	assert.Equal(t, rc.RequestID, resp.ID)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, "criminal", resp.DetectedDomain)
	assert.Equal(t, "Section 302 covers murder.", resp.Response.Content)
	assert.Equal(t, "धारा 302 हत्या से संबंधित है।", resp.Response.ContentHi)
	require.Len(t, resp.AgentPipeline, 1)
	assert.Equal(t, StageQueryAnalyzer, resp.AgentPipeline[0].Agent)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "store unavailable")
	assert.GreaterOrEqual(t, resp.ExecutionTimeSecs, 0.0)
}

func TestRequestContext_ToResponse_EmptyStepsAndErrorsAreEmptySlicesNotNil(t *testing.T) {
	rc := NewRequestContext("q", "", domain.LanguageEnglish, "")

	resp := rc.ToResponse()

	assert.NotNil(t, resp.AgentPipeline)
	assert.Empty(t, resp.AgentPipeline)
	assert.NotNil(t, resp.Errors)
	assert.Empty(t, resp.Errors)
}

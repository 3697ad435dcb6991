package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexindia/agent/domain"
	"github.com/lexindia/agent/store"
)

type erroringCaseStore struct {
	store.StructuredStore
	err error
}

func (e *erroringCaseStore) GetCasesBySection(ctx context.Context, sectionNumber string, limit int) ([]store.Case, error) {
	return nil, e.err
}

func TestCaseRetriever_Process_FindsCasesForRetrievedStatutes(t *testing.T) {
	st := store.NewMemoryStore(
		nil,
		[]store.Case{
			{ID: "c1", CaseName: "State v. Ramesh", Domain: "criminal", CitedSections: []string{"302"}},
			{ID: "c2", CaseName: "Unrelated v. Case", Domain: "corporate"},
		},
		nil,
	)
	r := NewCaseRetriever(st, nil, 0)
	rc := NewRequestContext("murder", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Statutes = []store.Statute{{SectionNumber: "302"}}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	require.Len(t, rc.CaseLaws, 1)
	assert.Equal(t, "c1", rc.CaseLaws[0].ID)
}

func TestCaseRetriever_Process_FallsBackToDomainSearchWhenNoSectionMatch(t *testing.T) {
	st := store.NewMemoryStore(
		nil,
		[]store.Case{
			{ID: "c1", CaseName: "State v. Ramesh", Summary: "murder conviction upheld", Domain: "criminal"},
		},
		nil,
	)
	r := NewCaseRetriever(st, nil, 0)
	rc := NewRequestContext("murder conviction", "", domain.LanguageEnglish, domain.DomainCriminal)

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	require.Len(t, rc.CaseLaws, 1)
	assert.Equal(t, "c1", rc.CaseLaws[0].ID)
}

func TestCaseRetriever_Process_AlwaysAppendsLandmarkCases(t *testing.T) {
	st := store.NewMemoryStore(
		nil,
		[]store.Case{
			{ID: "c1", CaseName: "State v. Ramesh", Domain: "criminal", CitedSections: []string{"302"}},
			{ID: "landmark1", CaseName: "Kesavananda Bharati v. State of Kerala", Domain: "criminal", IsLandmark: true},
		},
		nil,
	)
	r := NewCaseRetriever(st, nil, 0)
	rc := NewRequestContext("murder", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Statutes = []store.Statute{{SectionNumber: "302"}}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	var ids []string
	for _, c := range rc.CaseLaws {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "c1")
	assert.Contains(t, ids, "landmark1")
}

func TestCaseRetriever_Process_DedupesAndCapsAtFive(t *testing.T) {
	var cases []store.Case
	for i := 0; i < 10; i++ {
		cases = append(cases, store.Case{
			ID:            "landmark" + string(rune('a'+i)),
			CaseName:      "Landmark Case",
			Domain:        "criminal",
			IsLandmark:    true,
			CitedSections: []string{"302"},
		})
	}
	st := store.NewMemoryStore(nil, cases, nil)
	r := NewCaseRetriever(st, nil, 0)
	rc := NewRequestContext("murder", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Statutes = []store.Statute{{SectionNumber: "302"}}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(rc.CaseLaws), 5)
}

func TestCaseRetriever_Process_PreservesStatuteOrderUnderConcurrency(t *testing.T) {
	st := store.NewMemoryStore(
		nil,
		[]store.Case{
			{ID: "c302", CaseName: "State v. Ramesh", Domain: "criminal", CitedSections: []string{"302"}},
			{ID: "c420", CaseName: "State v. Kumar", Domain: "criminal", CitedSections: []string{"420"}},
		},
		nil,
	)
	r := NewCaseRetriever(st, nil, 1)
	rc := NewRequestContext("murder and cheating", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Statutes = []store.Statute{{SectionNumber: "302"}, {SectionNumber: "420"}}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	require.Len(t, rc.CaseLaws, 2)
	assert.Equal(t, "c302", rc.CaseLaws[0].ID, "statute order must be preserved regardless of the concurrency cap")
	assert.Equal(t, "c420", rc.CaseLaws[1].ID)
}

func TestCaseRetriever_Process_PropagatesStoreErrorFromConcurrentLookups(t *testing.T) {
	r := NewCaseRetriever(&erroringCaseStore{err: errors.New("store unavailable")}, nil, 0)
	rc := NewRequestContext("murder", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Statutes = []store.Statute{{SectionNumber: "302"}}

	err := r.Process(context.Background(), rc)

	assert.Error(t, err)
}

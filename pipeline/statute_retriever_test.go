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

type erroringStructuredStore struct {
	store.StructuredStore
	err error
}

func (e *erroringStructuredStore) GetSection(ctx context.Context, sectionNumber, actCode string) (*store.Statute, error) {
	return nil, e.err
}

func TestStatuteRetriever_Process_DirectSectionLookup(t *testing.T) {
	st := store.NewMemoryStore(
		[]store.Statute{
			{ID: "ipc302", ActCode: "IPC", SectionNumber: "302", Title: "Murder", Domain: "criminal"},
			{ID: "bns103", ActCode: "BNS", SectionNumber: "103", Title: "Murder", Domain: "criminal"},
		},
		nil,
		[]store.Mapping{{IPCSection: "302", BNSSection: "103"}},
	)
	r := NewStatuteRetriever(st, nil, 0)
	rc := NewRequestContext("section 302 murder", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Entities = []Entity{{Kind: "section", Value: "302"}}
	rc.ApplicableActs = []string{"IPC"}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	require.Len(t, rc.Statutes, 1)
	assert.Equal(t, "ipc302", rc.Statutes[0].ID)
	require.Len(t, rc.IPCBNSMappings, 1)
	assert.Equal(t, "103", rc.IPCBNSMappings[0].BNSSection)
}

func TestStatuteRetriever_Process_FallsBackToKeywordSearchWhenNoSectionMatch(t *testing.T) {
	st := store.NewMemoryStore(
		[]store.Statute{
			{ID: "ipc420", ActCode: "IPC", SectionNumber: "420", Title: "Cheating", Content: "cheating and dishonestly inducing delivery of property", Domain: "criminal"},
		},
		nil,
		nil,
	)
	r := NewStatuteRetriever(st, nil, 0)
	rc := NewRequestContext("cheating", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.ApplicableActs = []string{"IPC"}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	require.Len(t, rc.Statutes, 1)
	assert.Equal(t, "ipc420", rc.Statutes[0].ID)
}

func TestStatuteRetriever_Process_DedupesAcrossLookupsByID(t *testing.T) {
	st := store.NewMemoryStore(
		[]store.Statute{
			{ID: "ipc302", ActCode: "IPC", SectionNumber: "302", Title: "Murder", Domain: "criminal"},
		},
		nil,
		nil,
	)
	r := NewStatuteRetriever(st, nil, 0)
	rc := NewRequestContext("section 302", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Entities = []Entity{{Kind: "section", Value: "302"}, {Kind: "section", Value: "302"}}
	rc.ApplicableActs = []string{"IPC", "BNS"}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	require.Len(t, rc.Statutes, 1, "the same section looked up under multiple acts/entities must appear once")
}

func TestStatuteRetriever_Process_OnlyMapsIPCSections(t *testing.T) {
	st := store.NewMemoryStore(
		[]store.Statute{
			{ID: "bns103", ActCode: "BNS", SectionNumber: "103", Title: "Murder", Domain: "criminal"},
		},
		nil,
		[]store.Mapping{{IPCSection: "103", BNSSection: "103"}},
	)
	r := NewStatuteRetriever(st, nil, 0)
	rc := NewRequestContext("section 103", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Entities = []Entity{{Kind: "section", Value: "103"}}
	rc.ApplicableActs = []string{"BNS"}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	assert.Empty(t, rc.IPCBNSMappings, "a BNS-only statute must not trigger an IPC->BNS mapping lookup")
}

func TestStatuteRetriever_Process_PreservesLookupOrderUnderConcurrency(t *testing.T) {
	st := store.NewMemoryStore(
		[]store.Statute{
			{ID: "ipc302", ActCode: "IPC", SectionNumber: "302", Title: "Murder", Domain: "criminal"},
			{ID: "ipc420", ActCode: "IPC", SectionNumber: "420", Title: "Cheating", Domain: "criminal"},
		},
		nil,
		nil,
	)
	r := NewStatuteRetriever(st, nil, 1)
	rc := NewRequestContext("sections 302 and 420", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Entities = []Entity{{Kind: "section", Value: "302"}, {Kind: "section", Value: "420"}}
	rc.ApplicableActs = []string{"IPC"}

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	require.Len(t, rc.Statutes, 2)
	assert.Equal(t, "ipc302", rc.Statutes[0].ID, "lookup order must be preserved regardless of the concurrency cap")
	assert.Equal(t, "ipc420", rc.Statutes[1].ID)
}

func TestStatuteRetriever_Process_CapsOutputAtFiveStatutes(t *testing.T) {
	acts := []string{"IPC", "BNS", "CrPC", "BNSS", "IEA", "BSA"}
	var statutes []store.Statute
	for _, act := range acts {
		statutes = append(statutes, store.Statute{ID: "s-" + act, ActCode: act, SectionNumber: "1", Title: "Definitions", Domain: "criminal"})
	}
	st := store.NewMemoryStore(statutes, nil, nil)
	r := NewStatuteRetriever(st, nil, 0)
	rc := NewRequestContext("section 1", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Entities = []Entity{{Kind: "section", Value: "1"}}
	rc.ApplicableActs = acts

	err := r.Process(context.Background(), rc)

	require.NoError(t, err)
	assert.Len(t, rc.Statutes, 5, "§4.2 caps the statutes payload at 5 even when more exact hits are found")
}

func TestStatuteRetriever_Process_PropagatesStoreErrorFromConcurrentLookups(t *testing.T) {
	r := NewStatuteRetriever(&erroringStructuredStore{err: errors.New("store unavailable")}, nil, 0)
	rc := NewRequestContext("section 302", "", domain.LanguageEnglish, domain.DomainCriminal)
	rc.Entities = []Entity{{Kind: "section", Value: "302"}}
	rc.ApplicableActs = []string{"IPC"}

	err := r.Process(context.Background(), rc)

	assert.Error(t, err)
}

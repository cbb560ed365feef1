package testutil

import (
	"encoding/json"

	"github.com/preston-bernstein/sportsboard/internal/store"
)

// MalaysiaOpen is the tournament used across scenario tests.
func MalaysiaOpen() store.Tournament {
	return store.Tournament{Name: "Malaysia Open", StartDate: "2026-01-06", EndDate: "2026-01-11", UpdateFrequency: store.FrequencyDaily}
}

// ActiveBadmintonDocument holds badminton with Malaysia Open running and
// India Open queued.
func ActiveBadmintonDocument() *store.Document {
	doc := store.NewDocument()
	state := store.NewDomainState()
	state.Activate(MalaysiaOpen())
	state.Enqueue(store.Tournament{Name: "India Open", StartDate: "2026-01-13", EndDate: "2026-01-18"}, store.FrequencyBiweekly)
	state.Seasons["2026"] = store.SeasonEntry{Start: "2026-01-01", End: "2026-12-31", Confirmed: true}
	doc.Domains["badminton"] = state
	return doc
}

// QueuedBadmintonDocument holds badminton idle with Malaysia Open at the head of the queue.
func QueuedBadmintonDocument() *store.Document {
	doc := store.NewDocument()
	state := store.NewDomainState()
	state.UpdateFrequency = store.FrequencyBiweekly
	state.Enqueue(store.Tournament{Name: "Malaysia Open", StartDate: "2026-01-06", EndDate: "2026-01-11"}, store.FrequencyBiweekly)
	doc.Domains["badminton"] = state
	return doc
}

// MustDocumentJSON decodes raw into a Document or panics.
func MustDocumentJSON(raw string) *store.Document {
	doc := store.NewDocument()
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		panic(err)
	}
	return doc
}

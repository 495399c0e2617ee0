package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestEvent_EmptyFeed(t *testing.T) {
	_, ok := LatestEvent(nil)
	assert.False(t, ok)

	_, ok = LatestEvent([]DonationEvent{})
	assert.False(t, ok)
}

func TestLatestEvent_PicksNewestRegardlessOfInputOrder(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	a := DonationEvent{ID: "a", Timestamp: base}
	b := DonationEvent{ID: "b", Timestamp: base.Add(time.Hour)}
	c := DonationEvent{ID: "c", Timestamp: base.Add(2 * time.Hour)}

	permutations := [][]DonationEvent{
		{a, b, c}, {c, b, a}, {b, c, a}, {c, a, b}, {a, c, b}, {b, a, c},
	}
	for i, perm := range permutations {
		latest, ok := LatestEvent(perm)
		require.True(t, ok)
		assert.Equal(t, "c", latest.ID, "permutation %d", i)
	}
}

func TestLatestEvent_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	events := []DonationEvent{
		{ID: "old", Timestamp: base},
		{ID: "new", Timestamp: base.Add(time.Hour)},
	}

	_, _ = LatestEvent(events)

	assert.Equal(t, "old", events[0].ID)
	assert.Equal(t, "new", events[1].ID)
}

func TestLatestEvent_SingleItem(t *testing.T) {
	latest, ok := LatestEvent([]DonationEvent{{ID: "only"}})
	require.True(t, ok)
	assert.Equal(t, "only", latest.ID)
}

func TestAuthenticated(t *testing.T) {
	assert.False(t, (&EngineState{}).Authenticated())
	assert.True(t, (&EngineState{Credential: "tok"}).Authenticated())
}

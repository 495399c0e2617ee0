package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pd-tracker/internal/application/feedquery"
	"github.com/pd-tracker/internal/domain"
	s3infra "github.com/pd-tracker/internal/infrastructure/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	events   []domain.DonationEvent
	fetchErr error
	snap     *s3infra.Snapshot
	snapErr  error
}

func (s *stubFeed) FetchNow(context.Context) ([]domain.DonationEvent, error) {
	return s.events, s.fetchErr
}

func (s *stubFeed) Stats(events []domain.DonationEvent, now time.Time) feedquery.Stats {
	st := feedquery.Stats{}
	for _, e := range events {
		st.TotalAmount += e.Amount
		st.Last24hCount++
	}
	return st
}

func (s *stubFeed) Snapshot(context.Context) (*s3infra.Snapshot, error) {
	return s.snap, s.snapErr
}

func TestFeedFetch(t *testing.T) {
	h := NewFeedHandler(&stubFeed{events: []domain.DonationEvent{{ID: "x1", Amount: 50}}})

	rec := httptest.NewRecorder()
	h.Fetch(rec, httptest.NewRequest(http.MethodGet, "/v1/feed", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"x1"`)
}

func TestFeedFetch_EmptyFeedIsAnArrayNotNull(t *testing.T) {
	h := NewFeedHandler(&stubFeed{})

	rec := httptest.NewRecorder()
	h.Fetch(rec, httptest.NewRequest(http.MethodGet, "/v1/feed", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFeedFetch_ForwardsUpstreamStatus(t *testing.T) {
	h := NewFeedHandler(&stubFeed{fetchErr: domain.Unavailable(401)})

	rec := httptest.NewRecorder()
	h.Fetch(rec, httptest.NewRequest(http.MethodGet, "/v1/feed", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFeedFetch_UnreachableIsBadGateway(t *testing.T) {
	h := NewFeedHandler(&stubFeed{fetchErr: domain.Unreachable(assert.AnError)})

	rec := httptest.NewRecorder()
	h.Fetch(rec, httptest.NewRequest(http.MethodGet, "/v1/feed", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestFeedStats(t *testing.T) {
	h := NewFeedHandler(&stubFeed{events: []domain.DonationEvent{
		{ID: "x1", Amount: 50},
		{ID: "x2", Amount: 25},
	}})

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/v1/feed/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_amount":75,"last_24h_count":2}`, rec.Body.String())
}

func TestFeedStats_FetchFailurePropagates(t *testing.T) {
	h := NewFeedHandler(&stubFeed{fetchErr: domain.Unavailable(503)})

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/v1/feed/stats", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestFeedSnapshot(t *testing.T) {
	h := NewFeedHandler(&stubFeed{snap: &s3infra.Snapshot{
		CapturedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Events:     []domain.DonationEvent{{ID: "x1"}},
	}})

	rec := httptest.NewRecorder()
	h.Snapshot(rec, httptest.NewRequest(http.MethodGet, "/v1/feed/snapshot", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"x1"`)
}

func TestFeedSnapshot_NoneArchived(t *testing.T) {
	h := NewFeedHandler(&stubFeed{snapErr: domain.ErrNotFound})

	rec := httptest.NewRecorder()
	h.Snapshot(rec, httptest.NewRequest(http.MethodGet, "/v1/feed/snapshot", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

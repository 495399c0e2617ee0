package feedquery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pd-tracker/internal/domain"
	s3infra "github.com/pd-tracker/internal/infrastructure/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockState struct{ mock.Mock }

func (m *mockState) Snapshot(ctx context.Context) (*domain.EngineState, error) {
	args := m.Called(ctx)
	if st, _ := args.Get(0).(*domain.EngineState); st != nil {
		return st, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockState) SetCredential(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *mockState) ClearCredential(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *mockState) SetLastSeenID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) Fetch(ctx context.Context, baseURL, credential string) ([]domain.DonationEvent, error) {
	args := m.Called(ctx, baseURL, credential)
	if evs, _ := args.Get(0).([]domain.DonationEvent); evs != nil {
		return evs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSnapshots struct{ mock.Mock }

func (m *mockSnapshots) Latest(ctx context.Context) (*s3infra.Snapshot, error) {
	args := m.Called(ctx)
	if s, _ := args.Get(0).(*s3infra.Snapshot); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestFetchNow_UsesStoredBaseURLAndCredential(t *testing.T) {
	st := &mockState{}
	st.On("Snapshot", mock.Anything).Return(&domain.EngineState{
		APIBaseURL: "https://feed.test",
		Credential: "tok-7",
	}, nil)
	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "https://feed.test", "tok-7").
		Return([]domain.DonationEvent{{ID: "x1"}}, nil)

	events, err := NewService(st, f, nil).FetchNow(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	f.AssertExpectations(t)
}

func TestFetchNow_PropagatesFetchError(t *testing.T) {
	st := &mockState{}
	st.On("Snapshot", mock.Anything).Return(&domain.EngineState{APIBaseURL: "https://feed.test"}, nil)
	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.Unavailable(401))

	_, err := NewService(st, f, nil).FetchNow(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))

	// The upstream status must stay visible on this path.
	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 401, fe.StatusCode)
}

func TestFetchNow_PropagatesStateError(t *testing.T) {
	st := &mockState{}
	st.On("Snapshot", mock.Anything).Return(nil, domain.ErrStorage)

	_, err := NewService(st, &mockFetcher{}, nil).FetchNow(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestStats_TotalsAndTrailingWindow(t *testing.T) {
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	events := []domain.DonationEvent{
		{ID: "a", Amount: 50, Timestamp: now.Add(-1 * time.Hour)},
		{ID: "b", Amount: 10, Timestamp: now.Add(-23 * time.Hour)},
		{ID: "c", Amount: 25, Timestamp: now.Add(-48 * time.Hour)},
	}

	stats := NewService(&mockState{}, &mockFetcher{}, nil).Stats(events, now)

	assert.Equal(t, 85.0, stats.TotalAmount)
	assert.Equal(t, 2, stats.Last24hCount)
}

func TestStats_EmptyFeed(t *testing.T) {
	stats := NewService(&mockState{}, &mockFetcher{}, nil).Stats(nil, time.Now())

	assert.Zero(t, stats.TotalAmount)
	assert.Zero(t, stats.Last24hCount)
}

func TestSnapshot_NoArchiveConfigured(t *testing.T) {
	_, err := NewService(&mockState{}, &mockFetcher{}, nil).Snapshot(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshot_ReadsArchive(t *testing.T) {
	snaps := &mockSnapshots{}
	snaps.On("Latest", mock.Anything).Return(&s3infra.Snapshot{
		Events: []domain.DonationEvent{{ID: "x1"}},
	}, nil)

	snap, err := NewService(&mockState{}, &mockFetcher{}, snaps).Snapshot(context.Background())

	require.NoError(t, err)
	require.Len(t, snap.Events, 1)
}

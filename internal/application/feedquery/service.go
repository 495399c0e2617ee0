package feedquery

import (
	"context"
	"time"

	"github.com/pd-tracker/internal/application/state"
	"github.com/pd-tracker/internal/domain"
	s3infra "github.com/pd-tracker/internal/infrastructure/s3"
)

// Fetcher reads the remote donation feed.
type Fetcher interface {
	Fetch(ctx context.Context, baseURL, credential string) ([]domain.DonationEvent, error)
}

// SnapshotReader serves the last archived feed snapshot.
type SnapshotReader interface {
	Latest(ctx context.Context) (*s3infra.Snapshot, error)
}

// Stats summarizes a feed the way the dashboard popup presents it.
type Stats struct {
	TotalAmount  float64 `json:"total_amount"`
	Last24hCount int     `json:"last_24h_count"`
}

// Service is the presentation layer's read path. It shares the feed client
// and the stored credential with the poller but not its cadence: every call
// here is on demand, and it is the only place an authentication-specific
// upstream status may be surfaced to a human.
type Service interface {
	FetchNow(ctx context.Context) ([]domain.DonationEvent, error)
	Stats(events []domain.DonationEvent, now time.Time) Stats
	Snapshot(ctx context.Context) (*s3infra.Snapshot, error)
}

type service struct {
	state     state.Service
	fetcher   Fetcher
	snapshots SnapshotReader // nil when archiving is disabled
}

func NewService(st state.Service, fetcher Fetcher, snapshots SnapshotReader) Service {
	return &service{state: st, fetcher: fetcher, snapshots: snapshots}
}

func (s *service) FetchNow(ctx context.Context) ([]domain.DonationEvent, error) {
	st, err := s.state.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.fetcher.Fetch(ctx, st.APIBaseURL, st.Credential)
}

func (s *service) Stats(events []domain.DonationEvent, now time.Time) Stats {
	var st Stats
	cutoff := now.Add(-24 * time.Hour)
	for _, e := range events {
		st.TotalAmount += e.Amount
		if e.Timestamp.After(cutoff) {
			st.Last24hCount++
		}
	}
	return st
}

func (s *service) Snapshot(ctx context.Context) (*s3infra.Snapshot, error) {
	if s.snapshots == nil {
		return nil, domain.ErrNotFound
	}
	return s.snapshots.Latest(ctx)
}

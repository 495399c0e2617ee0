package engine

import (
	"context"
	"log/slog"

	"github.com/pd-tracker/internal/application/state"
	"github.com/pd-tracker/internal/domain"
)

// Fetcher reads the remote donation feed.
type Fetcher interface {
	Fetch(ctx context.Context, baseURL, credential string) ([]domain.DonationEvent, error)
}

// Notifier surfaces a new donation event. Fire-and-forget: the engine
// observes no result.
type Notifier interface {
	Notify(ctx context.Context, e domain.DonationEvent)
}

// Archiver persists a copy of each successfully fetched feed. Optional.
type Archiver interface {
	Put(ctx context.Context, events []domain.DonationEvent) error
}

// Service is the change detector at the heart of the tracker. Each cycle
// fetches the feed, picks the latest event by timestamp, and compares its id
// against the durable last-seen marker. The id is the sole dedup key; if
// several events arrived since the previous cycle only the newest one is
// notified; there is deliberately no backfill.
type Service struct {
	state    state.Service
	fetcher  Fetcher
	notifier Notifier
	archive  Archiver // nil disables snapshot archiving
}

func NewService(st state.Service, fetcher Fetcher, notifier Notifier, archive Archiver) *Service {
	return &Service{state: st, fetcher: fetcher, notifier: notifier, archive: archive}
}

// RunCycle executes one fetch→compare→(notify)→persist cycle. Errors never
// escalate: a failed cycle logs, mutates nothing, and the next tick proceeds
// independently. The caller must guarantee cycles do not overlap.
func (s *Service) RunCycle(ctx context.Context) {
	st, err := s.state.Snapshot(ctx)
	if err != nil {
		slog.Warn("poll cycle aborted: state read failed", "err", err)
		return
	}

	events, err := s.fetcher.Fetch(ctx, st.APIBaseURL, st.Credential)
	if err != nil {
		// Unreachable and unavailable are absorbed alike: no retry before
		// the next natural tick, no state mutation.
		slog.Debug("poll fetch failed", "err", err)
		return
	}

	if s.archive != nil {
		if err := s.archive.Put(ctx, events); err != nil {
			slog.Warn("snapshot archive failed", "err", err)
		}
	}

	latest, ok := domain.LatestEvent(events)
	if !ok {
		return // empty feed is a valid steady state
	}

	if st.LastSeenID == "" {
		// First run after install or clear: arm the detector without firing
		// so installation never produces a false notification.
		if err := s.state.SetLastSeenID(ctx, latest.ID); err != nil {
			slog.Warn("could not arm last-seen marker", "err", err)
		}
		return
	}

	if latest.ID == st.LastSeenID {
		return
	}

	s.notifier.Notify(ctx, latest)
	// Persisted immediately after the notify call, in the same cycle. A
	// crash in between can produce at most one duplicate notification on
	// the next cycle, which is tolerated.
	if err := s.state.SetLastSeenID(ctx, latest.ID); err != nil {
		slog.Warn("could not persist last-seen marker", "id", latest.ID, "err", err)
	}
}

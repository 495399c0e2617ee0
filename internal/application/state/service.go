package state

import (
	"context"
	"fmt"

	"github.com/pd-tracker/internal/domain"
)

// Repository is the durable backing store for the engine state.
type Repository interface {
	Get(ctx context.Context) (*domain.EngineState, error)
	SetCredential(ctx context.Context, token string) error
	ClearCredential(ctx context.Context) error
	SetLastSeenID(ctx context.Context, id string) error
}

// Service is the single access path to the shared engine state. Write
// ownership is split by field: the credential sync bridge calls
// SetCredential, the poller calls SetLastSeenID, and the presentation layer
// may only call ClearCredential. Every storage failure is wrapped in
// ErrStorage so callers can abort a cycle without inspecting the backend.
type Service interface {
	// Snapshot returns the current state with the API base URL defaulted to
	// the configured endpoint when no override is stored.
	Snapshot(ctx context.Context) (*domain.EngineState, error)
	SetCredential(ctx context.Context, token string) error
	ClearCredential(ctx context.Context) error
	SetLastSeenID(ctx context.Context, id string) error
}

type service struct {
	repo           Repository
	defaultBaseURL string
}

func NewService(repo Repository, defaultBaseURL string) Service {
	return &service{repo: repo, defaultBaseURL: defaultBaseURL}
}

func (s *service) Snapshot(ctx context.Context) (*domain.EngineState, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	if st.APIBaseURL == "" {
		st.APIBaseURL = s.defaultBaseURL
	}
	return st, nil
}

func (s *service) SetCredential(ctx context.Context, token string) error {
	if err := s.repo.SetCredential(ctx, token); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *service) ClearCredential(ctx context.Context) error {
	if err := s.repo.ClearCredential(ctx); err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *service) SetLastSeenID(ctx context.Context, id string) error {
	if err := s.repo.SetLastSeenID(ctx, id); err != nil {
		return storageErr(err)
	}
	return nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}

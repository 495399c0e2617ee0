package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pd-tracker/internal/pkg/id"
)

// MessageType discriminates the bridge's inbound message union.
type MessageType string

const (
	TypeAuthSync      MessageType = "AUTH_SYNC"
	TypeConfigUpdated MessageType = "CONFIG_UPDATED"
)

// Envelope is the wire shape of a bridge message as posted by the
// page-context collaborator.
type Envelope struct {
	Type  MessageType `json:"type" validate:"required,oneof=AUTH_SYNC CONFIG_UPDATED"`
	Token string      `json:"token" validate:"required_if=Type AUTH_SYNC"`
}

// CredentialWriter is the only state access the bridge needs: it is the sole
// writer of the credential besides an explicit logout.
type CredentialWriter interface {
	SetCredential(ctx context.Context, token string) error
}

// Poker requests an immediate poll cycle.
type Poker interface {
	Poke()
}

type message struct {
	id    string
	typ   MessageType
	token string
	reply chan error
}

// Service relays credential-sync and config-updated messages from the page
// context into the engine. A single consumer goroutine keeps each credential
// write strictly ordered ahead of the poll it triggers.
type Service struct {
	state CredentialWriter
	poker Poker
	inbox chan message
}

func NewService(state CredentialWriter, poker Poker) *Service {
	return &Service{
		state: state,
		poker: poker,
		inbox: make(chan message, 16),
	}
}

// Run consumes messages until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-s.inbox:
			s.handle(ctx, m)
		}
	}
}

func (s *Service) handle(ctx context.Context, m message) {
	switch m.typ {
	case TypeAuthSync:
		err := s.state.SetCredential(ctx, m.token)
		// Ack means "credential stored", not "feed verified": the sender
		// hears back before the triggered poll runs, and regardless of how
		// that poll goes.
		m.reply <- err
		if err == nil {
			slog.Info("credential synced from page context", "msg_id", m.id)
			s.poker.Poke()
		}
	case TypeConfigUpdated:
		m.reply <- nil
		slog.Info("configuration updated, polling now", "msg_id", m.id)
		s.poker.Poke()
	default:
		m.reply <- fmt.Errorf("unknown message type %q", m.typ)
	}
}

// Sync stores a freshly obtained credential and triggers an immediate poll.
// Overwrite, last-write-wins; the token's shape is not validated here, the
// server judges it on the next fetch. The returned error reflects the store
// write only.
func (s *Service) Sync(ctx context.Context, token string) error {
	return s.send(ctx, message{
		id:    id.New(),
		typ:   TypeAuthSync,
		token: token,
		reply: make(chan error, 1),
	})
}

// ConfigUpdated triggers an immediate poll with the current configuration.
func (s *Service) ConfigUpdated(ctx context.Context) error {
	return s.send(ctx, message{
		id:    id.New(),
		typ:   TypeConfigUpdated,
		reply: make(chan error, 1),
	})
}

func (s *Service) send(ctx context.Context, m message) error {
	select {
	case s.inbox <- m:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-m.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pd-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubState struct {
	snapshot    *domain.EngineState
	snapshotErr error
	clearErr    error
	cleared     bool
}

func (s *stubState) Snapshot(context.Context) (*domain.EngineState, error) {
	return s.snapshot, s.snapshotErr
}
func (s *stubState) SetCredential(context.Context, string) error { return nil }
func (s *stubState) ClearCredential(context.Context) error {
	s.cleared = true
	return s.clearErr
}
func (s *stubState) SetLastSeenID(context.Context, string) error { return nil }

func TestStateGet(t *testing.T) {
	h := NewStateHandler(&stubState{snapshot: &domain.EngineState{
		APIBaseURL: "https://feed.test",
		Credential: "tok",
	}})

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/v1/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var env StateEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "https://feed.test", env.APIBaseURL)
	assert.True(t, env.Authenticated)
}

func TestStateGet_NeverLeaksCredential(t *testing.T) {
	h := NewStateHandler(&stubState{snapshot: &domain.EngineState{
		APIBaseURL: "https://feed.test",
		Credential: "super-secret",
	}})

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/v1/state", nil))

	assert.NotContains(t, rec.Body.String(), "super-secret")
}

func TestStateGet_StorageFailure(t *testing.T) {
	h := NewStateHandler(&stubState{snapshotErr: domain.ErrStorage})

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/v1/state", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetCredential(t *testing.T) {
	h := NewStateHandler(&stubState{snapshot: &domain.EngineState{Credential: "tok"}})

	rec := httptest.NewRecorder()
	h.GetCredential(rec, httptest.NewRequest(http.MethodGet, "/v1/state/credential", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var env CredentialEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "tok", env.Credential)
}

func TestGetCredential_NoneStored(t *testing.T) {
	h := NewStateHandler(&stubState{snapshot: &domain.EngineState{}})

	rec := httptest.NewRecorder()
	h.GetCredential(rec, httptest.NewRequest(http.MethodGet, "/v1/state/credential", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearCredential(t *testing.T) {
	st := &stubState{}
	h := NewStateHandler(st)

	rec := httptest.NewRecorder()
	h.ClearCredential(rec, httptest.NewRequest(http.MethodDelete, "/v1/state/credential", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, st.cleared)
}

func TestClearCredential_StorageFailure(t *testing.T) {
	h := NewStateHandler(&stubState{clearErr: domain.ErrStorage})

	rec := httptest.NewRecorder()
	h.ClearCredential(rec, httptest.NewRequest(http.MethodDelete, "/v1/state/credential", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

package handler

import (
	"net/http"

	"github.com/pd-tracker/internal/application/state"
)

// StateHandler exposes the presentation layer's view of the engine state.
type StateHandler struct {
	svc state.Service
}

func NewStateHandler(svc state.Service) *StateHandler {
	return &StateHandler{svc: svc}
}

func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "state unavailable")
		return
	}
	writeJSON(w, http.StatusOK, StateEnvelope{
		APIBaseURL:    st.APIBaseURL,
		Authenticated: st.Authenticated(),
	})
}

func (h *StateHandler) GetCredential(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "state unavailable")
		return
	}
	if !st.Authenticated() {
		writeError(w, http.StatusNotFound, "no credential stored")
		return
	}
	writeJSON(w, http.StatusOK, CredentialEnvelope{Credential: st.Credential})
}

// ClearCredential logs the user out of the tracker. Clearing never triggers
// a poll; only setting a credential does.
func (h *StateHandler) ClearCredential(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearCredential(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "could not clear credential")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "credential cleared"})
}

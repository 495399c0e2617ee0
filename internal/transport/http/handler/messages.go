package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pd-tracker/internal/application/bridge"
	"github.com/pd-tracker/internal/pkg/validate"
)

// MessageHandler receives bridge messages from the page-context
// collaborator.
type MessageHandler struct {
	svc *bridge.Service
}

func NewMessageHandler(svc *bridge.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Receive accepts an {type, token} envelope, dispatches it into the bridge
// and answers once the bridge acknowledges. For AUTH_SYNC the 200 means
// "credential stored"; it says nothing about the poll that follows.
func (h *MessageHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var env bridge.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(env); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch env.Type {
	case bridge.TypeAuthSync:
		if err := h.svc.Sync(r.Context(), env.Token); err != nil {
			writeError(w, http.StatusInternalServerError, "could not store credential")
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "credential stored"})
	case bridge.TypeConfigUpdated:
		if err := h.svc.ConfigUpdated(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "could not trigger poll")
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "poll triggered"})
	default:
		writeError(w, http.StatusBadRequest, "unknown message type")
	}
}

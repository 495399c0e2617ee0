package handler

import (
	"encoding/json"
	"net/http"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StateEnvelope describes the engine's current configuration to the
// presentation layer without leaking the credential itself.
type StateEnvelope struct {
	APIBaseURL    string `json:"api_base_url"`
	Authenticated bool   `json:"authenticated"`
}

// CredentialEnvelope carries the stored credential to the local popup.
type CredentialEnvelope struct {
	Credential string `json:"credential"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

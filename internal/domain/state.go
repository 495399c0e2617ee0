package domain

import "time"

// EngineState is the durable process-wide state shared by the poller, the
// credential sync bridge and the presentation layer. It survives daemon
// restarts. Write ownership is split by field: the bridge writes Credential,
// the poller writes LastSeenID, and the presentation layer may only clear
// Credential.
type EngineState struct {
	StateID    string    `json:"-" dynamodbav:"state_id"`
	Credential string    `json:"credential,omitempty" dynamodbav:"credential"`
	APIBaseURL string    `json:"api_base_url,omitempty" dynamodbav:"api_base_url"`
	LastSeenID string    `json:"last_seen_id,omitempty" dynamodbav:"last_seen_id"`
	UpdatedAt  time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// Authenticated reports whether a credential is present. An empty credential
// means "unauthenticated"; polling still runs, the upstream just answers
// with whatever it serves anonymously.
func (s *EngineState) Authenticated() bool {
	return s.Credential != ""
}

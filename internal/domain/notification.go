package domain

// PriorityHigh marks a notification that should be surfaced immediately.
const PriorityHigh = 2

// Notification is a rendered local alert for a single donation event.
// No record of sent notifications is kept beyond the engine's last-seen
// marker.
type Notification struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Priority int    `json:"priority"`
}

package domain

import (
	"sort"
	"time"
)

// TransactionType determines how a donation is framed when presented.
type TransactionType string

const (
	TransactionIncoming    TransactionType = "incoming"
	TransactionTransferOut TransactionType = "transfer-out"
)

// DonationEvent is a single entry in the remote donation feed. Events are
// immutable once fetched; ID is the sole deduplication key and Timestamp is
// used for ordering only.
type DonationEvent struct {
	ID                   string          `json:"id"`
	Timestamp            time.Time       `json:"timestamp"`
	Amount               float64         `json:"amount"`
	TransactionType      TransactionType `json:"transactionType"`
	SenderID             int64           `json:"senderId"`
	SenderDisplayName    string          `json:"senderDisplayName"`
	SenderUsername       string          `json:"senderUsername"`
	RecipientUsername    string          `json:"recipientUsername"`
	RecipientDisplayName string          `json:"recipientDisplayName,omitempty"`
	Message              string          `json:"message,omitempty"`
}

// LatestEvent returns the most recent event by timestamp. The feed makes no
// ordering guarantee, so the input is copied and sorted descending locally
// before the head is taken. Returns false on an empty feed.
func LatestEvent(events []DonationEvent) (DonationEvent, bool) {
	if len(events) == 0 {
		return DonationEvent{}, false
	}
	sorted := make([]DonationEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted[0], true
}

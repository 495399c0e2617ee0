package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/pd-tracker/internal/application/feedquery"
	"github.com/pd-tracker/internal/domain"
)

// FeedHandler serves on-demand feed reads for the presentation layer,
// independent of the poller's cadence.
type FeedHandler struct {
	svc feedquery.Service
}

func NewFeedHandler(svc feedquery.Service) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// Fetch reads the live feed. The upstream status is forwarded for
// unavailable responses; this is the one place a 401 reaches a human, so
// the popup can say "please log in" while the poller stays silent.
func (h *FeedHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.FetchNow(r.Context())
	if err != nil {
		feedError(w, err)
		return
	}
	if events == nil {
		events = []domain.DonationEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *FeedHandler) Stats(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.FetchNow(r.Context())
	if err != nil {
		feedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Stats(events, time.Now()))
}

func (h *FeedHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshot archived yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "snapshot unavailable")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func feedError(w http.ResponseWriter, err error) {
	var fe *domain.FetchError
	switch {
	case errors.As(err, &fe) && fe.StatusCode != 0:
		writeError(w, fe.StatusCode, "feed unavailable")
	case errors.Is(err, domain.ErrUnreachable):
		writeError(w, http.StatusBadGateway, "feed unreachable")
	default:
		writeError(w, http.StatusInternalServerError, "feed fetch failed")
	}
}

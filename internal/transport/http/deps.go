package http

import (
	"github.com/pd-tracker/internal/application/bridge"
	"github.com/pd-tracker/internal/application/feedquery"
	"github.com/pd-tracker/internal/application/state"
)

// Deps holds the application services the router exposes. The bridge and the
// scheduler run their own goroutines, so they are constructed in main and
// handed in here.
type Deps struct {
	State  state.Service
	Bridge *bridge.Service
	Feed   feedquery.Service
}

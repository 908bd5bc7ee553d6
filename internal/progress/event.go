// Package progress defines the diagnostic events emitted by the crawl engine.
package progress

import (
	"time"

	"github.com/google/uuid"
)

// Stage denotes which traversal milestone an Event represents.
type Stage string

// Supported progress stages.
const (
	StagePageVisited Stage = "PAGE_VISITED"
	StageFetchError  Stage = "FETCH_ERROR"
)

// Event captures a single traversal milestone.
type Event struct {
	// RunID identifies the crawl run the event belongs to.
	RunID uuid.UUID
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
	// Stage denotes the milestone.
	Stage Stage
	// URL is the page the milestone refers to.
	URL string
	// Depth is the traversal depth at which the page was reached.
	Depth int
	// Note carries low-volume context, e.g. fetch error text.
	Note string
}

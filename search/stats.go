package search

import (
	"github.com/rs/zerolog"
)

// Stats describe one call to an engine.
type Stats struct {
	// Nodes counts every frame that passed the guard.
	Nodes uint64
	// Leaves counts calls into the evaluator.
	Leaves uint64
	// CompletedDepth is the deepest search that ran to completion.
	CompletedDepth int
	Cancelled      bool
	OpeningBook    bool
}

func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("leaves", s.Leaves).
		Int("completed-depth", s.CompletedDepth).
		Bool("cancelled", s.Cancelled).
		Bool("opening-book", s.OpeningBook)
}

// Package probe abstracts the register-read channel that feeds the
// analysis pipeline.
//
// The core is a pure function over snapshots; everything that touches a
// transport lives behind the Source interface here. Cancellation and
// timeout semantics belong to the Source, never to the core.
package probe

import (
	"context"
	"errors"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// ErrExhausted is returned by finite sources once every capture has
// been read.
var ErrExhausted = errors.New("probe: no more captures")

// Capture is one register observation with its provenance.
type Capture struct {
	// ID uniquely identifies this observation.
	ID string

	// Label is the caller-facing capture name, when one was recorded.
	Label string

	// Snapshot holds the raw register values.
	Snapshot clk.RegisterSnapshot
}

// Source supplies register snapshots. Implementations must be safe for
// use from a single reader; they are not required to support concurrent
// readers.
type Source interface {
	// ReadSnapshot returns the next capture. It honors ctx cancellation
	// and returns ErrExhausted when a finite source runs out.
	ReadSnapshot(ctx context.Context) (Capture, error)
}

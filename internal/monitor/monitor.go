package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/probe"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/report"
)

// Event is delivered to the handler for every successful poll.
type Event struct {
	// Capture identifies the observation the event came from.
	Capture probe.Capture

	// Report is the full analysis for this capture.
	Report *report.Report

	// First is true for the first poll, before any diff baseline
	// exists.
	First bool

	// Changes lists state differences against the previous poll.
	// Empty when nothing changed (and on the first poll).
	Changes []string
}

// Handler receives polling events.
type Handler func(Event)

// Monitor polls a probe source at a fixed interval, analyzes every
// snapshot, and reports state changes between consecutive polls. All
// cross-poll memory lives in the loop's local variables; the analysis
// core is invoked statelessly each tick.
type Monitor struct {
	source   probe.Source
	opts     report.Options
	interval time.Duration
	handler  Handler
}

// New creates a Monitor. A zero interval polls as fast as the source
// delivers, which suits replay sources.
func New(source probe.Source, opts report.Options, interval time.Duration, handler Handler) *Monitor {
	return &Monitor{
		source:   source,
		opts:     opts,
		interval: interval,
		handler:  handler,
	}
}

// Run polls until the context is canceled or a finite source is
// exhausted. Exhaustion is a clean stop, not an error.
func (m *Monitor) Run(ctx context.Context) error {
	var (
		baseline Event
		havePrev bool
	)

	for {
		capture, err := m.source.ReadSnapshot(ctx)
		if errors.Is(err, probe.ErrExhausted) {
			return nil
		}
		if err != nil {
			return err
		}

		ev := Event{
			Capture: capture,
			Report:  report.Analyze(capture.Snapshot, m.opts),
			First:   !havePrev,
		}
		if havePrev {
			ev.Changes = DiffStates(baseline.Report.State, ev.Report.State)
		}
		m.handler(ev)

		baseline = ev
		havePrev = true

		if m.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.interval):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
	}
}

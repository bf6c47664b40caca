// Package report composes the decode, frequency, validation, and
// diagnostic stages into a single analysis pass and renders the result.
package report

import (
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/decode"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/diagnose"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/freq"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/validate"
)

// Options carries the caller-supplied analysis parameters.
type Options struct {
	// Layout selects the RCC_CR bit layout variant.
	Layout clk.LayoutVariant

	// HSEHz is the board's HSE frequency in Hz; zero means unknown.
	HSEHz uint64
}

// FrequencyFailure records why frequency derivation failed. Frequencies
// are undefined in that case, never a sentinel number.
type FrequencyFailure struct {
	Code    freq.ErrorCode `json:"code"`
	Message string         `json:"message"`
}

// Report is the full output of one decode-and-diagnose pass. Field
// names in the JSON form are stable across versions.
type Report struct {
	State       clk.ClockTreeState   `json:"state"`
	Frequencies *clk.FrequencyReport `json:"frequencies,omitempty"`
	Failure     *FrequencyFailure    `json:"frequency_failure,omitempty"`
	Findings    []clk.Finding        `json:"findings"`
	Diagnostics []clk.Diagnostic     `json:"diagnostics"`
}

// Analyze runs the full pipeline over one snapshot.
//
// The pass never fails as a whole: a frequency error is recorded in
// Failure and the decoded state plus state-only findings are still
// reported, so partial results are always available.
func Analyze(snap clk.RegisterSnapshot, opts Options) *Report {
	state := decode.Snapshot(snap, opts.Layout)

	frequencies, err := freq.Compute(state, freq.Options{HSEHz: opts.HSEHz})

	r := &Report{
		State:       state,
		Frequencies: frequencies,
	}
	if err != nil {
		r.Failure = failureFrom(err)
	}

	r.Findings = validate.Check(state, frequencies)
	r.Diagnostics = diagnose.Findings(r.Findings)
	return r
}

func failureFrom(err error) *FrequencyFailure {
	if fe, ok := err.(*freq.Error); ok {
		return &FrequencyFailure{Code: fe.Code, Message: fe.Message}
	}
	return &FrequencyFailure{Message: err.Error()}
}

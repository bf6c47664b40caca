// Package freq derives the frequency at every clock-tree tap point from
// decoded state.
//
// All arithmetic is integer Hz with truncating division. The reference
// tooling disagreed with itself on float vs integer semantics; integer
// truncation is canonical here.
package freq

import (
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// Options carries the caller-supplied inputs that frequency derivation
// cannot read from hardware.
type Options struct {
	// HSEHz is the board's external oscillator frequency. Zero means
	// "not supplied": any HSE-dependent computation fails with
	// ErrCodeMissingHseFrequency rather than assuming a default.
	HSEHz uint64
}

// Compute derives a FrequencyReport from decoded clock-tree state.
//
// On error the report is nil; frequencies are undefined rather than a
// sentinel number. The decoded state and state-only findings remain
// available to the caller regardless.
func Compute(state clk.ClockTreeState, opts Options) (*clk.FrequencyReport, error) {
	if hseRelevant(state) && opts.HSEHz == 0 {
		return nil, newMissingHseError()
	}

	report := &clk.FrequencyReport{}

	if state.Switch.Active == clk.SourcePLL1 {
		if !state.PLL1.Locked {
			return nil, newPllNotLockedError()
		}
		if err := computePLL(state, opts, report); err != nil {
			return nil, err
		}
		report.SystemClock = report.VCO / uint64(state.PLL1.P)
		return report, nil
	}

	report.SystemClock = oscillatorHz(state.Switch.Active, opts)

	// PLL1 taps are still derived when the PLL runs off to the side of
	// the active source, so reports show what a switch would land on.
	if pllComputable(state) {
		if err := computePLL(state, opts, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// computePLL fills the PLL input, VCO, and output tap frequencies.
func computePLL(state clk.ClockTreeState, opts Options, report *clk.FrequencyReport) error {
	pll := state.PLL1

	if pll.M == 0 {
		return newDivideByZeroError(pll.Source)
	}

	src := oscillatorHz(pll.Source, opts)
	if src == 0 {
		// Source "none" or a reserved encoding: taps stay disabled.
		return nil
	}

	report.PLLInput = src / uint64(pll.M)
	report.VCO = report.PLLInput * uint64(pll.N)
	report.PLL1P = tap(report.VCO, pll.P, pll.POutputEnabled)
	report.PLL1Q = tap(report.VCO, pll.Q, pll.QOutputEnabled)
	report.PLL1R = tap(report.VCO, pll.R, pll.ROutputEnabled)
	return nil
}

func tap(vco uint64, div uint32, enabled bool) clk.TapFrequency {
	if !enabled {
		return clk.TapFrequency{Hz: 0, Enabled: false}
	}
	return clk.TapFrequency{Hz: vco / uint64(div), Enabled: true}
}

// oscillatorHz resolves a non-PLL source's nominal frequency. Returns 0
// for sources with no fixed frequency (none, unknown).
func oscillatorHz(src clk.ClockSource, opts Options) uint64 {
	switch src {
	case clk.SourceHSI:
		return clk.HSIClockHz
	case clk.SourceCSI:
		return clk.CSIClockHz
	case clk.SourceHSE:
		return opts.HSEHz
	default:
		return 0
	}
}

// hseRelevant reports whether HSE participates in any frequency path:
// as active source, as selected source, or as the PLL1 reference while
// PLL1 is enabled.
func hseRelevant(state clk.ClockTreeState) bool {
	if state.Switch.Active == clk.SourceHSE || state.Switch.Selected == clk.SourceHSE {
		return true
	}
	return state.PLL1.Enabled && state.PLL1.Source == clk.SourceHSE
}

// pllComputable reports whether PLL1 tap frequencies are derivable when
// PLL1 is not the active source. An unlocked or input-less PLL reports
// zeroed taps without raising an error; those conditions become
// validator findings instead.
func pllComputable(state clk.ClockTreeState) bool {
	return state.PLL1.Enabled && state.PLL1.Locked && state.PLL1.M != 0
}

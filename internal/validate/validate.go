// Package validate checks decoded clock-tree state and derived
// frequencies against the hardware operating envelope.
//
// Validation is pure and never fails: every rule is evaluated
// independently and all findings are returned (no fail-fast). The
// output is sorted by severity then code, so rule evaluation order
// never leaks into results.
package validate

import (
	"fmt"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// Check evaluates every constraint rule against the state and report.
//
// The report may be nil when frequency computation failed; frequency
// rules are skipped in that case and state-only rules still fire, so
// partial results are always available.
func Check(state clk.ClockTreeState, report *clk.FrequencyReport) []clk.Finding {
	var findings []clk.Finding

	findings = append(findings, checkVCORange(state, report)...)
	findings = append(findings, checkVoltageScaling(state, report)...)
	findings = append(findings, checkSwitchConsistency(state)...)
	findings = append(findings, checkPllReadiness(state)...)
	findings = append(findings, checkPllFallback(state)...)
	findings = append(findings, checkDivM1(state)...)

	clk.SortFindings(findings)
	return findings
}

// checkVCORange verifies the VCO frequency sits inside the band the
// VCOSEL selector declares. Applies only when a VCO frequency was
// actually derived; a zero VCO means the PLL path was not computed and
// its root cause surfaces through other rules.
func checkVCORange(state clk.ClockTreeState, report *clk.FrequencyReport) []clk.Finding {
	if report == nil || report.VCO == 0 {
		return nil
	}

	minHz, maxHz := clk.VCOBounds(state.PLL1.VCORange)
	if report.VCO >= minHz && report.VCO <= maxHz {
		return nil
	}

	return []clk.Finding{{
		Code:     clk.CodeVcoOutOfRange,
		Severity: clk.SeverityCritical,
		Observed: fmt.Sprintf("VCO %d Hz (%s band)", report.VCO, state.PLL1.VCORange),
		Expected: fmt.Sprintf("%d-%d Hz", minHz, maxHz),
	}}
}

// checkVoltageScaling verifies the system clock against the VOS level.
// Above 400 MHz only VOS0 is valid (Critical). Below that, running
// past the configured level's ceiling is a performance problem, never
// a correctness one (Warning).
func checkVoltageScaling(state clk.ClockTreeState, report *clk.FrequencyReport) []clk.Finding {
	if report == nil || report.SystemClock == 0 {
		return nil
	}

	sysclk := report.SystemClock
	level := state.Voltage.Level

	if sysclk > clk.VOS1MaxSysclkHz && level != clk.VOS0 {
		return []clk.Finding{{
			Code:     clk.CodeVosInsufficient,
			Severity: clk.SeverityCritical,
			Observed: fmt.Sprintf("sysclk %d Hz at %s", sysclk, level),
			Expected: fmt.Sprintf("VOS0 required above %d Hz", clk.VOS1MaxSysclkHz),
		}}
	}

	if sysclk > clk.MaxSysclkForVOS(level) {
		return []clk.Finding{{
			Code:     clk.CodeVosSuboptimal,
			Severity: clk.SeverityWarning,
			Observed: fmt.Sprintf("sysclk %d Hz at %s", sysclk, level),
			Expected: fmt.Sprintf("at most %d Hz at %s", clk.MaxSysclkForVOS(level), level),
		}}
	}

	return nil
}

// checkSwitchConsistency flags a selected/active mismatch. The mismatch
// is legitimate while a switch is in flight, so this is informational.
func checkSwitchConsistency(state clk.ClockTreeState) []clk.Finding {
	if !state.SwitchPending() {
		return nil
	}

	return []clk.Finding{{
		Code:     clk.CodeSwitchPending,
		Severity: clk.SeverityInfo,
		Observed: fmt.Sprintf("selected %s, active %s", state.Switch.Selected, state.Switch.Active),
		Expected: "selected and active sources equal",
	}}
}

// checkPllReadiness flags PLL1 driving the system clock without lock.
// This fires independently of the frequency error path so diagnostics
// never depend on frequency computation succeeding.
func checkPllReadiness(state clk.ClockTreeState) []clk.Finding {
	if state.Switch.Active != clk.SourcePLL1 || state.PLL1.Locked {
		return nil
	}

	return []clk.Finding{{
		Code:     clk.CodePllNotLockedButSelected,
		Severity: clk.SeverityCritical,
		Observed: "active source PLL1 with PLL1RDY clear",
		Expected: "PLL1 locked before selection",
	}}
}

// checkPllFallback flags running on an internal oscillator while PLL1
// sits unlocked and HSE is ready: the PLL is usable, performance is
// degraded.
func checkPllFallback(state clk.ClockTreeState) []clk.Finding {
	active := state.Switch.Active
	if active != clk.SourceHSI && active != clk.SourceCSI {
		return nil
	}
	if !state.PLL1.Enabled || state.PLL1.Locked || !state.HSE.Ready {
		return nil
	}

	return []clk.Finding{{
		Code:     clk.CodePllFallback,
		Severity: clk.SeverityWarning,
		Observed: fmt.Sprintf("running on %s with PLL1 unlocked and HSE ready", active),
		Expected: "PLL1 locked and driving the system clock",
	}}
}

// checkDivM1 flags DIVM1=0 while PLL1 is enabled: the configuration
// corrupts the frequency math entirely.
func checkDivM1(state clk.ClockTreeState) []clk.Finding {
	if !state.PLL1.Enabled || state.PLL1.M != 0 {
		return nil
	}

	return []clk.Finding{{
		Code:     clk.CodeDivM1Zero,
		Severity: clk.SeverityCritical,
		Observed: "DIVM1 = 0 with PLL1 enabled",
		Expected: "DIVM1 in 1-63",
	}}
}

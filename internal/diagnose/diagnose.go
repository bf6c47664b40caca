// Package diagnose maps validator findings to ranked, human-actionable
// messages.
//
// The mapping is table-driven and performs no arithmetic; it cannot
// fail. Ordering is Critical first, then Warning, then Info; within a
// severity, the stable insertion order of the originating findings.
package diagnose

import (
	"fmt"
	"sort"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// entry pairs a message template with a remediation string. Templates
// receive the finding's observed value.
type entry struct {
	message string
	action  string
}

var table = map[clk.FindingCode]entry{
	clk.CodeVcoOutOfRange: {
		message: "PLL1 VCO frequency is outside its operating band: %s",
		action:  "Adjust DIVM1/DIVN1 or the VCOSEL range so the VCO lands inside the selected band",
	},
	clk.CodeVosInsufficient: {
		message: "System clock exceeds the limit for the configured voltage scaling: %s",
		action:  "Raise voltage scaling to VOS0 before running above 400 MHz",
	},
	clk.CodeVosSuboptimal: {
		message: "System clock is above the ceiling of the configured voltage scaling level: %s",
		action:  "Select a lower VOS index for this frequency",
	},
	clk.CodeSwitchPending: {
		message: "Clock switch pending: %s",
		action:  "Poll SWS until it matches SW; no action needed unless the switch never completes",
	},
	clk.CodePllNotLockedButSelected: {
		message: "Trying to use PLL1 but PLL is not locked: %s",
		action:  "Check PLL configuration and input clock, then wait for PLL1RDY before switching",
	},
	clk.CodePllFallback: {
		message: "Running degraded on an internal oscillator: %s",
		action:  "Lock PLL1 from HSE and switch the system clock back to PLL1",
	},
	clk.CodeDivM1Zero: {
		message: "PLL1 input divider is disabled: %s",
		action:  "Program DIVM1 to a value in 1-63; DIVM1=0 gates the PLL reference entirely",
	},
}

// Findings projects findings into diagnostics. Unknown codes fall back
// to the finding's own observed/expected text so new rules are never
// silently dropped.
func Findings(findings []clk.Finding) []clk.Diagnostic {
	diags := make([]clk.Diagnostic, 0, len(findings))

	for _, f := range findings {
		e, ok := table[f.Code]
		if !ok {
			diags = append(diags, clk.Diagnostic{
				Code:              f.Code,
				Severity:          f.Severity,
				Message:           fmt.Sprintf("%s (expected %s)", f.Observed, f.Expected),
				RecommendedAction: "Inspect the raw registers for this condition",
			})
			continue
		}
		diags = append(diags, clk.Diagnostic{
			Code:              f.Code,
			Severity:          f.Severity,
			Message:           fmt.Sprintf(e.message, f.Observed),
			RecommendedAction: e.action,
		})
	}

	// Critical first, stable within a severity.
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Severity > diags[j].Severity
	})
	return diags
}

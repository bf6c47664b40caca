package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

func healthyPllState() clk.ClockTreeState {
	return clk.ClockTreeState{
		HSI: clk.OscillatorState{On: true, Ready: true},
		PLL1: clk.PLL1State{
			Enabled: true, Locked: true,
			Source: clk.SourceHSI,
			M:      4, N: 30, P: 1, Q: 4, R: 2,
			POutputEnabled: true,
			VCORange:       clk.VCOWide,
		},
		Switch:  clk.SwitchState{Selected: clk.SourcePLL1, Active: clk.SourcePLL1},
		Voltage: clk.VoltageScaling{Level: clk.VOS0, Ready: true},
	}
}

func reportFor(vco, sysclk uint64) *clk.FrequencyReport {
	return &clk.FrequencyReport{
		PLLInput:    16_000_000,
		VCO:         vco,
		PLL1P:       clk.TapFrequency{Hz: sysclk, Enabled: true},
		SystemClock: sysclk,
	}
}

func codes(findings []clk.Finding) []clk.FindingCode {
	out := make([]clk.FindingCode, len(findings))
	for i, f := range findings {
		out[i] = f.Code
	}
	return out
}

// =============================================================================
// Rule 1: VCO range
// =============================================================================

func TestCheckVcoInWideBand(t *testing.T) {
	findings := Check(healthyPllState(), reportFor(480_000_000, 480_000_000))
	assert.Empty(t, findings, "480 MHz VCO sits inside the wide band")
}

func TestCheckVco960MHzExceedsWideBand(t *testing.T) {
	// The deliberate boundary scenario: HSI/4*60 = 960 MHz VCO is past
	// the 836 MHz envelope even though the datasheet label says 960.
	findings := Check(healthyPllState(), reportFor(960_000_000, 480_000_000))

	require.Len(t, findings, 1)
	assert.Equal(t, clk.CodeVcoOutOfRange, findings[0].Code)
	assert.Equal(t, clk.SeverityCritical, findings[0].Severity)
}

func TestCheckVcoWideBandBoundaries(t *testing.T) {
	state := healthyPllState()

	assert.Empty(t, Check(state, reportFor(clk.VCOWideMinHz, 100_000_000)))
	assert.Empty(t, Check(state, reportFor(clk.VCOWideMaxHz, 100_000_000)))

	low := Check(state, reportFor(clk.VCOWideMinHz-1, 100_000_000))
	require.Len(t, low, 1)
	assert.Equal(t, clk.CodeVcoOutOfRange, low[0].Code)

	high := Check(state, reportFor(clk.VCOWideMaxHz+1, 100_000_000))
	require.Len(t, high, 1)
	assert.Equal(t, clk.CodeVcoOutOfRange, high[0].Code)
}

func TestCheckVcoMediumBand(t *testing.T) {
	state := healthyPllState()
	state.PLL1.VCORange = clk.VCOMedium

	assert.Empty(t, Check(state, reportFor(300_000_000, 150_000_000)))

	findings := Check(state, reportFor(480_000_000, 160_000_000))
	require.Len(t, findings, 1)
	assert.Equal(t, clk.CodeVcoOutOfRange, findings[0].Code)
}

func TestCheckVcoSkippedWhenNotDerived(t *testing.T) {
	// VCO 0 means the PLL path was not computed; the root cause has its
	// own rules and a spurious range finding would just be noise.
	state := healthyPllState()
	state.PLL1.Enabled = false
	state.Switch = clk.SwitchState{Selected: clk.SourceHSI, Active: clk.SourceHSI}

	report := &clk.FrequencyReport{SystemClock: clk.HSIClockHz}
	assert.Empty(t, Check(state, report))
}

// =============================================================================
// Rule 2: voltage scaling
// =============================================================================

func TestCheckVos480MHzRequiresVOS0(t *testing.T) {
	// 480 MHz on VOS1 must raise exactly one Critical voltage finding,
	// nothing else.
	state := healthyPllState()
	state.Voltage.Level = clk.VOS1

	findings := Check(state, reportFor(480_000_000, 480_000_000))

	require.Len(t, findings, 1)
	assert.Equal(t, clk.CodeVosInsufficient, findings[0].Code)
	assert.Equal(t, clk.SeverityCritical, findings[0].Severity)
}

func TestCheckVos480MHzAtVOS0Clean(t *testing.T) {
	findings := Check(healthyPllState(), reportFor(480_000_000, 480_000_000))
	assert.Empty(t, findings)
}

func TestCheckVosSuboptimalIsWarningNeverCritical(t *testing.T) {
	// 350 MHz at VOS3 is a performance problem, not a correctness one.
	state := healthyPllState()
	state.Voltage.Level = clk.VOS3

	findings := Check(state, reportFor(700_000_000, 350_000_000))

	require.Len(t, findings, 1)
	assert.Equal(t, clk.CodeVosSuboptimal, findings[0].Code)
	assert.Equal(t, clk.SeverityWarning, findings[0].Severity)
}

func TestCheckVosWithinLevelCeiling(t *testing.T) {
	state := healthyPllState()
	state.Voltage.Level = clk.VOS3

	findings := Check(state, reportFor(400_000_000, 200_000_000))
	assert.Empty(t, findings, "200 MHz is exactly the VOS3 ceiling")
}

// =============================================================================
// Rule 3: switch consistency
// =============================================================================

func TestCheckSwitchPendingIsInfoOnly(t *testing.T) {
	// Selected PLL1 while still running on HSI must yield exactly one
	// Info finding from the mismatch alone.
	state := clk.ClockTreeState{
		HSI:     clk.OscillatorState{On: true, Ready: true},
		Switch:  clk.SwitchState{Selected: clk.SourcePLL1, Active: clk.SourceHSI},
		Voltage: clk.VoltageScaling{Level: clk.VOS3, Ready: true},
	}

	findings := Check(state, &clk.FrequencyReport{SystemClock: clk.HSIClockHz})

	require.Len(t, findings, 1)
	assert.Equal(t, clk.CodeSwitchPending, findings[0].Code)
	assert.Equal(t, clk.SeverityInfo, findings[0].Severity)
}

// =============================================================================
// Rule 4: PLL readiness vs selection
// =============================================================================

func TestCheckPllSelectedButNotLocked(t *testing.T) {
	state := healthyPllState()
	state.PLL1.Locked = false

	// Frequency computation fails in this configuration; the finding
	// must fire from state alone.
	findings := Check(state, nil)

	require.Len(t, findings, 1)
	assert.Equal(t, clk.CodePllNotLockedButSelected, findings[0].Code)
	assert.Equal(t, clk.SeverityCritical, findings[0].Severity)
}

// =============================================================================
// Rule 5: fallback detection
// =============================================================================

func TestCheckPllFallback(t *testing.T) {
	state := clk.ClockTreeState{
		HSI: clk.OscillatorState{On: true, Ready: true},
		HSE: clk.OscillatorState{On: true, Ready: true},
		PLL1: clk.PLL1State{
			Enabled: true, Locked: false,
			Source: clk.SourceHSI,
			M:      4, N: 30, P: 1, Q: 4, R: 2,
		},
		Switch:  clk.SwitchState{Selected: clk.SourceHSI, Active: clk.SourceHSI},
		Voltage: clk.VoltageScaling{Level: clk.VOS3, Ready: true},
	}

	findings := Check(state, &clk.FrequencyReport{SystemClock: clk.HSIClockHz})

	require.Len(t, findings, 1)
	assert.Equal(t, clk.CodePllFallback, findings[0].Code)
	assert.Equal(t, clk.SeverityWarning, findings[0].Severity)
}

func TestCheckNoFallbackWithoutReadyHse(t *testing.T) {
	state := clk.ClockTreeState{
		HSI: clk.OscillatorState{On: true, Ready: true},
		PLL1: clk.PLL1State{
			Enabled: true, Locked: false,
			Source: clk.SourceHSI,
			M:      4, N: 30, P: 1, Q: 4, R: 2,
		},
		Switch:  clk.SwitchState{Selected: clk.SourceHSI, Active: clk.SourceHSI},
		Voltage: clk.VoltageScaling{Level: clk.VOS3, Ready: true},
	}

	findings := Check(state, &clk.FrequencyReport{SystemClock: clk.HSIClockHz})
	assert.Empty(t, findings)
}

// =============================================================================
// Rule 6: DIVM1 = 0
// =============================================================================

func TestCheckDivM1ZeroWhilePllEnabled(t *testing.T) {
	state := healthyPllState()
	state.PLL1.M = 0

	// Frequency derivation aborts on this config; the finding fires
	// independently.
	findings := Check(state, nil)

	require.Len(t, findings, 1)
	assert.Equal(t, clk.CodeDivM1Zero, findings[0].Code)
	assert.Equal(t, clk.SeverityCritical, findings[0].Severity)
}

func TestCheckDivM1ZeroIgnoredWhenPllDisabled(t *testing.T) {
	state := clk.ClockTreeState{
		HSI:     clk.OscillatorState{On: true, Ready: true},
		Switch:  clk.SwitchState{Selected: clk.SourceHSI, Active: clk.SourceHSI},
		Voltage: clk.VoltageScaling{Level: clk.VOS3, Ready: true},
	}

	findings := Check(state, &clk.FrequencyReport{SystemClock: clk.HSIClockHz})
	assert.Empty(t, findings)
}

// =============================================================================
// Ordering and composition
// =============================================================================

func TestCheckFindingsSortedBySeverityThenCode(t *testing.T) {
	// Build a state that trips multiple rules at once: unlocked PLL
	// selected, switch pending is impossible here, but fallback plus
	// DIVM1 plus lock produce a mixed-severity set elsewhere. Use an
	// unlocked selected PLL with DIVM1=0 and a pending switch target.
	state := healthyPllState()
	state.PLL1.Locked = false
	state.PLL1.M = 0
	state.Switch = clk.SwitchState{Selected: clk.SourceHSE, Active: clk.SourcePLL1}

	findings := Check(state, nil)

	require.GreaterOrEqual(t, len(findings), 3)
	assert.Equal(t, []clk.FindingCode{
		clk.CodeDivM1Zero,               // critical, "D" < "P"
		clk.CodePllNotLockedButSelected, // critical
		clk.CodeSwitchPending,           // info
	}, codes(findings))

	for i := 1; i < len(findings); i++ {
		assert.GreaterOrEqual(t, findings[i-1].Severity, findings[i].Severity,
			"findings must be ordered critical first")
	}
}

func TestCheckNilReportSkipsFrequencyRules(t *testing.T) {
	// A nil report must not panic and must not produce VCO/VOS noise.
	findings := Check(healthyPllState(), nil)
	assert.Empty(t, findings)
}

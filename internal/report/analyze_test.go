package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/freq"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/testutil"
)

func healthySnapshot() clk.RegisterSnapshot {
	return testutil.NewSnapshot().
		HSI(true, true).
		PLL1(true, true).
		PLLSource(clk.SourceHSI).
		DivM(4).
		Dividers(30, 1, 4, 2).
		Outputs(true, false, false).
		InputRange(clk.Input8To16MHz).
		Switch(clk.SourcePLL1, clk.SourcePLL1).
		VOS(clk.VOS0, true).
		Build()
}

func TestAnalyzeHealthyConfiguration(t *testing.T) {
	rep := Analyze(healthySnapshot(), Options{})

	require.NotNil(t, rep.Frequencies)
	assert.Nil(t, rep.Failure)
	assert.Equal(t, uint64(480_000_000), rep.Frequencies.SystemClock)
	assert.Equal(t, uint64(480_000_000), rep.Frequencies.VCO)
	assert.Empty(t, rep.Findings)
	assert.Empty(t, rep.Diagnostics)
}

func TestAnalyzeVcoOutOfRangeScenario(t *testing.T) {
	// M=4 N=60 P=2 from 64 MHz HSI: 960 MHz VCO, over the wide band.
	snap := testutil.NewSnapshot().
		HSI(true, true).
		PLL1(true, true).
		PLLSource(clk.SourceHSI).
		DivM(4).
		Dividers(60, 2, 4, 2).
		Outputs(true, false, false).
		Switch(clk.SourcePLL1, clk.SourcePLL1).
		VOS(clk.VOS0, true).
		Build()

	rep := Analyze(snap, Options{})

	require.NotNil(t, rep.Frequencies)
	assert.Equal(t, uint64(960_000_000), rep.Frequencies.VCO)
	assert.Equal(t, uint64(480_000_000), rep.Frequencies.SystemClock)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, clk.CodeVcoOutOfRange, rep.Findings[0].Code)
	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, clk.SeverityCritical, rep.Diagnostics[0].Severity)
}

func TestAnalyzePartialResultsOnFrequencyError(t *testing.T) {
	// Unlocked PLL selected: frequency derivation fails, but the
	// decoded state and the lock finding are still reported.
	snap := testutil.NewSnapshot().
		HSI(true, true).
		PLL1(true, false).
		PLLSource(clk.SourceHSI).
		DivM(4).
		Dividers(30, 1, 4, 2).
		Outputs(true, false, false).
		Switch(clk.SourcePLL1, clk.SourcePLL1).
		VOS(clk.VOS0, true).
		Build()

	rep := Analyze(snap, Options{})

	assert.Nil(t, rep.Frequencies)
	require.NotNil(t, rep.Failure)
	assert.Equal(t, freq.ErrCodePllNotLocked, rep.Failure.Code)

	assert.True(t, rep.State.PLL1.Enabled)
	assert.Equal(t, uint32(30), rep.State.PLL1.N)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, clk.CodePllNotLockedButSelected, rep.Findings[0].Code)
}

func TestAnalyzeDivM1ZeroScenario(t *testing.T) {
	snap := testutil.NewSnapshot().
		HSI(true, true).
		PLL1(true, true).
		PLLSource(clk.SourceHSI).
		DivM(0).
		Dividers(30, 1, 4, 2).
		Outputs(true, false, false).
		Switch(clk.SourcePLL1, clk.SourcePLL1).
		VOS(clk.VOS0, true).
		Build()

	rep := Analyze(snap, Options{})

	assert.Nil(t, rep.Frequencies)
	require.NotNil(t, rep.Failure)
	assert.Equal(t, freq.ErrCodeDivideByZero, rep.Failure.Code)

	// Decode of everything else still succeeded.
	assert.Equal(t, uint32(30), rep.State.PLL1.N)
	assert.Equal(t, uint32(1), rep.State.PLL1.P)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, clk.CodeDivM1Zero, rep.Findings[0].Code)
}

func TestAnalyzeMissingHse(t *testing.T) {
	snap := testutil.NewSnapshot().
		HSE(true, true).
		Switch(clk.SourceHSE, clk.SourceHSE).
		VOS(clk.VOS3, true).
		Build()

	rep := Analyze(snap, Options{})
	assert.Nil(t, rep.Frequencies)
	require.NotNil(t, rep.Failure)
	assert.Equal(t, freq.ErrCodeMissingHseFrequency, rep.Failure.Code)

	withHse := Analyze(snap, Options{HSEHz: 8_000_000})
	require.NotNil(t, withHse.Frequencies)
	assert.Equal(t, uint64(8_000_000), withHse.Frequencies.SystemClock)
}

func TestAnalyzeLayoutVariantRespected(t *testing.T) {
	snap := clk.RegisterSnapshot{
		CR:   1<<8 | 1<<10, // alternate-layout HSI on+ready
		CFGR: 0,            // SW=HSI, SWS=HSI
	}

	rep := Analyze(snap, Options{Layout: clk.LayoutAlternate})
	assert.True(t, rep.State.HSI.On)
	assert.True(t, rep.State.HSI.Ready)

	std := Analyze(snap, Options{Layout: clk.LayoutStandard})
	assert.False(t, std.State.HSI.On)
}

func TestAnalyzeDeterministic(t *testing.T) {
	snap := healthySnapshot()

	first := Analyze(snap, Options{})
	second := Analyze(snap, Options{})
	assert.Equal(t, first, second)
}

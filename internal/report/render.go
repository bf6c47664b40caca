package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// RenderText produces the fixed-order plain text report: oscillators,
// PLL1 configuration, switch status, voltage scaling, frequencies top
// to bottom, diagnostics critical-first.
func RenderText(r *Report) string {
	var b strings.Builder

	b.WriteString("Oscillators:\n")
	writeOscillator(&b, "HSI", r.State.HSI)
	writeOscillator(&b, "CSI", r.State.CSI)
	writeOscillator(&b, "HSE", r.State.HSE)

	pll := r.State.PLL1
	b.WriteString("PLL1:\n")
	fmt.Fprintf(&b, "  state: %s, %s, source %s\n",
		onOff(pll.Enabled, "enabled", "disabled"),
		onOff(pll.Locked, "locked", "unlocked"),
		pll.Source)
	fmt.Fprintf(&b, "  dividers: M=%d N=%d P=%d Q=%d R=%d\n", pll.M, pll.N, pll.P, pll.Q, pll.R)
	fmt.Fprintf(&b, "  outputs: P %s, Q %s, R %s\n",
		onOff(pll.POutputEnabled, "on", "off"),
		onOff(pll.QOutputEnabled, "on", "off"),
		onOff(pll.ROutputEnabled, "on", "off"))
	fmt.Fprintf(&b, "  vco range: %s, input range: %s, fractional: %s\n",
		pll.VCORange, pll.InputRange, onOff(pll.FractionalEnabled, "on", "off"))

	fmt.Fprintf(&b, "Switch:\n  selected %s, active %s\n",
		r.State.Switch.Selected, r.State.Switch.Active)
	if r.State.SwitchPending() {
		b.WriteString("  switch pending\n")
	}

	fmt.Fprintf(&b, "Voltage scaling:\n  %s, %s\n",
		r.State.Voltage.Level, onOff(r.State.Voltage.Ready, "ready", "not ready"))

	b.WriteString("Frequencies:\n")
	if r.Frequencies == nil {
		reason := "frequency computation failed"
		if r.Failure != nil {
			reason = r.Failure.Message
		}
		fmt.Fprintf(&b, "  undefined (%s)\n", reason)
	} else {
		f := r.Frequencies
		writeHz(&b, "pll_input", f.PLLInput)
		writeHz(&b, "vco", f.VCO)
		writeTap(&b, "pll1p", f.PLL1P)
		writeTap(&b, "pll1q", f.PLL1Q)
		writeTap(&b, "pll1r", f.PLL1R)
		writeHz(&b, "system_clock", f.SystemClock)
	}

	b.WriteString("Diagnostics:\n")
	if len(r.Diagnostics) == 0 {
		b.WriteString("  none\n")
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "  [%s] %s\n", d.Severity, d.Message)
		fmt.Fprintf(&b, "      action: %s\n", d.RecommendedAction)
	}

	return b.String()
}

// RenderJSON produces the machine-readable form with stable snake_case
// field names.
func RenderJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func writeOscillator(b *strings.Builder, name string, osc clk.OscillatorState) {
	fmt.Fprintf(b, "  %s: %s, %s\n", name,
		onOff(osc.On, "on", "off"),
		onOff(osc.Ready, "ready", "not ready"))
}

func writeHz(b *strings.Builder, name string, hz uint64) {
	fmt.Fprintf(b, "  %s: %d Hz\n", name, hz)
}

func writeTap(b *strings.Builder, name string, t clk.TapFrequency) {
	if !t.Enabled {
		fmt.Fprintf(b, "  %s: 0 Hz (disabled)\n", name)
		return
	}
	fmt.Fprintf(b, "  %s: %d Hz\n", name, t.Hz)
}

func onOff(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}

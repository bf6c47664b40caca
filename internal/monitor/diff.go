// Package monitor runs the periodic polling loop over a probe source.
//
// The core stays fully stateless; the "changed since last poll"
// comparison lives here, as a diff of two independently produced
// ClockTreeState values.
package monitor

import (
	"fmt"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// DiffStates lists the human-readable field changes between two decoded
// states. An empty result means the states are identical.
func DiffStates(prev, curr clk.ClockTreeState) []string {
	var changes []string

	changes = append(changes, diffOscillator("HSI", prev.HSI, curr.HSI)...)
	changes = append(changes, diffOscillator("CSI", prev.CSI, curr.CSI)...)
	changes = append(changes, diffOscillator("HSE", prev.HSE, curr.HSE)...)
	changes = append(changes, diffPLL1(prev.PLL1, curr.PLL1)...)

	if prev.Switch != curr.Switch {
		changes = append(changes, fmt.Sprintf("switch: selected %s active %s -> selected %s active %s",
			prev.Switch.Selected, prev.Switch.Active, curr.Switch.Selected, curr.Switch.Active))
	}
	if prev.Voltage != curr.Voltage {
		changes = append(changes, fmt.Sprintf("voltage scaling: %s -> %s",
			voltageLabel(prev.Voltage), voltageLabel(curr.Voltage)))
	}

	return changes
}

func diffOscillator(name string, prev, curr clk.OscillatorState) []string {
	if prev == curr {
		return nil
	}
	return []string{fmt.Sprintf("%s: %s -> %s", name, oscLabel(prev), oscLabel(curr))}
}

func diffPLL1(prev, curr clk.PLL1State) []string {
	if prev == curr {
		return nil
	}

	var changes []string
	if prev.Enabled != curr.Enabled || prev.Locked != curr.Locked || prev.Source != curr.Source {
		changes = append(changes, fmt.Sprintf("pll1: %s -> %s", pllLabel(prev), pllLabel(curr)))
	}
	if prev.M != curr.M || prev.N != curr.N || prev.P != curr.P || prev.Q != curr.Q || prev.R != curr.R {
		changes = append(changes, fmt.Sprintf("pll1 dividers: M=%d N=%d P=%d Q=%d R=%d -> M=%d N=%d P=%d Q=%d R=%d",
			prev.M, prev.N, prev.P, prev.Q, prev.R, curr.M, curr.N, curr.P, curr.Q, curr.R))
	}
	if prev.POutputEnabled != curr.POutputEnabled ||
		prev.QOutputEnabled != curr.QOutputEnabled ||
		prev.ROutputEnabled != curr.ROutputEnabled ||
		prev.FractionalEnabled != curr.FractionalEnabled ||
		prev.VCORange != curr.VCORange ||
		prev.InputRange != curr.InputRange {
		changes = append(changes, "pll1 configuration changed")
	}
	return changes
}

func oscLabel(o clk.OscillatorState) string {
	return fmt.Sprintf("on=%t ready=%t", o.On, o.Ready)
}

func pllLabel(p clk.PLL1State) string {
	return fmt.Sprintf("enabled=%t locked=%t source=%s", p.Enabled, p.Locked, p.Source)
}

func voltageLabel(v clk.VoltageScaling) string {
	return fmt.Sprintf("%s ready=%t", v.Level, v.Ready)
}

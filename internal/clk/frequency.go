package clk

// TapFrequency is the derived frequency at one PLL output tap. A
// disabled tap reports 0 Hz with Enabled false so callers can tell
// "zero because disabled" from "zero because error".
type TapFrequency struct {
	Hz      uint64 `json:"hz"`
	Enabled bool   `json:"enabled"`
}

// FrequencyReport holds the derived frequencies at every tap point, in
// integer Hz with truncating division throughout. It is computed fresh
// from a ClockTreeState every call, never cached or mutated.
type FrequencyReport struct {
	PLLInput    uint64       `json:"pll_input_hz"`
	VCO         uint64       `json:"vco_hz"`
	PLL1P       TapFrequency `json:"pll1p"`
	PLL1Q       TapFrequency `json:"pll1q"`
	PLL1R       TapFrequency `json:"pll1r"`
	SystemClock uint64       `json:"system_clock_hz"`
}

package clk

// RegisterSnapshot is an immutable bag of raw 32-bit register values
// captured at one instant. It is created once per observation and owned
// by the caller; the core never retains it beyond one decode call.
type RegisterSnapshot struct {
	CR        uint32 `json:"rcc_cr" yaml:"rcc_cr"`               // RCC_CR
	CFGR      uint32 `json:"rcc_cfgr" yaml:"rcc_cfgr"`           // RCC_CFGR
	PLLCKSELR uint32 `json:"rcc_pllckselr" yaml:"rcc_pllckselr"` // RCC_PLLCKSELR
	PLLCFGR   uint32 `json:"rcc_pllcfgr" yaml:"rcc_pllcfgr"`     // RCC_PLLCFGR
	PLL1DIVR  uint32 `json:"rcc_pll1divr" yaml:"rcc_pll1divr"`   // RCC_PLL1DIVR
	SRDCR     uint32 `json:"pwr_srdcr" yaml:"pwr_srdcr"`         // PWR_SRDCR
}

// LayoutVariant selects between the two RCC_CR bit layouts observed
// across firmware generations. The variant is supplied by the caller,
// never guessed from register contents.
type LayoutVariant int

const (
	// LayoutStandard places HSION at bit 0 and HSIRDY at bit 1.
	LayoutStandard LayoutVariant = iota

	// LayoutAlternate places HSION at bit 8 and HSIRDY at bit 10.
	LayoutAlternate
)

// String returns the variant name.
func (v LayoutVariant) String() string {
	switch v {
	case LayoutStandard:
		return "standard"
	case LayoutAlternate:
		return "alternate"
	default:
		return "unknown"
	}
}

// ParseLayoutVariant maps a variant name to its LayoutVariant.
// Returns LayoutStandard and false for unrecognized names.
func ParseLayoutVariant(s string) (LayoutVariant, bool) {
	switch s {
	case "standard", "":
		return LayoutStandard, true
	case "alternate":
		return LayoutAlternate, true
	default:
		return LayoutStandard, false
	}
}

package clk

// Fixed oscillator frequencies. HSE is board-dependent and is always a
// caller-supplied input, never a compiled-in constant.
const (
	// HSIClockHz is the internal high-speed oscillator frequency.
	HSIClockHz uint64 = 64_000_000

	// CSIClockHz is the internal low-power oscillator frequency.
	CSIClockHz uint64 = 4_000_000
)

// VCO operating envelopes per VCOSEL. The wide band's upper datasheet
// label reads 960 MHz, but the checked operating envelope tops out at
// 836 MHz; the validator uses the envelope.
const (
	VCOWideMinHz   uint64 = 192_000_000
	VCOWideMaxHz   uint64 = 836_000_000
	VCOMediumMinHz uint64 = 150_000_000
	VCOMediumMaxHz uint64 = 420_000_000
)

// VCOBounds returns the operating envelope for a VCO range selector.
func VCOBounds(r VCORange) (minHz, maxHz uint64) {
	if r == VCOMedium {
		return VCOMediumMinHz, VCOMediumMaxHz
	}
	return VCOWideMinHz, VCOWideMaxHz
}

// Maximum system clock per VOS level. Frequencies above VOS0Max are
// outside the operating envelope at any scaling level.
const (
	VOS0MaxSysclkHz uint64 = 480_000_000
	VOS1MaxSysclkHz uint64 = 400_000_000
	VOS2MaxSysclkHz uint64 = 300_000_000
	VOS3MaxSysclkHz uint64 = 200_000_000
)

// MaxSysclkForVOS returns the system clock ceiling for a VOS level.
func MaxSysclkForVOS(l VOSLevel) uint64 {
	switch l {
	case VOS0:
		return VOS0MaxSysclkHz
	case VOS1:
		return VOS1MaxSysclkHz
	case VOS2:
		return VOS2MaxSysclkHz
	default:
		return VOS3MaxSysclkHz
	}
}

// InputRangeBounds returns the declared band for a PLL input range code.
func InputRangeBounds(r PLLInputRange) (minHz, maxHz uint64) {
	switch r {
	case Input1To2MHz:
		return 1_000_000, 2_000_000
	case Input2To4MHz:
		return 2_000_000, 4_000_000
	case Input4To8MHz:
		return 4_000_000, 8_000_000
	default:
		return 8_000_000, 16_000_000
	}
}

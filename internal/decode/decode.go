// Package decode turns raw register snapshots into typed clock-tree
// state.
//
// Decoding is total: any 32-bit pattern is a valid, if nonsensical,
// register value, so decode never fails. Nonsense values become
// validator findings later, never decode errors.
package decode

import (
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// RCC_CR bit positions. The HSI flags moved between firmware
// generations; both observed layouts are supported and selected by the
// caller, never guessed.
const (
	crHSIONStd  = 1 << 0
	crHSIRDYStd = 1 << 1
	crHSIONAlt  = 1 << 8
	crHSIRDYAlt = 1 << 10

	crCSION  = 1 << 7
	crCSIRDY = 1 << 8

	crHSEON  = 1 << 16
	crHSERDY = 1 << 17

	crPLL1ON  = 1 << 24
	crPLL1RDY = 1 << 25
)

// RCC_CFGR field positions.
const (
	cfgrSWMask   = 0x7
	cfgrSWSShift = 3
	cfgrSWSMask  = 0x7
)

// RCC_PLLCKSELR field positions. DIVM1 is stored at its literal value;
// 0 means the PLL input is disabled.
const (
	pllckselrSrcMask   = 0x3
	pllckselrDivMShift = 4
	pllckselrDivMMask  = 0x3F
)

// RCC_PLLCFGR bit positions.
const (
	pllcfgrFRACEN   = 1 << 0
	pllcfgrVCOSEL   = 1 << 1
	pllcfgrRGEShift = 2
	pllcfgrRGEMask  = 0x3
	pllcfgrDIVP1EN  = 1 << 16
	pllcfgrDIVQ1EN  = 1 << 17
	pllcfgrDIVR1EN  = 1 << 18
)

// RCC_PLL1DIVR field positions. All four divider fields store value-1.
const (
	pll1divrDivNMask  = 0x1FF
	pll1divrDivPShift = 9
	pll1divrDivPMask  = 0x7F
	pll1divrDivQShift = 16
	pll1divrDivQMask  = 0x7F
	pll1divrDivRShift = 24
	pll1divrDivRMask  = 0x7F
)

// PWR_SRDCR field positions.
const (
	srdcrVOSRDY   = 1 << 13
	srdcrVOSShift = 14
	srdcrVOSMask  = 0x3
)

// Snapshot decodes one register snapshot into a ClockTreeState using
// the given RCC_CR layout variant. Decode is a pure total function:
// identical input yields identical output and no input panics.
func Snapshot(snap clk.RegisterSnapshot, layout clk.LayoutVariant) clk.ClockTreeState {
	return clk.ClockTreeState{
		HSI:     decodeHSI(snap.CR, layout),
		CSI:     decodeOscillator(snap.CR, crCSION, crCSIRDY),
		HSE:     decodeOscillator(snap.CR, crHSEON, crHSERDY),
		PLL1:    decodePLL1(snap),
		Switch:  decodeSwitch(snap.CFGR),
		Voltage: decodeVoltage(snap.SRDCR),
	}
}

func decodeHSI(cr uint32, layout clk.LayoutVariant) clk.OscillatorState {
	if layout == clk.LayoutAlternate {
		return decodeOscillator(cr, crHSIONAlt, crHSIRDYAlt)
	}
	return decodeOscillator(cr, crHSIONStd, crHSIRDYStd)
}

func decodeOscillator(cr uint32, onBit, readyBit uint32) clk.OscillatorState {
	return clk.OscillatorState{
		On:    cr&onBit != 0,
		Ready: cr&readyBit != 0,
	}
}

func decodePLL1(snap clk.RegisterSnapshot) clk.PLL1State {
	divr := snap.PLL1DIVR
	cfgr := snap.PLLCFGR

	return clk.PLL1State{
		Enabled: snap.CR&crPLL1ON != 0,
		Locked:  snap.CR&crPLL1RDY != 0,
		Source:  decodePLLSource(snap.PLLCKSELR & pllckselrSrcMask),

		M: (snap.PLLCKSELR >> pllckselrDivMShift) & pllckselrDivMMask,
		N: (divr & pll1divrDivNMask) + 1,
		P: ((divr >> pll1divrDivPShift) & pll1divrDivPMask) + 1,
		Q: ((divr >> pll1divrDivQShift) & pll1divrDivQMask) + 1,
		R: ((divr >> pll1divrDivRShift) & pll1divrDivRMask) + 1,

		POutputEnabled: cfgr&pllcfgrDIVP1EN != 0,
		QOutputEnabled: cfgr&pllcfgrDIVQ1EN != 0,
		ROutputEnabled: cfgr&pllcfgrDIVR1EN != 0,

		FractionalEnabled: cfgr&pllcfgrFRACEN != 0,
		VCORange:          decodeVCORange(cfgr),
		InputRange:        clk.PLLInputRange((cfgr >> pllcfgrRGEShift) & pllcfgrRGEMask),
	}
}

func decodeVCORange(cfgr uint32) clk.VCORange {
	if cfgr&pllcfgrVCOSEL != 0 {
		return clk.VCOMedium
	}
	return clk.VCOWide
}

// decodePLLSource maps the PLLCKSELR source field. The field is two
// bits wide, so every encoding is covered.
func decodePLLSource(field uint32) clk.ClockSource {
	switch field {
	case 0:
		return clk.SourceHSI
	case 1:
		return clk.SourceCSI
	case 2:
		return clk.SourceHSE
	default:
		return clk.SourceNone
	}
}

// decodeSwitchSource maps a SW/SWS field value. Encodings above 3 are
// reserved and decode to SourceUnknown.
func decodeSwitchSource(field uint32) clk.ClockSource {
	switch field {
	case 0:
		return clk.SourceHSI
	case 1:
		return clk.SourceCSI
	case 2:
		return clk.SourceHSE
	case 3:
		return clk.SourcePLL1
	default:
		return clk.SourceUnknown
	}
}

func decodeSwitch(cfgr uint32) clk.SwitchState {
	return clk.SwitchState{
		Selected: decodeSwitchSource(cfgr & cfgrSWMask),
		Active:   decodeSwitchSource((cfgr >> cfgrSWSShift) & cfgrSWSMask),
	}
}

func decodeVoltage(srdcr uint32) clk.VoltageScaling {
	return clk.VoltageScaling{
		Level: clk.VOSLevel((srdcr >> srdcrVOSShift) & srdcrVOSMask),
		Ready: srdcr&srdcrVOSRDY != 0,
	}
}

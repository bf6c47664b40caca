// Package testutil provides register snapshot builders for tests.
package testutil

import (
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// SnapshotBuilder assembles raw register values from semantic fields,
// the inverse of the decoder. It always encodes the standard RCC_CR
// layout; alternate-layout tests set bits explicitly.
type SnapshotBuilder struct {
	snap clk.RegisterSnapshot
}

// NewSnapshot creates a builder with all registers zero.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{}
}

// HSI sets the HSI on/ready bits (standard layout: bits 0 and 1).
func (b *SnapshotBuilder) HSI(on, ready bool) *SnapshotBuilder {
	b.setBit(&b.snap.CR, 0, on)
	b.setBit(&b.snap.CR, 1, ready)
	return b
}

// CSI sets the CSI on/ready bits (bits 7 and 8).
func (b *SnapshotBuilder) CSI(on, ready bool) *SnapshotBuilder {
	b.setBit(&b.snap.CR, 7, on)
	b.setBit(&b.snap.CR, 8, ready)
	return b
}

// HSE sets the HSE on/ready bits (bits 16 and 17).
func (b *SnapshotBuilder) HSE(on, ready bool) *SnapshotBuilder {
	b.setBit(&b.snap.CR, 16, on)
	b.setBit(&b.snap.CR, 17, ready)
	return b
}

// PLL1 sets the PLL1 on/ready bits (bits 24 and 25).
func (b *SnapshotBuilder) PLL1(on, locked bool) *SnapshotBuilder {
	b.setBit(&b.snap.CR, 24, on)
	b.setBit(&b.snap.CR, 25, locked)
	return b
}

// Switch encodes the SW and SWS fields.
func (b *SnapshotBuilder) Switch(selected, active clk.ClockSource) *SnapshotBuilder {
	b.snap.CFGR &^= 0x3F
	b.snap.CFGR |= switchField(selected) | switchField(active)<<3
	return b
}

// PLLSource encodes the PLLCKSELR source field.
func (b *SnapshotBuilder) PLLSource(src clk.ClockSource) *SnapshotBuilder {
	b.snap.PLLCKSELR &^= 0x3
	b.snap.PLLCKSELR |= pllSourceField(src)
	return b
}

// DivM encodes DIVM1 at its literal value (0 disables the PLL input).
func (b *SnapshotBuilder) DivM(m uint32) *SnapshotBuilder {
	b.snap.PLLCKSELR &^= 0x3F << 4
	b.snap.PLLCKSELR |= (m & 0x3F) << 4
	return b
}

// Dividers encodes DIVN/DIVP/DIVQ/DIVR. Arguments are the semantic
// divisor values (>=1); the register stores value-1.
func (b *SnapshotBuilder) Dividers(n, p, q, r uint32) *SnapshotBuilder {
	b.snap.PLL1DIVR = ((n - 1) & 0x1FF) |
		((p-1)&0x7F)<<9 |
		((q-1)&0x7F)<<16 |
		((r-1)&0x7F)<<24
	return b
}

// Outputs sets the P/Q/R output enable bits.
func (b *SnapshotBuilder) Outputs(p, q, r bool) *SnapshotBuilder {
	b.setBit(&b.snap.PLLCFGR, 16, p)
	b.setBit(&b.snap.PLLCFGR, 17, q)
	b.setBit(&b.snap.PLLCFGR, 18, r)
	return b
}

// VCORange sets the VCOSEL bit.
func (b *SnapshotBuilder) VCORange(r clk.VCORange) *SnapshotBuilder {
	b.setBit(&b.snap.PLLCFGR, 1, r == clk.VCOMedium)
	return b
}

// InputRange encodes the RGE field.
func (b *SnapshotBuilder) InputRange(r clk.PLLInputRange) *SnapshotBuilder {
	b.snap.PLLCFGR &^= 0x3 << 2
	b.snap.PLLCFGR |= uint32(r&0x3) << 2
	return b
}

// Fractional sets the FRACEN bit.
func (b *SnapshotBuilder) Fractional(on bool) *SnapshotBuilder {
	b.setBit(&b.snap.PLLCFGR, 0, on)
	return b
}

// VOS encodes the voltage scaling level and ready bit.
func (b *SnapshotBuilder) VOS(level clk.VOSLevel, ready bool) *SnapshotBuilder {
	b.snap.SRDCR &^= 0x3 << 14
	b.snap.SRDCR |= uint32(level&0x3) << 14
	b.setBit(&b.snap.SRDCR, 13, ready)
	return b
}

// Build returns the assembled snapshot.
func (b *SnapshotBuilder) Build() clk.RegisterSnapshot {
	return b.snap
}

func (b *SnapshotBuilder) setBit(reg *uint32, bit uint, on bool) {
	if on {
		*reg |= 1 << bit
	} else {
		*reg &^= 1 << bit
	}
}

func switchField(src clk.ClockSource) uint32 {
	switch src {
	case clk.SourceHSI:
		return 0
	case clk.SourceCSI:
		return 1
	case clk.SourceHSE:
		return 2
	default:
		return 3
	}
}

func pllSourceField(src clk.ClockSource) uint32 {
	switch src {
	case clk.SourceHSI:
		return 0
	case clk.SourceCSI:
		return 1
	case clk.SourceHSE:
		return 2
	default:
		return 3
	}
}

package clk

// ClockSource identifies a clock-tree source. The enumeration is closed:
// reserved bit patterns decode to SourceUnknown, never to a default.
type ClockSource int

const (
	// SourceHSI is the 64 MHz internal high-speed oscillator.
	SourceHSI ClockSource = iota

	// SourceCSI is the 4 MHz internal low-power oscillator.
	SourceCSI

	// SourceHSE is the external oscillator (board-dependent frequency).
	SourceHSE

	// SourcePLL1 is the PLL1 P output.
	SourcePLL1

	// SourceNone means no source is configured (PLL source field 3).
	SourceNone

	// SourceUnknown covers reserved SW/SWS encodings.
	SourceUnknown
)

// String returns the source name as it appears in reports.
func (s ClockSource) String() string {
	switch s {
	case SourceHSI:
		return "HSI"
	case SourceCSI:
		return "CSI"
	case SourceHSE:
		return "HSE"
	case SourcePLL1:
		return "PLL1"
	case SourceNone:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so sources serialize by
// name in JSON and YAML output.
func (s ClockSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ClockSource) UnmarshalText(text []byte) error {
	switch string(text) {
	case "HSI":
		*s = SourceHSI
	case "CSI":
		*s = SourceCSI
	case "HSE":
		*s = SourceHSE
	case "PLL1":
		*s = SourcePLL1
	case "none":
		*s = SourceNone
	default:
		*s = SourceUnknown
	}
	return nil
}

// VCORange is the VCOSEL selector. The decoder records the selector; the
// checked frequency envelope lives in limits.go and belongs to the
// validator.
type VCORange int

const (
	// VCOWide is VCOSEL=0, the wide VCO band.
	VCOWide VCORange = iota

	// VCOMedium is VCOSEL=1, the medium VCO band.
	VCOMedium
)

// String returns the range name.
func (r VCORange) String() string {
	if r == VCOMedium {
		return "medium"
	}
	return "wide"
}

// MarshalText implements encoding.TextMarshaler.
func (r VCORange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *VCORange) UnmarshalText(text []byte) error {
	if string(text) == "medium" {
		*r = VCOMedium
	} else {
		*r = VCOWide
	}
	return nil
}

// PLLInputRange is the declared PLL1 reference-input band (RGE field).
type PLLInputRange int

const (
	// Input1To2MHz declares a 1-2 MHz PLL input.
	Input1To2MHz PLLInputRange = iota

	// Input2To4MHz declares a 2-4 MHz PLL input.
	Input2To4MHz

	// Input4To8MHz declares a 4-8 MHz PLL input.
	Input4To8MHz

	// Input8To16MHz declares an 8-16 MHz PLL input.
	Input8To16MHz
)

// String returns the band label.
func (r PLLInputRange) String() string {
	switch r {
	case Input1To2MHz:
		return "1-2MHz"
	case Input2To4MHz:
		return "2-4MHz"
	case Input4To8MHz:
		return "4-8MHz"
	default:
		return "8-16MHz"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r PLLInputRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *PLLInputRange) UnmarshalText(text []byte) error {
	switch string(text) {
	case "1-2MHz":
		*r = Input1To2MHz
	case "2-4MHz":
		*r = Input2To4MHz
	case "4-8MHz":
		*r = Input4To8MHz
	default:
		*r = Input8To16MHz
	}
	return nil
}

// VOSLevel is the voltage scaling level. Lower index means more voltage
// and therefore a higher permitted system frequency.
type VOSLevel int

const (
	VOS0 VOSLevel = iota
	VOS1
	VOS2
	VOS3
)

// String returns the level name.
func (l VOSLevel) String() string {
	switch l {
	case VOS0:
		return "VOS0"
	case VOS1:
		return "VOS1"
	case VOS2:
		return "VOS2"
	default:
		return "VOS3"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l VOSLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *VOSLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "VOS0":
		*l = VOS0
	case "VOS1":
		*l = VOS1
	case "VOS2":
		*l = VOS2
	default:
		*l = VOS3
	}
	return nil
}

// OscillatorState holds the on/ready flags of one oscillator.
type OscillatorState struct {
	On    bool `json:"on"`
	Ready bool `json:"ready"`
}

// PLL1State is the decoded PLL1 configuration.
//
// N, P, Q, R carry the register field plus one (the hardware stores
// value-1), so they are always >= 1. M is the DIVM1 prescaler stored at
// its literal value: M == 0 means the PLL input is disabled and is a
// constraint violation, never a divisor.
type PLL1State struct {
	Enabled bool        `json:"enabled"`
	Locked  bool        `json:"locked"`
	Source  ClockSource `json:"source"`

	M uint32 `json:"m"`
	N uint32 `json:"n"`
	P uint32 `json:"p"`
	Q uint32 `json:"q"`
	R uint32 `json:"r"`

	POutputEnabled bool `json:"p_output_enabled"`
	QOutputEnabled bool `json:"q_output_enabled"`
	ROutputEnabled bool `json:"r_output_enabled"`

	FractionalEnabled bool          `json:"fractional_enabled"`
	VCORange          VCORange      `json:"vco_range"`
	InputRange        PLLInputRange `json:"input_range"`
}

// SwitchState holds the clock-switch selection fields. Selected and
// Active may legitimately differ while a switch is pending; the mismatch
// is a flagged condition, not an error.
type SwitchState struct {
	Selected ClockSource `json:"selected_source"`
	Active   ClockSource `json:"active_source"`
}

// VoltageScaling holds the decoded VOS configuration.
type VoltageScaling struct {
	Level VOSLevel `json:"level"`
	Ready bool     `json:"ready"`
}

// ClockTreeState is the decoded, semantically typed view of one
// RegisterSnapshot.
type ClockTreeState struct {
	HSI OscillatorState `json:"hsi"`
	CSI OscillatorState `json:"csi"`
	HSE OscillatorState `json:"hse"`

	PLL1    PLL1State      `json:"pll1"`
	Switch  SwitchState    `json:"switch"`
	Voltage VoltageScaling `json:"voltage_scaling"`
}

// SwitchPending reports whether a clock switch is in flight.
func (s *ClockTreeState) SwitchPending() bool {
	return s.Switch.Selected != s.Switch.Active
}

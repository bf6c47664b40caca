package clk

import "sort"

// Severity ranks findings and diagnostics. Higher values sort first in
// rendered output.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "critical":
		*s = SeverityCritical
	case "warning":
		*s = SeverityWarning
	default:
		*s = SeverityInfo
	}
	return nil
}

// FindingCode identifies one constraint rule.
type FindingCode string

const (
	// CodeVcoOutOfRange fires when the VCO frequency falls outside the
	// selected VCOSEL band.
	CodeVcoOutOfRange FindingCode = "VcoOutOfRange"

	// CodeVosInsufficient fires when the system clock exceeds 400 MHz
	// without VOS0.
	CodeVosInsufficient FindingCode = "VosInsufficient"

	// CodeVosSuboptimal fires when the system clock exceeds the ceiling
	// of the configured VOS level but stays within the hard envelope.
	CodeVosSuboptimal FindingCode = "VosSuboptimal"

	// CodeSwitchPending fires when selected and active sources differ.
	CodeSwitchPending FindingCode = "SwitchPending"

	// CodePllNotLockedButSelected fires when PLL1 drives the system
	// clock with the lock bit clear.
	CodePllNotLockedButSelected FindingCode = "PllNotLockedButSelected"

	// CodePllFallback fires when the system runs on an internal
	// oscillator while PLL1 sits unlocked and HSE is ready.
	CodePllFallback FindingCode = "PllFallback"

	// CodeDivM1Zero fires when DIVM1 is 0 while PLL1 is enabled.
	CodeDivM1Zero FindingCode = "DivM1Zero"
)

// Finding records one violated or noteworthy constraint.
type Finding struct {
	Code     FindingCode `json:"code"`
	Severity Severity    `json:"severity"`
	Observed string      `json:"observed"`
	Expected string      `json:"expected"`
}

// SortFindings orders findings by severity (critical first) then code.
// Validator output is rule-order independent; this makes it canonical.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return findings[i].Severity > findings[j].Severity
		}
		return findings[i].Code < findings[j].Code
	})
}

// Diagnostic is a human-facing message derived from one Finding. It is a
// projection produced fresh each run, never persisted state.
type Diagnostic struct {
	Code              FindingCode `json:"code"`
	Severity          Severity    `json:"severity"`
	Message           string      `json:"message"`
	RecommendedAction string      `json:"recommended_action"`
}

// Package harness runs conformance scenarios against the analysis
// pipeline.
//
// A scenario names a register snapshot, the caller-supplied analysis
// parameters, and the expected outcome (finding codes, frequency
// values, frequency errors). Scenarios live in YAML files and double as
// regression fixtures via golden report comparison.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/report"
)

// Scenario defines one conformance check.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden
	// file when golden comparison is enabled.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Layout selects the RCC_CR layout variant ("standard" or
	// "alternate"). Empty means standard.
	Layout string `yaml:"layout,omitempty"`

	// HSEHz is the assumed HSE frequency; zero means not supplied.
	HSEHz uint64 `yaml:"hse_hz,omitempty"`

	// Registers holds the raw snapshot under test.
	Registers clk.RegisterSnapshot `yaml:"registers"`

	// Expect specifies the expected analysis outcome.
	Expect Expectation `yaml:"expect"`
}

// Expectation is the asserted outcome of a scenario.
type Expectation struct {
	// Findings lists the expected finding codes, order-insensitive.
	// An empty list asserts no findings at all.
	Findings []string `yaml:"findings"`

	// FrequencyError names the expected frequency error code; empty
	// means frequency computation must succeed.
	FrequencyError string `yaml:"frequency_error,omitempty"`

	// SystemClockHz, when non-zero, asserts the derived system clock.
	SystemClockHz uint64 `yaml:"system_clock_hz,omitempty"`

	// VCOHz, when non-zero, asserts the derived VCO frequency.
	VCOHz uint64 `yaml:"vco_hz,omitempty"`
}

// Result holds a scenario run outcome.
type Result struct {
	Scenario *Scenario
	Report   *report.Report

	// Failures lists unmet expectations; empty means the scenario
	// passed.
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Load reads one scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if _, ok := clk.ParseLayoutVariant(s.Layout); !ok {
		return nil, fmt.Errorf("scenario %s: unknown layout %q", s.Name, s.Layout)
	}
	return &s, nil
}

// LoadDir loads every .yaml/.yml scenario under dir, sorted by name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario directory: %w", err)
	}

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		s, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}

	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios, nil
}

// Run executes one scenario and checks every expectation. Run itself
// never fails; expectation mismatches land in Result.Failures.
func Run(s *Scenario) *Result {
	layout, _ := clk.ParseLayoutVariant(s.Layout)
	rep := report.Analyze(s.Registers, report.Options{
		Layout: layout,
		HSEHz:  s.HSEHz,
	})

	result := &Result{Scenario: s, Report: rep}
	checkFindings(s, rep, result)
	checkFrequencies(s, rep, result)
	return result
}

func checkFindings(s *Scenario, rep *report.Report, result *Result) {
	got := make(map[string]int)
	for _, f := range rep.Findings {
		got[string(f.Code)]++
	}

	want := make(map[string]int)
	for _, code := range s.Expect.Findings {
		want[code]++
	}

	for code, n := range want {
		if got[code] != n {
			result.Failures = append(result.Failures,
				fmt.Sprintf("finding %s: want %d, got %d", code, n, got[code]))
		}
	}
	for code, n := range got {
		if want[code] == 0 {
			result.Failures = append(result.Failures,
				fmt.Sprintf("unexpected finding %s (x%d)", code, n))
		}
	}
}

func checkFrequencies(s *Scenario, rep *report.Report, result *Result) {
	if s.Expect.FrequencyError != "" {
		if rep.Failure == nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("frequency error %s: want it, computation succeeded", s.Expect.FrequencyError))
		} else if string(rep.Failure.Code) != s.Expect.FrequencyError {
			result.Failures = append(result.Failures,
				fmt.Sprintf("frequency error: want %s, got %s", s.Expect.FrequencyError, rep.Failure.Code))
		}
		return
	}

	if rep.Failure != nil {
		result.Failures = append(result.Failures,
			fmt.Sprintf("unexpected frequency error: %s", rep.Failure.Message))
		return
	}

	if s.Expect.SystemClockHz != 0 && rep.Frequencies.SystemClock != s.Expect.SystemClockHz {
		result.Failures = append(result.Failures,
			fmt.Sprintf("system clock: want %d Hz, got %d Hz", s.Expect.SystemClockHz, rep.Frequencies.SystemClock))
	}
	if s.Expect.VCOHz != 0 && rep.Frequencies.VCO != s.Expect.VCOHz {
		result.Failures = append(result.Failures,
			fmt.Sprintf("vco: want %d Hz, got %d Hz", s.Expect.VCOHz, rep.Frequencies.VCO))
	}
}

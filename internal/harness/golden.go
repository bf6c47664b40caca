package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/report"
)

// RunWithGolden executes a scenario and compares the rendered text
// report against a golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for report layout: field order
// is part of the output contract, so any reordering shows up as a
// golden diff.
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result := Run(scenario)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, []byte(report.RenderText(result.Report)))

	return result
}

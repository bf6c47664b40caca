package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioFixturesPass(t *testing.T) {
	scenarios, err := LoadDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			result := Run(s)
			assert.True(t, result.Passed(), "failures: %v", result.Failures)
		})
	}
}

func TestGoldenReportForHealthyPll(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "scenarios", "pll1-hsi-480mhz.yaml"))
	require.NoError(t, err)

	result := RunWithGolden(t, s)
	assert.True(t, result.Passed(), "failures: %v", result.Failures)
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMissingDirArg(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "text", Layout: "standard"}
	cmd := NewCheckCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arg")
}

func TestCheckNonExistentDir(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "text", Layout: "standard"}
	cmd := NewCheckCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"/nonexistent/scenarios"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheckPassingScenarios(t *testing.T) {
	scenariosDir := filepath.Join("..", "..", "testdata", "scenarios")
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		t.Skip("testdata/scenarios directory not found")
	}

	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "text", Layout: "standard"}
	cmd := NewCheckCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{scenariosDir})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "PASS pll1-hsi-480mhz")
	assert.Contains(t, output, "PASS vco-out-of-range")
	assert.Contains(t, output, "0 failed")
	assert.NotContains(t, output, "FAIL")
}

func TestCheckFailingScenario(t *testing.T) {
	tmpDir := t.TempDir()

	// Healthy 480 MHz registers, but the expectation demands a finding
	// that the validator will not raise.
	scenario := `name: expect-mismatch
registers:
  rcc_cr: 0x03000003
  rcc_cfgr: 0x0000001B
  rcc_pllckselr: 0x00000040
  rcc_pllcfgr: 0x0001000C
  rcc_pll1divr: 0x0103001D
  pwr_srdcr: 0x00002000
expect:
  findings: [VcoOutOfRange]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "mismatch.yaml"), []byte(scenario), 0644))

	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "text", Layout: "standard"}
	cmd := NewCheckCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{tmpDir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "FAIL expect-mismatch")
	assert.Contains(t, output, "1 failed")
}

func TestCheckJSONSummary(t *testing.T) {
	scenariosDir := filepath.Join("..", "..", "testdata", "scenarios")
	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		t.Skip("testdata/scenarios directory not found")
	}

	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "json", Layout: "standard"}
	cmd := NewCheckCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{scenariosDir})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string       `json:"status"`
		Data   CheckSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Passed)
	assert.Equal(t, 0, resp.Data.Failed)
	assert.Empty(t, resp.Data.Failures)
}

func TestCheckHelpText(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "text", Layout: "standard"}
	cmd := NewCheckCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "scenario")
	assert.Contains(t, output, "scenarios-dir")
}

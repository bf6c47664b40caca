package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/harness"
)

// CheckSummary is the JSON payload of the check command.
type CheckSummary struct {
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Failures []CheckResult `json:"failures,omitempty"`
}

// CheckResult describes one failed scenario.
type CheckResult struct {
	Name     string   `json:"name"`
	Failures []string `json:"failures"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <scenarios-dir>",
		Short: "Run conformance scenarios against the analysis pipeline",
		Long: `Run every YAML scenario in a directory through the analysis pipeline
and verify the expected findings and frequencies.

Exits 1 when any scenario fails.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenarios, err := harness.LoadDir(dir)
	if err != nil {
		formatter.Error("E002", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load scenarios", err)
	}

	summary := CheckSummary{Total: len(scenarios)}
	out := cmd.OutOrStdout()

	for _, s := range scenarios {
		result := harness.Run(s)
		if result.Passed() {
			summary.Passed++
			if opts.Format == "text" {
				fmt.Fprintf(out, "PASS %s\n", s.Name)
			}
			continue
		}

		summary.Failed++
		summary.Failures = append(summary.Failures, CheckResult{
			Name:     s.Name,
			Failures: result.Failures,
		})
		if opts.Format == "text" {
			fmt.Fprintf(out, "FAIL %s\n", s.Name)
			for _, f := range result.Failures {
				fmt.Fprintf(out, "     %s\n", f)
			}
		}
	}

	if opts.Format == "json" {
		if err := formatter.JSON(summary); err != nil {
			return WrapExitError(ExitCommandError, "encode summary", err)
		}
	} else {
		fmt.Fprintf(out, "%d scenario(s): %d passed, %d failed\n", summary.Total, summary.Passed, summary.Failed)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", summary.Failed))
	}
	return nil
}

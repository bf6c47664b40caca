package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/probe"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/report"
)

// decodeFlags holds the per-register flag values, as strings so both
// hex (0x...) and decimal forms are accepted.
type decodeFlags struct {
	cr        string
	cfgr      string
	pllckselr string
	pllcfgr   string
	pll1divr  string
	srdcr     string
	capture   string
	index     int
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode one register snapshot and report diagnostics",
		Long: `Decode a register snapshot into clock-tree state, derive frequencies,
and report diagnostics.

Registers are supplied either individually (--cr, --cfgr, ...) or from a
recorded capture file (--capture, with --index selecting the capture).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, flags, cmd)
		},
	}

	cmd.Flags().StringVar(&flags.cr, "cr", "0", "RCC_CR value")
	cmd.Flags().StringVar(&flags.cfgr, "cfgr", "0", "RCC_CFGR value")
	cmd.Flags().StringVar(&flags.pllckselr, "pllckselr", "0", "RCC_PLLCKSELR value")
	cmd.Flags().StringVar(&flags.pllcfgr, "pllcfgr", "0", "RCC_PLLCFGR value")
	cmd.Flags().StringVar(&flags.pll1divr, "pll1divr", "0", "RCC_PLL1DIVR value")
	cmd.Flags().StringVar(&flags.srdcr, "srdcr", "0", "PWR_SRDCR value")
	cmd.Flags().StringVar(&flags.capture, "capture", "", "capture file to read registers from")
	cmd.Flags().IntVar(&flags.index, "index", 0, "capture index within the capture file")

	return cmd
}

func runDecode(opts *RootOptions, flags *decodeFlags, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	snap, label, err := resolveSnapshot(flags)
	if err != nil {
		formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "resolve snapshot", err)
	}
	if label != "" {
		formatter.VerboseLog("decoding capture %q", label)
	}

	rep := report.Analyze(snap, report.Options{
		Layout: opts.LayoutVariant(),
		HSEHz:  opts.HSEHz,
	})

	if opts.Format == "json" {
		if err := formatter.JSON(rep); err != nil {
			return WrapExitError(ExitCommandError, "encode report", err)
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), report.RenderText(rep))
	}

	// Critical diagnostics flip the exit code so scripted callers can
	// gate on it without parsing output.
	for _, d := range rep.Diagnostics {
		if d.Severity == clk.SeverityCritical {
			return NewExitError(ExitFailure, "critical diagnostics present")
		}
	}
	return nil
}

// resolveSnapshot builds the snapshot from either a capture file or the
// individual register flags.
func resolveSnapshot(flags *decodeFlags) (clk.RegisterSnapshot, string, error) {
	if flags.capture != "" {
		src, err := probe.LoadReplay(flags.capture)
		if err != nil {
			return clk.RegisterSnapshot{}, "", err
		}
		if flags.index < 0 || flags.index >= src.Len() {
			return clk.RegisterSnapshot{}, "", fmt.Errorf("capture index %d out of range (file has %d)", flags.index, src.Len())
		}
		c, err := src.At(flags.index)
		if err != nil {
			return clk.RegisterSnapshot{}, "", err
		}
		return c.Snapshot, c.Label, nil
	}

	var snap clk.RegisterSnapshot
	fields := []struct {
		name  string
		value string
		dst   *uint32
	}{
		{"cr", flags.cr, &snap.CR},
		{"cfgr", flags.cfgr, &snap.CFGR},
		{"pllckselr", flags.pllckselr, &snap.PLLCKSELR},
		{"pllcfgr", flags.pllcfgr, &snap.PLLCFGR},
		{"pll1divr", flags.pll1divr, &snap.PLL1DIVR},
		{"srdcr", flags.srdcr, &snap.SRDCR},
	}
	for _, f := range fields {
		v, err := strconv.ParseUint(f.value, 0, 32)
		if err != nil {
			return clk.RegisterSnapshot{}, "", fmt.Errorf("register --%s: %w", f.name, err)
		}
		*f.dst = uint32(v)
	}
	return snap, "", nil
}

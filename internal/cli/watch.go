package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/monitor"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/probe"
	"github.com/ch0t4nk/stm32h753zi-sub001/internal/report"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		capturePath string
		interval    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll a capture sequence and report clock-tree changes",
		Long: `Replay a recorded capture file through the polling loop, analyzing
every snapshot and printing state changes between consecutive polls.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(rootOpts, capturePath, interval, cmd)
		},
	}

	cmd.Flags().StringVar(&capturePath, "capture", "", "capture file to replay (required)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "delay between polls (0 replays back-to-back)")
	_ = cmd.MarkFlagRequired("capture")

	return cmd
}

func runWatch(opts *RootOptions, capturePath string, interval time.Duration, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	source, err := probe.LoadReplay(capturePath)
	if err != nil {
		formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "load capture file", err)
	}
	formatter.VerboseLog("replaying %d capture(s) from %s", source.Len(), capturePath)

	out := cmd.OutOrStdout()
	handler := func(ev monitor.Event) {
		if opts.Format == "json" {
			formatter.JSON(watchEvent{
				CaptureID: ev.Capture.ID,
				Label:     ev.Capture.Label,
				First:     ev.First,
				Changes:   ev.Changes,
				Report:    ev.Report,
			})
			return
		}

		fmt.Fprintf(out, "--- %s\n", ev.Capture.Label)
		switch {
		case ev.First:
			fmt.Fprint(out, report.RenderText(ev.Report))
		case len(ev.Changes) == 0:
			fmt.Fprintln(out, "no change")
		default:
			for _, change := range ev.Changes {
				fmt.Fprintf(out, "changed: %s\n", change)
			}
			for _, d := range ev.Report.Diagnostics {
				fmt.Fprintf(out, "[%s] %s\n", d.Severity, d.Message)
			}
		}
	}

	mon := monitor.New(source, report.Options{
		Layout: opts.LayoutVariant(),
		HSEHz:  opts.HSEHz,
	}, interval, handler)

	if err := mon.Run(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "watch loop", err)
	}
	return nil
}

// watchEvent is the JSON form of one polling event.
type watchEvent struct {
	CaptureID string         `json:"capture_id"`
	Label     string         `json:"label"`
	First     bool           `json:"first"`
	Changes   []string       `json:"changes,omitempty"`
	Report    *report.Report `json:"report"`
}

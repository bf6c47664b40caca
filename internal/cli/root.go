// Package cli implements the clkdiag command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Layout  string // RCC_CR layout variant name
	HSEHz   uint64 // assumed HSE frequency; 0 means not supplied
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// LayoutVariant resolves the layout flag. PersistentPreRunE has already
// rejected unknown names.
func (o *RootOptions) LayoutVariant() clk.LayoutVariant {
	v, _ := clk.ParseLayoutVariant(o.Layout)
	return v
}

// NewRootCommand creates the root command for the clkdiag CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "clkdiag",
		Short: "STM32H7 clock tree decoder and diagnostic engine",
		Long: `clkdiag decodes RCC/PWR clock-tree registers into a structured model,
derives the effective frequencies at every tap point, and validates the
result against the chip's hardware operating envelope.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, ok := clk.ParseLayoutVariant(opts.Layout); !ok {
				return fmt.Errorf("invalid layout %q: must be standard or alternate", opts.Layout)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Layout, "layout", "standard", "RCC_CR register layout variant (standard|alternate)")
	cmd.PersistentFlags().Uint64Var(&opts.HSEHz, "hse-hz", 0, "board HSE frequency in Hz (required when HSE is in use)")

	// Add subcommands
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gramidt/vibe-card-empire/internal/preset"
)

// NewPresetsCommand creates the presets command group.
func NewPresetsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect and validate difficulty presets",
	}
	cmd.AddCommand(newPresetsListCommand(opts))
	cmd.AddCommand(newPresetsValidateCommand(opts))
	return cmd
}

func newPresetsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				presets := make([]preset.Preset, 0)
				for _, name := range preset.Names() {
					p, _ := preset.Builtin(name)
					presets = append(presets, p)
				}
				return formatter.Success(presets)
			}
			for _, name := range preset.Names() {
				p, _ := preset.Builtin(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s cash=%s deadline=%d-%dd expiration=%d-%dd max_orders=%d/day\n",
					p.Name, p.StartingCash,
					p.DeadlineMinDays, p.DeadlineMaxDays,
					p.ExpirationMinDays, p.ExpirationMaxDays,
					p.MaxOrdersPerDay,
				)
			}
			return nil
		},
	}
}

func newPresetsValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.yaml>",
		Short: "Validate a YAML preset file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := preset.LoadFile(args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "preset invalid", err)
			}
			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return formatter.Success(p)
			}
			return formatter.Success(fmt.Sprintf("%s: valid preset %q", args[0], p.Name))
		},
	}
}

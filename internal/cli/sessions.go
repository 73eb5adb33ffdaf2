package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gramidt/vibe-card-empire/internal/store"
)

// NewSessionsCommand creates the sessions command group for inspecting the
// save database.
func NewSessionsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect saved game sessions",
	}
	cmd.AddCommand(newSessionsListCommand(opts))
	cmd.AddCommand(newSessionsShowCommand(opts))
	return cmd
}

func newSessionsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			db, err := store.Open(cfg.Save.Path)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening save database", err)
			}
			defer db.Close()

			sessions, err := db.ListSessions(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "listing sessions", err)
			}

			formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return formatter.Success(sessions)
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, sess := range sessions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  preset=%s seed=%d created=%s\n",
					sess.ID, sess.Preset, sess.Seed, sess.CreatedAt)
			}
			return nil
		},
	}
}

func newSessionsShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print the latest save snapshot for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			db, err := store.Open(cfg.Save.Path)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening save database", err)
			}
			defer db.Close()

			save, err := db.LatestSave(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNoSave) {
				return NewExitError(ExitFailure, "session has no saves: "+args[0])
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "reading save", err)
			}

			// The stored snapshot is already canonical JSON.
			fmt.Fprintln(cmd.OutOrStdout(), string(save.Snapshot))
			return nil
		},
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gramidt/vibe-card-empire/internal/config"
	"github.com/gramidt/vibe-card-empire/internal/engine"
	"github.com/gramidt/vibe-card-empire/internal/store"
)

// NewRunCommand creates the run command: a live simulation session with
// periodic autosave, stopped with Ctrl-C.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var presetName string
	var seed int64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a live simulation session",
		Long: `Starts a new game session and advances simulated time in real time.
The session state is autosaved to the configured SQLite database and the
day-by-day business summary is printed as it happens. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if presetName != "" {
				cfg.Game.Preset = presetName
			}
			if seed != 0 {
				cfg.Game.Seed = seed
			}
			if cfg.Game.Seed == 0 {
				cfg.Game.Seed = time.Now().UnixNano()
			}
			return runSession(cmd, opts, cfg)
		},
	}

	cmd.Flags().StringVar(&presetName, "preset", "", "preset name or YAML preset file (overrides config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "simulation seed (overrides config; 0 derives from time)")

	return cmd
}

func runSession(cmd *cobra.Command, opts *RootOptions, cfg config.Config) error {
	p, err := resolvePreset(cfg.Game.Preset)
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg.Log)
	if opts.Verbose {
		logger = logger.With("preset", p.Name, "seed", cfg.Game.Seed)
	}

	db, err := store.Open(cfg.Save.Path)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening save database", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionID, err := db.CreateSession(ctx, nil, p.Name, cfg.Game.Seed)
	if err != nil {
		return WrapExitError(ExitCommandError, "creating session", err)
	}

	ec := engineConfig(p, cfg.Game, cfg.Game.Seed)
	ec.Logger = logger
	eng := engine.New(ec)
	defer eng.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s (preset=%s seed=%d)\n", sessionID, p.Name, cfg.Game.Seed)

	cadence := time.Duration(cfg.Game.TickMillis) * time.Millisecond

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eng.Run(ctx, cadence)
	})
	g.Go(func() error {
		return autosaveLoop(ctx, db, eng, sessionID, cfg.Save.AutosaveSeconds)
	})
	g.Go(func() error {
		return statusLoop(ctx, out, eng)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		// Clean shutdown: write a final save outside the canceled context.
		if saveErr := saveSnapshot(context.Background(), db, eng, sessionID); saveErr != nil {
			logger.Warn("final save failed", "error", saveErr)
		}
		fmt.Fprintln(out, "Session saved. Goodbye.")
		return nil
	}
	return err
}

// autosaveLoop persists the latest snapshot on a fixed interval. A zero
// interval disables autosaving.
func autosaveLoop(ctx context.Context, db *store.Store, eng *engine.Engine, sessionID string, seconds int) error {
	if seconds <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(time.Duration(seconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := saveSnapshot(ctx, db, eng, sessionID); err != nil {
				return err
			}
		}
	}
}

func saveSnapshot(ctx context.Context, db *store.Store, eng *engine.Engine, sessionID string) error {
	snap := eng.Snapshot()
	data, err := snap.CanonicalJSON()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return db.WriteSave(ctx, sessionID, snap.Version, snap.Time, data)
}

// statusLoop prints a one-line business summary at each day boundary.
func statusLoop(ctx context.Context, out io.Writer, eng *engine.Engine) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastDay := eng.Snapshot().Time.Day
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snap := eng.Snapshot()
			if snap.Time.Day == lastDay {
				continue
			}
			lastDay = snap.Time.Day
			fmt.Fprintf(out, "Day %d | cash %s | reputation %s | active orders %d | cards %d\n",
				snap.Time.Day,
				snap.Player.Cash,
				engine.FormatStars(snap.Player.Reputation),
				len(snap.Orders),
				totalCards(snap),
			)
		}
	}
}

func totalCards(snap *engine.Snapshot) int {
	total := 0
	for _, g := range snap.Groups {
		total += g.Quantity
	}
	return total
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/battle"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/bot"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/cli"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/dex"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/ratelimit"
	"github.com/DogorBiGCOL/Mini-Proyecto-2/internal/store"
)

// app carries the state shared by every subcommand once the root
// pre-run has loaded it.
type app struct {
	verbose bool
	csvPath string
	dbPath  string

	config  *Config
	logger  *zap.Logger
	catalog *dex.Catalog
	history *store.SQLiteStore
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	a.teardown()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pokedex",
		Short: "Pokemon catalog and battle simulator",
		Long: `pokedex loads a CSV catalog of pokemon into memory and lets you browse,
edit and battle them from an interactive menu.

Edits live only for the session; the CSV file is never rewritten.
Run without arguments to start the menu.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &cli.Menu{
				Catalog:   a.catalog,
				In:        cmd.InOrStdin(),
				Out:       cmd.OutOrStdout(),
				Logger:    a.logger,
				ListLimit: a.config.ListLimit,
			}
			if a.history != nil {
				m.History = a.history
			}
			err := m.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Exiting...")
				return nil
			}
			return err
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.csvPath, "csv", "", "catalog CSV file (overrides CATALOG_CSV)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "battle history database (overrides DB_PATH)")

	root.AddCommand(
		a.listCmd(),
		a.showCmd(),
		a.battleCmd(),
		a.botCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if a.csvPath != "" {
		cfg.CatalogCSV = a.csvPath
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	a.config = cfg

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if a.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.catalog = a.loadCatalog(cfg.CatalogCSV)

	if cfg.DBPath != "" {
		a.history, err = store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open battle history: %w", err)
		}
	}
	return nil
}

// loadCatalog never fails: a missing or unreadable file leaves the catalog
// empty so the menu can still be used to add entries.
func (a *app) loadCatalog(path string) *dex.Catalog {
	c, rep, err := dex.LoadCatalogFromCSV(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn("catalog file not found", zap.String("path", path))
		} else {
			a.logger.Error("failed to read catalog", zap.String("path", path), zap.Error(err))
		}
		return dex.NewCatalog()
	}

	for _, f := range rep.Failures {
		a.logger.Warn("skipped catalog row",
			zap.Int("row", f.Row),
			zap.String("name", f.Name),
			zap.Error(f.Err),
		)
	}
	if c.Len() == 0 {
		a.logger.Warn("no pokemon loaded", zap.String("path", path))
	} else {
		a.logger.Info("catalog loaded",
			zap.String("path", path),
			zap.Int("pokemon", c.Len()),
			zap.Int("skipped", len(rep.Failures)),
		)
	}
	return c
}

func (a *app) teardown() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("failed to close battle history", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) listCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pokemon names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := a.config.ListLimit
			if all {
				limit = 0
			}
			cli.PrintList(cmd.OutOrStdout(), a.catalog, limit)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "do not truncate the list")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print a pokemon card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.catalog.Get(args[0])
			if !ok {
				return fmt.Errorf("%q: %w", args[0], dex.ErrNotFound)
			}
			cli.PrintCard(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func (a *app) battleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "battle [first] [second]",
		Short: "Compare two pokemon by attack",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mons [2]dex.Pokemon
			for i, name := range args {
				p, ok := a.catalog.Get(name)
				if !ok {
					return fmt.Errorf("%q: %w", name, dex.ErrNotFound)
				}
				mons[i] = p
			}

			r := battle.Fight(mons[0], mons[1])
			cli.PrintBattle(cmd.OutOrStdout(), r)
			if a.history != nil {
				if err := a.history.Add(cmd.Context(), r); err != nil {
					a.logger.Warn("failed to record battle", zap.Error(err))
				}
			}
			return nil
		},
	}
}

func (a *app) botCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Serve /card, /battle and /dex as Discord slash commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.config.ValidateBot(); err != nil {
				return err
			}

			session, err := discordgo.New("Bot " + a.config.DiscordToken)
			if err != nil {
				return fmt.Errorf("failed to start session: %w", err)
			}
			session.ShardCount = a.config.ShardCount
			session.ShardID = a.config.ShardId

			if err := session.Open(); err != nil {
				return fmt.Errorf("failed to open session connection: %w", err)
			}
			defer session.Close()

			lim := ratelimit.New(
				time.Duration(a.config.CooldownBattleMin)*time.Second,
				time.Duration(a.config.CooldownBattleMax)*time.Second,
			)

			var history store.Store
			if a.history != nil {
				history = a.history
			}
			teardown, err := bot.Setup(session, session.State.User.ID, a.config.DevGuild, a.catalog, history, lim, a.logger)
			if err != nil {
				return fmt.Errorf("failed to setup bot: %w", err)
			}
			defer teardown()

			a.logger.Info("bot is running", zap.Int("shard", a.config.ShardId), zap.Int("pokemon", a.catalog.Len()))
			<-cmd.Context().Done()
			return nil
		},
	}
}

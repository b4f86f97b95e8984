package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/nimixiss/tarobot/internal/bot"
	"github.com/nimixiss/tarobot/internal/combos"
	"github.com/nimixiss/tarobot/internal/config"
	"github.com/nimixiss/tarobot/internal/deck"
	"github.com/nimixiss/tarobot/internal/errors"
	"github.com/nimixiss/tarobot/internal/stats"
	"github.com/nimixiss/tarobot/internal/usage"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, log zerolog.Logger) *cli.App {
	app := &cli.App{
		Name:    "tarobot",
		Usage:   "Telegram tarot reading bot",
		Version: Version,
		Commands: []*cli.Command{
			runCmd(cfg, log),
			statsCmd(cfg, log),
			exportCmd(cfg, log),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// runCmd creates the run command: load data, fetch the two-card feed and
// poll for updates until interrupted.
func runCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Start the bot (long polling)",
		Action: func(c *cli.Context) error {
			token := os.Getenv("BOT_TOKEN")
			if token == "" {
				return outputError(errors.NewInvalidRequest("BOT_TOKEN is not set"))
			}

			d, err := deck.Load(cfg.CardsPath(), cfg.TopicsPath())
			if err != nil {
				return outputError(err)
			}
			log.Info().Int("cards", d.Size()).Msg("card reference loaded")

			three, err := combos.LoadThreeCardSet(cfg.CombinationsPath())
			if err != nil {
				return outputError(err)
			}
			log.Info().Int("pool", three.PoolSize()).Msg("three-card combinations loaded")

			two := fetchTwoCardTable(cfg, log)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gateway, err := bot.New(token, cfg, bot.Deps{
				Deck:    d,
				TwoCard: two,
				Three:   three,
				Usage:   usage.NewLimiter(cfg.UsagePath(), log),
				Stats:   stats.NewStore(cfg.StatsPath(), log),
			}, log)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			if err := gateway.Run(ctx); err != nil && err != context.Canceled {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// fetchTwoCardTable performs the one-time startup fetch of the two-card
// feed. Failure degrades to an empty table: two-card lookups then miss and
// the fallback path takes over.
func fetchTwoCardTable(cfg *config.Config, log zerolog.Logger) *combos.TwoCardTable {
	timeout := time.Duration(cfg.TwoCardTimeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := &http.Client{Timeout: timeout}
	meanings, err := combos.FetchTwoCard(ctx, client, cfg.TwoCardURL)
	if err != nil {
		log.Warn().Err(err).Msg("two-card feed unavailable, continuing without it")
	} else {
		log.Info().Int("combinations", len(meanings)).Msg("two-card combinations loaded")
	}
	return combos.NewTwoCardTable(meanings)
}

// statsCmd creates the stats command.
func statsCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Print one day's event counters as JSON",
		ArgsUsage: "[YYYY-MM-DD|today|yesterday]",
		Action: func(c *cli.Context) error {
			store := stats.NewStore(cfg.StatsPath(), log)

			date, err := resolveStatsDate(c.Args().First(), time.Now().UTC())
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"date":   date,
				"events": store.Get(date),
			})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the stats CSV export",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Output file path (default: stats_export.csv in the current directory)"},
		},
		Action: func(c *cli.Context) error {
			store := stats.NewStore(cfg.StatsPath(), log)

			export, err := store.ExportCSV()
			if err != nil {
				return outputError(err)
			}

			path := c.String("path")
			if path == "" {
				path = export.Filename
			}
			if err := os.WriteFile(path, export.Data, 0600); err != nil {
				return outputError(errors.NewInternal(err))
			}

			return outputJSON(map[string]any{
				"path":   path,
				"totals": export.Totals,
			})
		},
	}
}

// resolveStatsDate turns a stats argument into an ISO date string.
func resolveStatsDate(arg string, now time.Time) (string, error) {
	switch arg {
	case "", "today":
		return now.Format("2006-01-02"), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format("2006-01-02"), nil
	}
	date, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return "", errors.NewInvalidRequest("date must be YYYY-MM-DD, today or yesterday")
	}
	return date.Format("2006-01-02"), nil
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if botErr, ok := err.(*errors.BotError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", botErr.Code, botErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

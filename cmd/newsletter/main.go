// Command newsletter manages newsletter campaigns. The default command,
// send, runs one dispatch: it loads the latest campaign from the configured
// store, renders its document to HTML, and sends the personalized result to
// every recipient of the target category. The queue and subscribe commands
// manage campaign and recipient rows in stores that support writes.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/newskit/pkg/campaign"
	"github.com/dmitrymomot/newskit/pkg/campaign/csvstore"
	"github.com/dmitrymomot/newskit/pkg/campaign/postgres"
	"github.com/dmitrymomot/newskit/pkg/docsource"
	"github.com/dmitrymomot/newskit/pkg/docsource/gdocs"
	"github.com/dmitrymomot/newskit/pkg/docsource/markdown"
	"github.com/dmitrymomot/newskit/pkg/logger"
	"github.com/dmitrymomot/newskit/pkg/mailer/resend"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "newsletter:", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	ctx := context.Background()
	log := logger.NewWithSentry(cfg.Sentry).With(slog.String("app", "newsletter"))

	store, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	cmd, args := "send", os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "send":
		source, err := buildSource(ctx, cfg)
		if err != nil {
			return err
		}
		ui := &consoleUI{
			in:        bufio.NewReader(os.Stdin),
			out:       os.Stdout,
			assumeYes: cfg.AssumeYes,
		}
		dispatcher := campaign.NewDispatcher(store, source, resend.New(cfg.Resend), ui, log)
		return dispatcher.Dispatch(ctx)

	case "queue":
		if len(args) != 1 {
			return fmt.Errorf("usage: newsletter queue <document>")
		}
		source, err := buildSource(ctx, cfg)
		if err != nil {
			return err
		}
		ref, err := queueCampaign(ctx, store, source, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Queued campaign %s.\n", ref)
		return nil

	case "subscribe":
		if len(args) != 3 {
			return fmt.Errorf("usage: newsletter subscribe <name> <email> <category>")
		}
		return subscribeRecipient(ctx, store, args[0], args[1], args[2])

	default:
		return fmt.Errorf("unknown command %q (want send, queue or subscribe)", cmd)
	}
}

func buildStore(ctx context.Context, cfg appConfig, log *slog.Logger) (campaign.Store, error) {
	switch cfg.Store {
	case "csv":
		return csvstore.New(cfg.CampaignsCSV, cfg.RecipientsCSV, cfg.Layout), nil

	case "postgres":
		var dbCfg postgres.Config
		if err := env.Parse(&dbCfg); err != nil {
			return nil, fmt.Errorf("parse database config: %w", err)
		}
		pool, err := postgres.Connect(ctx, dbCfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, dbCfg.MigrationsTable, log); err != nil {
			return nil, err
		}
		return postgres.New(pool), nil

	default:
		return nil, fmt.Errorf("unknown store %q (want csv or postgres)", cfg.Store)
	}
}

func buildSource(ctx context.Context, cfg appConfig) (docsource.Source, error) {
	switch cfg.Source {
	case "gdocs":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GoogleToken})
		return gdocs.New(ctx, oauth2.NewClient(ctx, ts))

	case "markdown":
		return markdown.New(os.DirFS(cfg.MarkdownDir)), nil

	default:
		return nil, fmt.Errorf("unknown document source %q (want gdocs or markdown)", cfg.Source)
	}
}

// consoleUI implements campaign.UI on the terminal.
type consoleUI struct {
	in        *bufio.Reader
	out       *os.File
	assumeYes bool
}

func (u *consoleUI) Notify(msg string) {
	fmt.Fprintln(u.out, msg)
}

func (u *consoleUI) Confirm(question string) bool {
	if u.assumeYes {
		return true
	}

	fmt.Fprintf(u.out, "%s [y/N]: ", question)
	line, err := u.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

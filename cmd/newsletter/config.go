package main

import (
	"github.com/dmitrymomot/newskit/pkg/campaign/csvstore"
	"github.com/dmitrymomot/newskit/pkg/logger"
	"github.com/dmitrymomot/newskit/pkg/mailer/resend"
)

// appConfig is the CLI configuration, loaded from the environment (with an
// optional .env file for local runs).
type appConfig struct {
	// Store selects the campaign backend: "csv" or "postgres".
	Store string `env:"NEWSLETTER_STORE" envDefault:"csv"`

	// Source selects the document backend: "gdocs" or "markdown".
	Source string `env:"NEWSLETTER_SOURCE" envDefault:"gdocs"`

	// CSV store file locations.
	CampaignsCSV  string `env:"NEWSLETTER_CAMPAIGNS_CSV" envDefault:"campaigns.csv"`
	RecipientsCSV string `env:"NEWSLETTER_RECIPIENTS_CSV" envDefault:"recipients.csv"`

	// Directory markdown documents are read from.
	MarkdownDir string `env:"NEWSLETTER_MARKDOWN_DIR" envDefault:"documents"`

	// OAuth access token for the Google Docs API (gdocs source).
	GoogleToken string `env:"NEWSLETTER_GOOGLE_TOKEN"`

	// AssumeYes answers the resend confirmation without prompting, for
	// non-interactive runs.
	AssumeYes bool `env:"NEWSLETTER_ASSUME_YES"`

	Layout csvstore.Layout
	Resend resend.Config
	Sentry logger.SentryConfig
}

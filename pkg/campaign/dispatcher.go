package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/newskit/pkg/docsource"
	"github.com/dmitrymomot/newskit/pkg/document"
	"github.com/dmitrymomot/newskit/pkg/logger"
	"github.com/dmitrymomot/newskit/pkg/mailer"
	"github.com/dmitrymomot/newskit/pkg/mailmerge"
)

// Dispatcher runs one newsletter send: load the latest campaign, render its
// document once, and deliver the personalized body to every recipient of the
// target category, isolating per-recipient delivery failures.
type Dispatcher struct {
	store  Store
	source docsource.Source
	sender mailer.Sender
	ui     UI
	log    *slog.Logger
}

// NewDispatcher wires a dispatcher from its collaborators. A nil log falls
// back to a discard logger.
func NewDispatcher(store Store, source docsource.Source, sender mailer.Sender, ui UI, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNope()
	}
	return &Dispatcher{
		store:  store,
		source: source,
		sender: sender,
		ui:     ui,
		log:    log,
	}
}

// Dispatch executes one send run to completion.
//
// Fatal pre-send conditions (no campaign, missing fields, bad link,
// inaccessible document) are reported via the UI, leave the stored status
// untouched, and return a sentinel error. Per-recipient delivery failures
// are logged and skipped. After the loop the campaign is marked sent
// regardless of how many deliveries succeeded, and the summary is reported.
//
// An operator declining the resend confirmation and an empty campaign store
// are normal outcomes, not errors.
func (d *Dispatcher) Dispatch(ctx context.Context) error {
	camp, err := d.store.Latest(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCampaigns) {
			d.ui.Notify("No campaigns found.")
			return nil
		}
		d.ui.Notify("Error: failed to load campaigns: " + err.Error())
		return err
	}

	if camp.Subject == "" || camp.DocLink == "" {
		d.ui.Notify("Error: Missing Subject or Doc Link in the last campaign row.")
		return ErrMissingInput
	}

	if camp.Status.RequiresResendConfirm() {
		if !d.ui.Confirm("The last campaign is already marked as 'Sent'. Do you want to send it again?") {
			d.ui.Notify("Send cancelled.")
			return nil
		}
	}

	docID := docsource.ExtractID(camp.DocLink)
	if docID == "" {
		d.ui.Notify("Error: Invalid document link.")
		return ErrInvalidDocLink
	}

	body, err := d.source.Open(ctx, docID)
	if err != nil {
		d.ui.Notify("Error accessing document: " + err.Error())
		return errors.Join(ErrDocumentAccess, err)
	}

	// One render serves the whole run; resources are shared, never
	// re-encoded per recipient, and never cached across runs.
	rendered := document.Render(body)
	attachments := mailer.InlineAttachments(rendered.Resources)

	recipients, err := d.store.Recipients(ctx)
	if err != nil {
		d.ui.Notify("Error: failed to load recipients: " + err.Error())
		return err
	}

	targets := mailmerge.SelectTargets(recipients, camp.Category)
	d.log.InfoContext(ctx, "dispatching campaign",
		slog.String("campaign", camp.Ref),
		slog.String("subject", camp.Subject),
		slog.String("category", camp.Category),
		slog.Int("targets", len(targets)),
		slog.Int("inline_images", len(attachments)),
	)

	sent := 0
	for _, rec := range targets {
		email := &mailer.Email{
			To:          []string{rec.Email},
			Subject:     camp.Subject,
			HTML:        mailmerge.Personalize(rendered.HTML, rec),
			Attachments: attachments,
			Tags:        map[string]string{"campaign": camp.Ref, "category": camp.Category},
		}

		// Deliveries stay strictly serial: the transport is rate-limited and
		// one recipient's failure must not touch the others.
		if err := d.sender.Send(ctx, email); err != nil {
			d.log.ErrorContext(ctx, "failed to send newsletter",
				slog.String("recipient", rec.Email),
				slog.String("error", err.Error()),
			)
			continue
		}
		sent++
	}

	// "Attempted" persists as sent even when some deliveries failed; a fatal
	// error above has already returned, so a campaign is never marked sent
	// without the loop having run.
	if err := d.store.MarkSent(ctx, camp.Ref); err != nil {
		d.ui.Notify("Error: failed to update campaign status: " + err.Error())
		return errors.Join(ErrStatusUpdate, err)
	}

	d.ui.Notify(fmt.Sprintf("Newsletter sent to %d subscribers in category '%s'.", sent, camp.Category))
	return nil
}

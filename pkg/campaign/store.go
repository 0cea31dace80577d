package campaign

import (
	"context"

	"github.com/dmitrymomot/newskit/pkg/mailmerge"
)

// Store is the tabular backend holding campaigns and the recipient list.
// Implementations ship in the postgres and csvstore subpackages.
type Store interface {
	// Latest returns the most recently created campaign, or ErrNoCampaigns
	// when the store holds none.
	Latest(ctx context.Context) (Campaign, error)

	// Recipients returns the full recipient list in stored order. Filtering
	// happens at dispatch time; the stored list is never mutated by a send.
	Recipients(ctx context.Context) ([]mailmerge.Recipient, error)

	// MarkSent transitions the referenced campaign to StatusSent and records
	// whatever acknowledgment the backend supports (sent timestamp, status
	// cell rewrite).
	MarkSent(ctx context.Context, ref string) error
}

// UI is the operator interaction surface: outcome reporting and the resend
// confirmation prompt. The CLI talks to a terminal; tests record calls.
type UI interface {
	// Notify reports a human-readable outcome message.
	Notify(msg string)

	// Confirm asks a yes/no question and returns the operator's answer.
	Confirm(question string) bool
}

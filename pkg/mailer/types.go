package mailer

import (
	"fmt"
	"sort"

	"github.com/dmitrymomot/newskit/pkg/document"
)

// Email represents a fully-prepared message ready for delivery.
type Email struct {
	Headers     map[string]string // Custom headers
	Tags        map[string]string // Provider-specific tags/categories
	Subject     string            // Email subject
	HTML        string            // HTML body content
	Text        string            // Plain text alternative
	From        string            // Override default sender (if provider allows)
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients (at least one required)
	Attachments []Attachment      // File and inline attachments
}

// Attachment represents an email attachment. An attachment with a ContentID
// is delivered inline and referenced from the HTML body via cid:ContentID.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "image/png")
	ContentID   string // Content-ID for inline attachments; empty for regular files
	Content     []byte // Raw content
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// InlineAttachments converts rendered document resources into inline CID
// attachments, ordered by resource ID so the result is deterministic. The
// blobs are shared, not copied: one render's images serve every recipient
// of a send.
func InlineAttachments(res document.Resources) []Attachment {
	ids := make([]string, 0, len(res))
	for id := range res {
		ids = append(ids, id)
	}
	// Shorter IDs first so image9 precedes image10.
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})

	attachments := make([]Attachment, len(ids))
	for i, id := range ids {
		blob := res[id]
		attachments[i] = Attachment{
			Filename:    id,
			ContentType: blob.ContentType,
			ContentID:   id,
			Content:     blob.Data,
		}
	}
	return attachments
}

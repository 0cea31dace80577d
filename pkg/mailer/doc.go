// Package mailer provides the email delivery boundary of the newsletter
// engine.
//
// It defines the Email and Attachment types the campaign dispatcher builds,
// and the Sender interface that delivery providers implement. The Resend
// adapter ships as the resend subpackage; any provider that can deliver an
// HTML body with inline CID attachments can be swapped in:
//
//	type MySender struct{}
//
//	func (s *MySender) Send(ctx context.Context, email *mailer.Email) error {
//		// deliver via your provider's API
//		return nil
//	}
//
// InlineAttachments bridges rendered documents and delivery: it converts
// the resource map produced by document.Render into inline attachments
// referenced from the HTML via cid: URLs.
package mailer

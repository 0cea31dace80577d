// Package campaign orchestrates newsletter sends.
//
// A Campaign couples a subject, a document link, a target recipient
// category, and a delivery status. The Dispatcher runs one send end to end:
//
//	load latest campaign → validate → (confirm resend) → resolve document →
//	render once → filter recipients → personalize + deliver serially →
//	mark sent → report summary
//
// Failure handling is two-tiered. Anything that goes wrong before the first
// delivery attempt (missing fields, unresolvable link, inaccessible
// document) aborts the run with the stored status untouched. Once the
// delivery loop starts it always runs to completion: individual delivery
// failures are logged and skipped, the campaign is marked sent either way,
// and the summary reports how many deliveries actually succeeded.
//
// Collaborators are injected as interfaces: Store for the tabular backend
// (postgres and csvstore subpackages), docsource.Source for document
// content, mailer.Sender for the transport, and UI for operator
// interaction.
package campaign

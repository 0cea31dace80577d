package campaign

// Status is the persisted delivery state of a campaign.
//
// Historically the status cell was free-form, so values other than the two
// canonical ones can appear in stored data. Anything that is neither empty
// nor StatusUnsent is treated as "possibly already delivered" and guarded by
// the resend confirmation; for every other purpose it behaves like unsent.
// Status only ever moves forward: once a campaign is marked sent it is never
// reset by the engine.
type Status string

const (
	StatusUnsent Status = "Unsent"
	StatusSent   Status = "Sent"
)

// RequiresResendConfirm reports whether dispatching this campaign needs
// explicit operator confirmation because it may already have gone out.
func (s Status) RequiresResendConfirm() bool {
	return s != "" && s != StatusUnsent
}

// Campaign is one newsletter send request: what to send (a document
// reference), to whom (a target category), and whether it went out already.
type Campaign struct {
	// Ref is the store's handle for this campaign row, used to write the
	// status back. Its format is store-specific (row number, UUID, ...).
	Ref      string
	Subject  string
	DocLink  string
	Category string
	Status   Status
}

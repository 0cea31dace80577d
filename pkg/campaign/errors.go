package campaign

import "errors"

var (
	// ErrNoCampaigns indicates the store holds no campaign rows.
	ErrNoCampaigns = errors.New("campaign: no campaigns found")

	// ErrMissingInput indicates the latest campaign lacks a subject or a
	// document link.
	ErrMissingInput = errors.New("campaign: missing subject or document link")

	// ErrInvalidDocLink indicates no document ID could be extracted from the
	// campaign's document link.
	ErrInvalidDocLink = errors.New("campaign: invalid document link")

	// ErrDocumentAccess indicates the campaign document could not be loaded.
	ErrDocumentAccess = errors.New("campaign: failed to access document")

	// ErrStatusUpdate indicates the post-send status write failed.
	ErrStatusUpdate = errors.New("campaign: failed to update campaign status")
)

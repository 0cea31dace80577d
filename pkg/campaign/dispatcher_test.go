package campaign_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newskit/pkg/campaign"
	"github.com/dmitrymomot/newskit/pkg/document"
	"github.com/dmitrymomot/newskit/pkg/mailer"
	"github.com/dmitrymomot/newskit/pkg/mailmerge"
)

type fakeStore struct {
	campaign    campaign.Campaign
	latestErr   error
	recipients  []mailmerge.Recipient
	recErr      error
	markSentErr error
	markedSent  []string
}

func (s *fakeStore) Latest(context.Context) (campaign.Campaign, error) {
	return s.campaign, s.latestErr
}

func (s *fakeStore) Recipients(context.Context) ([]mailmerge.Recipient, error) {
	return s.recipients, s.recErr
}

func (s *fakeStore) MarkSent(_ context.Context, ref string) error {
	if s.markSentErr != nil {
		return s.markSentErr
	}
	s.markedSent = append(s.markedSent, ref)
	return nil
}

type fakeSource struct {
	body    document.Body
	err     error
	openIDs []string
}

func (s *fakeSource) Open(_ context.Context, documentID string) (document.Body, error) {
	s.openIDs = append(s.openIDs, documentID)
	if s.err != nil {
		return nil, s.err
	}
	return s.body, nil
}

type fakeSender struct {
	sent    []*mailer.Email
	failFor map[string]error
}

func (s *fakeSender) Send(_ context.Context, email *mailer.Email) error {
	if err, ok := s.failFor[email.To[0]]; ok {
		return err
	}
	s.sent = append(s.sent, email)
	return nil
}

type fakeUI struct {
	notices   []string
	confirm   bool
	questions []string
}

func (u *fakeUI) Notify(msg string) { u.notices = append(u.notices, msg) }

func (u *fakeUI) Confirm(q string) bool {
	u.questions = append(u.questions, q)
	return u.confirm
}

const docLink = "https://docs.example.com/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit"

func helloBody() document.Body {
	return document.Body{
		document.Paragraph(document.BoldText("Hello {{Name}}")),
		document.Paragraph(document.InlineImage("image/png", []byte("png-bytes"))),
	}
}

func TestDispatch_SendsToFilteredRecipients(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		campaign: campaign.Campaign{
			Ref:      "row-2",
			Subject:  "Update",
			DocLink:  docLink,
			Category: "VIP",
		},
		recipients: []mailmerge.Recipient{
			{Name: "Alice", Email: "alice@example.com", Category: "VIP"},
			{Name: "Bob", Email: "bob@example.com", Category: "General"},
			{Name: "Carol", Email: "carol@example.com", Category: "VIP"},
		},
	}
	source := &fakeSource{body: helloBody()}
	sender := &fakeSender{}
	ui := &fakeUI{}

	err := campaign.NewDispatcher(store, source, sender, ui, nil).Dispatch(context.Background())
	require.NoError(t, err)

	require.Len(t, sender.sent, 2)

	first := sender.sent[0]
	assert.Equal(t, []string{"alice@example.com"}, first.To)
	assert.Equal(t, "Update", first.Subject)
	assert.Contains(t, first.HTML, "<b>Hello Alice</b>")
	assert.Contains(t, first.HTML, "cid:image0")
	require.Len(t, first.Attachments, 1)
	assert.Equal(t, "image0", first.Attachments[0].ContentID)
	assert.Equal(t, []byte("png-bytes"), first.Attachments[0].Content)

	assert.Contains(t, sender.sent[1].HTML, "<b>Hello Carol</b>")

	assert.Equal(t, []string{"1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"}, source.openIDs)
	assert.Equal(t, []string{"row-2"}, store.markedSent)
	require.Len(t, ui.notices, 1)
	assert.Equal(t, "Newsletter sent to 2 subscribers in category 'VIP'.", ui.notices[0])
}

func TestDispatch_NoCampaigns(t *testing.T) {
	t.Parallel()

	store := &fakeStore{latestErr: campaign.ErrNoCampaigns}
	sender := &fakeSender{}
	ui := &fakeUI{}

	err := campaign.NewDispatcher(store, &fakeSource{}, sender, ui, nil).Dispatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"No campaigns found."}, ui.notices)
	assert.Empty(t, sender.sent)
}

func TestDispatch_MissingInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		camp campaign.Campaign
	}{
		{name: "no subject", camp: campaign.Campaign{DocLink: docLink}},
		{name: "no doc link", camp: campaign.Campaign{Subject: "Update"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeStore{campaign: tt.camp}
			ui := &fakeUI{}

			err := campaign.NewDispatcher(store, &fakeSource{}, &fakeSender{}, ui, nil).Dispatch(context.Background())

			require.ErrorIs(t, err, campaign.ErrMissingInput)
			assert.Empty(t, store.markedSent)
			require.Len(t, ui.notices, 1)
			assert.Contains(t, ui.notices[0], "Missing Subject or Doc Link")
		})
	}
}

func TestDispatch_InvalidDocLink(t *testing.T) {
	t.Parallel()

	store := &fakeStore{campaign: campaign.Campaign{
		Subject: "Update",
		DocLink: "https://docs.example.com/short",
	}}
	ui := &fakeUI{}

	err := campaign.NewDispatcher(store, &fakeSource{}, &fakeSender{}, ui, nil).Dispatch(context.Background())

	require.ErrorIs(t, err, campaign.ErrInvalidDocLink)
	assert.Empty(t, store.markedSent)
}

func TestDispatch_DocumentAccessError(t *testing.T) {
	t.Parallel()

	store := &fakeStore{campaign: campaign.Campaign{
		Subject:  "Update",
		DocLink:  docLink,
		Category: "VIP",
	}}
	source := &fakeSource{err: errors.New("permission denied")}
	sender := &fakeSender{}
	ui := &fakeUI{}

	err := campaign.NewDispatcher(store, source, sender, ui, nil).Dispatch(context.Background())

	require.ErrorIs(t, err, campaign.ErrDocumentAccess)
	assert.Empty(t, sender.sent)
	assert.Empty(t, store.markedSent)
	require.Len(t, ui.notices, 1)
	assert.Contains(t, ui.notices[0], "Error accessing document")
	assert.Contains(t, ui.notices[0], "permission denied")
}

func TestDispatch_ResendDeclined(t *testing.T) {
	t.Parallel()

	store := &fakeStore{campaign: campaign.Campaign{
		Ref:      "row-2",
		Subject:  "Update",
		DocLink:  docLink,
		Category: "VIP",
		Status:   campaign.StatusSent,
	}}
	source := &fakeSource{body: helloBody()}
	sender := &fakeSender{}
	ui := &fakeUI{confirm: false}

	err := campaign.NewDispatcher(store, source, sender, ui, nil).Dispatch(context.Background())

	require.NoError(t, err)
	require.Len(t, ui.questions, 1)
	assert.Contains(t, ui.questions[0], "already marked as 'Sent'")
	assert.Empty(t, sender.sent)
	assert.Empty(t, store.markedSent)
	assert.Equal(t, []string{"Send cancelled."}, ui.notices)
}

func TestDispatch_ResendConfirmedRerendersFresh(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		campaign: campaign.Campaign{
			Ref:      "row-2",
			Subject:  "Update",
			DocLink:  docLink,
			Category: "VIP",
			Status:   campaign.StatusSent,
		},
		recipients: []mailmerge.Recipient{
			{Name: "Alice", Email: "alice@example.com", Category: "VIP"},
		},
	}
	source := &fakeSource{body: helloBody()}
	sender := &fakeSender{}
	ui := &fakeUI{confirm: true}

	dispatcher := campaign.NewDispatcher(store, source, sender, ui, nil)

	require.NoError(t, dispatcher.Dispatch(context.Background()))
	require.NoError(t, dispatcher.Dispatch(context.Background()))

	// The document is re-opened and re-rendered for each run, and both runs
	// produce identical content.
	require.Len(t, source.openIDs, 2)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, sender.sent[0].HTML, sender.sent[1].HTML)
	assert.Equal(t, sender.sent[0].Attachments, sender.sent[1].Attachments)
	assert.Equal(t, []string{"row-2", "row-2"}, store.markedSent)
}

func TestDispatch_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		campaign: campaign.Campaign{
			Ref:      "row-5",
			Subject:  "Update",
			DocLink:  docLink,
			Category: "VIP",
		},
		recipients: []mailmerge.Recipient{
			{Name: "Alice", Email: "alice@example.com", Category: "VIP"},
			{Name: "Broken", Email: "broken@invalid", Category: "VIP"},
			{Name: "Carol", Email: "carol@example.com", Category: "VIP"},
		},
	}
	source := &fakeSource{body: helloBody()}
	sender := &fakeSender{failFor: map[string]error{
		"broken@invalid": errors.New("550 mailbox unavailable"),
	}}
	ui := &fakeUI{}

	err := campaign.NewDispatcher(store, source, sender, ui, nil).Dispatch(context.Background())
	require.NoError(t, err)

	// The failure is skipped, later recipients still get their copy, and
	// the campaign is marked sent anyway.
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"row-5"}, store.markedSent)
	require.Len(t, ui.notices, 1)
	assert.Equal(t, "Newsletter sent to 2 subscribers in category 'VIP'.", ui.notices[0])
}

func TestDispatch_MarkSentFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		campaign: campaign.Campaign{
			Ref:      "row-2",
			Subject:  "Update",
			DocLink:  docLink,
			Category: "VIP",
		},
		recipients: []mailmerge.Recipient{
			{Name: "Alice", Email: "alice@example.com", Category: "VIP"},
		},
		markSentErr: errors.New("connection reset"),
	}
	source := &fakeSource{body: helloBody()}
	sender := &fakeSender{}
	ui := &fakeUI{}

	err := campaign.NewDispatcher(store, source, sender, ui, nil).Dispatch(context.Background())

	require.ErrorIs(t, err, campaign.ErrStatusUpdate)
	// Deliveries already happened; only the acknowledgment failed.
	assert.Len(t, sender.sent, 1)
}

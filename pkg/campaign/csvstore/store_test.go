package csvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newskit/pkg/campaign"
	"github.com/dmitrymomot/newskit/pkg/campaign/csvstore"
	"github.com/dmitrymomot/newskit/pkg/mailmerge"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const campaignsCSV = "Timestamp,Subject,Doc Link,Category,Status\n" +
	"2026-08-01,Old news,https://docs.example.com/d/aaaaaaaaaaaaaaaaaaaaaaaaa,General,Sent\n" +
	"2026-08-28,Update,https://docs.example.com/d/bbbbbbbbbbbbbbbbbbbbbbbbb,VIP,\n"

const recipientsCSV = "Timestamp,Name,Email,Phone,Address,Category\n" +
	"2026-07-01,Alice,alice@example.com,555-0100,1 Main St,VIP\n" +
	"2026-07-02,Bob,bob@example.com,,,General\n" +
	"2026-07-03,Carol,,,,VIP\n"

func newStore(t *testing.T) *csvstore.Store {
	t.Helper()
	dir := t.TempDir()
	campaigns := writeFile(t, dir, "campaigns.csv", campaignsCSV)
	recipients := writeFile(t, dir, "recipients.csv", recipientsCSV)
	return csvstore.New(campaigns, recipients, csvstore.DefaultLayout())
}

func TestStore_Latest(t *testing.T) {
	t.Parallel()

	camp, err := newStore(t).Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "3", camp.Ref)
	assert.Equal(t, "Update", camp.Subject)
	assert.Equal(t, "https://docs.example.com/d/bbbbbbbbbbbbbbbbbbbbbbbbb", camp.DocLink)
	assert.Equal(t, "VIP", camp.Category)
	assert.Equal(t, campaign.Status(""), camp.Status)
}

func TestStore_Latest_NoCampaigns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	campaigns := writeFile(t, dir, "campaigns.csv", "Timestamp,Subject,Doc Link,Category,Status\n")
	recipients := writeFile(t, dir, "recipients.csv", recipientsCSV)

	_, err := csvstore.New(campaigns, recipients, csvstore.DefaultLayout()).Latest(context.Background())
	require.ErrorIs(t, err, campaign.ErrNoCampaigns)
}

func TestStore_Latest_MissingFile(t *testing.T) {
	t.Parallel()

	store := csvstore.New(filepath.Join(t.TempDir(), "nope.csv"), "", csvstore.DefaultLayout())
	_, err := store.Latest(context.Background())
	require.ErrorIs(t, err, csvstore.ErrReadFailed)
}

func TestStore_Recipients(t *testing.T) {
	t.Parallel()

	recipients, err := newStore(t).Recipients(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []mailmerge.Recipient{
		{Name: "Alice", Email: "alice@example.com", Category: "VIP"},
		{Name: "Bob", Email: "bob@example.com", Category: "General"},
		{Name: "Carol", Email: "", Category: "VIP"},
	}, recipients)
}

func TestStore_MarkSent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	campaigns := writeFile(t, dir, "campaigns.csv", campaignsCSV)
	recipients := writeFile(t, dir, "recipients.csv", recipientsCSV)
	store := csvstore.New(campaigns, recipients, csvstore.DefaultLayout())

	require.NoError(t, store.MarkSent(context.Background(), "3"))

	camp, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, campaign.StatusSent, camp.Status)

	// Untouched rows survive the rewrite.
	content, err := os.ReadFile(campaigns)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Old news")
	assert.Contains(t, string(content), "Timestamp,Subject,Doc Link,Category,Status")
}

func TestStore_MarkSent_PadsShortRow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Last row has no status column at all.
	campaigns := writeFile(t, dir, "campaigns.csv",
		"Timestamp,Subject,Doc Link,Category,Status\n"+
			"2026-08-28,Update,https://docs.example.com/d/ccccccccccccccccccccccccc,VIP\n")
	store := csvstore.New(campaigns, "", csvstore.DefaultLayout())

	require.NoError(t, store.MarkSent(context.Background(), "2"))

	camp, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, campaign.StatusSent, camp.Status)
}

func TestStore_MarkSent_InvalidRef(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	require.ErrorIs(t, store.MarkSent(context.Background(), "not-a-row"), csvstore.ErrInvalidCampaignRef)
	require.ErrorIs(t, store.MarkSent(context.Background(), "99"), csvstore.ErrInvalidCampaignRef)
	require.ErrorIs(t, store.MarkSent(context.Background(), "1"), csvstore.ErrInvalidCampaignRef)
}

func TestStore_CustomLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	campaigns := writeFile(t, dir, "campaigns.csv",
		"Subject,Category,Doc Link,Status\n"+
			"Update,VIP,https://docs.example.com/d/ddddddddddddddddddddddddd,\n")
	recipients := writeFile(t, dir, "recipients.csv",
		"Email,Name,Category\n"+
			"alice@example.com,Alice,VIP\n")

	layout := csvstore.Layout{
		RecipientNameCol:     2,
		RecipientEmailCol:    1,
		RecipientCategoryCol: 3,
		CampaignSubjectCol:   1,
		CampaignDocLinkCol:   3,
		CampaignCategoryCol:  2,
		CampaignStatusCol:    4,
	}
	store := csvstore.New(campaigns, recipients, layout)

	camp, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Update", camp.Subject)
	assert.Equal(t, "VIP", camp.Category)

	recs, err := store.Recipients(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "alice@example.com", recs[0].Email)
}

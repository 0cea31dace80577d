// Package csvstore implements the campaign.Store interface on two local CSV
// files, mirroring the spreadsheet layout newsletter campaigns were
// historically managed in: one file of form-fed recipient rows, one file of
// campaign drafts with a status column the engine writes back.
//
// Columns are positional and 1-based. The layout is injected rather than
// hard-coded so stores with extra columns (timestamps, phone numbers)
// between the interesting ones keep working; DefaultLayout matches the
// original sheet layout. Campaign refs are row numbers within the campaigns
// file.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrymomot/newskit/pkg/campaign"
	"github.com/dmitrymomot/newskit/pkg/mailmerge"
)

var (
	// ErrReadFailed indicates a CSV file could not be read or parsed.
	ErrReadFailed = errors.New("csvstore: failed to read file")

	// ErrWriteFailed indicates the status write-back failed.
	ErrWriteFailed = errors.New("csvstore: failed to write file")

	// ErrInvalidCampaignRef indicates a ref that is not a row number within
	// the campaigns file.
	ErrInvalidCampaignRef = errors.New("csvstore: invalid campaign reference")
)

// Layout holds the 1-based column positions of the fields the engine reads
// and writes. Tests and non-default sheets inject their own.
type Layout struct {
	RecipientNameCol     int `env:"CSV_RECIPIENT_NAME_COL" envDefault:"2"`
	RecipientEmailCol    int `env:"CSV_RECIPIENT_EMAIL_COL" envDefault:"3"`
	RecipientCategoryCol int `env:"CSV_RECIPIENT_CATEGORY_COL" envDefault:"6"`
	CampaignSubjectCol   int `env:"CSV_CAMPAIGN_SUBJECT_COL" envDefault:"2"`
	CampaignDocLinkCol   int `env:"CSV_CAMPAIGN_DOC_LINK_COL" envDefault:"3"`
	CampaignCategoryCol  int `env:"CSV_CAMPAIGN_CATEGORY_COL" envDefault:"4"`
	CampaignStatusCol    int `env:"CSV_CAMPAIGN_STATUS_COL" envDefault:"5"`
}

// DefaultLayout returns the original sheet layout: recipients as
// (timestamp, name, email, phone, address, category), campaigns as
// (timestamp, subject, doc link, category, status).
func DefaultLayout() Layout {
	return Layout{
		RecipientNameCol:     2,
		RecipientEmailCol:    3,
		RecipientCategoryCol: 6,
		CampaignSubjectCol:   2,
		CampaignDocLinkCol:   3,
		CampaignCategoryCol:  4,
		CampaignStatusCol:    5,
	}
}

// Store is a CSV-file-backed campaign store.
type Store struct {
	campaignsPath  string
	recipientsPath string
	layout         Layout
}

// New creates a store over the given campaign and recipient files.
func New(campaignsPath, recipientsPath string, layout Layout) *Store {
	return &Store{
		campaignsPath:  campaignsPath,
		recipientsPath: recipientsPath,
		layout:         layout,
	}
}

// Latest implements campaign.Store. The most recent campaign is the last
// data row of the campaigns file; the first row is a header.
func (s *Store) Latest(_ context.Context) (campaign.Campaign, error) {
	rows, err := readRows(s.campaignsPath)
	if err != nil {
		return campaign.Campaign{}, err
	}
	if len(rows) < 2 {
		return campaign.Campaign{}, campaign.ErrNoCampaigns
	}

	last := len(rows) - 1
	row := rows[last]
	return campaign.Campaign{
		Ref:      strconv.Itoa(last + 1), // 1-based row number
		Subject:  cell(row, s.layout.CampaignSubjectCol),
		DocLink:  cell(row, s.layout.CampaignDocLinkCol),
		Category: cell(row, s.layout.CampaignCategoryCol),
		Status:   campaign.Status(cell(row, s.layout.CampaignStatusCol)),
	}, nil
}

// Recipients implements campaign.Store.
func (s *Store) Recipients(_ context.Context) ([]mailmerge.Recipient, error) {
	rows, err := readRows(s.recipientsPath)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	recipients := make([]mailmerge.Recipient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recipients = append(recipients, mailmerge.Recipient{
			Name:     cell(row, s.layout.RecipientNameCol),
			Email:    cell(row, s.layout.RecipientEmailCol),
			Category: cell(row, s.layout.RecipientCategoryCol),
		})
	}
	return recipients, nil
}

// MarkSent implements campaign.Store. It rewrites the campaigns file with
// the referenced row's status cell set to Sent, padding the row if the
// status column does not exist yet.
func (s *Store) MarkSent(_ context.Context, ref string) error {
	rowNum, err := strconv.Atoi(ref)
	if err != nil {
		return errors.Join(ErrInvalidCampaignRef, err)
	}

	rows, err := readRows(s.campaignsPath)
	if err != nil {
		return err
	}
	if rowNum < 2 || rowNum > len(rows) {
		return fmt.Errorf("%w: row %d out of range", ErrInvalidCampaignRef, rowNum)
	}

	row := rows[rowNum-1]
	for len(row) < s.layout.CampaignStatusCol {
		row = append(row, "")
	}
	row[s.layout.CampaignStatusCol-1] = string(campaign.StatusSent)
	rows[rowNum-1] = row

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	if err := os.WriteFile(s.campaignsPath, buf.Bytes(), 0o644); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may have trailing columns missing
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	return rows, nil
}

// cell returns the 1-based column of a row, or "" when the row is shorter.
func cell(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}

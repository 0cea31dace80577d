// Package postgres implements the campaign.Store interface on PostgreSQL.
//
// Campaign refs are row UUIDs. The sent acknowledgment is a status update
// plus a sent_at timestamp. Connect and Migrate handle pool setup and the
// embedded goose schema migrations.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/newskit/pkg/campaign"
	"github.com/dmitrymomot/newskit/pkg/mailmerge"
)

// DB is the query surface the store needs; *pgxpool.Pool satisfies it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store is a PostgreSQL-backed campaign store.
type Store struct {
	db DB
}

// New creates a store over an established connection pool.
func New(db DB) *Store {
	return &Store{db: db}
}

// Latest implements campaign.Store.
func (s *Store) Latest(ctx context.Context) (campaign.Campaign, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id::text, subject, doc_link, category, status
		 FROM campaigns
		 ORDER BY created_at DESC
		 LIMIT 1`)

	var (
		camp   campaign.Campaign
		status string
	)
	if err := row.Scan(&camp.Ref, &camp.Subject, &camp.DocLink, &camp.Category, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.Campaign{}, campaign.ErrNoCampaigns
		}
		return campaign.Campaign{}, errors.Join(ErrQueryFailed, err)
	}

	camp.Status = campaign.Status(status)
	return camp, nil
}

// Recipients implements campaign.Store.
func (s *Store) Recipients(ctx context.Context) ([]mailmerge.Recipient, error) {
	rows, err := s.db.Query(ctx,
		`SELECT name, email, category
		 FROM recipients
		 ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	defer rows.Close()

	var recipients []mailmerge.Recipient
	for rows.Next() {
		var rec mailmerge.Recipient
		if err := rows.Scan(&rec.Name, &rec.Email, &rec.Category); err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return recipients, nil
}

// MarkSent implements campaign.Store.
func (s *Store) MarkSent(ctx context.Context, ref string) error {
	id, err := uuid.Parse(ref)
	if err != nil {
		return errors.Join(ErrInvalidCampaignRef, err)
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE campaigns SET status = $1, sent_at = now() WHERE id = $2`,
		string(campaign.StatusSent), id.String())
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %s not found", ErrInvalidCampaignRef, ref)
	}
	return nil
}

// CreateCampaign inserts a new campaign row and returns its ref.
// Used by operational tooling to queue a send.
func (s *Store) CreateCampaign(ctx context.Context, subject, docLink, category string) (string, error) {
	id := uuid.New()
	_, err := s.db.Exec(ctx,
		`INSERT INTO campaigns (id, subject, doc_link, category, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		id.String(), subject, docLink, category, string(campaign.StatusUnsent))
	if err != nil {
		return "", errors.Join(ErrQueryFailed, err)
	}
	return id.String(), nil
}

// AddRecipient inserts a recipient row.
func (s *Store) AddRecipient(ctx context.Context, rec mailmerge.Recipient) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO recipients (name, email, category) VALUES ($1, $2, $3)`,
		rec.Name, rec.Email, rec.Category)
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}

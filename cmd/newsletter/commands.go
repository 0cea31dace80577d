package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/newskit/pkg/campaign"
	"github.com/dmitrymomot/newskit/pkg/docsource"
	"github.com/dmitrymomot/newskit/pkg/mailmerge"
)

var errUnsupported = errors.New("newsletter: command not supported by the configured backend")

// campaignCreator is the optional store surface for queueing a campaign;
// the postgres store implements it.
type campaignCreator interface {
	CreateCampaign(ctx context.Context, subject, docLink, category string) (string, error)
}

// recipientAdder is the optional store surface for adding a subscriber;
// the postgres store implements it.
type recipientAdder interface {
	AddRecipient(ctx context.Context, rec mailmerge.Recipient) error
}

// metadataReader reads document frontmatter without parsing the body;
// the markdown source implements it.
type metadataReader interface {
	Metadata(documentID string) (map[string]any, error)
}

// queueCampaign creates an unsent campaign from a document's frontmatter
// (Subject, optional Category) so the next send run picks it up. The
// document name doubles as the stored doc link, so it must itself be a
// usable document reference.
func queueCampaign(ctx context.Context, store campaign.Store, source docsource.Source, doc string) (string, error) {
	creator, ok := store.(campaignCreator)
	if !ok {
		return "", fmt.Errorf("%w: queue needs the postgres store", errUnsupported)
	}
	reader, ok := source.(metadataReader)
	if !ok {
		return "", fmt.Errorf("%w: queue needs the markdown source", errUnsupported)
	}

	if docsource.ExtractID(doc) == "" {
		return "", fmt.Errorf("%w: document name %q is too short to reference from a campaign", campaign.ErrInvalidDocLink, doc)
	}

	meta, err := reader.Metadata(doc)
	if err != nil {
		return "", err
	}
	subject, _ := meta["Subject"].(string)
	if subject == "" {
		return "", fmt.Errorf("document %q has no Subject in its frontmatter", doc)
	}
	category, _ := meta["Category"].(string)

	return creator.CreateCampaign(ctx, subject, doc, category)
}

// subscribeRecipient adds one recipient row to the store.
func subscribeRecipient(ctx context.Context, store campaign.Store, name, email, category string) error {
	adder, ok := store.(recipientAdder)
	if !ok {
		return fmt.Errorf("%w: subscribe needs the postgres store", errUnsupported)
	}
	if email == "" {
		return errors.New("subscribe: email is required")
	}
	return adder.AddRecipient(ctx, mailmerge.Recipient{Name: name, Email: email, Category: category})
}

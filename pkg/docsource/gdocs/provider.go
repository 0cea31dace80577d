package gdocs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/dmitrymomot/newskit/pkg/docsource"
	"github.com/dmitrymomot/newskit/pkg/document"
)

// Provider loads newsletter documents from the Google Docs API and maps the
// Docs structural-element model onto the document element tree.
type Provider struct {
	svc *docs.Service
	// images fetches inline image content by its content URI. Docs serves
	// image bytes over plain authenticated HTTP, not through the API client.
	images *http.Client
}

// New creates a provider backed by the given authenticated HTTP client.
// The same client is used for API calls and for downloading inline images.
func New(ctx context.Context, client *http.Client) (*Provider, error) {
	svc, err := docs.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, errors.Join(docsource.ErrOpenFailed, err)
	}
	return &Provider{svc: svc, images: client}, nil
}

// Open implements docsource.Source.
func (p *Provider) Open(ctx context.Context, documentID string) (document.Body, error) {
	doc, err := p.svc.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusForbidden) {
			return nil, errors.Join(docsource.ErrDocumentNotFound, err)
		}
		return nil, errors.Join(docsource.ErrOpenFailed, err)
	}

	return mapDocument(doc, func(uri string) (document.Blob, error) {
		return p.fetchImage(ctx, uri)
	})
}

// mapDocument converts a Docs API document into the renderable element tree.
// fetchBlob resolves an inline object's content URI to its bytes, so the
// returned body needs no further I/O.
func mapDocument(doc *docs.Document, fetchBlob func(uri string) (document.Blob, error)) (document.Body, error) {
	if doc.Body == nil {
		return document.Body{}, nil
	}

	var body document.Body
	for _, se := range doc.Body.Content {
		switch {
		case se.Paragraph != nil:
			el, err := mapParagraph(doc, se.Paragraph, fetchBlob)
			if err != nil {
				return nil, err
			}
			body = append(body, el)
		case se.Table != nil:
			body = append(body, document.Element{Kind: document.KindTable})
		default:
			// Section breaks and tables of contents carry no content.
		}
	}
	return body, nil
}

func mapParagraph(doc *docs.Document, par *docs.Paragraph, fetchBlob func(uri string) (document.Blob, error)) (document.Element, error) {
	var children []document.Element
	for _, pe := range par.Elements {
		switch {
		case pe.TextRun != nil:
			if el, ok := mapTextRun(pe.TextRun); ok {
				children = append(children, el)
			}
		case pe.InlineObjectElement != nil:
			uri := inlineObjectURI(doc, pe.InlineObjectElement.InlineObjectId)
			if uri == "" {
				continue
			}
			blob, err := fetchBlob(uri)
			if err != nil {
				return document.Element{}, err
			}
			children = append(children, document.Element{Kind: document.KindInlineImage, Image: blob})
		}
	}

	if par.Bullet != nil {
		return document.Element{Kind: document.KindListItem, Children: children}, nil
	}
	return document.Element{
		Kind:      document.KindParagraph,
		Children:  children,
		Alignment: mapAlignment(par.ParagraphStyle),
	}, nil
}

func mapTextRun(run *docs.TextRun) (document.Element, bool) {
	// Docs terminates every paragraph with a newline run; stripping it here
	// keeps empty paragraphs childless so they render as empty lines.
	text := strings.ReplaceAll(run.Content, "\n", "")
	if text == "" {
		return document.Element{}, false
	}

	el := document.Element{Kind: document.KindText, Text: text}
	if style := run.TextStyle; style != nil {
		el.Bold = style.Bold
		el.Italic = style.Italic
		if style.Link != nil {
			el.LinkURL = style.Link.Url
		}
	}
	return el, true
}

func mapAlignment(style *docs.ParagraphStyle) document.Alignment {
	if style == nil {
		return document.AlignStart
	}
	switch style.Alignment {
	case "CENTER":
		return document.AlignCenter
	case "END":
		return document.AlignEnd
	default:
		return document.AlignStart
	}
}

func inlineObjectURI(doc *docs.Document, objectID string) string {
	obj, ok := doc.InlineObjects[objectID]
	if !ok || obj.InlineObjectProperties == nil {
		return ""
	}
	embedded := obj.InlineObjectProperties.EmbeddedObject
	if embedded == nil || embedded.ImageProperties == nil {
		return ""
	}
	return embedded.ImageProperties.ContentUri
}

func (p *Provider) fetchImage(ctx context.Context, uri string) (document.Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return document.Blob{}, errors.Join(docsource.ErrOpenFailed, err)
	}

	resp, err := p.images.Do(req)
	if err != nil {
		return document.Blob{}, errors.Join(docsource.ErrOpenFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return document.Blob{}, fmt.Errorf("%w: image fetch returned %s", docsource.ErrOpenFailed, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return document.Blob{}, errors.Join(docsource.ErrOpenFailed, err)
	}

	return document.Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

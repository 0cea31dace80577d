package docsource

import (
	"context"
	"errors"
	"regexp"

	"github.com/dmitrymomot/newskit/pkg/document"
)

var (
	// ErrDocumentNotFound indicates the document ID did not resolve to an
	// accessible document (deleted, never existed, or permission denied).
	ErrDocumentNotFound = errors.New("docsource: document not found or not accessible")

	// ErrOpenFailed indicates the provider could not load document content.
	ErrOpenFailed = errors.New("docsource: failed to open document")
)

// Source loads the element tree of a document by its ID.
type Source interface {
	// Open fetches the document body. Implementations must resolve all
	// embedded binary content (inline images) so that the returned tree is
	// renderable without further I/O.
	Open(ctx context.Context, documentID string) (document.Body, error)
}

// Document IDs are long runs of URL-safe characters; 25 is short enough to
// match every real ID and long enough to never match path segments like
// "document" or "edit" in a shareable link.
var docIDPattern = regexp.MustCompile(`[-\w]{25,}`)

// ExtractID pulls a document ID out of a shareable link. It returns the
// first run of 25 or more URL-safe identifier characters, or "" when the
// link contains none. A bare ID passed instead of a link extracts as itself.
func ExtractID(link string) string {
	return docIDPattern.FindString(link)
}

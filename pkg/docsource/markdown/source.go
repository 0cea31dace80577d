// Package markdown loads newsletter documents from markdown files.
//
// It parses markdown with goldmark and maps the resulting AST onto the
// document element model: paragraphs and headings become paragraphs (heading
// text is bolded), emphasis and links become formatted text runs, list items
// become flat bullets, and images are resolved against the source filesystem
// and embedded as inline blobs. An optional YAML frontmatter block can carry
// document metadata such as Subject.
//
// The provider exists for local and development campaigns; production
// documents typically come from the gdocs provider. Both normalize into the
// same tree, so everything downstream is source-agnostic.
package markdown

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dmitrymomot/newskit/pkg/docsource"
	"github.com/dmitrymomot/newskit/pkg/document"
)

// ErrInvalidDocument indicates the markdown file could not be parsed.
var ErrInvalidDocument = errors.New("markdown: invalid document")

// Source reads markdown documents from a filesystem. Image references are
// resolved as paths within the same filesystem.
type Source struct {
	fsys fs.FS
	md   goldmark.Markdown
}

// New creates a markdown document source over the given filesystem.
func New(fsys fs.FS) *Source {
	return &Source{fsys: fsys, md: goldmark.New()}
}

// Open implements docsource.Source. The document ID is the file path within
// the source filesystem; a missing ".md" extension is tolerated.
func (s *Source) Open(ctx context.Context, documentID string) (document.Body, error) {
	content, err := fs.ReadFile(s.fsys, documentID)
	if err != nil && !strings.HasSuffix(documentID, ".md") {
		content, err = fs.ReadFile(s.fsys, documentID+".md")
	}
	if err != nil {
		return nil, errors.Join(docsource.ErrDocumentNotFound, err)
	}

	fm, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	return s.parse(fm.Body)
}

// Metadata returns the frontmatter metadata of a document without parsing
// its body. Unknown documents return ErrDocumentNotFound.
func (s *Source) Metadata(documentID string) (map[string]any, error) {
	content, err := fs.ReadFile(s.fsys, documentID)
	if err != nil && !strings.HasSuffix(documentID, ".md") {
		content, err = fs.ReadFile(s.fsys, documentID+".md")
	}
	if err != nil {
		return nil, errors.Join(docsource.ErrDocumentNotFound, err)
	}

	fm, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}
	return fm.Metadata, nil
}

func (s *Source) parse(src []byte) (document.Body, error) {
	root := s.md.Parser().Parse(text.NewReader(src))

	var body document.Body
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		els, err := s.mapBlock(n, src)
		if err != nil {
			return nil, err
		}
		body = append(body, els...)
	}
	return body, nil
}

// mapBlock converts one top-level block node into zero or more elements.
func (s *Source) mapBlock(n ast.Node, src []byte) ([]document.Element, error) {
	switch block := n.(type) {
	case *ast.Paragraph:
		children, err := s.mapInlines(block, src, runStyle{})
		if err != nil {
			return nil, err
		}
		return []document.Element{{Kind: document.KindParagraph, Children: children}}, nil

	case *ast.Heading:
		// The element model has no heading kind; a bold paragraph is the
		// closest mail-safe equivalent.
		children, err := s.mapInlines(block, src, runStyle{bold: true})
		if err != nil {
			return nil, err
		}
		return []document.Element{{Kind: document.KindParagraph, Children: children}}, nil

	case *ast.List:
		var items []document.Element
		for item := block.FirstChild(); item != nil; item = item.NextSibling() {
			children, err := s.mapListItem(item, src)
			if err != nil {
				return nil, err
			}
			items = append(items, document.Element{Kind: document.KindListItem, Children: children})
		}
		return items, nil

	case *ast.ThematicBreak:
		// Closest equivalent to a horizontal rule: an empty line.
		return []document.Element{{Kind: document.KindParagraph}}, nil

	default:
		return nil, nil
	}
}

// mapListItem flattens an item's blocks into one run sequence; nested lists
// inside an item are dropped, matching the flat-bullet rendering model.
func (s *Source) mapListItem(item ast.Node, src []byte) ([]document.Element, error) {
	var children []document.Element
	for block := item.FirstChild(); block != nil; block = block.NextSibling() {
		switch block.(type) {
		case *ast.TextBlock, *ast.Paragraph:
			els, err := s.mapInlines(block, src, runStyle{})
			if err != nil {
				return nil, err
			}
			children = append(children, els...)
		}
	}
	return children, nil
}

// runStyle is the formatting state accumulated while descending inline nodes.
type runStyle struct {
	link   string
	bold   bool
	italic bool
}

// mapInlines walks the inline children of a block and emits flat text runs
// and inline images, carrying emphasis and link state down the tree.
func (s *Source) mapInlines(parent ast.Node, src []byte, style runStyle) ([]document.Element, error) {
	var out []document.Element
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch inline := n.(type) {
		case *ast.Text:
			run := string(inline.Segment.Value(src))
			if inline.SoftLineBreak() || inline.HardLineBreak() {
				run += " "
			}
			if run == "" {
				continue
			}
			out = append(out, document.Element{
				Kind:    document.KindText,
				Text:    run,
				Bold:    style.bold,
				Italic:  style.italic,
				LinkURL: style.link,
			})

		case *ast.Emphasis:
			next := style
			if inline.Level >= 2 {
				next.bold = true
			} else {
				next.italic = true
			}
			els, err := s.mapInlines(inline, src, next)
			if err != nil {
				return nil, err
			}
			out = append(out, els...)

		case *ast.Link:
			next := style
			next.link = string(inline.Destination)
			els, err := s.mapInlines(inline, src, next)
			if err != nil {
				return nil, err
			}
			out = append(out, els...)

		case *ast.Image:
			el, ok, err := s.loadImage(string(inline.Destination))
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, el)
			}

		case *ast.CodeSpan:
			// Code formatting is not part of the model; keep the text.
			els, err := s.mapInlines(inline, src, style)
			if err != nil {
				return nil, err
			}
			out = append(out, els...)

		case *ast.AutoLink:
			url := string(inline.URL(src))
			out = append(out, document.Element{
				Kind:    document.KindText,
				Text:    url,
				Bold:    style.bold,
				Italic:  style.italic,
				LinkURL: url,
			})
		}
	}
	return out, nil
}

// loadImage resolves a local image reference to an inline blob. Remote
// (http/https) references are skipped: newsletter images must ship with the
// document so the rendered email is self-contained.
func (s *Source) loadImage(ref string) (document.Element, bool, error) {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return document.Element{}, false, nil
	}

	data, err := fs.ReadFile(s.fsys, ref)
	if err != nil {
		return document.Element{}, false, errors.Join(docsource.ErrOpenFailed, err)
	}

	return document.Element{
		Kind: document.KindInlineImage,
		Image: document.Blob{
			ContentType: http.DetectContentType(data),
			Data:        data,
		},
	}, true, nil
}

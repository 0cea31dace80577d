package document

import (
	"fmt"
	"html"
	"strings"
)

// Resources maps generated content IDs (image0, image1, ...) to the binary
// blobs referenced from the rendered HTML via cid: URLs.
type Resources map[string]Blob

// RenderedBody is the outcome of one document render: the HTML body plus the
// inline resources it references. It is built once per dispatch run and only
// read afterwards; personalization copies the HTML, it never mutates it.
type RenderedBody struct {
	HTML      string
	Resources Resources
}

const tablePlaceholder = "<p>[Table content not supported in this simple script]</p>"

// Render walks the top-level elements of a document body left to right and
// produces a mail-client-friendly HTML rendering with inline image resources.
//
// Rendering is deterministic: the same body always yields byte-identical HTML
// and the same resource IDs in the same order. The source body is not
// modified. Fidelity is intentionally loose: bold, italic, links, paragraph
// alignment, flat bullet lists, and inline images survive; everything else is
// flattened or replaced with a placeholder.
func Render(body Body) RenderedBody {
	var b strings.Builder
	res := make(Resources)

	for _, el := range body {
		switch el.Kind {
		case KindParagraph:
			b.WriteString(renderParagraph(el, res))
		case KindListItem:
			b.WriteString(renderListItem(el))
		case KindTable:
			b.WriteString(tablePlaceholder)
		case KindText, KindInlineImage, KindUnsupported:
			// Bare runs and images only occur inside paragraphs; anything
			// else at the top level is skipped like the table placeholder
			// siblings it usually arrives with.
		}
	}

	return RenderedBody{HTML: b.String(), Resources: res}
}

// renderParagraph wraps its children in a styled <p>. An empty paragraph
// becomes a bare <br/>: mail clients render empty <p> tags inconsistently,
// and the empty line must be preserved either way.
func renderParagraph(p Element, res Resources) string {
	if len(p.Children) == 0 {
		return "<br/>"
	}

	var content strings.Builder
	for _, child := range p.Children {
		switch child.Kind {
		case KindText:
			content.WriteString(renderText(child))
		case KindInlineImage:
			id := fmt.Sprintf("image%d", len(res))
			res[id] = child.Image
			content.WriteString("<img src='cid:" + id + "' style='max-width:100%;' />")
		case KindParagraph, KindListItem, KindTable, KindUnsupported:
			// Not valid paragraph content; dropped.
		}
	}

	return "<p style='" + alignmentCSS(p.Alignment) + "'>" + content.String() + "</p>"
}

// renderListItem flattens an item to a single bullet line. Indent depth and
// true list nesting are not preserved, and only text runs are rendered, with
// bold and italic but no link markup.
func renderListItem(li Element) string {
	var content strings.Builder
	for _, child := range li.Children {
		if child.Kind == KindText {
			content.WriteString(renderStyledText(child))
		}
	}
	return "<div>&bull; " + content.String() + "</div>"
}

// renderText escapes the run and applies markup in a fixed nesting order:
// bold innermost, then italic, then link outermost, i.e. a fully formatted
// run is exactly <a href='URL'><i><b>text</b></i></a>.
func renderText(t Element) string {
	s := renderStyledText(t)
	if t.LinkURL != "" {
		s = "<a href='" + html.EscapeString(t.LinkURL) + "'>" + s + "</a>"
	}
	return s
}

// renderStyledText escapes the run and applies bold and italic only.
func renderStyledText(t Element) string {
	s := html.EscapeString(t.Text)
	if t.Bold {
		s = "<b>" + s + "</b>"
	}
	if t.Italic {
		s = "<i>" + s + "</i>"
	}
	return s
}

func alignmentCSS(a Alignment) string {
	switch a {
	case AlignCenter:
		return "text-align: center;"
	case AlignEnd:
		return "text-align: right;"
	default:
		return ""
	}
}

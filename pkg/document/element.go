package document

// Kind identifies the variant of a document element.
type Kind int

const (
	// KindUnsupported covers element types the renderer has no mapping for.
	// It is the zero value so that an uninitialized element never masquerades
	// as renderable content.
	KindUnsupported Kind = iota
	KindText
	KindParagraph
	KindListItem
	KindInlineImage
	KindTable
)

// Alignment is the horizontal alignment of a paragraph.
type Alignment int

const (
	// AlignStart is the default; unrecognized alignments collapse to it.
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// Blob is an opaque binary payload with its MIME type, typically an image
// embedded in a document.
type Blob struct {
	ContentType string
	Data        []byte
}

// Element is one node of a document tree. It is a closed tagged union over
// the kinds above: which fields are meaningful depends on Kind, and the
// renderer switches exhaustively on it.
//
//   - KindText: Text, Bold, Italic, LinkURL
//   - KindParagraph: Children, Alignment
//   - KindListItem: Children
//   - KindInlineImage: Image
//   - KindTable, KindUnsupported: no fields
//
// Absent attributes are zero values and render as "no formatting".
type Element struct {
	Kind      Kind
	Text      string
	LinkURL   string
	Children  []Element
	Image     Blob
	Alignment Alignment
	Bold      bool
	Italic    bool
}

// Body is the ordered sequence of top-level elements of a document.
type Body []Element

// Text returns a text run element.
func Text(s string) Element { return Element{Kind: KindText, Text: s} }

// BoldText returns a bold text run element.
func BoldText(s string) Element { return Element{Kind: KindText, Text: s, Bold: true} }

// Paragraph returns a paragraph with the given children and start alignment.
func Paragraph(children ...Element) Element {
	return Element{Kind: KindParagraph, Children: children}
}

// AlignedParagraph returns a paragraph with an explicit alignment.
func AlignedParagraph(align Alignment, children ...Element) Element {
	return Element{Kind: KindParagraph, Alignment: align, Children: children}
}

// ListItem returns a flat list item with the given children.
func ListItem(children ...Element) Element {
	return Element{Kind: KindListItem, Children: children}
}

// InlineImage returns an inline image element holding the given blob.
func InlineImage(contentType string, data []byte) Element {
	return Element{Kind: KindInlineImage, Image: Blob{ContentType: contentType, Data: data}}
}

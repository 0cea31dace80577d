// Package document defines a minimal rich-text document model and its
// rendering to self-contained HTML email bodies.
//
// The model is a closed set of element kinds (text runs, paragraphs, list
// items, inline images, tables) chosen to match what newsletter documents
// actually contain. Render walks a Body once and returns the HTML together
// with a map of inline image resources keyed by generated content IDs, ready
// to be attached to an email as cid:-referenced inline attachments:
//
//	rendered := document.Render(body)
//	// rendered.HTML references images as <img src='cid:image0' .../>
//	// rendered.Resources["image0"] holds the corresponding blob
//
// Rendering is deliberately lossy. Bold, italic, links, paragraph alignment,
// flat bullets, and inline images are kept; tables become a placeholder
// paragraph and any other formatting is dropped. Document sources (see
// package docsource) are responsible for producing the Body tree.
package document

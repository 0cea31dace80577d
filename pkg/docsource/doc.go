// Package docsource defines where newsletter documents come from.
//
// A Source resolves a document ID to a renderable document.Body tree, with
// all embedded binary content already loaded. ExtractID turns a shareable
// document link into the ID a Source understands.
//
// Two providers ship as subpackages: gdocs loads documents from the Google
// Docs API, and markdown parses local markdown files. Both normalize into
// the same element model, so the renderer and dispatcher never care where a
// document originated.
package docsource

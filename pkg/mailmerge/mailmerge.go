// Package mailmerge implements per-recipient personalization of a shared
// newsletter body and selection of the recipients a campaign targets.
//
// Personalization is deliberately minimal: a single literal token,
// {{Name}}, replaced globally with the recipient's display name. There is
// no template language, no recursion, and no escaping: the body is already
// rendered HTML and names are plain text inserted as-is, matching the
// behavior subscribers signed up with.
package mailmerge

import "strings"

// Recipient is one entry of a recipient list: who to greet, where to
// deliver, and which category they subscribed to.
type Recipient struct {
	Name     string
	Email    string
	Category string
}

// NameToken is the placeholder replaced with the recipient's display name.
const NameToken = "{{Name}}"

// FallbackName substitutes for recipients without a display name.
const FallbackName = "Subscriber"

// Personalize returns a copy of html with every occurrence of NameToken
// replaced by the recipient's name, or FallbackName when the name is empty.
// The input is never modified; identical inputs yield identical output.
func Personalize(html string, rec Recipient) string {
	name := rec.Name
	if name == "" {
		name = FallbackName
	}
	return strings.ReplaceAll(html, NameToken, name)
}

// SelectTargets filters recipients down to the campaign's delivery set:
// those whose category exactly equals target (case-sensitive) and who have
// a non-empty email address. Relative order is preserved. Excluded entries
// are not an error; subscribers opt into categories and incomplete rows are
// expected in form-fed lists.
func SelectTargets(recipients []Recipient, target string) []Recipient {
	selected := make([]Recipient, 0, len(recipients))
	for _, rec := range recipients {
		if rec.Category == target && rec.Email != "" {
			selected = append(selected, rec)
		}
	}
	return selected
}

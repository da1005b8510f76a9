package page

import (
	"strings"

	"github.com/rshade/tokenscope/internal/token"
)

// Meta is the page title and description.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MetaTemplates render the initial meta for a hash. "{hash}" is replaced
// with the route hash.
type MetaTemplates struct {
	Title       string
	Description string
}

// DefaultMetaTemplates mirror the explorer's own token page meta.
var DefaultMetaTemplates = MetaTemplates{
	Title:       "{hash} token details | tokenscope",
	Description: "{hash} token details, transfers and holders",
}

const hashPlaceholder = "{hash}"

// Render fills in the templates for hash.
func (t MetaTemplates) Render(hash string) Meta {
	return Meta{
		Title:       strings.ReplaceAll(t.Title, hashPlaceholder, hash),
		Description: strings.ReplaceAll(t.Description, hashPlaceholder, hash),
	}
}

// SubstituteTitle replaces every literal occurrence of address in text with
// replacement. Text without the address is returned unchanged.
func SubstituteTitle(text, address, replacement string) string {
	if address == "" {
		return text
	}
	return strings.ReplaceAll(text, address, replacement)
}

// WithEntity rewrites m with the token's display name in place of its address.
func (m Meta) WithEntity(t token.Token) Meta {
	name := token.DisplayName(t)
	return Meta{
		Title:       SubstituteTitle(m.Title, t.Address, name),
		Description: SubstituteTitle(m.Description, t.Address, name),
	}
}

// BackLinkLabel is shown next to a back link.
const BackLinkLabel = "Back to tokens list"

// BackLink returns the referrer when it points at a token listing.
func BackLink(referrer string) (string, bool) {
	if referrer == "" || !strings.Contains(referrer, "/tokens") {
		return "", false
	}
	return referrer, true
}

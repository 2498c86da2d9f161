package sanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLStripperer removes markup from user supplied text
type HTMLStripperer interface {
	StripHTML(s string) string
}

// HTMLStripper drops every tag and keeps the text between them
type HTMLStripper struct {
	policy *bluemonday.Policy
}

func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{policy: bluemonday.StrictPolicy()}
}

// StripHTML sanitises s and unescapes the entities bluemonday leaves behind,
// so names like "O'Neil" survive a round trip.
func (hs *HTMLStripper) StripHTML(s string) string {
	return entities.Replace(hs.policy.Sanitize(s))
}

var entities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

package feed

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripMarkup removes HTML tags and entities from feed-provided text.
// Feed descriptions frequently carry embedded markup that must not
// reach the display layer or the classifier prompt.
func StripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// Package textprep normalizes CLI and server input before emoji matching.
package textprep

import (
	"html"
	"sync"

	"github.com/kyokomi/emoji/v2"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

// ExpandAliases rewrites :shortcode: emoji aliases (":thumbsup:") into the
// emoji they name, leaving unknown aliases untouched.
func ExpandAliases(s string) string {
	return emoji.Sprint(s)
}

// ExtractText strips all markup from an HTML document, returning the plain
// text content with entities decoded, suitable for emoji scanning.
func ExtractText(htmlContent string) string {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(strictPolicy.Sanitize(htmlContent))
}

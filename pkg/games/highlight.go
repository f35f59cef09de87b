package games

import "regexp"

// emphasisRE matches the <em> fragments the search backend wraps around
// matched substrings in highlight snippets.
var emphasisRE = regexp.MustCompile(`<em>(.*?)</em>`)

const highlightSpan = `<span class="bg-yellow-500/30 text-white font-bold">$1</span>`

// RewriteHighlights converts backend emphasis markup into the span markup the
// results grid renders. Text without emphasis tags passes through unchanged,
// so it is safe to apply to plain names and to already rewritten text.
func RewriteHighlights(s string) string {
	return emphasisRE.ReplaceAllString(s, highlightSpan)
}

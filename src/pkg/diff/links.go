package diff

import "fmt"

// Link renders the markdown fragment for one diff target. An absent result
// yields the "no difference" label verbatim; a present one yields the primary
// link plus the whitespace-insensitive variant, both CDN-hosted.
func Link(cdnURL, text, emptyText string, result Result, alternateText string, alternateResult Result) string {
	if !result.HasDifference() {
		return emptyText
	}
	return fmt.Sprintf("[%s](%s/codegen-diff/%s) ([%s](%s/codegen-diff/%s))",
		text, cdnURL, result.Location(), alternateText, cdnURL, alternateResult.Location())
}

package agent

import "regexp"

// Models are told to reply with a fenced ```json block, but they forget.
// Extraction prefers the fence and falls back to the first brace-delimited
// substring anywhere in the text.
var (
	fencedJSONPattern  = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	bareJSONPattern    = regexp.MustCompile(`(?s)(\{.*?\})`)
	controlCharPattern = regexp.MustCompile(`[\x00-\x1F\x7F]`)
)

// ExtractJSON pulls a single JSON object out of a free-text model reply and
// strips ASCII control characters from it. Returns "" when no candidate is
// found.
//
// The brace match is non-greedy and does not balance nested braces: if the
// narration itself contains a literal '{' before the real JSON, extraction
// will pick up the wrong span. The contract retry loop absorbs that case,
// so the lenient scan is kept rather than a full balanced-brace parser.
func ExtractJSON(text string) string {
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		return controlCharPattern.ReplaceAllString(m[1], "")
	}
	if m := bareJSONPattern.FindStringSubmatch(text); m != nil {
		return controlCharPattern.ReplaceAllString(m[1], "")
	}
	return ""
}

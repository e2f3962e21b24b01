// Package textfilter softens profanity in narration for players who asked
// for a lighthearted campaign. The LLM is instructed to match the requested
// tone, but it drifts; this is the backstop.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/campaign-engine/pkg/game"
)

// replacements maps swear words to family-friendly alternatives.
var replacements = map[string]string{
	"fuck":      "fudge",
	"shit":      "shoot",
	"damn":      "dang",
	"hell":      "heck",
	"ass":       "butt",
	"bitch":     "jerk",
	"bastard":   "jerk",
	"crap":      "crud",
	"asshole":   "jerk",
	"goddamn":   "gosh-dang",
	"bullshit":  "baloney",
	"dumbass":   "dummy",
	"jackass":   "jerk",
	"dickhead":  "jerk",
	"prick":     "jerk",
	"piss":      "ticked",
}

// ToneFilter replaces profanity with mild alternatives when the campaign
// tone calls for it.
type ToneFilter struct {
	regexes map[string]*regexp.Regexp
}

// NewToneFilter pre-compiles the word-boundary patterns.
func NewToneFilter() *ToneFilter {
	tf := &ToneFilter{regexes: make(map[string]*regexp.Regexp, len(replacements))}
	for word := range replacements {
		tf.regexes[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return tf
}

// ShouldFilter reports whether narration for the given tone gets softened.
func ShouldFilter(tone string) bool {
	switch strings.ToLower(strings.TrimSpace(tone)) {
	case game.ToneLighthearted, game.ToneHumorous:
		return true
	default:
		return false
	}
}

// Filter replaces profanity in text with its mild alternative, preserving
// the case of the original match.
func (tf *ToneFilter) Filter(text string) string {
	result := text
	for word, replacement := range replacements {
		result = tf.regexes[word].ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}
	return result
}

// preserveCase applies the case pattern of the original word to the
// replacement.
func preserveCase(original, replacement string) string {
	if original == "" {
		return replacement
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case: carry the pattern over character by character.
	originalRunes := []rune(original)
	result := make([]rune, 0, len(replacement))
	for i, r := range replacement {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}

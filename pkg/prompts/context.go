package prompts

import (
	"strings"

	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

// BuildContext renders the player's preferences and character sheet as the
// shared prompt context block. Field order comes from the models'
// PromptFields, so the same inputs always produce the same block.
func BuildContext(prefs *game.Preferences, sheet *character.Sheet) string {
	var sb strings.Builder

	if prefs != nil {
		sb.WriteString("**User Preferences:**\n")
		for _, f := range prefs.PromptFields() {
			sb.WriteString("- ")
			sb.WriteString(f[0])
			sb.WriteString(": ")
			sb.WriteString(f[1])
			sb.WriteString("\n")
		}
	}

	if sheet != nil {
		if prefs != nil {
			sb.WriteString("\n")
		}
		sb.WriteString("**Character Details:**\n")
		for _, f := range sheet.PromptFields() {
			sb.WriteString("- ")
			sb.WriteString(f[0])
			sb.WriteString(": ")
			sb.WriteString(f[1])
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

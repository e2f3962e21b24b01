package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/game"
)

func testPrefs() *game.Preferences {
	return &game.Preferences{
		GameStyle:  game.StyleNarrative,
		Tone:       game.ToneDark,
		Difficulty: game.DifficultyHard,
		Theme:      game.ThemeHorror,
	}
}

func testSheet() *character.Sheet {
	return &character.Sheet{
		Name:      "Vance",
		Race:      "Human",
		Class:     "Warlock",
		Alignment: "Chaotic Neutral",
		Level:     5,
		Stats: character.Stats{
			Strength: 8, Dexterity: 14, Constitution: 12,
			Intelligence: 13, Wisdom: 10, Charisma: 18,
		},
		ExperiencePoints: 6500,
		MaxHitPoints:     33,
		CurrentHitPoints: 21,
		Skills:           "Deception, Arcana",
	}
}

func TestBuildContext(t *testing.T) {
	ctx := BuildContext(testPrefs(), testSheet())

	// Preferences section comes first, character second.
	prefIdx := strings.Index(ctx, "**User Preferences:**")
	charIdx := strings.Index(ctx, "**Character Details:**")
	assert.GreaterOrEqual(t, prefIdx, 0)
	assert.Greater(t, charIdx, prefIdx)

	assert.Contains(t, ctx, "- Game style: narrative")
	assert.Contains(t, ctx, "- Tone: dark")
	assert.Contains(t, ctx, "- Difficulty: hard")
	assert.Contains(t, ctx, "- Theme: horror")

	assert.Contains(t, ctx, "- Name: Vance")
	assert.Contains(t, ctx, "- Class: Warlock")
	assert.Contains(t, ctx, "- Level: 5")
	assert.Contains(t, ctx, "- Charisma: 18")
	assert.Contains(t, ctx, "- Skills: Deception, Arcana")
}

func TestBuildContext_ExcludesBookkeeping(t *testing.T) {
	ctx := BuildContext(testPrefs(), testSheet())

	assert.NotContains(t, ctx, "6500")
	assert.NotContains(t, ctx, "Hit Points")
	assert.NotContains(t, ctx, "Experience")
}

func TestBuildContext_SkipsEmptyFields(t *testing.T) {
	sheet := testSheet()
	sheet.Background = ""
	sheet.Feats = ""

	ctx := BuildContext(testPrefs(), sheet)
	assert.NotContains(t, ctx, "Background")
	assert.NotContains(t, ctx, "Feats")
}

func TestBuildContext_NilInputs(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil, nil))

	prefsOnly := BuildContext(testPrefs(), nil)
	assert.Contains(t, prefsOnly, "**User Preferences:**")
	assert.NotContains(t, prefsOnly, "**Character Details:**")

	sheetOnly := BuildContext(nil, testSheet())
	assert.NotContains(t, sheetOnly, "**User Preferences:**")
	assert.Contains(t, sheetOnly, "**Character Details:**")
	assert.False(t, strings.HasPrefix(sheetOnly, "\n"))
}

func TestBuildContext_Deterministic(t *testing.T) {
	a := BuildContext(testPrefs(), testSheet())
	b := BuildContext(testPrefs(), testSheet())
	assert.Equal(t, a, b)
}

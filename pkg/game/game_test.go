package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSavedGame_Validate(t *testing.T) {
	valid := SavedGame{
		GameName:    "The Long Road",
		UserID:      uuid.New(),
		CharacterID: uuid.New(),
	}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.GameName = "   "
	assert.Error(t, noName.Validate())

	noUser := valid
	noUser.UserID = uuid.Nil
	assert.Error(t, noUser.Validate())

	noCharacter := valid
	noCharacter.CharacterID = uuid.Nil
	assert.Error(t, noCharacter.Validate())
}

func TestStoryline(t *testing.T) {
	turns := []ConversationTurn{
		{Order: 1, UserInput: "I enter the inn.", GMResponse: "The innkeep nods at you."},
		{Order: 2, UserInput: "I order a drink.", GMResponse: "She slides an ale across the bar."},
	}

	want := "User: I enter the inn.\nGM: The innkeep nods at you.\n" +
		"User: I order a drink.\nGM: She slides an ale across the bar."
	assert.Equal(t, want, Storyline(turns))
}

func TestStoryline_Empty(t *testing.T) {
	assert.Equal(t, "", Storyline(nil))
	assert.Equal(t, "", Storyline([]ConversationTurn{}))
}

func TestStoryline_SingleTurn(t *testing.T) {
	turns := []ConversationTurn{
		{Order: 1, UserInput: "Hello", GMResponse: "Well met."},
	}
	assert.Equal(t, "User: Hello\nGM: Well met.", Storyline(turns))
}

func TestPreferences_Validate(t *testing.T) {
	valid := Preferences{
		UserID:     uuid.New(),
		GameStyle:  StyleMixed,
		Tone:       ToneHumorous,
		Difficulty: DifficultyEasy,
		Theme:      ThemeSciFi,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Preferences)
	}{
		{"bad style", func(p *Preferences) { p.GameStyle = "speedrun" }},
		{"bad tone", func(p *Preferences) { p.Tone = "grimdark" }},
		{"bad difficulty", func(p *Preferences) { p.Difficulty = "impossible" }},
		{"bad theme", func(p *Preferences) { p.Theme = "western" }},
		{"empty", func(p *Preferences) { *p = Preferences{} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestPreferences_PromptFields(t *testing.T) {
	p := Preferences{
		GameStyle:  StyleCombat,
		Tone:       ToneSerious,
		Difficulty: DifficultyExpert,
		Theme:      ThemeHistorical,
	}
	fields := p.PromptFields()
	assert.Equal(t, [][2]string{
		{"Game style", "combat"},
		{"Tone", "serious"},
		{"Difficulty", "expert"},
		{"Theme", "historical"},
	}, fields)
}

package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Game style options.
const (
	StyleNarrative   = "narrative"
	StyleCombat      = "combat"
	StyleExploration = "exploration"
	StyleMixed       = "mixed"
)

// Tone options.
const (
	ToneLighthearted = "lighthearted"
	ToneSerious      = "serious"
	ToneDark         = "dark"
	ToneHumorous     = "humorous"
)

// Difficulty options.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
)

// Theme options.
const (
	ThemeFantasy    = "fantasy"
	ThemeSciFi      = "sci-fi"
	ThemeHorror     = "horror"
	ThemeModern     = "modern"
	ThemeHistorical = "historical"
)

var (
	validStyles       = map[string]bool{StyleNarrative: true, StyleCombat: true, StyleExploration: true, StyleMixed: true}
	validTones        = map[string]bool{ToneLighthearted: true, ToneSerious: true, ToneDark: true, ToneHumorous: true}
	validDifficulties = map[string]bool{DifficultyEasy: true, DifficultyMedium: true, DifficultyHard: true, DifficultyExpert: true}
	validThemes       = map[string]bool{ThemeFantasy: true, ThemeSciFi: true, ThemeHorror: true, ThemeModern: true, ThemeHistorical: true}
)

// Preferences captures how a player wants their campaign run. The narration
// pipeline consumes these as plain key/value prompt context.
type Preferences struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	GameStyle  string    `gorm:"size:20;not null" json:"game_style"`
	Tone       string    `gorm:"size:20;not null" json:"tone"`
	Difficulty string    `gorm:"size:20;not null" json:"difficulty"`
	Theme      string    `gorm:"size:20;not null" json:"theme"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p *Preferences) Validate() error {
	if !validStyles[p.GameStyle] {
		return fmt.Errorf("invalid game style: %q", p.GameStyle)
	}
	if !validTones[p.Tone] {
		return fmt.Errorf("invalid tone: %q", p.Tone)
	}
	if !validDifficulties[p.Difficulty] {
		return fmt.Errorf("invalid difficulty: %q", p.Difficulty)
	}
	if !validThemes[p.Theme] {
		return fmt.Errorf("invalid theme: %q", p.Theme)
	}
	return nil
}

// PromptFields returns the preference attributes as ordered key/value pairs
// for prompt context. Order is fixed so prompts are reproducible.
func (p *Preferences) PromptFields() [][2]string {
	return [][2]string{
		{"Game style", p.GameStyle},
		{"Tone", p.Tone},
		{"Difficulty", p.Difficulty},
		{"Theme", p.Theme},
	}
}

// Package character holds the character sheet model. The narration pipeline
// consumes sheets read-only, as flat prompt context and as d20 actors for
// rules checks.
package character

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/d20"
)

// Stats holds the six core ability scores.
type Stats struct {
	Strength     int `gorm:"not null" json:"strength"`
	Dexterity    int `gorm:"not null" json:"dexterity"`
	Constitution int `gorm:"not null" json:"constitution"`
	Intelligence int `gorm:"not null" json:"intelligence"`
	Wisdom       int `gorm:"not null" json:"wisdom"`
	Charisma     int `gorm:"not null" json:"charisma"`
}

// ToAttributes converts Stats to a map for d20.Actor compatibility.
func (s *Stats) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"dexterity":    s.Dexterity,
		"constitution": s.Constitution,
		"intelligence": s.Intelligence,
		"wisdom":       s.Wisdom,
		"charisma":     s.Charisma,
	}
}

// Sheet is a flat character record. List-valued fields (skills, feats,
// languages) are stored as comma-separated text.
type Sheet struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Race       string    `gorm:"size:50" json:"race"`
	Class      string    `gorm:"size:50" json:"class"`
	Background string    `gorm:"size:50" json:"background"`
	Alignment  string    `gorm:"size:30" json:"alignment"`
	Level      int       `gorm:"default:1" json:"level"`

	Stats Stats `gorm:"embedded" json:"stats"`

	ProficiencyBonus int `gorm:"default:2" json:"proficiency_bonus"`
	ArmorClass       int `gorm:"default:10" json:"armor_class"`
	Speed            int `gorm:"default:30" json:"speed"`

	// Bookkeeping counters, excluded from prompt context.
	ExperiencePoints   int `gorm:"default:0" json:"experience_points"`
	MaxHitPoints       int `gorm:"default:10" json:"max_hit_points"`
	CurrentHitPoints   int `gorm:"default:10" json:"current_hit_points"`
	TemporaryHitPoints int `gorm:"default:0" json:"temporary_hit_points"`

	Skills        string `gorm:"type:text" json:"skills"`
	Proficiencies string `gorm:"type:text" json:"proficiencies"`
	Languages     string `gorm:"type:text" json:"languages"`
	Feats         string `gorm:"type:text" json:"feats"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *Sheet) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("character name cannot be empty")
	}
	if s.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	return nil
}

// SkillList splits the comma-separated Skills field into trimmed names.
func (s *Sheet) SkillList() []string {
	if strings.TrimSpace(s.Skills) == "" {
		return nil
	}
	parts := strings.Split(s.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// PromptFields returns the sheet as ordered key/value pairs for prompt
// context. Internal ids, experience points, and hit-point counters are
// excluded: they are bookkeeping that would only confuse narration.
func (s *Sheet) PromptFields() [][2]string {
	fields := [][2]string{
		{"Name", s.Name},
		{"Race", s.Race},
		{"Class", s.Class},
		{"Background", s.Background},
		{"Alignment", s.Alignment},
		{"Level", strconv.Itoa(s.Level)},
		{"Strength", strconv.Itoa(s.Stats.Strength)},
		{"Dexterity", strconv.Itoa(s.Stats.Dexterity)},
		{"Constitution", strconv.Itoa(s.Stats.Constitution)},
		{"Intelligence", strconv.Itoa(s.Stats.Intelligence)},
		{"Wisdom", strconv.Itoa(s.Stats.Wisdom)},
		{"Charisma", strconv.Itoa(s.Stats.Charisma)},
		{"Skills", s.Skills},
		{"Proficiencies", s.Proficiencies},
		{"Languages", s.Languages},
		{"Feats", s.Feats},
	}
	out := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f[1]) != "" {
			out = append(out, f)
		}
	}
	return out
}

// Actor builds a d20.Actor from the sheet for rules evaluation. Core stats
// and extra attributes share one attribute namespace.
func (s *Sheet) Actor() (*d20.Actor, error) {
	attrs := s.Stats.ToAttributes()
	maps.Copy(attrs, map[string]int{"proficiency_bonus": s.ProficiencyBonus})

	actor, err := d20.NewActor(s.ID.String()).
		WithHP(s.MaxHitPoints).
		WithAC(s.ArmorClass).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	if s.CurrentHitPoints != s.MaxHitPoints && s.CurrentHitPoints > 0 {
		if err := actor.SetHP(s.CurrentHitPoints); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}
	return actor, nil
}

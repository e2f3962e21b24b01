// Package rules provides the small slice of tabletop mechanics the action
// validation gate needs: ability modifiers and the skill-to-ability mapping.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwebster45206/d20"
)

// skillAbility maps each skill to its governing ability score.
var skillAbility = map[string]string{
	"Athletics":       "strength",
	"Acrobatics":      "dexterity",
	"Sleight of Hand": "dexterity",
	"Stealth":         "dexterity",
	"Arcana":          "intelligence",
	"History":         "intelligence",
	"Investigation":   "intelligence",
	"Nature":          "intelligence",
	"Religion":        "intelligence",
	"Animal Handling": "wisdom",
	"Insight":         "wisdom",
	"Medicine":        "wisdom",
	"Perception":      "wisdom",
	"Survival":        "wisdom",
	"Deception":       "charisma",
	"Intimidation":    "charisma",
	"Performance":     "charisma",
	"Persuasion":      "charisma",
}

// AbilityForSkill returns the governing ability for a skill name, or "" for
// unknown skills.
func AbilityForSkill(skill string) string {
	return skillAbility[skill]
}

// Skills returns the known skill names in alphabetical order.
func Skills() []string {
	names := make([]string, 0, len(skillAbility))
	for name := range skillAbility {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AbilityModifier converts an ability score to its modifier, rounding down
// for odd scores below 10.
func AbilityModifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// SkillModifier computes the modifier an actor applies to a skill check from
// its governing ability score.
func SkillModifier(actor *d20.Actor, skill string) (int, bool) {
	ability := skillAbility[skill]
	if ability == "" {
		return 0, false
	}
	score, ok := actor.Attribute(ability)
	if !ok {
		return 0, false
	}
	return AbilityModifier(score), true
}

// Summary renders the listed skills with their modifiers for prompt context,
// e.g. "Stealth +3 (dexterity)". Unknown skills are listed without a
// modifier so the critic still sees them.
func Summary(actor *d20.Actor, skills []string) string {
	if len(skills) == 0 {
		return ""
	}
	lines := make([]string, 0, len(skills))
	for _, skill := range skills {
		if mod, ok := SkillModifier(actor, skill); ok {
			lines = append(lines, fmt.Sprintf("- %s %+d (%s)", skill, mod, skillAbility[skill]))
		} else {
			lines = append(lines, fmt.Sprintf("- %s", skill))
		}
	}
	return strings.Join(lines, "\n")
}

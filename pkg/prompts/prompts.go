// Package prompts builds the instruction text sent to the narrator and
// critic agents. Every template pins the JSON reply shape the contract
// layer enforces.
package prompts

import (
	"fmt"
	"strings"
)

// Contracted reply keys. The narrator answers with KeyResponse, the critic
// with KeyFeedback; an empty feedback string means "no issue found".
const (
	KeyResponse = "response"
	KeyFeedback = "feedback"
)

const jsonOnlyReminder = "Do not include any text outside of the JSON block. Only provide the JSON response."

func responseFormat(key string) string {
	return fmt.Sprintf("**Response Format:**\n```json\n{\n  %q: \"<your text here, as a single string>\"\n}\n```\n%s", key, jsonOnlyReminder)
}

// CreateCampaign is the narrator instruction that opens a brand-new
// campaign from the player's first input.
func CreateCampaign(userInput, context string) string {
	return fmt.Sprintf(`You are the Game Master (GM) for a tabletop roleplaying campaign with a single player. Create a rich opening storyline based on the player's preferences and character.

**Player Preferences and Character Details:**
%s

**Player Input:**
%s

**Instructions:**
- Begin with a scene description, then an interaction type (dialogue choices, a skill check, or free exploration).
- Keep descriptions vivid and the atmosphere enticing; introduce narrative hooks that invite exploration.
- End with a short numbered list of options the player may choose from.
- Stay consistent with the rules and lore of the game.

%s`, context, userInput, responseFormat(KeyResponse))
}

// ContinueCampaign is the narrator instruction for advancing an ongoing
// campaign by one turn.
func ContinueCampaign(context, storyline, userInput string) string {
	return fmt.Sprintf(`You are the Game Master (GM) for an ongoing tabletop roleplaying campaign. Continue the story based on the player's input, maintaining consistency with their preferences and everything that has happened so far.

**Player Preferences and Character Details:**
%s

**Previous Storyline:**
%s

**Player Input:**
%s

**Instructions:**
- Vary scene descriptions, shifting between tense encounters and quieter moments.
- Alternate interaction types: dialogue choices with NPCs, skill challenges, and open-ended exploration.
- Build on past player choices; foreshadow where it fits.
- End with a short numbered list of options the player may choose from.

%s`, context, storyline, userInput, responseFormat(KeyResponse))
}

// ValidateStoryline is the critic instruction for the narrative-consistency
// pass. The critic replies with empty feedback when the draft is fine.
func ValidateStoryline(context, storyline string) string {
	return fmt.Sprintf(`Review the campaign storyline below for alignment with the player's game preferences and for immersive, consistent narration.

**Player Preferences and Character Details:**
%s

**Storyline:**
%s

**Instructions:**
1. Verify the storyline matches the player's preferences (tone, theme, difficulty) and flows consistently from previous events.
2. Flag anything that breaks immersion, contradicts established context, or stalls progression.
3. Only provide feedback if there is a genuine problem. If the storyline is acceptable, return an empty string.

**Response Format:**
`+"```json\n{\n  %q: \"<your feedback here, or empty string>\"\n}\n```\n%s", context, storyline, KeyFeedback, jsonOnlyReminder)
}

// ValidateOptions is the critic instruction for the option-legality pass:
// every offered option must be something this character can actually do in
// this scene.
func ValidateOptions(context, gmResponse string) string {
	return fmt.Sprintf(`Review the Game Master's response below and check that the offered options align with the player's abilities, class, and the scene context, under the game rules.

**Player Preferences and Character Details:**
%s

**GM's Response (Scene and Options):**
%s

**Instructions:**
1. Confirm each option is something the character can legally do given their class, level, and abilities.
2. Confirm each option is realistic within the described scene.
3. Only provide feedback if an option is inconsistent. If all options are valid, return an empty string.

**Response Format:**
`+"```json\n{\n  %q: \"<your feedback here, or empty string>\"\n}\n```\n%s", context, gmResponse, KeyFeedback, jsonOnlyReminder)
}

// ValidateAction is the critic instruction for the action validation gate on
// continuing turns. Only rules compliance is judged here, not narrative
// quality, and free-form questions always pass.
func ValidateAction(context, lastScene, userInput, abilitySummary string) string {
	var rulesSection string
	if strings.TrimSpace(abilitySummary) != "" {
		rulesSection = fmt.Sprintf("\n**Character Skill Modifiers:**\n%s\n", abilitySummary)
	}
	return fmt.Sprintf(`Review the player's input and decide whether it is a valid action for their character under the game rules.

**Player Preferences and Character Details:**
%s
%s
**GM's Last Response (Scene and Options):**
%s

**Player Input:**
%s

**Instructions:**
1. If the input is a question about the scene or surroundings, it is always valid: return an empty string.
2. If the input is an action, check only rules compliance: class, level, abilities, and what is physically possible in the scene. Do not judge narrative quality.
3. If the action is valid, return an empty string.
4. If the action is invalid, explain briefly why.

**Response Format:**
`+"```json\n{\n  %q: \"<why the action is invalid, or empty string>\"\n}\n```\n%s", context, rulesSection, lastScene, userInput, KeyFeedback, jsonOnlyReminder)
}

// ReviseStoryline is the narrator instruction for reworking a draft to
// address the critic's narrative feedback.
func ReviseStoryline(context, storyline, feedback string) string {
	return fmt.Sprintf(`You are the Game Master (GM) revising your previous response based on narrative feedback. Preserve the player's agency and the flow of events; change only what the feedback requires.

**Player Preferences and Character Details:**
%s

**Current Storyline:**
%s

**Feedback:**
%s

%s`, context, storyline, feedback, responseFormat(KeyResponse))
}

// ReviseOptions is the narrator instruction for fixing only the offered
// options, keeping the scene itself intact.
func ReviseOptions(context, gmResponse, feedback string) string {
	return fmt.Sprintf(`You are the Game Master (GM) revising the options in your previous response based on feedback. Keep the scene description unchanged; adjust the options so every one of them is legal for the character and consistent with the scene.

**Player Preferences and Character Details:**
%s

**Current GM's Response (Scene and Options):**
%s

**Feedback:**
%s

%s`, context, gmResponse, feedback, responseFormat(KeyResponse))
}

// InformInvalidAction is the narrator instruction for telling the player, in
// character, why their action cannot happen, with a few legal alternatives.
func InformInvalidAction(context, lastScene, userInput, feedback string) string {
	return fmt.Sprintf(`The player attempted an action their character cannot perform. Explain to the player, staying in character as the Game Master, why the action is not possible, and suggest two or three alternative actions suited to their abilities and the scene.

**Player Preferences and Character Details:**
%s

**GM's Last Response (Scene and Options):**
%s

**Player Input (Chosen Action):**
%s

**Why the action is invalid:**
%s

%s`, context, lastScene, userInput, feedback, responseFormat(KeyResponse))
}

// FormatFeedback builds the correction request sent when an agent's reply
// violated the JSON contract. It names the exact keys required and includes
// the malformed reply for the model to resend correctly.
func FormatFeedback(expectedKeys []string, previousReply string) string {
	placeholders := make([]string, len(expectedKeys))
	for i, key := range expectedKeys {
		placeholders[i] = fmt.Sprintf("  %q: \"<value>\"", key)
	}
	var previous string
	if strings.TrimSpace(previousReply) != "" {
		previous = fmt.Sprintf("\n**Your Previous Reply:**\n%s\n", previousReply)
	}
	return fmt.Sprintf(`Error: your last response had incorrect formatting and was not delivered.

Do not apologize or include any extra text. Resend your previous response as a JSON object with exactly these keys: %s.
%s
**Required Format:**
`+"```json\n{\n%s\n}\n```\n"+jsonOnlyReminder,
		strings.Join(expectedKeys, ", "), previous, strings.Join(placeholders, ",\n"))
}

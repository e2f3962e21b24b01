// Package orchestrator runs the turn pipeline: it routes player input to the
// narrator and critic agents, enforces the validation passes, and commits the
// finished exchange to the conversation log.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/campaign-engine/internal/services"
	"github.com/jwebster45206/campaign-engine/internal/storage"
	"github.com/jwebster45206/campaign-engine/pkg/agent"
	"github.com/jwebster45206/campaign-engine/pkg/character"
	"github.com/jwebster45206/campaign-engine/pkg/chat"
	"github.com/jwebster45206/campaign-engine/pkg/game"
	"github.com/jwebster45206/campaign-engine/pkg/prompts"
	"github.com/jwebster45206/campaign-engine/pkg/rules"
	"github.com/jwebster45206/campaign-engine/pkg/textfilter"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrPreferencesNotSet = errors.New("preferences not set for user")
)

// degradedApology is returned when the narrator never produces usable text
// within the retry budget. Nothing is persisted for such a turn.
const degradedApology = "The Game Master pauses, lost in thought. Something went wrong while weaving the story. Please try again."

// TurnProcessor owns one complete turn: load state, run the agent pipeline,
// persist the exchange.
type TurnProcessor struct {
	storage storage.Storage
	agents  *agent.Registry
	caller  *agent.Caller
	locks   services.GameLock
	filter  *textfilter.ToneFilter
	logger  *slog.Logger
}

func NewTurnProcessor(st storage.Storage, agents *agent.Registry, caller *agent.Caller, locks services.GameLock, logger *slog.Logger) *TurnProcessor {
	return &TurnProcessor{
		storage: st,
		agents:  agents,
		caller:  caller,
		locks:   locks,
		filter:  textfilter.NewToneFilter(),
		logger:  logger,
	}
}

// ProcessTurn runs one turn for the game in the request and returns the
// narration shown to the player. Turns for the same game are serialized; a
// concurrent submission gets services.ErrTurnInProgress.
func (p *TurnProcessor) ProcessTurn(ctx context.Context, req *chat.TurnRequest) (*chat.TurnResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	release, err := p.locks.Acquire(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	defer release()

	g, err := p.storage.FindGame(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if g == nil {
		return nil, ErrGameNotFound
	}

	sheet, err := p.storage.GetCharacter(ctx, g.CharacterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load character: %w", err)
	}
	if sheet == nil {
		return nil, ErrCharacterNotFound
	}

	prefs, err := p.storage.GetPreferences(ctx, g.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	if prefs == nil {
		return nil, ErrPreferencesNotSet
	}

	turns, err := p.storage.ListTurns(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}

	promptContext := prompts.BuildContext(prefs, sheet)

	var narration string
	var persist bool
	if len(turns) == 0 {
		narration, persist = p.newCampaignTurn(ctx, promptContext, req.UserInput)
	} else {
		narration, persist, err = p.continueCampaignTurn(ctx, promptContext, sheet, turns, req.UserInput)
		if err != nil {
			return nil, err
		}
	}

	if textfilter.ShouldFilter(prefs.Tone) {
		narration = p.filter.Filter(narration)
	}

	if persist {
		turn, err := p.storage.AppendTurn(ctx, req.GameID, req.UserInput, narration)
		if err != nil {
			return nil, fmt.Errorf("failed to save turn: %w", err)
		}
		p.logger.Info("Turn saved",
			"game_id", req.GameID,
			"turn_order", turn.Order)
	}

	return &chat.TurnResponse{GameID: req.GameID, Response: narration}, nil
}

// newCampaignTurn opens a fresh campaign. Returns the narration and whether
// it should be persisted.
func (p *TurnProcessor) newCampaignTurn(ctx context.Context, promptContext, userInput string) (string, bool) {
	draft := p.narrate(ctx, prompts.CreateCampaign(userInput, promptContext))
	if draft == "" {
		return degradedApology, false
	}
	draft = p.reviewStoryline(ctx, promptContext, draft)
	draft = p.reviewOptions(ctx, promptContext, draft)
	return draft, true
}

// continueCampaignTurn advances an ongoing campaign. Invalid actions yield an
// in-character refusal that is returned but never persisted, so the
// conversation log holds only accepted actions.
func (p *TurnProcessor) continueCampaignTurn(ctx context.Context, promptContext string, sheet *character.Sheet, turns []game.ConversationTurn, userInput string) (string, bool, error) {
	lastScene := turns[len(turns)-1].GMResponse
	storyline := game.Storyline(turns)

	feedback := p.validateAction(ctx, promptContext, sheet, lastScene, userInput)
	if feedback != "" {
		p.logger.Info("Player action rejected", "feedback", feedback)
		refusal := p.narrate(ctx, prompts.InformInvalidAction(promptContext, lastScene, userInput, feedback))
		if refusal == "" {
			refusal = degradedApology
		}
		return refusal, false, nil
	}

	draft := p.narrate(ctx, prompts.ContinueCampaign(promptContext, storyline, userInput))
	if draft == "" {
		return degradedApology, false, nil
	}
	draft = p.reviewStoryline(ctx, promptContext, draft)
	draft = p.reviewOptions(ctx, promptContext, draft)
	return draft, true, nil
}

// narrate sends one narrator instruction and returns the contracted response
// text, or "" when the retry budget was exhausted.
func (p *TurnProcessor) narrate(ctx context.Context, instruction string) string {
	reply := p.caller.Call(ctx, p.agents.Narrator,
		[]chat.ChatMessage{{Role: chat.ChatRoleSystem, Content: instruction}},
		[]string{prompts.KeyResponse})
	return reply.Get(prompts.KeyResponse)
}

// critique sends one critic instruction and returns the feedback text. Empty
// feedback means no issue, which is also what a degraded reply collapses to,
// so an unreachable critic fails open rather than blocking play.
func (p *TurnProcessor) critique(ctx context.Context, instruction string) string {
	reply := p.caller.Call(ctx, p.agents.Critic,
		[]chat.ChatMessage{{Role: chat.ChatRoleSystem, Content: instruction}},
		[]string{prompts.KeyFeedback})
	return reply.Get(prompts.KeyFeedback)
}

// reviewStoryline runs the narrative-consistency pass. When the critic flags
// the draft, the narrator revises once; a failed revision keeps the prior
// draft rather than degrading the turn.
func (p *TurnProcessor) reviewStoryline(ctx context.Context, promptContext, draft string) string {
	feedback := p.critique(ctx, prompts.ValidateStoryline(promptContext, draft))
	if feedback == "" {
		return draft
	}
	p.logger.Debug("Storyline revision requested", "feedback", feedback)
	revised := p.narrate(ctx, prompts.ReviseStoryline(promptContext, draft, feedback))
	if revised == "" {
		return draft
	}
	return revised
}

// reviewOptions runs the option-legality pass, same fallback policy as
// reviewStoryline.
func (p *TurnProcessor) reviewOptions(ctx context.Context, promptContext, draft string) string {
	feedback := p.critique(ctx, prompts.ValidateOptions(promptContext, draft))
	if feedback == "" {
		return draft
	}
	p.logger.Debug("Options revision requested", "feedback", feedback)
	revised := p.narrate(ctx, prompts.ReviseOptions(promptContext, draft, feedback))
	if revised == "" {
		return draft
	}
	return revised
}

// validateAction asks the critic whether the input is a legal action.
// Returns "" when the action is acceptable.
func (p *TurnProcessor) validateAction(ctx context.Context, promptContext string, sheet *character.Sheet, lastScene, userInput string) string {
	abilitySummary := ""
	if actor, err := sheet.Actor(); err == nil {
		abilitySummary = rules.Summary(actor, sheet.SkillList())
	} else {
		p.logger.Warn("Failed to build actor for action validation", "error", err)
	}
	return p.critique(ctx, prompts.ValidateAction(promptContext, lastScene, userInput, abilitySummary))
}

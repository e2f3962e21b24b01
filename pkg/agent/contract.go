package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/campaign-engine/pkg/chat"
	"github.com/jwebster45206/campaign-engine/pkg/prompts"
)

// DefaultMaxRetries bounds the number of requests one contract call may
// issue, the original request included.
const DefaultMaxRetries = 3

// Reply is the parsed JSON object from one agent response. The contract is
// flat string values only; nested objects and arrays are treated as
// malformed output.
type Reply map[string]string

// Get returns the value for key, or "" when absent.
func (r Reply) Get(key string) string {
	return r[key]
}

// Degraded builds the all-empty-string fallback reply for the contracted
// keys. Callers treat it as "no usable content."
func Degraded(keys []string) Reply {
	r := make(Reply, len(keys))
	for _, k := range keys {
		r[k] = ""
	}
	return r
}

// Caller is the contract-enforcing wrapper around agent requests. One
// request is sent, the reply is parsed and checked against the expected
// keys, and malformed replies trigger bounded feedback retries where the
// agent is told the exact JSON shape required and asked to resend.
type Caller struct {
	maxRetries int
	logger     *slog.Logger
}

// NewCaller creates a Caller. maxRetries <= 0 selects DefaultMaxRetries.
func NewCaller(maxRetries int, logger *slog.Logger) *Caller {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Caller{maxRetries: maxRetries, logger: logger}
}

// Call sends messages to the agent and returns a Reply containing every
// expected key. It never returns an error for model-shape problems: network
// failures, timeouts, unparseable text, and missing keys all consume the
// retry budget, and on exhaustion the degraded reply is returned. This is
// the reliability primitive every orchestration step builds on.
func (c *Caller) Call(ctx context.Context, a Agent, messages []chat.ChatMessage, expectedKeys []string) Reply {
	msgs := messages
	lastRaw := ""

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		raw, err := a.Generate(ctx, msgs)
		if err != nil {
			// Treated identically to a parse failure: the attempt is
			// spent and the agent gets a fresh correction request.
			c.logger.Warn("Agent request failed",
				"agent", a.Name(),
				"attempt", attempt,
				"max_retries", c.maxRetries,
				"error", err)
			raw = ""
		}
		lastRaw = raw

		if raw != "" {
			reply, perr := parseReply(raw, expectedKeys)
			if perr == nil {
				return reply
			}
			c.logger.Warn("Agent reply violated contract",
				"agent", a.Name(),
				"attempt", attempt,
				"expected_keys", expectedKeys,
				"error", perr)
		}

		if attempt == c.maxRetries {
			break
		}

		// The feedback retry is a fresh one-shot correction request, not a
		// continuation of the original conversation.
		msgs = []chat.ChatMessage{{
			Role:    chat.ChatRoleSystem,
			Content: prompts.FormatFeedback(expectedKeys, lastRaw),
		}}
	}

	c.logger.Error("Retry budget exhausted, returning degraded reply",
		"agent", a.Name(),
		"expected_keys", expectedKeys,
		"max_retries", c.maxRetries)
	return Degraded(expectedKeys)
}

// parseReply extracts and parses the JSON object in raw and verifies the
// contract. Non-string values are dropped during flattening, so a fenced
// reply with a nested object under an expected key reads as a missing key.
// A bare nested reply fails sooner, at unmarshal, because the non-greedy
// extraction stops at the first closing brace. Both shapes trigger a retry.
func parseReply(raw string, expectedKeys []string) (Reply, error) {
	jsonStr := ExtractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object found in reply")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse extracted JSON: %w", err)
	}

	reply := make(Reply, len(parsed))
	for k, v := range parsed {
		if s, ok := v.(string); ok {
			reply[k] = s
		}
	}

	var missing []string
	for _, k := range expectedKeys {
		if _, ok := reply[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("reply missing expected keys %v", missing)
	}
	return reply, nil
}

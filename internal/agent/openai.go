package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gpt-4o-mini"

// requestTimeout bounds every model call so a hung request cannot
// stall the game loop past the caller's own deadline.
const requestTimeout = 60 * time.Second

// OpenAIAgent drives a player through the OpenAI chat completions API.
// The system prompt carries the player's identity and personality and
// is fixed for the whole game.
type OpenAIAgent struct {
	client       openai.Client
	model        string
	systemPrompt string
	temperature  float64
}

// NewOpenAIAgent creates an agent for one player
func NewOpenAIAgent(apiKey, baseURL, model, systemPrompt string) *OpenAIAgent {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIAgent{
		client:       openai.NewClient(opts...),
		model:        model,
		systemPrompt: systemPrompt,
		temperature:  0.8,
	}
}

func (a *OpenAIAgent) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(a.systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(a.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Choose picks one of the choices. Malformed answers are normalized
// onto the choice list rather than failing.
func (a *OpenAIAgent) Choose(ctx context.Context, prompt string, choices []string) (string, error) {
	full := prompt + "\n\nRespond with exactly one of: " + strings.Join(choices, ", ") + "\nAnswer with the name only, nothing else."
	raw, err := a.complete(ctx, full)
	if err != nil {
		return "", err
	}
	return NormalizeChoice(raw, choices), nil
}

// ChooseWithReasoning picks a choice and returns the model's private
// reasoning alongside it.
func (a *OpenAIAgent) ChooseWithReasoning(ctx context.Context, prompt string, choices []string) (string, string, error) {
	full := prompt + "\n\nRespond in exactly this format:\nREASONING: <one or two sentences, private>\nCHOICE: <exactly one of: " + strings.Join(choices, ", ") + ">"
	raw, err := a.complete(ctx, full)
	if err != nil {
		return "", "", err
	}
	reasoning, choice := splitLabeled(raw, "REASONING:", "CHOICE:")
	if choice == "" {
		choice = raw
	}
	return NormalizeChoice(choice, choices), reasoning, nil
}

// Statement produces an utterance and the private thinking behind it
func (a *OpenAIAgent) Statement(ctx context.Context, prompt string) (string, string, error) {
	full := prompt + "\n\nRespond in exactly this format:\nTHINKING: <your private reasoning, never shown to others>\nSAY: <what you say out loud, one short paragraph>"
	raw, err := a.complete(ctx, full)
	if err != nil {
		return "", "", err
	}
	thinking, say := splitLabeled(raw, "THINKING:", "SAY:")
	if say == "" {
		// Model ignored the format; treat the whole answer as speech.
		say = raw
	}
	return say, thinking, nil
}

// splitLabeled extracts the text following two labels, in order. Either
// section may be empty if the label is missing.
func splitLabeled(raw, firstLabel, secondLabel string) (first, second string) {
	idx := strings.Index(raw, secondLabel)
	if idx >= 0 {
		first = raw[:idx]
		second = strings.TrimSpace(raw[idx+len(secondLabel):])
	} else {
		first = raw
	}
	first = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(first), firstLabel))
	return first, second
}

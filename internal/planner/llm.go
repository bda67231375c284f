package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/dugout-ai/dugout/internal/tool"
	"github.com/dugout-ai/dugout/internal/types"
	"github.com/dugout-ai/dugout/internal/workflow"
)

// LLMPlanner satisfies workflow.Planner by prompting a language model
// for routing decisions and answer synthesis.
type LLMPlanner struct {
	model       llms.Model
	descriptors []tool.Descriptor
}

// NewLLMPlanner wraps a langchaingo model with the agent's prompts. The
// descriptors become the tool catalog the model selects from.
func NewLLMPlanner(model llms.Model, descriptors []tool.Descriptor) *LLMPlanner {
	return &LLMPlanner{model: model, descriptors: descriptors}
}

// NewGoogleModel builds a Gemini-backed model from an API key read out
// of apiKeyEnv.
func NewGoogleModel(ctx context.Context, modelName, apiKeyEnv string) (llms.Model, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, types.NewError(types.PLANNER_FAILED,
			fmt.Sprintf("environment variable %s is not set", apiKeyEnv))
	}

	opts := []googleai.Option{googleai.WithAPIKey(apiKey)}
	if modelName != "" {
		opts = append(opts, googleai.WithDefaultModel(modelName))
	}

	client, err := googleai.New(ctx, opts...)
	if err != nil {
		return nil, types.WrapError(types.PLANNER_FAILED, "creating google model", err)
	}
	return client, nil
}

// decisionJSON is the structured reply the routing prompt asks for.
type decisionJSON struct {
	Action string         `json:"action"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Reason string         `json:"reason"`
}

// Decide asks the model whether another tool call is needed and which.
func (p *LLMPlanner) Decide(ctx context.Context, state *workflow.AgentState) (workflow.Decision, error) {
	prompt := buildDecidePrompt(state, p.descriptors)

	completion, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithTemperature(0))
	if err != nil {
		return workflow.Decision{}, types.WrapError(types.PLANNER_FAILED, "routing completion failed", err)
	}

	raw, err := extractJSON(completion)
	if err != nil {
		return workflow.Decision{}, err
	}

	var d decisionJSON
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return workflow.Decision{}, types.WrapError(types.PLANNER_DECISION_INVALID,
			"malformed routing decision", err)
	}

	switch d.Action {
	case "respond":
		return workflow.Decision{Respond: true, Reason: d.Reason}, nil
	case "tool":
		if d.Tool == "" {
			return workflow.Decision{}, types.NewError(types.PLANNER_DECISION_INVALID,
				"tool action without a tool name")
		}
		return workflow.Decision{Tool: d.Tool, Args: d.Args, Reason: d.Reason}, nil
	default:
		return workflow.Decision{}, types.NewError(types.PLANNER_DECISION_INVALID,
			fmt.Sprintf("unknown action %q", d.Action))
	}
}

// Synthesize asks the model for the final answer.
func (p *LLMPlanner) Synthesize(ctx context.Context, state *workflow.AgentState) (string, error) {
	prompt := buildSynthesizePrompt(state)

	completion, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithTemperature(0))
	if err != nil {
		return "", types.WrapError(types.PLANNER_FAILED, "synthesis completion failed", err)
	}
	if completion == "" {
		return "", types.NewError(types.PLANNER_FAILED, "model returned an empty answer")
	}
	return completion, nil
}

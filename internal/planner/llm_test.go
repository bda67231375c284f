package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/dugout-ai/dugout/internal/tool"
	"github.com/dugout-ai/dugout/internal/types"
	"github.com/dugout-ai/dugout/internal/workflow"
)

// fakeModel replays a canned completion and records the prompts it saw.
type fakeModel struct {
	response string
	err      error
	prompts  []string
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, mc := range messages {
		for _, part := range mc.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompts = append(m.prompts, text.Text)
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.response}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func testDescriptors() []tool.Descriptor {
	return []tool.Descriptor{
		{
			Name:        "get_game_linescore",
			Description: "Get the linescore for a specific game",
			Params: []tool.ParamSpec{
				{Name: "game_pk", Required: true, Description: "Unique identifier for the game"},
			},
		},
		{
			Name:        "search_player",
			Description: "Search for a player by name",
			Params: []tool.ParamSpec{
				{Name: "name", Required: true},
			},
		},
	}
}

func TestDecideToolAction(t *testing.T) {
	model := &fakeModel{response: "```json\n{\"action\": \"tool\", \"tool\": \"get_game_linescore\", \"args\": {\"game_pk\": 748534}, \"reason\": \"need the score\"}\n```"}
	p := NewLLMPlanner(model, testDescriptors())

	d, err := p.Decide(context.Background(), workflow.NewAgentState("what is the score?"))
	require.NoError(t, err)

	assert.False(t, d.Respond)
	assert.Equal(t, "get_game_linescore", d.Tool)
	assert.Equal(t, map[string]any{"game_pk": float64(748534)}, d.Args)
	assert.Equal(t, "need the score", d.Reason)
}

func TestDecideRespondAction(t *testing.T) {
	model := &fakeModel{response: `{"action": "respond", "reason": "enough data gathered"}`}
	p := NewLLMPlanner(model, testDescriptors())

	d, err := p.Decide(context.Background(), workflow.NewAgentState("q"))
	require.NoError(t, err)
	assert.True(t, d.Respond)
	assert.Equal(t, "enough data gathered", d.Reason)
}

func TestDecidePromptContents(t *testing.T) {
	model := &fakeModel{response: `{"action": "respond"}`}
	p := NewLLMPlanner(model, testDescriptors())

	state := workflow.NewAgentState("what inning is the Dodgers game in?")
	state.AppendToolOutput(workflow.ToolOutput{
		ToolName: "get_game_linescore",
		Input:    map[string]any{"game_pk": float64(748534)},
		Output:   map[string]any{"currentInning": float64(7)},
	})

	_, err := p.Decide(context.Background(), state)
	require.NoError(t, err)

	require.NotEmpty(t, model.prompts)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "what inning is the Dodgers game in?")
	assert.Contains(t, prompt, "get_game_linescore")
	assert.Contains(t, prompt, "search_player")
	assert.Contains(t, prompt, "game_pk (required)")
	assert.Contains(t, prompt, "currentInning", "prior tool results feed the next decision")
}

func TestDecideInvalidReplies(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"unknown action", `{"action": "think"}`},
		{"tool action without name", `{"action": "tool", "args": {}}`},
		{"no json", "I would like to call the linescore tool."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLLMPlanner(&fakeModel{response: tt.response}, testDescriptors())
			_, err := p.Decide(context.Background(), workflow.NewAgentState("q"))
			require.Error(t, err)
			assert.Equal(t, types.PLANNER_DECISION_INVALID, types.CodeOf(err))
		})
	}
}

func TestDecideModelError(t *testing.T) {
	p := NewLLMPlanner(&fakeModel{err: errors.New("quota exceeded")}, testDescriptors())
	_, err := p.Decide(context.Background(), workflow.NewAgentState("q"))
	require.Error(t, err)
	assert.Equal(t, types.PLANNER_FAILED, types.CodeOf(err))
}

func TestSynthesize(t *testing.T) {
	model := &fakeModel{response: "The game is in the 7th inning."}
	p := NewLLMPlanner(model, testDescriptors())

	state := workflow.NewAgentState("what inning?")
	state.AppendToolOutput(workflow.ToolOutput{
		ToolName: "get_game_linescore",
		Output:   map[string]any{"currentInning": float64(7)},
	})

	answer, err := p.Synthesize(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "The game is in the 7th inning.", answer)

	require.NotEmpty(t, model.prompts)
	assert.Contains(t, model.prompts[0], "what inning?")
	assert.Contains(t, model.prompts[0], "currentInning")
}

func TestSynthesizeFailures(t *testing.T) {
	t.Run("model error", func(t *testing.T) {
		p := NewLLMPlanner(&fakeModel{err: errors.New("timeout")}, testDescriptors())
		_, err := p.Synthesize(context.Background(), workflow.NewAgentState("q"))
		require.Error(t, err)
		assert.Equal(t, types.PLANNER_FAILED, types.CodeOf(err))
	})

	t.Run("empty completion", func(t *testing.T) {
		p := NewLLMPlanner(&fakeModel{response: ""}, testDescriptors())
		_, err := p.Synthesize(context.Background(), workflow.NewAgentState("q"))
		require.Error(t, err)
		assert.Equal(t, types.PLANNER_FAILED, types.CodeOf(err))
	})
}

func TestSynthesizeReportsFailedTools(t *testing.T) {
	model := &fakeModel{response: "I could not retrieve the data."}
	p := NewLLMPlanner(model, testDescriptors())

	state := workflow.NewAgentState("q")
	state.AppendToolOutput(workflow.ToolOutput{
		ToolName: "get_game_linescore",
		Input:    map[string]any{"game_pk": float64(1)},
		Error:    "upstream returned status 404",
	})

	_, err := p.Synthesize(context.Background(), state)
	require.NoError(t, err)
	assert.Contains(t, model.prompts[0], "failed: upstream returned status 404")
}

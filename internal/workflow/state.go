package workflow

import (
	"fmt"
	"time"
)

// Message is one conversation turn recorded on the agent state.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolOutput records one tool invocation: what was called, with which
// arguments, what came back, and how long it took. Failed invocations
// carry the error text instead of output data.
type ToolOutput struct {
	ToolName      string         `json:"tool_name"`
	Input         map[string]any `json:"input_data"`
	Output        any            `json:"output_data,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime time.Duration  `json:"execution_time"`
}

// Failed reports whether the invocation ended in error.
func (o ToolOutput) Failed() bool {
	return o.Error != ""
}

// NodeExecution is the observability record for one visited node.
// It is created when the node is entered and sealed when it is left.
type NodeExecution struct {
	NodeName    string       `json:"node_name"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	ToolOutputs []ToolOutput `json:"tool_outputs,omitempty"`
	Messages    []string     `json:"messages,omitempty"`
}

// AgentState is the mutable state threaded through one workflow run. It
// is owned exclusively by the engine goroutine for the duration of the
// run and never shared across runs, so it needs no locking.
type AgentState struct {
	Query       string          `json:"query"`
	Messages    []Message       `json:"messages"`
	ToolsOutput []ToolOutput    `json:"tools_output"`
	FinalAnswer *string         `json:"final_answer,omitempty"`
	Steps       []NodeExecution `json:"execution_steps"`

	// ToolCycles counts completed route->tool->route cycles. The engine
	// forces a transition to respond once it reaches the configured cap.
	ToolCycles int `json:"tool_cycles"`
}

// NewAgentState creates the initial state for a query, seeding the
// conversation with the user's turn.
func NewAgentState(query string) *AgentState {
	return &AgentState{
		Query:    query,
		Messages: []Message{{Role: "user", Content: query}},
	}
}

// AppendMessage appends one conversation turn.
func (s *AgentState) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// AppendToolOutput appends one tool invocation record.
func (s *AgentState) AppendToolOutput(out ToolOutput) {
	s.ToolsOutput = append(s.ToolsOutput, out)
}

// AppendStep appends a sealed node execution record.
func (s *AgentState) AppendStep(step NodeExecution) {
	s.Steps = append(s.Steps, step)
}

// SetFinalAnswer records the synthesized answer. It may be set exactly
// once; a second call is a programming error in the engine.
func (s *AgentState) SetFinalAnswer(answer string) error {
	if s.FinalAnswer != nil {
		return fmt.Errorf("final answer already set")
	}
	s.FinalAnswer = &answer
	return nil
}

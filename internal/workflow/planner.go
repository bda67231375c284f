package workflow

import "context"

// Decision is the outcome of one routing step: either a tool selection
// with arguments, or a signal that no further tool is needed.
type Decision struct {
	// Respond, when true, means no further tool is needed and the run
	// should proceed to answer synthesis.
	Respond bool

	// Tool is the selected tool name when Respond is false.
	Tool string

	// Args are the arguments for the selected tool.
	Args map[string]any

	// Reason is an optional human-readable rationale, recorded on the
	// route node's execution record.
	Reason string
}

// Planner is the reasoning capability the engine delegates to. The
// interface is declared here, on the consumer side, so reasoning
// implementations depend on workflow rather than the other way around.
//
// The engine assumes nothing about a Planner's internals: any
// deterministic or model-backed implementation satisfies it. Decide and
// Synthesize errors are fatal to the run.
type Planner interface {
	// Decide inspects the current state and returns the next routing
	// decision.
	Decide(ctx context.Context, state *AgentState) (Decision, error)

	// Synthesize produces the final answer from the full state,
	// including the complete tool history.
	Synthesize(ctx context.Context, state *AgentState) (string, error)
}

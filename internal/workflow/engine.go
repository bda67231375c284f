package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dugout-ai/dugout/internal/events"
	"github.com/dugout-ai/dugout/internal/observability"
	"github.com/dugout-ai/dugout/internal/types"
)

// DefaultMaxToolCycles caps route->tool->route cycles per run.
const DefaultMaxToolCycles = 5

// ToolInvoker is the slice of the tool registry the engine needs. The
// interface is declared locally so the registry depends on nothing here.
type ToolInvoker interface {
	Invoke(ctx context.Context, name string, args map[string]any) (any, error)
}

// Engine drives one traversal of the agent graph per submitted query.
// The engine itself is stateless between runs and safe for concurrent
// use: all run state lives in the AgentState owned by each Run call.
type Engine struct {
	graph         *Graph
	tools         ToolInvoker
	planner       Planner
	logger        *slog.Logger
	maxToolCycles int
}

// EngineOption is a functional option for configuring Engine.
type EngineOption func(*Engine)

// WithLogger configures the engine's structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxToolCycles caps the number of route->tool->route cycles before
// the routing decision is forced to respond.
func WithMaxToolCycles(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxToolCycles = n
		}
	}
}

// NewEngine creates an Engine over the given graph, tool invoker, and
// planner.
func NewEngine(graph *Graph, tools ToolInvoker, planner Planner, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:         graph,
		tools:         tools,
		planner:       planner,
		logger:        slog.Default(),
		maxToolCycles: DefaultMaxToolCycles,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one workflow run for query, pushing progress events onto
// q as it goes. It always pushes exactly one terminal event, either
// workflow_complete or workflow_error, as the last event for the run,
// on every path including panics and context cancellation.
//
// Run blocks until the traversal finishes; callers stream concurrently
// by running it on its own goroutine.
func (e *Engine) Run(ctx context.Context, runID types.ID, query string, q *events.Queue) *RunResult {
	start := time.Now()
	logger := observability.RunLogger(e.logger, runID.String())
	logger.Info("starting workflow run", "query", query)

	state := NewAgentState(query)
	q.Push(events.New(events.EventWorkflowStart, runID, map[string]any{"query": query}))

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = types.NewError(types.WORKFLOW_FAULT,
					fmt.Sprintf("panic during workflow execution: %v", r))
			}
		}()
		return e.traverse(ctx, runID, state, q, logger)
	}()

	result := &RunResult{
		RunID:         runID,
		Query:         query,
		Steps:         state.Steps,
		TotalDuration: time.Since(start),
	}

	if err != nil {
		result.Status = RunStatusFailed
		result.Err = err
		logger.Error("workflow run failed", "error", err, "duration", result.TotalDuration)
		q.Push(events.New(events.EventWorkflowError, runID, map[string]any{
			"error": err.Error(),
		}))
		return result
	}

	result.Status = RunStatusCompleted
	if state.FinalAnswer != nil {
		result.FinalAnswer = *state.FinalAnswer
	}
	logger.Info("workflow run completed", "duration", result.TotalDuration,
		"tool_calls", len(state.ToolsOutput))
	q.Push(events.New(events.EventWorkflowComplete, runID, map[string]any{
		"final_answer":         result.FinalAnswer,
		"total_execution_time": result.TotalDuration.Seconds(),
	}))
	return result
}

// traverse walks the graph from entry to exit. Tool failures are
// recorded as data and control returns to the route node; every other
// failure aborts the traversal.
func (e *Engine) traverse(ctx context.Context, runID types.ID, state *AgentState, q *events.Queue, logger *slog.Logger) error {
	current := e.graph.Entry
	var pending Decision

	for {
		// Honor cancellation at the entry of every node.
		select {
		case <-ctx.Done():
			return types.WrapError(types.WORKFLOW_CANCELLED, "workflow run cancelled", ctx.Err())
		default:
		}

		node := e.graph.Node(current)
		if node == nil {
			return types.NewError(types.WORKFLOW_FAULT, fmt.Sprintf("no such node %q", current))
		}
		if node.Type == NodeTypeEnd {
			return nil
		}

		step := NodeExecution{NodeName: node.ID, StartTime: time.Now()}
		q.Push(events.New(events.EventNodeStart, runID, map[string]any{"node": node.ID}))

		var next string
		var nodeErr error

		switch node.Type {
		case NodeTypeStart:
			next = NodeRoute
		case NodeTypeRoute:
			next, pending, nodeErr = e.route(ctx, state, &step, logger)
		case NodeTypeTool:
			next = e.executeTool(ctx, runID, node, pending.Args, state, &step, q, logger)
		case NodeTypeRespond:
			next, nodeErr = e.respond(ctx, state, &step)
		default:
			nodeErr = types.NewError(types.WORKFLOW_FAULT,
				fmt.Sprintf("node %q has unknown type %q", node.ID, node.Type))
		}

		step.EndTime = time.Now()
		state.AppendStep(step)
		q.Push(events.New(events.EventNodeComplete, runID, map[string]any{
			"node":           node.ID,
			"execution_time": step.EndTime.Sub(step.StartTime).Seconds(),
		}))

		if nodeErr != nil {
			return nodeErr
		}
		if !e.graph.HasEdge(current, next) {
			return types.NewError(types.WORKFLOW_FAULT,
				fmt.Sprintf("illegal transition %q -> %q", current, next))
		}
		current = next
	}
}

// route decides the next node. The cycle cap is checked before
// delegating to the planner, so a planner that re-selects tools forever
// cannot keep the run alive past the cap.
func (e *Engine) route(ctx context.Context, state *AgentState, step *NodeExecution, logger *slog.Logger) (string, Decision, error) {
	if state.ToolCycles >= e.maxToolCycles {
		msg := fmt.Sprintf("tool cycle cap (%d) reached, forcing response", e.maxToolCycles)
		step.Messages = append(step.Messages, msg)
		logger.Warn("tool cycle cap reached", "cap", e.maxToolCycles)
		return NodeRespond, Decision{Respond: true, Reason: msg}, nil
	}

	decision, err := e.planner.Decide(ctx, state)
	if err != nil {
		return "", Decision{}, types.WrapError(types.WORKFLOW_FAULT, "routing decision failed", err)
	}

	if decision.Respond {
		step.Messages = append(step.Messages, "no further tool needed")
		return NodeRespond, decision, nil
	}

	target := e.graph.Node(decision.Tool)
	if target == nil || target.Type != NodeTypeTool {
		// The selection names a tool that has no node. There is nothing
		// to execute, so surface the problem to synthesis instead of
		// aborting the run.
		msg := fmt.Sprintf("planner selected unknown tool %q, forcing response", decision.Tool)
		step.Messages = append(step.Messages, msg)
		state.AppendMessage("system", msg)
		logger.Warn("unknown tool selected", "tool", decision.Tool)
		return NodeRespond, Decision{Respond: true, Reason: msg}, nil
	}

	state.ToolCycles++
	step.Messages = append(step.Messages, fmt.Sprintf("selected tool %s", decision.Tool))
	if decision.Reason != "" {
		step.Messages = append(step.Messages, decision.Reason)
	}
	return decision.Tool, decision, nil
}

// executeTool invokes the node's tool and records the outcome. Tool
// failures are non-fatal: they become data on the state that the next
// routing decision can react to, and control returns to the route node
// either way.
func (e *Engine) executeTool(ctx context.Context, runID types.ID, node *Node, args map[string]any, state *AgentState, step *NodeExecution, q *events.Queue, logger *slog.Logger) string {
	q.Push(events.New(events.EventToolStart, runID, map[string]any{
		"tool":       node.ToolName,
		"parameters": args,
	}))

	started := time.Now()
	out, err := e.tools.Invoke(ctx, node.ToolName, args)
	elapsed := time.Since(started)

	record := ToolOutput{
		ToolName:      node.ToolName,
		Input:         args,
		ExecutionTime: elapsed,
	}

	if err != nil {
		record.Error = err.Error()
		msg := fmt.Sprintf("tool %s failed: %v", node.ToolName, err)
		step.Messages = append(step.Messages, msg)
		state.AppendMessage("tool", msg)
		logger.Warn("tool invocation failed", "tool", node.ToolName, "error", err)
		q.Push(events.New(events.EventToolError, runID, map[string]any{
			"tool":  node.ToolName,
			"error": err.Error(),
		}))
	} else {
		record.Output = out
		state.AppendMessage("tool", fmt.Sprintf("tool %s returned a result", node.ToolName))
		logger.Info("tool invocation completed", "tool", node.ToolName, "duration", elapsed)
		q.Push(events.New(events.EventToolComplete, runID, map[string]any{
			"tool":           node.ToolName,
			"execution_time": elapsed.Seconds(),
		}))
	}

	state.AppendToolOutput(record)
	step.ToolOutputs = append(step.ToolOutputs, record)
	return NodeRoute
}

// respond synthesizes the final answer. Failure here is fatal to the run.
func (e *Engine) respond(ctx context.Context, state *AgentState, step *NodeExecution) (string, error) {
	answer, err := e.planner.Synthesize(ctx, state)
	if err != nil {
		return "", types.WrapError(types.WORKFLOW_FAULT, "answer synthesis failed", err)
	}
	if err := state.SetFinalAnswer(answer); err != nil {
		return "", types.WrapError(types.WORKFLOW_FAULT, "invalid final answer state", err)
	}
	state.AppendMessage("assistant", answer)
	step.Messages = append(step.Messages, "final answer synthesized")
	return e.graph.Exit, nil
}

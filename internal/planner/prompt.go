package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dugout-ai/dugout/internal/tool"
	"github.com/dugout-ai/dugout/internal/workflow"
)

const decidePreamble = `You are an MLB baseball data agent. You answer questions using the MLB Stats API through the tools listed below.

Decide the single next step for the conversation:
- If more data is needed to answer the question, pick exactly one tool and its arguments.
- If the gathered data already answers the question, or no tool applies, respond.

Reply with a single JSON object and nothing else:
{"action": "tool", "tool": "<tool name>", "args": {<arguments>}, "reason": "<one sentence>"}
or
{"action": "respond", "reason": "<one sentence>"}`

const synthesizePreamble = `You are an MLB baseball data agent. Write the final answer to the user's question using the tool results below. Be accurate and concise; use only facts present in the results. If the results are incomplete or contain errors, say what could not be determined.`

// buildDecidePrompt renders the routing prompt: tool catalog, the query,
// and the tool history so far so the model can chain calls or stop.
func buildDecidePrompt(state *workflow.AgentState, descriptors []tool.Descriptor) string {
	var b strings.Builder
	b.WriteString(decidePreamble)
	b.WriteString("\n\nAvailable tools:\n")
	for _, d := range descriptors {
		writeDescriptor(&b, d)
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n", state.Query)
	writeToolHistory(&b, state)
	return b.String()
}

// buildSynthesizePrompt renders the answer-synthesis prompt over the
// full tool history.
func buildSynthesizePrompt(state *workflow.AgentState) string {
	var b strings.Builder
	b.WriteString(synthesizePreamble)
	fmt.Fprintf(&b, "\n\nQuestion: %s\n", state.Query)
	writeToolHistory(&b, state)
	b.WriteString("\nAnswer:")
	return b.String()
}

func writeDescriptor(b *strings.Builder, d tool.Descriptor) {
	fmt.Fprintf(b, "- %s: %s\n", d.Name, d.Description)
	for _, p := range d.Params {
		req := "optional"
		if p.Required {
			req = "required"
		}
		fmt.Fprintf(b, "    %s (%s)", p.Name, req)
		if p.Description != "" {
			fmt.Fprintf(b, ": %s", p.Description)
		}
		b.WriteString("\n")
	}
}

func writeToolHistory(b *strings.Builder, state *workflow.AgentState) {
	if len(state.ToolsOutput) == 0 {
		b.WriteString("\nNo tools have been called yet.\n")
		return
	}
	b.WriteString("\nTool results so far:\n")
	for i, out := range state.ToolsOutput {
		if out.Failed() {
			fmt.Fprintf(b, "%d. %s(%s) failed: %s\n", i+1, out.ToolName, formatArgs(out.Input), out.Error)
			continue
		}
		fmt.Fprintf(b, "%d. %s(%s) returned:\n%s\n", i+1, out.ToolName, formatArgs(out.Input), renderOutput(out.Output))
	}
}

func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for k, v := range args {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ", ")
}

// maxOutputChars bounds how much of one tool result goes into a prompt.
// MLB feed responses can run to hundreds of kilobytes.
const maxOutputChars = 20000

func renderOutput(out any) string {
	s := ""
	if raw, err := json.Marshal(out); err == nil {
		s = string(raw)
	} else {
		s = fmt.Sprintf("%v", out)
	}
	if len(s) > maxOutputChars {
		return s[:maxOutputChars] + " ...(truncated)"
	}
	return s
}

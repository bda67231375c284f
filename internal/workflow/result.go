package workflow

import (
	"time"

	"github.com/dugout-ai/dugout/internal/types"
)

// RunStatus is the terminal status of one workflow run.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunResult is the complete outcome of one graph traversal.
type RunResult struct {
	RunID         types.ID        `json:"run_id"`
	Query         string          `json:"query"`
	Status        RunStatus       `json:"status"`
	FinalAnswer   string          `json:"final_answer,omitempty"`
	Steps         []NodeExecution `json:"execution_steps"`
	TotalDuration time.Duration   `json:"total_duration"`
	Err           error           `json:"-"`
}

// Failed reports whether the run aborted before reaching the end node.
func (r *RunResult) Failed() bool {
	return r.Status == RunStatusFailed
}

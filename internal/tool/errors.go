package tool

import "github.com/dugout-ai/dugout/internal/types"

// Tool error codes
const (
	ErrToolNotFound         types.ErrorCode = types.TOOL_NOT_FOUND
	ErrToolAlreadyExists    types.ErrorCode = types.TOOL_ALREADY_REGISTERED
	ErrToolMissingParameter types.ErrorCode = types.TOOL_MISSING_PARAMETER
	ErrToolUpstreamFailed   types.ErrorCode = types.TOOL_UPSTREAM_FAILED
)

// Package planner implements the model-backed reasoning behind the
// engine's routing and synthesis steps.
package planner

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/dugout-ai/dugout/internal/types"
)

// fencePattern matches a markdown code fence with an optional language tag.
var fencePattern = regexp.MustCompile(`(?s)` + "```" + `(\w*)\s*\n(.+?)\n` + "```")

// extractJSON pulls a JSON object out of a model completion. Models
// routinely wrap structured output in markdown fences or surround it
// with prose, so fenced blocks are tried first and a raw brace-matched
// object second.
func extractJSON(completion string) (string, error) {
	if obj, ok := extractFenced(completion); ok {
		return obj, nil
	}
	if obj, ok := extractBraced(completion); ok {
		return obj, nil
	}
	return "", types.NewError(types.PLANNER_DECISION_INVALID, "no JSON object found in model response")
}

func extractFenced(completion string) (string, bool) {
	for _, match := range fencePattern.FindAllStringSubmatch(completion, -1) {
		lang := strings.ToLower(match[1])
		if lang != "" && lang != "json" {
			continue
		}
		content := strings.TrimSpace(match[2])
		if strings.HasPrefix(content, "{") && json.Valid([]byte(content)) {
			return content, true
		}
	}
	return "", false
}

// extractBraced scans for the first balanced {...} span, honoring string
// literals and escapes so braces inside values do not end the match early.
func extractBraced(completion string) (string, bool) {
	start := strings.IndexByte(completion, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(completion); i++ {
		c := completion[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				candidate := completion[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				return "", false
			}
		}
	}
	return "", false
}

package analyses

import (
	"fmt"
	"strings"
)

// Tool names one engine entry point.
type Tool string

const (
	ToolSentiment  Tool = "sentiment"
	ToolComplexity Tool = "complexity"
	ToolResume     Tool = "resume"
)

// ParseTool normalizes and validates a tool name.
func ParseTool(raw string) (Tool, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", fmt.Errorf("%w: tool is required", ErrUnsupportedTool)
	}
	tool := Tool(normalized)
	if _, ok := runners[tool]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedTool, raw)
	}
	return tool, nil
}

// Tools lists the supported tools in a stable order.
func Tools() []Tool {
	return []Tool{ToolSentiment, ToolComplexity, ToolResume}
}

package analyses

import (
	"portfolio-backend/engine/complexity"
	"portfolio-backend/engine/resumescore"
	"portfolio-backend/engine/sentiment"
)

// runner invokes one engine entry point. Engines never fail.
type runner func(input string) any

var runners = map[Tool]runner{
	ToolSentiment:  func(input string) any { return sentiment.Analyze(input) },
	ToolComplexity: func(input string) any { return complexity.Explain(input) },
	ToolResume:     func(input string) any { return resumescore.Score(input) },
}

// Run executes tool on input without recording anything.
func Run(tool Tool, input string) (any, error) {
	run, ok := runners[tool]
	if !ok {
		return nil, ErrUnsupportedTool
	}
	return run(input), nil
}

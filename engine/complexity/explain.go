// Package complexity estimates the asymptotic cost of a code snippet from
// its loop structure, recursion shape and a few well-known primitives.
//
// The analysis is textual: it never parses the language, so every result is
// a heuristic estimate with a confidence score attached.
package complexity

import (
	"fmt"
	"regexp"
	"strings"
)

// NonTerminating is the time estimate reported when a loop may never end.
const NonTerminating = "Potentially non-terminating loop"

const defaultTime = "O(1) to O(log n)"

// Result is the explanation for one snippet.
type Result struct {
	TimeComplexity  string   `json:"timeComplexity"`
	SpaceComplexity string   `json:"spaceComplexity"`
	Reasoning       []string `json:"reasoning"`
	Derivation      []string `json:"derivation"`
	Confidence      int      `json:"confidence"`
}

// Summary is a one-line estimate suitable for logs and CLI output.
func (r Result) Summary() string {
	first := "pattern detected"
	if len(r.Reasoning) > 0 {
		first = r.Reasoning[0]
	}
	return fmt.Sprintf("%s likely (%s)", r.TimeComplexity, first)
}

var (
	sortPattern       = regexp.MustCompile(`\.sort\(|quicksort|mergesort|heapsort`)
	allocationPattern = regexp.MustCompile(`\bnew\s+\w+\s*\[|\bnew\s+array\b|\bmake\(|\.push\(|\bappend\(`)
)

// facts is everything the time and derivation rules look at.
type facts struct {
	loops      int
	depth      int
	profile    loopProfile
	structural *pathState
	hasSort    bool
	recursion  recursionEstimate
}

// Explain analyzes code and never fails; malformed input degrades to the
// default estimate.
func Explain(code string) Result {
	clean := strings.Join(strings.Fields(strings.ToLower(code)), " ")
	nodes := scanLoops(clean)

	f := facts{
		loops:      len(nodes),
		depth:      maxLoopDepth(clean, nodes),
		profile:    profileLoops(clean, nodes),
		structural: dominantPath(nodes),
		hasSort:    sortPattern.MatchString(clean),
		recursion:  analyzeRecursion(clean),
	}

	estimate := estimateTime(f)
	return Result{
		TimeComplexity:  estimate,
		SpaceComplexity: estimateSpace(clean, f),
		Reasoning:       reasoning(f),
		Derivation:      derivation(f, estimate),
		Confidence:      confidence(f),
	}
}

type timeRule struct {
	match    func(f facts) bool
	estimate func(f facts) string
}

func fixed(s string) func(facts) string {
	return func(facts) string { return s }
}

// timeRules is evaluated top to bottom; the first match wins.
var timeRules = []timeRule{
	{
		match:    func(f facts) bool { return f.profile.nonTerminating != "" },
		estimate: fixed(NonTerminating),
	},
	{
		match:    func(f facts) bool { return f.recursion.time != "" },
		estimate: func(f facts) string { return f.recursion.time },
	},
	{
		match:    func(f facts) bool { return f.structural != nil },
		estimate: func(f facts) string { return formatComplexity(f.structural.nExp, f.structural.logExp) },
	},
	{
		match:    func(f facts) bool { return f.profile.linear > 0 && f.profile.log > 0 },
		estimate: func(f facts) string { return formatComplexity(f.profile.linear, f.profile.log) },
	},
	{
		match:    func(f facts) bool { return f.profile.linear > 0 },
		estimate: func(f facts) string { return formatComplexity(f.profile.linear, 0) },
	},
	{
		match:    func(f facts) bool { return f.profile.log > 0 },
		estimate: func(f facts) string { return formatComplexity(0, f.profile.log) },
	},
	{
		match:    func(f facts) bool { return f.depth >= 2 },
		estimate: func(f facts) string { return formatComplexity(f.depth, 0) },
	},
	{
		match:    func(f facts) bool { return f.hasSort && f.depth >= 1 },
		estimate: fixed("O(n log n) to O(n^2 log n)"),
	},
	{
		match:    func(f facts) bool { return f.hasSort },
		estimate: fixed("O(n log n)"),
	},
	{
		match:    func(f facts) bool { return f.recursion.detected },
		estimate: fixed("O(n) to O(2^n)"),
	},
	{
		match:    func(f facts) bool { return f.depth == 1 },
		estimate: fixed("O(n)"),
	},
}

func estimateTime(f facts) string {
	for _, rule := range timeRules {
		if rule.match(f) {
			return rule.estimate(f)
		}
	}
	return defaultTime
}

func estimateSpace(clean string, f facts) string {
	switch {
	case f.recursion.space != "":
		return f.recursion.space
	case f.recursion.detected:
		return "O(n) stack depth likely"
	case allocationPattern.MatchString(clean):
		return "O(n) auxiliary space likely"
	default:
		return "O(1) auxiliary space likely"
	}
}

func reasoning(f facts) []string {
	lines := []string{
		fmt.Sprintf("%d loop structure(s) detected", f.loops),
		fmt.Sprintf("Max loop nesting depth: %d", f.depth),
		fmt.Sprintf("Loop growth profile: %d linear, %d logarithmic", f.profile.linear, f.profile.log),
	}
	if f.structural != nil {
		lines = append(lines, fmt.Sprintf("Dependent-bound analysis: n^%d, (log n)^%d", f.structural.nExp, f.structural.logExp))
		lines = append(lines, f.structural.flags...)
	}
	if f.depth >= 2 {
		lines = append(lines, "Nested iteration present")
	} else {
		lines = append(lines, "No nested iteration found")
	}
	if f.profile.nonTerminating != "" {
		lines = append(lines, f.profile.nonTerminating)
	}
	if f.recursion.detected {
		lines = append(lines, f.recursion.reason, "Recursion detected")
	} else {
		lines = append(lines, "No recursion pattern detected")
	}
	if f.hasSort {
		lines = append(lines, "Sort operation detected")
	} else {
		lines = append(lines, "No sort primitive detected")
	}
	return lines
}

// derivation builds the ordered proof sketch ending in the final estimate.
func derivation(f facts, estimate string) []string {
	if f.profile.nonTerminating != "" {
		return []string{
			"Termination check: " + f.profile.nonTerminating,
			"Asymptotic class is undefined unless loop progress is guaranteed.",
		}
	}

	var steps []string
	if f.recursion.detected {
		steps = append(steps,
			"Recurrence model: "+f.recursion.reason,
			fmt.Sprintf("Recurrence estimate: %s.", f.recursion.time),
			fmt.Sprintf("Stack estimate: %s.", f.recursion.space),
		)
	}

	p := f.profile
	steps = append(steps, fmt.Sprintf("Loop decomposition: %d linear term(s), %d logarithmic term(s), depth %d.", p.linear, p.log, f.depth))
	if f.structural != nil {
		steps = append(steps, fmt.Sprintf("Structural composition along the dominant loop path: T(n) ~= %s.",
			strings.TrimSuffix(strings.TrimPrefix(formatComplexity(f.structural.nExp, f.structural.logExp), "O("), ")")))
	}

	switch {
	case p.linear > 0 && p.log > 0:
		steps = append(steps, fmt.Sprintf("Product model: T(n) ~= %s * %s.", powerTerm("n", p.linear), powerTerm("log n", p.log)))
	case p.linear > 0:
		steps = append(steps, fmt.Sprintf("Linear nesting model: T(n) ~= %s.", powerTerm("n", p.linear)))
	case p.log > 0:
		steps = append(steps, fmt.Sprintf("Logarithmic nesting model: T(n) ~= %s.", powerTerm("log n", p.log)))
	case f.depth > 1:
		steps = append(steps, fmt.Sprintf("Fallback depth model: T(n) ~= n^%d.", f.depth))
	default:
		steps = append(steps, "No dominant iterative growth found.")
	}

	if f.hasSort {
		steps = append(steps, "Sorting primitive contributes an n log n factor where applicable.")
	}
	if f.recursion.detected {
		steps = append(steps, "Recursion can change complexity depending on branching and overlap.")
	}
	if p.unknown > 0 {
		steps = append(steps, fmt.Sprintf("Uncertain loop(s): %d. Estimate confidence is reduced.", p.unknown))
	}
	return append(steps, fmt.Sprintf("Final estimate: %s.", estimate))
}

const (
	minConfidence = 45
	maxConfidence = 98
)

func confidence(f facts) int {
	c := 65 - 8*f.profile.unknown
	if f.loops > 0 {
		c += 12
	}
	if f.hasSort {
		c += 10
	}
	if f.recursion.detected {
		c += 8
	}
	return min(maxConfidence, max(minConfidence, c))
}

package complexity

import (
	"fmt"
	"regexp"
)

// loopProfile is the flat view of all loops, ignoring nesting.
type loopProfile struct {
	linear  int
	log     int
	unknown int
	// nonTerminating holds the first termination risk found, if any.
	nonTerminating string
}

var startsAtOne = regexp.MustCompile(`\b1\b`)

func profileLoops(clean string, nodes []loopNode) loopProfile {
	var p loopProfile
	for i := range nodes {
		n := &nodes[i]
		switch n.kind {
		case KindLinear:
			p.linear++
		case KindLog:
			p.log++
		default:
			p.unknown++
		}
		if p.nonTerminating == "" {
			p.nonTerminating = terminationRisk(clean, n)
		}
	}
	return p
}

func terminationRisk(clean string, n *loopNode) string {
	if n.iterator == "" {
		return ""
	}
	if n.keyword == "for" && n.op == "++" && startsAtOne.MatchString(n.init) {
		divisor := regexp.MustCompile(`\b[a-z_]\w*\s*=\s*[a-z_]\w*\s*/\s*` + regexp.QuoteMeta(n.iterator) + `\b`)
		if divisor.MatchString(clean) {
			return fmt.Sprintf("%s starts at 1 and is used as a divisor; termination may fail.", n.iterator)
		}
	}
	if (n.op == "/" || n.op == "/=") && n.operand == "1" {
		return fmt.Sprintf("%s is divided by 1 in its loop update; the loop may never terminate.", n.iterator)
	}
	return ""
}

var depthTokens = regexp.MustCompile(`\bfor\s*\(|\bfor\s+[^;{()]*;[^;{]*;[^{]*\{|\bwhile\s*\(|\{|\}`)

// maxLoopDepth scans braces, counting a block as a loop block when a loop
// header is still waiting for its body. Braceless nesting is covered by the
// loop forest.
func maxLoopDepth(clean string, nodes []loopNode) int {
	var stack []bool
	pending, depth, best := 0, 0, 0

	for _, tok := range depthTokens.FindAllString(clean, -1) {
		switch {
		case tok == "{" || tok == "}":
		case tok[len(tok)-1] == '{':
			// A Go-style header swallows its own opening brace.
			depth++
			stack = append(stack, true)
			best = max(best, depth)
			continue
		default:
			pending++
			continue
		}

		if tok == "{" {
			if pending > 0 {
				pending--
				depth++
				stack = append(stack, true)
				best = max(best, depth)
			} else {
				stack = append(stack, false)
			}
			continue
		}
		if len(stack) > 0 {
			loopBlock := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if loopBlock {
				depth = max(0, depth-1)
			}
		}
	}
	if best == 0 && pending > 0 {
		best = pending
	}
	return max(best, forestDepth(nodes))
}

func forestDepth(nodes []loopNode) int {
	best := 0
	for i := range nodes {
		d := 0
		for j := i; j >= 0; j = nodes[j].parent {
			d++
		}
		best = max(best, d)
	}
	return best
}

package complexity

import (
	"regexp"
	"sort"
	"strings"
)

// Kind is the growth class of a single loop's update step.
type Kind string

const (
	KindLinear  Kind = "linear"
	KindLog     Kind = "log"
	KindUnknown Kind = "unknown"
)

// loopNode is one loop header found in the cleaned text. Nodes live in a
// flat slice; parent is an index into that slice or -1 for roots.
type loopNode struct {
	keyword   string
	init      string
	condition string
	update    string

	iterator   string
	kind       Kind
	op         string
	operand    string
	bound      string
	descending bool

	start     int
	headerEnd int
	end       int
	parent    int
}

type headerPattern struct {
	keyword string
	re      *regexp.Regexp
	// bodyAtBrace means the match already consumed the opening brace.
	bodyAtBrace bool
	clauses     func(groups []string) (initClause, condition, update string)
}

func threeClauses(g []string) (string, string, string) {
	return strings.TrimSpace(g[1]), strings.TrimSpace(g[2]), strings.TrimSpace(g[3])
}

var headerPatterns = []headerPattern{
	{
		keyword: "for",
		re:      regexp.MustCompile(`\bfor\s*\(([^;)]*);([^;]*);([^)]*)\)`),
		clauses: threeClauses,
	},
	{
		// Go-style three-clause for without parentheses.
		keyword:     "for",
		re:          regexp.MustCompile(`\bfor\s+([^;{()]*);([^;{]*);([^{]*)\{`),
		bodyAtBrace: true,
		clauses:     threeClauses,
	},
	{
		keyword: "while",
		re:      regexp.MustCompile(`\bwhile\s*\(([^)]*)\)`),
		clauses: func(g []string) (string, string, string) {
			return "", strings.TrimSpace(g[1]), ""
		},
	},
}

var (
	initIteratorPattern      = regexp.MustCompile(`\b([a-z_]\w*)\s*:?=`)
	conditionIteratorPattern = regexp.MustCompile(`\b([a-z_]\w*)\s*(?:[<>]=?|!=|==)`)
	compoundUpdatePattern    = regexp.MustCompile(`(\+\+|--|\+=|-=|\*=|/=)\s*([a-z_]\w*|\d+)?`)
	constantPattern          = regexp.MustCompile(`^\d+$`)
)

// scanLoops finds every loop header, resolves body spans and links each
// node to its innermost enclosing loop.
func scanLoops(clean string) []loopNode {
	var nodes []loopNode
	for _, p := range headerPatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(clean, -1) {
			groups := make([]string, len(m)/2)
			for g := range groups {
				if m[2*g] >= 0 {
					groups[g] = clean[m[2*g]:m[2*g+1]]
				}
			}
			initClause, condition, update := p.clauses(groups)
			headerEnd := m[1]
			if p.bodyAtBrace {
				headerEnd = m[1] - 1
			}
			nodes = append(nodes, loopNode{
				keyword:   p.keyword,
				init:      initClause,
				condition: condition,
				update:    update,
				start:     m[0],
				headerEnd: headerEnd,
				parent:    -1,
			})
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].start < nodes[j].start })

	resolveBodies(clean, nodes)
	linkParents(nodes)
	for i := range nodes {
		classify(clean, nodes, i)
	}
	return nodes
}

// resolveBodies walks nodes from last to first so that a braceless loop whose
// body is itself a loop can reuse the inner loop's end.
func resolveBodies(clean string, nodes []loopNode) {
	byStart := make(map[int]int, len(nodes))
	for i, n := range nodes {
		byStart[n.start] = i
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		nodes[i].end = findLoopBodyEnd(clean, nodes[i].headerEnd, func(pos int) (int, bool) {
			if j, ok := byStart[pos]; ok && j > i {
				return nodes[j].end, true
			}
			return 0, false
		})
	}
}

func findLoopBodyEnd(clean string, headerEnd int, nestedEnd func(pos int) (int, bool)) int {
	i := headerEnd
	for i < len(clean) && clean[i] == ' ' {
		i++
	}
	if i >= len(clean) {
		return len(clean)
	}
	if clean[i] != '{' {
		if end, ok := nestedEnd(i); ok {
			return end
		}
		if semi := strings.IndexByte(clean[i:], ';'); semi >= 0 {
			return i + semi
		}
		return len(clean)
	}

	depth := 0
	for idx := i; idx < len(clean); idx++ {
		switch clean[idx] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return idx
			}
		}
	}
	return len(clean)
}

// linkParents picks, for every node, the enclosing loop that starts last.
func linkParents(nodes []loopNode) {
	for i := range nodes {
		parent := -1
		for j := range nodes {
			if j == i {
				continue
			}
			if nodes[j].start < nodes[i].start && nodes[j].end >= nodes[i].end {
				if parent == -1 || nodes[j].start > nodes[parent].start {
					parent = j
				}
			}
		}
		nodes[i].parent = parent
	}
}

func classify(clean string, nodes []loopNode, i int) {
	n := &nodes[i]
	if n.keyword == "for" {
		n.iterator = firstGroup(initIteratorPattern, n.init)
		n.op, n.operand = findForUpdate(n.update, n.iterator)
	} else {
		n.iterator = firstGroup(conditionIteratorPattern, n.condition)
		if n.iterator != "" {
			body := ""
			if n.headerEnd < n.end {
				body = clean[n.headerEnd:n.end]
			}
			n.op, n.operand = findIteratorUpdate(body, n.iterator)
			if n.op == "" {
				n.op, n.operand = findIteratorUpdate(clean, n.iterator)
			}
		}
	}
	n.kind = kindOf(n.op)
	n.descending = descendingOps[n.op]
	n.bound = extractBoundToken(n.condition, n.iterator)

	if n.descending && (n.bound == "" || isConstant(n.bound)) {
		n.bound = startValue(clean, n)
	}
}

func findForUpdate(update, iterator string) (op, operand string) {
	if m := compoundUpdatePattern.FindStringSubmatch(update); m != nil {
		return m[1], m[2]
	}
	if iterator == "" {
		return "", ""
	}
	if m := assignmentUpdate(iterator).FindStringSubmatch(update); m != nil {
		return m[1], m[2]
	}
	return "", ""
}

// findIteratorUpdate looks for v = v OP x, v OP= x, v++ or ++v in scope.
func findIteratorUpdate(scope, v string) (op, operand string) {
	q := regexp.QuoteMeta(v)
	if m := assignmentUpdate(v).FindStringSubmatch(scope); m != nil {
		return m[1], m[2]
	}
	compound := regexp.MustCompile(`\b` + q + `\s*(\+\+|--|\+=|-=|\*=|/=)\s*([a-z_]\w*|\d+)?`)
	if m := compound.FindStringSubmatch(scope); m != nil {
		return m[1], m[2]
	}
	prefix := regexp.MustCompile(`(\+\+|--)\s*` + q + `\b`)
	if m := prefix.FindStringSubmatch(scope); m != nil {
		return m[1], ""
	}
	return "", ""
}

func assignmentUpdate(v string) *regexp.Regexp {
	q := regexp.QuoteMeta(v)
	return regexp.MustCompile(`\b` + q + `\s*=\s*` + q + `\s*([+\-*/])\s*([a-z_]\w*|\d+)`)
}

var (
	linearOps     = map[string]bool{"++": true, "--": true, "+=": true, "-=": true, "+": true, "-": true}
	logOps        = map[string]bool{"*=": true, "/=": true, "*": true, "/": true}
	descendingOps = map[string]bool{"--": true, "-=": true, "-": true, "/=": true, "/": true}
)

func kindOf(op string) Kind {
	switch {
	case linearOps[op]:
		return KindLinear
	case logOps[op]:
		return KindLog
	default:
		return KindUnknown
	}
}

// extractBoundToken returns the operand compared against the iterator.
func extractBoundToken(condition, iterator string) string {
	if iterator == "" {
		return ""
	}
	q := regexp.QuoteMeta(iterator)
	lhs := regexp.MustCompile(`\b` + q + `\b\s*(?:<=|>=|<|>)\s*([a-z_]\w*|\d+)`)
	if m := lhs.FindStringSubmatch(condition); m != nil {
		return m[1]
	}
	rhs := regexp.MustCompile(`([a-z_]\w*|\d+)\s*(?:<=|>=|<|>)\s*\b` + q + `\b`)
	if m := rhs.FindStringSubmatch(condition); m != nil {
		return m[1]
	}
	return ""
}

// startValue is the effective bound of a loop counting down towards a
// constant: whatever the iterator started from.
func startValue(clean string, n *loopNode) string {
	q := regexp.QuoteMeta(n.iterator)
	assign := regexp.MustCompile(`\b` + q + `\s*:?=\s*([a-z_]\w*|\d+)`)
	if n.keyword == "for" {
		if m := assign.FindStringSubmatch(n.init); m != nil {
			return m[1]
		}
		return "n"
	}
	start := ""
	for _, m := range assign.FindAllStringSubmatch(clean[:n.start], -1) {
		if m[1] != n.iterator {
			start = m[1]
		}
	}
	if start == "" {
		return "n"
	}
	return start
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func isConstant(bound string) bool {
	return bound != "" && constantPattern.MatchString(bound)
}

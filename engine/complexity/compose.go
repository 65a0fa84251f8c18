package complexity

import "fmt"

const (
	flagGeometric    = "Geometric summation detected for dependent linear bound."
	flagTriangular   = "Dependent linear bound detected (triangular-style growth)."
	flagDependentLog = "Dependent logarithmic bound detected."
)

// pathState accumulates growth along one root-to-leaf path of the forest.
type pathState struct {
	nExp   int
	logExp int
	flags  []string
}

// applyLoopRule folds one loop into the state inherited from its ancestors.
func applyLoopRule(node loopNode, state pathState, parent *loopNode) pathState {
	next := pathState{
		nExp:   state.nExp,
		logExp: state.logExp,
		flags:  append([]string(nil), state.flags...),
	}

	constant := isConstant(node.bound)
	boundN := node.bound == "n"
	dependent := parent != nil && parent.iterator != "" && node.bound == parent.iterator

	switch node.kind {
	case KindLinear:
		switch {
		case constant:
		case boundN:
			next.nExp++
		case dependent && parent.kind == KindLog:
			// Summing i over 1, 2, 4 ... n collapses to n, replacing one log factor.
			next.logExp = max(0, next.logExp-1)
			next.nExp++
			next.flags = append(next.flags, flagGeometric)
		case dependent:
			next.nExp++
			next.flags = append(next.flags, flagTriangular)
		default:
			next.nExp++
		}
	case KindLog:
		switch {
		case constant:
		case dependent:
			next.logExp++
			next.flags = append(next.flags, flagDependentLog)
		default:
			next.logExp++
		}
	default:
		next.nExp++
	}
	return next
}

// dominantPath walks every root-to-leaf path and returns the one with the
// largest (nExp, logExp). It returns nil when there are no loops.
func dominantPath(nodes []loopNode) *pathState {
	if len(nodes) == 0 {
		return nil
	}
	children := make([][]int, len(nodes))
	var roots []int
	for i, n := range nodes {
		if n.parent < 0 {
			roots = append(roots, i)
			continue
		}
		children[n.parent] = append(children[n.parent], i)
	}

	var best *pathState
	var walk func(i int, state pathState)
	walk = func(i int, state pathState) {
		var parent *loopNode
		if p := nodes[i].parent; p >= 0 {
			parent = &nodes[p]
		}
		next := applyLoopRule(nodes[i], state, parent)
		if len(children[i]) == 0 {
			if best == nil || next.nExp > best.nExp || (next.nExp == best.nExp && next.logExp > best.logExp) {
				leaf := next
				best = &leaf
			}
			return
		}
		for _, c := range children[i] {
			walk(c, next)
		}
	}
	for _, r := range roots {
		walk(r, pathState{})
	}
	return best
}

func formatComplexity(nExp, logExp int) string {
	nPart := powerTerm("n", nExp)
	logPart := powerTerm("log n", logExp)
	switch {
	case nPart == "" && logPart == "":
		return "O(1)"
	case nPart != "" && logPart != "":
		return fmt.Sprintf("O(%s * %s)", nPart, logPart)
	default:
		return fmt.Sprintf("O(%s%s)", nPart, logPart)
	}
}

// powerTerm renders base^exp, parenthesizing multi-word bases.
func powerTerm(base string, exp int) string {
	switch {
	case exp <= 0:
		return ""
	case exp == 1:
		return base
	case base == "n":
		return fmt.Sprintf("n^%d", exp)
	default:
		return fmt.Sprintf("(%s)^%d", base, exp)
	}
}

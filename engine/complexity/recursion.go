package complexity

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// recursionEstimate is the outcome of the self-call classifier.
type recursionEstimate struct {
	detected bool
	function string
	calls    int
	reason   string
	time     string
	space    string
}

// declarationPatterns are tried in order; capture group 1 is the name.
var declarationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bfunction\s+([a-z_]\w*)\s*\(`),
	regexp.MustCompile(`\bfunc\s+(?:\([^)]*\)\s*)?([a-z_]\w*)\s*\(`),
	regexp.MustCompile(`\bdef\s+([a-z_]\w*)\s*\(`),
	regexp.MustCompile(`\b(?:const|let|var)\s+([a-z_]\w*)\s*=\s*(?:async\s*)?(?:function\b|\([^)]*\)\s*=>|[a-z_]\w*\s*=>)`),
	regexp.MustCompile(`\b(?:int|long|float|double|char|bool|void|string|auto)\s+([a-z_]\w*)\s*\([^)]*\)\s*\{`),
}

var (
	divisiveArg    = regexp.MustCompile(`/(\d+)`)
	decrementalArg = regexp.MustCompile(`-\d+`)
)

type declaredFunction struct {
	name string
	// sites are the offsets of the name inside its declarations.
	sites map[int]bool
}

func findDeclarations(clean string) []declaredFunction {
	var out []declaredFunction
	index := map[string]int{}
	for _, re := range declarationPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(clean, -1) {
			name := clean[m[2]:m[3]]
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, declaredFunction{name: name, sites: map[int]bool{}})
			}
			out[i].sites[m[2]] = true
		}
	}
	return out
}

// analyzeRecursion picks the declared function with the most self-call sites
// and classifies it by how its arguments shrink.
func analyzeRecursion(clean string) recursionEstimate {
	var (
		bestName string
		bestArgs []string
		best     int
	)
	for _, fn := range findDeclarations(clean) {
		call := regexp.MustCompile(`\b` + regexp.QuoteMeta(fn.name) + `\s*\(([^)]*)\)`)
		calls := 0
		var args []string
		for _, m := range call.FindAllStringSubmatchIndex(clean, -1) {
			if fn.sites[m[0]] {
				continue
			}
			calls++
			if arg := strings.Join(strings.Fields(clean[m[2]:m[3]]), ""); arg != "" {
				args = append(args, arg)
			}
		}
		if calls > best {
			best, bestName, bestArgs = calls, fn.name, args
		}
	}
	if best == 0 {
		return recursionEstimate{}
	}
	return classifyRecursion(bestName, best, bestArgs)
}

func classifyRecursion(name string, calls int, args []string) recursionEstimate {
	est := recursionEstimate{detected: true, function: name, calls: calls}

	divisor := 0
	decrements := false
	for _, arg := range args {
		if m := divisiveArg.FindStringSubmatch(arg); m != nil && divisor == 0 {
			divisor, _ = strconv.Atoi(m[1])
		}
		if decrementalArg.MatchString(arg) {
			decrements = true
		}
	}

	switch {
	case calls >= 2 && divisor > 0:
		est.reason = fmt.Sprintf("T(n) = %dT(n/%d) + O(1)", calls, divisor)
		est.time = fmt.Sprintf("O(%s)", masterTerm(calls, divisor))
		est.space = "O(log n) stack depth likely"
	case calls == 1 && divisor > 0:
		est.reason = "Single recursive branch with divisive shrink"
		est.time = "O(log n)"
		est.space = "O(log n) stack depth likely"
	case calls >= 2 && decrements:
		est.reason = fmt.Sprintf("Branching recursion with decremental shrink (%d branches)", calls)
		est.time = fmt.Sprintf("O(%d^n)", calls)
		est.space = "O(n) stack depth likely"
	case calls == 1 && decrements:
		est.reason = "Single recursive branch with decremental shrink"
		est.time = "O(n)"
		est.space = "O(n) stack depth likely"
	default:
		est.reason = fmt.Sprintf("Recursive calls detected for function %s", name)
		est.time = "O(n) to O(2^n) depending on branching and shrink rate"
		est.space = "O(n) stack depth likely"
	}
	return est
}

// masterTerm renders n^(log a / log b), snapping to an integer exponent
// when within 0.05 of one.
func masterTerm(a, b int) string {
	exp := math.Log(float64(a)) / math.Log(float64(max(2, b)))
	rounded := math.Round(exp)
	var s string
	if math.Abs(exp-rounded) < 0.05 {
		s = strconv.Itoa(int(rounded))
	} else {
		s = strconv.FormatFloat(exp, 'f', 2, 64)
	}
	switch s {
	case "1":
		return "n"
	case "0":
		return "1"
	}
	return "n^" + s
}

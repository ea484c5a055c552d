package subtype

import (
	"context"
	"fmt"
	"regexp"
	"regexp/syntax"
	"sort"
	"strings"
)

// maxDFAStates bounds the subset-construction search. Patterns whose
// product automaton would need more states than this come back as
// ErrRegexUnsupported rather than running away (spec §5).
const maxDFAStates = 1 << 16

// unanchor rewrites a JSON Schema "pattern" string — matched by search,
// not full match — into an equivalent fully-anchored regex, so the rest
// of this file can reason about automata in terms of whole-string match.
func unanchor(pattern string) string {
	head := ".*"
	body := pattern
	if strings.HasPrefix(body, "^") {
		head = ""
		body = body[1:]
	}
	tail := ".*"
	if strings.HasSuffix(body, "$") && !strings.HasSuffix(body, `\$`) {
		tail = ""
		body = body[:len(body)-1]
	}
	return "^" + head + "(?:" + body + ")" + tail + "$"
}

func compileProg(pattern string) (*syntax.Prog, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &RegexPatternError{Pattern: pattern, Err: err}
	}
	re = re.Simplify()
	prog, err := syntax.Compile(re)
	if err != nil {
		return nil, &RegexPatternError{Pattern: pattern, Err: err}
	}
	return prog, nil
}

// breakpoints collects the rune-range boundaries appearing in either
// program's InstRune/InstRune1 instructions, plus '\n' (InstRuneAnyNotNL
// always treats it specially). The resulting sorted, deduped set defines
// a symbolic alphabet: one representative rune per equivalence class is
// enough to simulate the NFA, since no instruction in either program can
// distinguish between two runes in the same class.
func breakpoints(progs ...*syntax.Prog) []rune {
	set := map[rune]bool{'\n': true, '\n' + 1: true, 0: true}
	for _, p := range progs {
		for _, inst := range p.Inst {
			if inst.Op != syntax.InstRune && inst.Op != syntax.InstRune1 {
				continue
			}
			for i := 0; i+1 < len(inst.Rune); i += 2 {
				set[inst.Rune[i]] = true
				if inst.Rune[i+1] < 0x10FFFF {
					set[inst.Rune[i+1]+1] = true
				}
			}
			if len(inst.Rune) == 1 {
				set[inst.Rune[0]] = true
				if inst.Rune[0] < 0x10FFFF {
					set[inst.Rune[0]+1] = true
				}
			}
		}
	}
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type stateSet []uint32

func (s stateSet) key() string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}

func epsilonClosure(prog *syntax.Prog, seed []uint32) stateSet {
	seen := map[uint32]bool{}
	var stack []uint32
	stack = append(stack, seed...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[s] {
			continue
		}
		seen[s] = true
		inst := prog.Inst[s]
		switch inst.Op {
		case syntax.InstAlt, syntax.InstAltMatch:
			stack = append(stack, inst.Out, inst.Arg)
		case syntax.InstCapture, syntax.InstNop, syntax.InstEmptyWidth:
			stack = append(stack, inst.Out)
		}
	}
	out := make(stateSet, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func isAccepting(prog *syntax.Prog, states stateSet) bool {
	for _, s := range states {
		if prog.Inst[s].Op == syntax.InstMatch {
			return true
		}
	}
	return false
}

func step(prog *syntax.Prog, states stateSet, r rune) stateSet {
	var raw []uint32
	for _, s := range states {
		inst := &prog.Inst[s]
		switch inst.Op {
		case syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
			if inst.MatchRune(r) {
				raw = append(raw, inst.Out)
			}
		}
	}
	if len(raw) == 0 {
		return nil
	}
	return epsilonClosure(prog, raw)
}

// dfa is a deterministic automaton over the symbolic alphabet computed
// for a particular pair of patterns being compared or intersected.
type dfa struct {
	numStates int
	start     int
	accept    []bool
	trans     [][]int // trans[state][symbolIndex] = next state, or -1
}

func buildDFA(ctx context.Context, prog *syntax.Prog, alphabet []rune) (*dfa, error) {
	start := epsilonClosure(prog, []uint32{uint32(prog.Start)})
	ids := map[string]int{start.key(): 0}
	sets := []stateSet{start}
	d := &dfa{start: 0}
	d.accept = append(d.accept, isAccepting(prog, start))
	d.trans = append(d.trans, make([]int, len(alphabet)))

	for i := 0; i < len(sets); i++ {
		if err := ctx.Err(); err != nil {
			return nil, &RegexPatternError{Err: ErrDecisionTimeout}
		}
		if len(sets) > maxDFAStates {
			return nil, &RegexPatternError{Err: ErrRegexUnsupported}
		}
		cur := sets[i]
		for si, r := range alphabet {
			next := step(prog, cur, r)
			if len(next) == 0 {
				d.trans[i][si] = -1
				continue
			}
			key := next.key()
			id, ok := ids[key]
			if !ok {
				id = len(sets)
				ids[key] = id
				sets = append(sets, next)
				d.accept = append(d.accept, isAccepting(prog, next))
				d.trans = append(d.trans, make([]int, len(alphabet)))
			}
			d.trans[i][si] = id
		}
	}
	d.numStates = len(sets)
	return d, nil
}

// totalize adds an explicit dead (non-accepting, self-looping) state so
// every (state, symbol) pair has a defined transition. Required before
// complementing: complement of a partial DFA is not well-defined.
func totalize(d *dfa) *dfa {
	dead := d.numStates
	out := &dfa{
		numStates: d.numStates + 1,
		start:     d.start,
		accept:    append(append([]bool{}, d.accept...), false),
		trans:     make([][]int, d.numStates+1),
	}
	width := 0
	if d.numStates > 0 {
		width = len(d.trans[0])
	}
	for s := 0; s < d.numStates; s++ {
		row := make([]int, width)
		for sym := 0; sym < width; sym++ {
			if d.trans[s][sym] < 0 {
				row[sym] = dead
			} else {
				row[sym] = d.trans[s][sym]
			}
		}
		out.trans[s] = row
	}
	deadRow := make([]int, width)
	for sym := range deadRow {
		deadRow[sym] = dead
	}
	out.trans[dead] = deadRow
	return out
}

func complement(d *dfa) *dfa {
	t := totalize(d)
	out := &dfa{numStates: t.numStates, start: t.start, trans: t.trans, accept: make([]bool, t.numStates)}
	for i, a := range t.accept {
		out.accept[i] = !a
	}
	return out
}

// product builds the synchronized product of two totalized DFAs over the
// same alphabet, with acceptance decided by combine.
func product(ctx context.Context, a, b *dfa, combine func(aAccept, bAccept bool) bool) *dfa {
	width := 0
	if a.numStates > 0 {
		width = len(a.trans[0])
	}
	type pair struct{ a, b int }
	ids := map[pair]int{{a.start, b.start}: 0}
	queue := []pair{{a.start, b.start}}
	out := &dfa{start: 0}
	out.accept = append(out.accept, combine(a.accept[a.start], b.accept[b.start]))
	out.trans = append(out.trans, make([]int, width))

	for i := 0; i < len(queue); i++ {
		if ctx.Err() != nil {
			break
		}
		if len(queue) > maxDFAStates {
			break
		}
		cur := queue[i]
		for sym := 0; sym < width; sym++ {
			na, nb := a.trans[cur.a][sym], b.trans[cur.b][sym]
			p := pair{na, nb}
			id, ok := ids[p]
			if !ok {
				id = len(queue)
				ids[p] = id
				queue = append(queue, p)
				out.accept = append(out.accept, combine(a.accept[na], b.accept[nb]))
				out.trans = append(out.trans, make([]int, width))
			}
			out.trans[i][sym] = id
		}
	}
	out.numStates = len(queue)
	return out
}

func isEmptyDFA(d *dfa) bool {
	if d.numStates == 0 {
		return true
	}
	seen := map[int]bool{d.start: true}
	queue := []int{d.start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if d.accept[s] {
			return false
		}
		for _, n := range d.trans[s] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return true
}

// regexMatches reports whether a pattern matches somewhere within a
// concrete string, i.e. Draft-4 "pattern" semantics (search, not full
// match) for a literal enum/const value.
func regexMatches(pattern, s string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, &RegexPatternError{Pattern: pattern, Err: err}
	}
	return re.MatchString(s), nil
}

// regexContains reports whether L(p1) ⊆ L(p2): every string the first
// pattern matches is also matched by the second. It decides this by
// building L(p1) ∩ ¬L(p2) and checking that product is empty. ctx bounds
// the subset-construction work (spec §5): a deadline set via
// DeadlineOption is observed inside buildDFA/product, not just polled
// after the fact, since those are the only unbounded steps in a decision.
func regexContains(ctx context.Context, p1, p2 string) (bool, error) {
	prog1, err := compileProg(unanchor(p1))
	if err != nil {
		return false, err
	}
	prog2, err := compileProg(unanchor(p2))
	if err != nil {
		return false, err
	}
	alphabet := breakpoints(prog1, prog2)
	d1, err := buildDFA(ctx, prog1, alphabet)
	if err != nil {
		return false, err
	}
	d2, err := buildDFA(ctx, prog2, alphabet)
	if err != nil {
		return false, err
	}
	diff := product(ctx, totalize(d1), complement(d2), func(a, b bool) bool { return a && b })
	return isEmptyDFA(diff), nil
}

// regexIntersection computes a pattern whose language is L(p1) ∩ L(p2).
// empty reports whether that language is ∅, in which case pattern is "".
func regexIntersection(ctx context.Context, p1, p2 string) (pattern string, empty bool, err error) {
	prog1, err := compileProg(unanchor(p1))
	if err != nil {
		return "", false, err
	}
	prog2, err := compileProg(unanchor(p2))
	if err != nil {
		return "", false, err
	}
	alphabet := breakpoints(prog1, prog2)
	d1, err := buildDFA(ctx, prog1, alphabet)
	if err != nil {
		return "", false, err
	}
	d2, err := buildDFA(ctx, prog2, alphabet)
	if err != nil {
		return "", false, err
	}
	inter := product(ctx, totalize(d1), totalize(d2), func(a, b bool) bool { return a && b })
	if isEmptyDFA(inter) {
		return "", true, nil
	}
	return dfaToRegex(inter, alphabet), false, nil
}

// regexIsFinite reports whether a pattern matches finitely many strings:
// true iff no cycle in its DFA lies on a path from the start state to an
// accepting state.
func regexIsFinite(ctx context.Context, p string) (bool, error) {
	_, finite, err := finitePatternBound(ctx, p)
	return finite, err
}

// finitePatternBound reports whether pattern denotes a finite language and,
// if so, the length of its longest matching string. Wired into
// stringContains (spec §4.9): a pattern with no explicit maxLength keyword
// can still denote a length-bounded language, and that implicit bound must
// be honored when checking containment against a right-hand maxLength.
// Built by reusing the same DFA buildDFA already constructs for
// containment, rather than a separate enumeration pass.
func finitePatternBound(ctx context.Context, pattern string) (longest int, finite bool, err error) {
	prog, err := compileProg(unanchor(pattern))
	if err != nil {
		return 0, false, err
	}
	alphabet := breakpoints(prog)
	d, err := buildDFA(ctx, prog, alphabet)
	if err != nil {
		return 0, false, err
	}
	live := coReachable(d)
	if hasCycleAmong(d, live) {
		return 0, false, nil
	}
	return longestAcceptedLength(d, live), true, nil
}

// longestAcceptedLength returns the length of the longest string accepted
// by a DFA, restricted to co-reachable (live) states. Safe to compute via
// plain memoized DFS: the caller already confirmed no cycle exists among
// live states, so this recursion always terminates.
func longestAcceptedLength(d *dfa, live []bool) int {
	memo := make([]int, d.numStates)
	done := make([]bool, d.numStates)
	var visit func(s int) int
	visit = func(s int) int {
		if done[s] {
			return memo[s]
		}
		done[s] = true
		best := -1
		if d.accept[s] {
			best = 0
		}
		for _, n := range d.trans[s] {
			if n < 0 || !live[n] {
				continue
			}
			if l := visit(n); l >= 0 && l+1 > best {
				best = l + 1
			}
		}
		memo[s] = best
		return best
	}
	return visit(d.start)
}

func coReachable(d *dfa) []bool {
	live := make([]bool, d.numStates)
	changed := true
	for changed {
		changed = false
		for s := 0; s < d.numStates; s++ {
			if live[s] {
				continue
			}
			if d.accept[s] {
				live[s] = true
				changed = true
				continue
			}
			for _, n := range d.trans[s] {
				if n >= 0 && live[n] {
					live[s] = true
					changed = true
					break
				}
			}
		}
	}
	return live
}

func hasCycleAmong(d *dfa, live []bool) bool {
	const white, gray, black = 0, 1, 2
	color := make([]int, d.numStates)
	var visit func(s int) bool
	visit = func(s int) bool {
		color[s] = gray
		for _, n := range d.trans[s] {
			if n < 0 || !live[n] {
				continue
			}
			if color[n] == gray {
				return true
			}
			if color[n] == white && visit(n) {
				return true
			}
		}
		color[s] = black
		return false
	}
	for s := 0; s < d.numStates; s++ {
		if live[s] && color[s] == white {
			if visit(s) {
				return true
			}
		}
	}
	return false
}

// dfaToRegex reconstructs a regex for a DFA's language via classic GNFA
// state elimination (Kleene's theorem). Produced patterns are not meant
// to resemble anything a human would write; they only need to denote the
// right language for downstream meet reasoning.
func dfaToRegex(d *dfa, alphabet []rune) string {
	n := d.numStates
	start, final := n, n+1
	edge := make(map[[2]int]string)
	set := func(i, j int, expr string) {
		if cur, ok := edge[[2]int{i, j}]; ok {
			edge[[2]int{i, j}] = alt(cur, expr)
		} else {
			edge[[2]int{i, j}] = expr
		}
	}

	set(start, d.start, "")
	for s := 0; s < n; s++ {
		if d.accept[s] {
			set(s, final, "")
		}
		for sym, next := range d.trans[s] {
			if next < 0 {
				continue
			}
			// Each symbol stands for the whole rune class starting at its
			// breakpoint, up to (not including) the next one.
			lo, hi := alphabet[sym], rune(0x10FFFF)
			if sym+1 < len(alphabet) {
				hi = alphabet[sym+1] - 1
			}
			if lo == hi {
				set(s, next, quoteRune(lo))
			} else {
				set(s, next, fmt.Sprintf(`[\x{%x}-\x{%x}]`, lo, hi))
			}
		}
	}

	nodes := make([]int, 0, n)
	for s := 0; s < n; s++ {
		nodes = append(nodes, s)
	}

	get := func(i, j int) (string, bool) {
		v, ok := edge[[2]int{i, j}]
		return v, ok
	}

	for _, k := range nodes {
		loop, hasLoop := get(k, k)
		loopStar := ""
		if hasLoop {
			loopStar = star(loop)
		}
		for i := 0; i <= n+1; i++ {
			if i == k {
				continue
			}
			rik, ok1 := get(i, k)
			if !ok1 {
				continue
			}
			for j := 0; j <= n+1; j++ {
				if j == k {
					continue
				}
				rkj, ok2 := get(k, j)
				if !ok2 {
					continue
				}
				expr := rik + loopStar + rkj
				set(i, j, expr)
			}
		}
		delete(edge, [2]int{k, k})
		for i := 0; i <= n+1; i++ {
			delete(edge, [2]int{i, k})
			delete(edge, [2]int{k, i})
		}
	}

	result, ok := get(start, final)
	if !ok {
		result = "(?:a^)" // unreachable: caller already checked non-emptiness
	}
	return "^(?:" + result + ")$"
}

func alt(a, b string) string {
	if a == b {
		return a
	}
	return "(?:" + a + "|" + b + ")"
}

func star(a string) string {
	if a == "" {
		return ""
	}
	return "(?:" + a + ")*"
}

func quoteRune(r rune) string {
	return syntax.QuoteMeta(string(r))
}

package sat

import (
	"math/rand"
	"strings"
)

// HeuristicKind enumerates the closed set of branching policies from
// spec.md §4.6. The enumeration is closed: heuristics are dispatched as a
// tagged variant rather than by runtime string comparison per call (spec.md
// §9).
type HeuristicKind int

const (
	Ordered HeuristicKind = iota
	Random
	DLIS
	RDLIS
	DLCS
	RDLCS
	TwoClause
	MOM
	JW
	VSIDS
)

func (k HeuristicKind) String() string {
	switch k {
	case Ordered:
		return "Ordered"
	case Random:
		return "Random"
	case DLIS:
		return "DLIS"
	case RDLIS:
		return "RDLIS"
	case DLCS:
		return "DLCS"
	case RDLCS:
		return "RDLCS"
	case TwoClause:
		return "Two-Clause"
	case MOM:
		return "MOM"
	case JW:
		return "JW"
	case VSIDS:
		return "VSIDS"
	default:
		return "Unknown"
	}
}

// ParseHeuristicKind maps a heuristic name (as accepted on the CLI, per
// spec.md §6) to its HeuristicKind. Matching is case-insensitive and accepts
// the "2-Clause" spelling used by the original benchmark driver alongside
// "TwoClause".
func ParseHeuristicKind(name string) (HeuristicKind, bool) {
	switch strings.ToLower(name) {
	case "ordered":
		return Ordered, true
	case "random":
		return Random, true
	case "dlis":
		return DLIS, true
	case "rdlis":
		return RDLIS, true
	case "dlcs":
		return DLCS, true
	case "rdlcs":
		return RDLCS, true
	case "twoclause", "two-clause", "2-clause":
		return TwoClause, true
	case "mom":
		return MOM, true
	case "jw":
		return JW, true
	case "vsids":
		return VSIDS, true
	default:
		return 0, false
	}
}

// Heuristic is the capability set exposed by a branching policy (spec.md
// §9): choose the next decision literal, and be told about learnt clauses
// and undone variables so that policies with persistent state (VSIDS) can
// maintain it. Stateless policies implement Observe/Undo/Reset as no-ops.
type Heuristic interface {
	Name() string
	Choose(s *Solver) Literal
	Observe(c *Clause)
	Grow()
	Undo(v int, lastValue LBool)
	Reset()
}

// NewHeuristic constructs the Heuristic for the given kind. numVars is the
// number of variables known at construction time (more may be added later
// via Grow). seed seeds the policies that need randomness (Random, RDLIS,
// RDLCS, Two-Clause's fallback).
func NewHeuristic(kind HeuristicKind, numVars int, seed int64, vsids VSIDSOptions) Heuristic {
	switch kind {
	case Ordered:
		return &orderedHeuristic{}
	case Random:
		return &randomHeuristic{rng: rand.New(rand.NewSource(seed))}
	case VSIDS:
		return newVSIDSHeuristic(numVars, vsids)
	default:
		return &scanHeuristic{kind: kind, rng: rand.New(rand.NewSource(seed))}
	}
}

// orderedHeuristic picks the lowest-id unassigned variable and defaults it
// to true.
type orderedHeuristic struct{}

func (h *orderedHeuristic) Name() string { return "Ordered" }

func (h *orderedHeuristic) Choose(s *Solver) Literal {
	for v := 0; v < s.trail.NumVariables(); v++ {
		if s.trail.VarValue(v) == Unknown {
			return PositiveLiteral(v)
		}
	}
	internalErrorf("Ordered.Choose called with no unassigned variable")
	return 0
}

func (h *orderedHeuristic) Observe(c *Clause)           {}
func (h *orderedHeuristic) Grow()                       {}
func (h *orderedHeuristic) Undo(v int, lastValue LBool) {}
func (h *orderedHeuristic) Reset()                      {}

// randomHeuristic picks a uniformly random unassigned variable and a
// uniformly random polarity.
type randomHeuristic struct {
	rng *rand.Rand
}

func (h *randomHeuristic) Name() string { return "Random" }

func (h *randomHeuristic) Choose(s *Solver) Literal {
	return chooseUniform(s, h.rng)
}

func (h *randomHeuristic) Observe(c *Clause)           {}
func (h *randomHeuristic) Grow()                       {}
func (h *randomHeuristic) Undo(v int, lastValue LBool) {}
func (h *randomHeuristic) Reset()                      {}

// chooseUniform picks a uniformly random unassigned variable (via reservoir
// sampling, so it works without tracking a free list) and a uniformly
// random polarity. Shared by randomHeuristic and Two-Clause's fallback.
func chooseUniform(s *Solver, rng *rand.Rand) Literal {
	chosen := -1
	count := 0
	for v := 0; v < s.trail.NumVariables(); v++ {
		if s.trail.VarValue(v) != Unknown {
			continue
		}
		count++
		if rng.Intn(count) == 0 {
			chosen = v
		}
	}
	if chosen < 0 {
		internalErrorf("chooseUniform called with no unassigned variable")
	}
	if rng.Intn(2) == 0 {
		return PositiveLiteral(chosen)
	}
	return NegativeLiteral(chosen)
}

// scanHeuristic implements every counting policy (DLIS, RDLIS, DLCS, RDLCS,
// Two-Clause, MOM, JW) as a single parameterized clause scan, since they
// all share the same "classify every pending clause, accumulate literal or
// variable scores, pick the maximum" shape and differ only in what they
// count and how ties are broken.
type scanHeuristic struct {
	kind HeuristicKind
	rng  *rand.Rand
}

func (h *scanHeuristic) Name() string { return h.kind.String() }

func (h *scanHeuristic) Observe(c *Clause)           {}
func (h *scanHeuristic) Grow()                       {}
func (h *scanHeuristic) Undo(v int, lastValue LBool) {}
func (h *scanHeuristic) Reset()                      {}

// pendingSize returns the number of currently-unassigned literals in c, and
// whether c is already satisfied (in which case it plays no part in
// branching).
func pendingSize(s *Solver, c *Clause) (satisfied bool, size int) {
	for _, l := range c.Literals() {
		switch s.LitValue(l) {
		case True:
			return true, 0
		case Unknown:
			size++
		}
	}
	return false, size
}

func (h *scanHeuristic) Choose(s *Solver) Literal {
	switch h.kind {
	case DLIS, RDLIS:
		return h.chooseByLiteralCount(s, -1)
	case DLCS, RDLCS:
		return h.chooseByVarSum(s, -1)
	case TwoClause:
		if l, ok := h.tryChooseByVarSum(s, 2); ok {
			return l
		}
		return chooseUniform(s, h.rng)
	case MOM:
		minSize := h.minPendingSize(s)
		return h.chooseByLiteralCount(s, minSize)
	case JW:
		return h.chooseByJW(s)
	default:
		internalErrorf("scanHeuristic: unsupported kind %v", h.kind)
		return 0
	}
}

// minPendingSize returns the size (in unassigned literals) of the smallest
// pending clause, used by MOM to restrict its literal count to that subset.
func (h *scanHeuristic) minPendingSize(s *Solver) int {
	min := -1
	s.store.All(func(c *Clause) bool {
		sat, size := pendingSize(s, c)
		if !sat && (min < 0 || size < min) {
			min = size
		}
		return true
	})
	return min
}

// chooseByLiteralCount scores every polarised literal by its occurrence
// count across pending clauses (restricted to clauses of exactly sizeFilter
// unassigned literals when sizeFilter >= 0, used by MOM; unrestricted
// otherwise, used by DLIS/RDLIS), then picks the maximum. For RDLIS the tie
// is broken uniformly at random; every other caller breaks ties by lowest
// literal id.
func (h *scanHeuristic) chooseByLiteralCount(s *Solver, sizeFilter int) Literal {
	counts := make([]int, 2*s.trail.NumVariables())
	s.store.All(func(c *Clause) bool {
		sat, size := pendingSize(s, c)
		if sat {
			return true
		}
		if sizeFilter >= 0 && size != sizeFilter {
			return true
		}
		for _, l := range c.Literals() {
			if s.LitValue(l) == Unknown {
				counts[l]++
			}
		}
		return true
	})
	return h.argmaxLiteral(s, counts)
}

// argmaxLiteral returns the literal with the highest score among
// unassigned variables, breaking ties uniformly at random for RDLIS and by
// lowest literal id otherwise.
func (h *scanHeuristic) argmaxLiteral(s *Solver, scores []int) Literal {
	best := Literal(-1)
	bestScore := -1
	nTies := 0
	for v := 0; v < s.trail.NumVariables(); v++ {
		if s.trail.VarValue(v) != Unknown {
			continue
		}
		for _, l := range [2]Literal{PositiveLiteral(v), NegativeLiteral(v)} {
			score := scores[l]
			switch {
			case score > bestScore:
				bestScore = score
				best = l
				nTies = 1
			case score == bestScore && h.kind == RDLIS:
				nTies++
				if h.rng.Intn(nTies) == 0 {
					best = l
				}
			}
		}
	}
	if best < 0 {
		internalErrorf("argmaxLiteral called with no unassigned variable")
	}
	return best
}

// chooseByVarSum scores every unassigned variable by the sum of its two
// literals' occurrence counts across pending clauses (restricted to
// clauses of exactly sizeFilter unassigned literals when sizeFilter >= 0),
// then picks the maximum; polarity is the sign of whichever literal
// contributed more. tryChooseByVarSum does the same and also reports
// ok=false if sizeFilter >= 0 and no clause matched (used by Two-Clause to
// detect "none" and fall back to random).
func (h *scanHeuristic) chooseByVarSum(s *Solver, sizeFilter int) Literal {
	l, _ := h.tryChooseByVarSum(s, sizeFilter)
	return l
}

func (h *scanHeuristic) tryChooseByVarSum(s *Solver, sizeFilter int) (Literal, bool) {
	posCounts := make([]int, s.trail.NumVariables())
	negCounts := make([]int, s.trail.NumVariables())
	matched := sizeFilter < 0
	s.store.All(func(c *Clause) bool {
		sat, size := pendingSize(s, c)
		if sat {
			return true
		}
		if sizeFilter >= 0 && size != sizeFilter {
			return true
		}
		matched = true
		for _, l := range c.Literals() {
			if s.LitValue(l) != Unknown {
				continue
			}
			if l.IsPositive() {
				posCounts[l.VarID()]++
			} else {
				negCounts[l.VarID()]++
			}
		}
		return true
	})
	if !matched {
		return 0, false
	}

	best := -1
	bestScore := -1
	nTies := 0
	random := h.kind == RDLCS
	for v := 0; v < s.trail.NumVariables(); v++ {
		if s.trail.VarValue(v) != Unknown {
			continue
		}
		score := posCounts[v] + negCounts[v]
		switch {
		case score > bestScore:
			bestScore = score
			best = v
			nTies = 1
		case score == bestScore && random:
			nTies++
			if h.rng.Intn(nTies) == 0 {
				best = v
			}
		}
	}
	if best < 0 {
		internalErrorf("chooseByVarSum called with no unassigned variable")
	}
	if posCounts[best] >= negCounts[best] {
		return PositiveLiteral(best), true
	}
	return NegativeLiteral(best), true
}

// chooseByJW scores every polarised literal by the Jeroslow-Wang weight
// (sum over the pending clauses containing it of 2^(-size)) and picks the
// maximum, breaking ties by lowest literal id.
func (h *scanHeuristic) chooseByJW(s *Solver) Literal {
	weights := make([]float64, 2*s.trail.NumVariables())
	s.store.All(func(c *Clause) bool {
		sat, size := pendingSize(s, c)
		if sat || size == 0 {
			return true
		}
		w := 1.0
		for i := 0; i < size; i++ {
			w /= 2
		}
		for _, l := range c.Literals() {
			if s.LitValue(l) == Unknown {
				weights[l] += w
			}
		}
		return true
	})

	best := Literal(-1)
	bestScore := -1.0
	for v := 0; v < s.trail.NumVariables(); v++ {
		if s.trail.VarValue(v) != Unknown {
			continue
		}
		for _, l := range [2]Literal{PositiveLiteral(v), NegativeLiteral(v)} {
			if weights[l] > bestScore {
				bestScore = weights[l]
				best = l
			}
		}
	}
	if best < 0 {
		internalErrorf("chooseByJW called with no unassigned variable")
	}
	return best
}

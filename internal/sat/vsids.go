package sat

import "github.com/rhartert/yagh"

// VSIDSOptions configures the VSIDS heuristic's persistent activity decay.
// spec.md §4.6/§9 documents the source's 0.3 decay as atypically aggressive
// and recommends exposing it as a parameter with a ~0.95 default.
type VSIDSOptions struct {
	// Decay is applied by dividing the bump increment by Decay after every
	// learnt clause (equivalent to multiplying every score by Decay, but
	// without touching each score individually). Must be in (0, 1].
	Decay float64

	// PhaseSaving, when true, remembers the last value each variable held
	// and proposes it again instead of always defaulting to true.
	PhaseSaving bool
}

// DefaultVSIDSOptions is the spec-recommended, non-aggressive default.
var DefaultVSIDSOptions = VSIDSOptions{
	Decay:       0.95,
	PhaseSaving: false,
}

// vsidsHeuristic is the only policy with persistent state across calls
// (spec.md §3's Heuristic state, §9's dispatch note): a per-variable
// activity score bumped on every learnt clause and periodically decayed, and
// a binary heap (github.com/rhartert/yagh, the teacher's own dependency)
// that always has the unassigned variable with the highest activity at its
// root.
type vsidsHeuristic struct {
	order *yagh.IntMap[float64]

	scores   []float64
	inc      float64
	decay    float64
	inHeap   []bool
	phases   []LBool
	phasings bool
}

func newVSIDSHeuristic(numVars int, opts VSIDSOptions) *vsidsHeuristic {
	v := &vsidsHeuristic{
		order:    yagh.New[float64](numVars),
		inc:      1,
		decay:    opts.Decay,
		phasings: opts.PhaseSaving,
	}
	for i := 0; i < numVars; i++ {
		v.Grow()
	}
	return v
}

func (v *vsidsHeuristic) Name() string { return "VSIDS" }

// Grow registers one new variable with zero activity, inserted into the
// order heap immediately (it starts unassigned).
func (v *vsidsHeuristic) Grow() {
	id := len(v.scores)
	v.scores = append(v.scores, 0)
	v.phases = append(v.phases, Unknown)
	v.inHeap = append(v.inHeap, true)
	v.order.GrowBy(1)
	v.order.Put(id, 0)
}

// Choose pops variables off the order heap until it finds one that is still
// unassigned (pops for already-assigned variables happen lazily: a variable
// assigned by unit propagation is left in the heap and skipped here rather
// than removed eagerly, since removal is only needed when the variable is
// actually the one about to be chosen).
func (v *vsidsHeuristic) Choose(s *Solver) Literal {
	for {
		top, ok := v.order.Pop()
		if !ok {
			internalErrorf("VSIDS: order heap exhausted with unassigned variables remaining")
		}
		v.inHeap[top.Elem] = false
		if s.trail.VarValue(top.Elem) != Unknown {
			continue
		}
		switch v.phases[top.Elem] {
		case False:
			return NegativeLiteral(top.Elem)
		default:
			return PositiveLiteral(top.Elem)
		}
	}
}

// Observe bumps the activity of every variable in the learnt clause, then
// decays all activities by increasing the bump increment (equivalent to,
// but cheaper than, multiplying every score by the decay factor).
func (v *vsidsHeuristic) Observe(c *Clause) {
	for _, l := range c.Literals() {
		v.bump(l.VarID())
	}
	v.inc /= v.decay
	if v.inc > 1e100 {
		v.rescale()
	}
}

func (v *vsidsHeuristic) bump(varID int) {
	v.scores[varID] += v.inc
	if v.inHeap[varID] {
		v.order.Put(varID, -v.scores[varID])
	}
	if v.scores[varID] > 1e100 {
		v.rescale()
	}
}

func (v *vsidsHeuristic) rescale() {
	v.inc *= 1e-100
	for id, sc := range v.scores {
		v.scores[id] = sc * 1e-100
		if v.inHeap[id] {
			v.order.Put(id, -v.scores[id])
		}
	}
}

// Undo makes variable v selectable again after it is unassigned by a
// backjump or restart, optionally remembering the value it held.
func (v *vsidsHeuristic) Undo(varID int, lastValue LBool) {
	if v.phasings {
		v.phases[varID] = lastValue
	}
	if !v.inHeap[varID] {
		v.inHeap[varID] = true
		v.order.Put(varID, -v.scores[varID])
	}
}

// Reset clears all activity, used when a restart policy asks for it.
func (v *vsidsHeuristic) Reset() {
	for id := range v.scores {
		v.scores[id] = 0
		v.phases[id] = Unknown
		if v.inHeap[id] {
			v.order.Put(id, 0)
		}
	}
	v.inc = 1
}

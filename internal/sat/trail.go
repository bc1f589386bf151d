package sat

// Trail is the ordered record of assignments together with the per-level
// boundaries that make "undo to level K" an O(|undone|) operation, per
// spec.md §3's Trail and Per-level-boundaries data model.
type Trail struct {
	// assigns is indexed by literal (2*v for positive, 2*v+1 for negative).
	assigns []LBool

	// level and reason are indexed by variable id.
	level  []int
	reason []*Clause

	// lits is the trail itself: literals in assignment order.
	lits []Literal

	// limits[i] is the trail index at which decision level i+1 was opened.
	limits []int
}

// NewTrail returns an empty Trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Grow adds the bookkeeping slots for one new variable.
func (t *Trail) Grow() {
	t.assigns = append(t.assigns, Unknown, Unknown)
	t.level = append(t.level, -1)
	t.reason = append(t.reason, nil)
}

// NumVariables returns the number of variables the trail has been grown to
// accommodate.
func (t *Trail) NumVariables() int {
	return len(t.level)
}

// Value returns the current truth value of literal l.
func (t *Trail) Value(l Literal) LBool {
	return t.assigns[l]
}

// VarValue returns the current truth value of variable v, as if queried via
// its positive literal.
func (t *Trail) VarValue(v int) LBool {
	return t.assigns[PositiveLiteral(v)]
}

// LevelOf returns the decision level at which variable v was assigned, or
// -1 if it is unassigned.
func (t *Trail) LevelOf(v int) int {
	return t.level[v]
}

// ReasonOf returns the clause that forced variable v's assignment, or nil
// if v is unassigned or was a decision.
func (t *Trail) ReasonOf(v int) *Clause {
	return t.reason[v]
}

// DecisionLevel returns the current decision level. Level 0 holds every
// assignment forced before any decision.
func (t *Trail) DecisionLevel() int {
	return len(t.limits)
}

// NumAssigned returns the number of variables currently assigned.
func (t *Trail) NumAssigned() int {
	return len(t.lits)
}

// Literals returns the trail's literals in assignment order. The caller
// must not mutate the returned slice.
func (t *Trail) Literals() []Literal {
	return t.lits
}

// LiteralsAtLevel returns the sub-slice of the trail assigned at the given
// decision level (1-indexed; level 0 is everything before the first
// limit).
func (t *Trail) LiteralsAtLevel(level int) []Literal {
	if level <= 0 {
		end := len(t.lits)
		if len(t.limits) > 0 {
			end = t.limits[0]
		}
		return t.lits[:end]
	}
	start := t.limits[level-1]
	end := len(t.lits)
	if level < len(t.limits) {
		end = t.limits[level]
	}
	return t.lits[start:end]
}

// Enqueue records that literal l is now true at the current decision level,
// with the given reason clause (nil for a decision). It returns false if l
// is already false (a conflicting assignment) and true otherwise (including
// when l was already true, which is a no-op).
//
// A variable already assigned the opposite value is reported by returning
// false, not by panicking. Enqueue panics with InternalError only when l's
// value reads Unknown while its variable still has a level recorded, i.e.
// the bookkeeping would be double-assigned.
func (t *Trail) Enqueue(l Literal, reason *Clause) bool {
	switch t.assigns[l] {
	case False:
		return false
	case True:
		return true
	}

	v := l.VarID()
	if t.level[v] != -1 {
		internalErrorf("assign on already-assigned variable %d", v+1)
	}

	t.assigns[l] = True
	t.assigns[l.Opposite()] = False
	t.level[v] = t.DecisionLevel()
	t.reason[v] = reason
	t.lits = append(t.lits, l)
	return true
}

// OpenLevel opens a new decision level, returning its number.
func (t *Trail) OpenLevel() int {
	t.limits = append(t.limits, len(t.lits))
	return t.DecisionLevel()
}

// PopToLevel undoes every assignment with level > level, invoking onUndo
// for each undone literal in reverse assignment order before clearing its
// bookkeeping. onUndo may be nil.
func (t *Trail) PopToLevel(level int, onUndo func(Literal)) {
	for t.DecisionLevel() > level {
		start := t.limits[len(t.limits)-1]
		for i := len(t.lits) - 1; i >= start; i-- {
			l := t.lits[i]
			v := l.VarID()
			if onUndo != nil {
				onUndo(l)
			}
			t.assigns[l] = Unknown
			t.assigns[l.Opposite()] = Unknown
			t.reason[v] = nil
			t.level[v] = -1
		}
		t.lits = t.lits[:start]
		t.limits = t.limits[:len(t.limits)-1]
	}
}

package sat

import "strings"

// Clause is an unordered, duplicate-free disjunction of literals with at
// least one element, stored as a watched-literal representation: the first
// two literals are kept as sentinels such that the clause can only become
// unit or falsified through one of them.
type Clause struct {
	activity float64

	// literals[0] and literals[1] are the watched literals. The clause must
	// contain at least two literals; unit clauses are never materialized (see
	// NewClause) and are enqueued directly instead.
	literals []Literal

	learnt bool

	// lbd is the literal block distance, an estimate of the clause's quality
	// used by ReduceDB to decide which learnt clauses to keep.
	lbd int

	// protected clauses survive a ReduceDB pass regardless of activity/lbd.
	protected bool
}

// newClause allocates a Clause from a pre-validated, deduplicated literal
// slice. NewClause only calls it with at least two literals.
func newClause(literals []Literal, learnt bool) *Clause {
	c := &Clause{learnt: learnt}
	c.literals = make([]Literal, len(literals))
	copy(c.literals, literals)
	return c
}

// NewClause constructs a Clause for the given (possibly non-canonical)
// literal slice. It returns (nil, true) if the clause is trivially
// satisfied (tautology, or already true under the current assignment) or if
// it was a unit clause (possibly after dropping literals already false at
// the root) whose single forced literal was enqueued directly; it returns (nil, false) if the clause is an unsatisfiable empty
// clause. tmpLiterals is mutated in place (original clauses only; learnt
// clauses are assumed to already be canonical and level-ordered by the
// analyzer).
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // already satisfied at the root
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(tmpLiterals[0], nil)
	default:
		c := newClause(tmpLiterals, learnt)

		if learnt {
			// Move the literal assigned at the highest decision level into
			// position 1 so that the two watched literals are the two most
			// recently falsified ones; this makes the learnt clause unit
			// immediately after the backjump that follows.
			maxLevel := s.levelOf(c.literals[1].VarID())
			swap := 1
			for i := 2; i < len(c.literals); i++ {
				if lvl := s.levelOf(c.literals[i].VarID()); lvl > maxLevel {
					maxLevel = lvl
					swap = i
				}
			}
			c.literals[swap], c.literals[1] = c.literals[1], c.literals[swap]
			c.lbd = c.computeLBD(s)
		}

		s.Watch(c, c.literals[0].Opposite(), c.literals[1])
		s.Watch(c, c.literals[1].Opposite(), c.literals[0])

		return c, true
	}
}

// computeLBD returns the number of distinct decision levels represented in
// the clause's literals, the standard Glucose-style clause-quality metric.
func (c *Clause) computeLBD(s *Solver) int {
	var seen map[int]struct{} = make(map[int]struct{}, len(c.literals))
	for _, l := range c.literals {
		seen[s.levelOf(l.VarID())] = struct{}{}
	}
	return len(seen)
}

// locked reports whether c is the reason for the current assignment of its
// first watched literal's variable; a locked clause cannot be deleted by
// ReduceDB because doing so would strand a trail entry without a reason.
func (c *Clause) locked(s *Solver) bool {
	return s.reasonOf(c.literals[0].VarID()) == c
}

// Remove detaches c from both of its watch lists.
func (c *Clause) Remove(s *Solver) {
	s.Unwatch(c, c.literals[0].Opposite())
	s.Unwatch(c, c.literals[1].Opposite())
}

// Simplify drops literals falsified at the root level and reports whether
// the clause is now satisfied at the root (in which case the caller should
// remove it entirely).
func (c *Clause) Simplify(s *Solver) bool {
	j := 0
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case True:
			return true
		case False:
			// drop
		case Unknown:
			c.literals[j] = l
			j++
		}
	}
	c.literals = c.literals[:j]
	return false
}

// Propagate is invoked when literal l (one of c's two watched literals, or
// rather its opposite) has just become true. It restores the watched-literal
// invariant and, if no other unassigned or true literal can be found to
// watch, enqueues the forced literal (or reports a conflict by returning
// false when that literal is already false).
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], opp
	}

	if s.LitValue(c.literals[0]) == True {
		s.Watch(c, l, c.literals[0])
		return true
	}

	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			s.Watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	s.Watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

// ExplainConflict returns the negation of every literal in c, used by the
// conflict analyzer when c is the falsified clause itself.
func (c *Clause) ExplainConflict() []Literal {
	out := make([]Literal, len(c.literals))
	for i, l := range c.literals {
		out[i] = l.Opposite()
	}
	return out
}

// ExplainAssign returns the negation of every literal in c other than the
// one it forced (always literals[0]), used by the conflict analyzer when c
// is the reason for a propagated literal.
func (c *Clause) ExplainAssign() []Literal {
	out := make([]Literal, len(c.literals)-1)
	for i, l := range c.literals[1:] {
		out[i] = l.Opposite()
	}
	return out
}

// Literals returns the clause's literals. The caller must not mutate the
// returned slice.
func (c *Clause) Literals() []Literal {
	return c.literals
}

// Learnt reports whether c was derived during search rather than loaded
// from the original instance.
func (c *Clause) Learnt() bool {
	return c.learnt
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

package sat

import "strconv"

// ClauseStore owns the original and learnt clauses of a solve. Clauses are
// set-semantic: adding the same learnt clause twice (by canonical literal
// content) stores it once, per the Data Model's "clause store" contract.
type ClauseStore struct {
	originals []*Clause
	learnts   []*Clause
	seen      map[string]struct{}
}

// NewClauseStore returns an empty ClauseStore.
func NewClauseStore() *ClauseStore {
	return &ClauseStore{seen: make(map[string]struct{})}
}

// canonicalKey returns a representation of a clause's literal content that
// is independent of literal order, used to de-duplicate learnt clauses.
func canonicalKey(literals []Literal) string {
	sorted := make([]int, len(literals))
	for i, l := range literals {
		sorted[i] = int(l)
	}
	// Insertion sort: learnt clauses are short in the overwhelming majority
	// of cases, so this avoids pulling in sort.Slice's interface overhead.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	b := make([]byte, 0, len(sorted)*4)
	for _, v := range sorted {
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, ',')
	}
	return string(b)
}

// AddOriginal records c as one of the instance's original clauses. c may be
// nil (when the clause was trivially satisfied or unit and never
// materialized); the call is then a no-op.
func (cs *ClauseStore) AddOriginal(c *Clause) {
	if c == nil {
		return
	}
	cs.originals = append(cs.originals, c)
}

// AddLearnt records c as a learnt clause unless a clause with the same
// literal content is already present, in which case it reports false and
// does not store c; c is still on its watch lists, so the caller detaches
// it with c.Remove.
func (cs *ClauseStore) AddLearnt(c *Clause) bool {
	if c == nil {
		return true
	}
	key := canonicalKey(c.literals)
	if _, dup := cs.seen[key]; dup {
		return false
	}
	cs.seen[key] = struct{}{}
	cs.learnts = append(cs.learnts, c)
	return true
}

// removeLearntAt deletes the learnt clause at index i (as returned while
// iterating Learnts()) from the store, without detaching its watchers —
// callers must call c.Remove(s) first.
func (cs *ClauseStore) removeLearntAt(i int) {
	c := cs.learnts[i]
	delete(cs.seen, canonicalKey(c.literals))
	last := len(cs.learnts) - 1
	cs.learnts[i] = cs.learnts[last]
	cs.learnts = cs.learnts[:last]
}

// Originals returns the instance's original clauses. The caller must not
// mutate the returned slice.
func (cs *ClauseStore) Originals() []*Clause {
	return cs.originals
}

// Learnts returns the clauses learnt so far. The caller must not mutate the
// returned slice.
func (cs *ClauseStore) Learnts() []*Clause {
	return cs.learnts
}

// NumOriginals returns the number of original clauses.
func (cs *ClauseStore) NumOriginals() int {
	return len(cs.originals)
}

// NumLearnts returns the number of learnt clauses currently retained.
func (cs *ClauseStore) NumLearnts() int {
	return len(cs.learnts)
}

// All calls yield on every clause (original, then learnt) currently in the
// store, stopping early if yield returns false. It is used by the counting heuristics that need
// to scan the full pending clause set.
func (cs *ClauseStore) All(yield func(*Clause) bool) {
	for _, c := range cs.originals {
		if !yield(c) {
			return
		}
	}
	for _, c := range cs.learnts {
		if !yield(c) {
			return
		}
	}
}

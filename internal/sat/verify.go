package sat

// Verify independently re-checks the current assignment against every
// original clause (spec.md §4.10), without relying on the watched-literal
// state the search maintains. Solve calls this before returning a True
// verdict; a failure there is an InternalError, never a verdict change.
func (s *Solver) Verify() bool {
	for _, c := range s.store.Originals() {
		satisfied := false
		for _, l := range c.Literals() {
			if s.LitValue(l) == True {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

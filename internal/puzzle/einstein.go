// Package puzzle encodes the Einstein (zebra) logic puzzle as a CNF formula
// and decodes a solved model back into house assignments. It is a worked
// example of feeding the solver and has no access to solver internals: it
// only produces plain integer clauses in DIMACS convention (positive for
// the literal, negative for its negation), ported from
// original_source/main/einstein.py.
package puzzle

import "fmt"

// category names one of the five attributes assigned to each house, in the
// order the original puzzle encoder numbers variables.
type category struct {
	name   string
	values []string
}

var categories = []category{
	{"colour", []string{"red", "green", "white", "yellow", "blue"}},
	{"nationality", []string{"Brit", "Swede", "Dane", "Norwegian", "German"}},
	{"beverage", []string{"tea", "coffee", "milk", "beer", "water"}},
	{"cigar", []string{"Pall Mall", "Dunhill", "Blends", "Bluemasters", "Prince"}},
	{"pet", []string{"dogs", "birds", "cats", "horse", "fish"}},
}

// NumHouses and NumVariables are fixed by the puzzle's five categories of
// five values each, assigned across five houses.
const NumHouses = 5

var NumVariables = len(categories) * 5 * NumHouses

// variable returns the 1-indexed DIMACS variable for "categories[keyIdx]'s
// valueIdx-th value holds at house" (1-indexed), matching einstein.py's
// generate_fol numbering exactly: category, then value, then house.
func variable(keyIdx, valueIdx, house int) int {
	return keyIdx*25 + valueIdx*5 + house
}

// Encode returns the puzzle's CNF clauses (one "at least one house has this
// value" clause per value, pairwise exclusion clauses enforcing a
// permutation per category, and the puzzle's fifteen hints) and the number
// of variables they range over.
func Encode() ([][]int, int) {
	var clauses [][]int
	clauses = append(clauses, atLeastOneClauses()...)
	clauses = append(clauses, exclusionClauses()...)
	clauses = append(clauses, hintClauses()...)
	return clauses, NumVariables
}

// atLeastOneClauses requires every (category, value) pair to hold at at
// least one house, grounded on einstein.py's initialize_houses.
func atLeastOneClauses() [][]int {
	var clauses [][]int
	for keyIdx := range categories {
		for valueIdx := range categories[keyIdx].values {
			clause := make([]int, NumHouses)
			for house := 1; house <= NumHouses; house++ {
				clause[house-1] = variable(keyIdx, valueIdx, house)
			}
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

// exclusionClauses forbids a single house from holding two values of the
// same category, and a single (category, value) pair from holding at two
// houses; combined with atLeastOneClauses this makes each category a
// permutation over the five houses. Ported from einstein.py's
// initialize_constrains, which scans variable ids 1..NumVariables directly
// rather than walking the category/value/house structure.
func exclusionClauses() [][]int {
	var clauses [][]int
	counter := 0
	for key := 1; key <= NumVariables; key++ {
		if (key-1)/25 != counter {
			counter++
		}
		upper := (counter + 1) * 25
		for i := key + 1; i <= upper; i++ {
			if (i-1)/5 == (key-1)/5 {
				clauses = append(clauses, []int{-key, -i})
			}
			if i%5 == key%5 {
				clauses = append(clauses, []int{-key, -i})
			}
		}
	}
	return clauses
}

// hintClauses encodes the puzzle's fifteen clues as biconditionals ("X
// holds at house i iff Y holds at house i") or small disjunctions
// ("adjacent to"), transcribed directly from einstein.py's generate_hints.
func hintClauses() [][]int {
	var hints [][]int

	biconditional := func(a, b int) {
		hints = append(hints, []int{-a, b}, []int{a, -b})
	}

	for i := 1; i <= 5; i++ {
		biconditional(i+25, i) // Brit lives in the red house
	}
	for i := 1; i <= 5; i++ {
		biconditional(i+30, i+100) // the Swede keeps dogs
	}
	for i := 1; i <= 5; i++ {
		biconditional(i+35, i+50) // the Dane drinks tea
	}
	for i := 1; i <= 4; i++ {
		biconditional(i+5, i+11) // green is immediately left of white
	}
	for i := 1; i <= 5; i++ {
		biconditional(i+5, i+55) // the green house drinks coffee
	}
	for i := 1; i <= 5; i++ {
		biconditional(i+75, i+105) // the Pall Mall smoker keeps birds
	}
	for i := 1; i <= 5; i++ {
		biconditional(i+15, i+80) // the yellow house smokes Dunhill
	}

	hints = append(hints, []int{63}) // milk is drunk at the center house
	hints = append(hints, []int{41}) // the Norwegian lives in the first house

	// the Blends smoker lives next to the cat owner
	hints = append(hints,
		[]int{-86, 112},
		[]int{-87, 111, 113},
		[]int{-88, 112, 114},
		[]int{-89, 113, 115},
		[]int{-90, 114},
	)

	// the horse owner lives next to the Dunhill smoker
	hints = append(hints,
		[]int{-116, 82},
		[]int{-117, 81, 83},
		[]int{-118, 82, 84},
		[]int{-119, 83, 85},
		[]int{-120, 84},
	)

	for i := 1; i <= 5; i++ {
		biconditional(i+90, i+65) // the Bluemasters smoker drinks beer
	}
	for i := 1; i <= 5; i++ {
		biconditional(i+45, i+95) // the German smokes Prince
	}

	// the Norwegian lives next to the blue house
	hints = append(hints,
		[]int{-41, 22},
		[]int{-42, 21, 23},
		[]int{-43, 22, 24},
		[]int{-44, 23, 25},
		[]int{-45, 24},
	)

	// the Blends smoker lives next to the water drinker
	hints = append(hints,
		[]int{-86, 72},
		[]int{-87, 71, 73},
		[]int{-88, 72, 74},
		[]int{-89, 73, 75},
		[]int{-90, 74},
	)

	return hints
}

// House is one house's resolved attribute assignment.
type House struct {
	Number                                    int
	Colour, Nationality, Beverage, Cigar, Pet string
}

// DecodeModel converts a satisfying model (indexed by 0-based variable id,
// as returned by sat.Solver.Model) into the five houses' attributes,
// ported from einstein.py's convert_mapping_to_ans.
func DecodeModel(model []bool) ([NumHouses]House, error) {
	var houses [NumHouses]House
	for h := range houses {
		houses[h].Number = h + 1
	}

	if len(model) < NumVariables {
		return houses, fmt.Errorf("puzzle: model has %d variables, want %d", len(model), NumVariables)
	}

	for keyIdx, cat := range categories {
		for valueIdx, value := range cat.values {
			for house := 1; house <= NumHouses; house++ {
				if !model[variable(keyIdx, valueIdx, house)-1] {
					continue
				}
				setAttribute(&houses[house-1], keyIdx, value)
			}
		}
	}
	return houses, nil
}

func setAttribute(h *House, keyIdx int, value string) {
	switch keyIdx {
	case 0:
		h.Colour = value
	case 1:
		h.Nationality = value
	case 2:
		h.Beverage = value
	case 3:
		h.Cigar = value
	case 4:
		h.Pet = value
	}
}

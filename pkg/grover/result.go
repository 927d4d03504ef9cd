package grover

// Outcome is one distinct measured bit string.
type Outcome struct {
	// Bits is the measured key; character i is sequence-register bit i.
	Bits  string
	Count int
	// Codes holds one alphabet code per position. It is set even when a
	// padding code makes the outcome invalid.
	Codes []int
	// Moves is the decoded token sequence, nil when Valid is false.
	Moves []string
	// Valid reports whether every code names an alphabet entry.
	Valid bool
	// Solves reports whether Moves takes the starting orientation to the
	// target.
	Solves bool
}

// Result is the decoded histogram of one run.
type Result struct {
	RunID      string
	Iterations int
	Shots      int
	Counts     Counts
	// Outcomes is sorted by count, highest first, ties broken by Bits.
	Outcomes []Outcome
}

// Top returns the most frequent outcome.
func (r *Result) Top() (Outcome, bool) {
	if len(r.Outcomes) == 0 {
		return Outcome{}, false
	}
	return r.Outcomes[0], true
}

// SolutionRate returns the fraction of shots that landed on a solving
// sequence.
func (r *Result) SolutionRate() float64 {
	if r.Shots == 0 {
		return 0
	}
	n := 0
	for _, o := range r.Outcomes {
		if o.Solves {
			n += o.Count
		}
	}
	return float64(n) / float64(r.Shots)
}

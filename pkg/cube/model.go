// Package cube models the 3x3x3 twisty-cube group at the cubie level.
//
// A State records, per slot, which piece occupies it (the permutations) and
// the orientation of whatever sits in that slot (the orientation vectors).
// Face moves act on states by value: every operation returns a fresh State
// and never mutates its input.
//
// Slot indexing
//
//	Corners: 0 UFR, 1 URB, 2 UBL, 3 ULF, 4 DFR, 5 DRB, 6 DBL, 7 DLF
//	Edges:   0 UF,  1 UR,  2 UB,  3 UL,  4 FR,  5 RB,  6 BL,  7 LF,
//	         8 DF,  9 DR, 10 DB, 11 DL
//
// Scope
//
// Only edge orientation changes under moves (F and B quarter turns flip the
// four edges of their face). Corner twisting is not modelled, so the corner
// orientation of any state reached by moves stays all-zero. The parity
// coupling between edge and corner permutations is not enforced either.
package cube

import (
	"fmt"
	"strings"
)

const (
	// EdgeCount is the number of edge slots.
	EdgeCount = 12
	// CornerCount is the number of corner slots.
	CornerCount = 8
)

// State is a cube configuration. The zero value is not a valid state; use
// Solved.
type State struct {
	EdgePerm     [EdgeCount]uint8
	EdgeOrient   [EdgeCount]uint8
	CornerPerm   [CornerCount]uint8
	CornerOrient [CornerCount]uint8
}

// Solved returns the identity state.
func Solved() State {
	var s State
	for i := range s.EdgePerm {
		s.EdgePerm[i] = uint8(i)
	}
	for i := range s.CornerPerm {
		s.CornerPerm[i] = uint8(i)
	}
	return s
}

// Copy returns an independent copy of s. State is a value type, so this is
// the same as assignment; it exists for call sites that want to be explicit.
func (s State) Copy() State {
	return s
}

// IsSolved reports whether both permutations are the identity and both
// orientation vectors are zero.
func (s State) IsSolved() bool {
	return s == Solved()
}

// Apply returns the state reached by applying m to s.
func (s State) Apply(m Move) State {
	t := faceTables[m.Face]
	for n := 0; n < m.Turns; n++ {
		cycle(s.CornerPerm[:], t.corners)
		cycle(s.EdgePerm[:], t.edges)
		for _, e := range t.flips {
			s.EdgeOrient[e] ^= 1
		}
	}
	return s
}

// ApplyMove parses token and applies it to s.
func ApplyMove(s State, token string) (State, error) {
	m, err := ParseMove(token)
	if err != nil {
		return s, err
	}
	return s.Apply(m), nil
}

// ApplySequence applies tokens to s from left to right. On a parse error the
// input state is returned unchanged together with the error.
func ApplySequence(s State, tokens []string) (State, error) {
	out := s
	for i, tok := range tokens {
		next, err := ApplyMove(out, tok)
		if err != nil {
			return s, fmt.Errorf("token %d: %w", i, err)
		}
		out = next
	}
	return out, nil
}

// ApplyMoves applies already-parsed moves to s from left to right.
func ApplyMoves(s State, moves []Move) State {
	for _, m := range moves {
		s = s.Apply(m)
	}
	return s
}

// FlipSet returns the edge slots whose orientation bit a move toggles on net.
// F and F' flip the four F edges, F2 flips nothing, and likewise for B; the
// other faces never change edge orientation.
func FlipSet(m Move) []int {
	after := Solved().Apply(m)
	var out []int
	for i, b := range after.EdgeOrient {
		if b != 0 {
			out = append(out, i)
		}
	}
	return out
}

// String renders the state as four bracketed vectors.
func (s State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ep=%v eo=%v cp=%v co=%v", s.EdgePerm, s.EdgeOrient, s.CornerPerm, s.CornerOrient)
	return sb.String()
}

// cycle moves the value in idx[0] to idx[1], idx[1] to idx[2], and so on,
// with the last wrapping around to idx[0].
func cycle(arr []uint8, idx [4]int) {
	last := arr[idx[len(idx)-1]]
	for i := len(idx) - 1; i > 0; i-- {
		arr[idx[i]] = arr[idx[i-1]]
	}
	arr[idx[0]] = last
}

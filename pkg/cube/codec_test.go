package cube

import (
	"math/rand"
	"testing"
)

func randomReachable(rng *rand.Rand, n int) State {
	s := Solved()
	for i := 0; i < n; i++ {
		s = s.Apply(MustParseMove(allTokens[rng.Intn(len(allTokens))]))
	}
	return s
}

func TestEdgeOrientation_RoundTripAndParity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		s := randomReachable(rng, 25)
		eo := EncodeEdgeOrientation(s)
		fresh := Solved()
		DecodeEdgeOrientation(eo, &fresh)
		if fresh.EdgeOrient != s.EdgeOrient {
			t.Fatalf("trial %d: decoded %v, want %v", trial, fresh.EdgeOrient, s.EdgeOrient)
		}
		if EdgeParity(eo) != 0 {
			t.Fatalf("trial %d: reachable state has odd edge parity: %v", trial, eo)
		}
	}
}

func TestDecodeEdgeOrientation_TrustsInput(t *testing.T) {
	var bits [EdgeCount]uint8
	bits[3] = 1
	bits[5] = 3 // reduced mod 2
	s := Solved()
	DecodeEdgeOrientation(bits, &s)
	if s.EdgeOrient[3] != 1 || s.EdgeOrient[5] != 1 {
		t.Fatalf("EdgeOrient = %v", s.EdgeOrient)
	}
	if EdgeParity(s.EdgeOrient) != 0 {
		t.Fatalf("parity = %d, want 0", EdgeParity(s.EdgeOrient))
	}

	// An odd-parity vector is unreachable but still accepted verbatim.
	bits[5] = 0
	DecodeEdgeOrientation(bits, &s)
	if EdgeParity(s.EdgeOrient) != 1 {
		t.Fatalf("odd vector was altered: %v", s.EdgeOrient)
	}
}

func TestCornerOrientation_RoundTripMod3(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		s := randomReachable(rng, 10)
		co := EncodeCornerOrientation(s)
		fresh := Solved()
		DecodeCornerOrientation(co, &fresh)
		got := EncodeCornerOrientation(fresh)
		if CornerTwist(got) != 0 {
			t.Fatalf("trial %d: twist %d", trial, CornerTwist(got))
		}
		for i := 0; i < CornerCount-1; i++ {
			if got[i] != co[i]%3 {
				t.Fatalf("trial %d: residue %d = %d, want %d", trial, i, got[i], co[i])
			}
		}
		if fresh.CornerOrient != s.CornerOrient {
			t.Fatalf("trial %d: reachable state not reproduced", trial)
		}
	}
}

func TestDecodeCornerOrientation_DiscardsLastResidue(t *testing.T) {
	tests := []struct {
		in   [CornerCount]int
		want [CornerCount]uint8
	}{
		{[CornerCount]int{1, 0, 0, 0, 0, 0, 0, 0}, [CornerCount]uint8{1, 0, 0, 0, 0, 0, 0, 2}},
		{[CornerCount]int{1, 0, 0, 0, 0, 0, 0, 2}, [CornerCount]uint8{1, 0, 0, 0, 0, 0, 0, 2}},
		{[CornerCount]int{2, 2, 0, 0, 0, 0, 0, 1}, [CornerCount]uint8{2, 2, 0, 0, 0, 0, 0, 2}},
		{[CornerCount]int{5, -1, 3, 0, 0, 0, 0, 9}, [CornerCount]uint8{2, 2, 0, 0, 0, 0, 0, 2}},
		{[CornerCount]int{1, 1, 1, 0, 0, 0, 0, 1}, [CornerCount]uint8{1, 1, 1, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		s := Solved()
		DecodeCornerOrientation(tt.in, &s)
		if s.CornerOrient != tt.want {
			t.Errorf("decode(%v) = %v, want %v", tt.in, s.CornerOrient, tt.want)
		}
	}
}

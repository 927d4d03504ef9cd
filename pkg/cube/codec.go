package cube

// EncodeEdgeOrientation returns a copy of the edge orientation vector.
func EncodeEdgeOrientation(s State) [EdgeCount]uint8 {
	return s.EdgeOrient
}

// DecodeEdgeOrientation writes bits (reduced mod 2) into target's edge
// orientation vector. The input is trusted: no parity check is made, so a
// vector with odd parity, which no sequence of moves can reach, is accepted
// as is.
func DecodeEdgeOrientation(bits [EdgeCount]uint8, target *State) {
	for i, b := range bits {
		target.EdgeOrient[i] = b & 1
	}
}

// EncodeCornerOrientation returns the corner orientation residues.
func EncodeCornerOrientation(s State) [CornerCount]int {
	var out [CornerCount]int
	for i, r := range s.CornerOrient {
		out[i] = int(r)
	}
	return out
}

// DecodeCornerOrientation writes residues into target's corner orientation
// vector. The first seven entries are reduced mod 3. The eighth input entry
// is ignored: it is recomputed so that the residues sum to 0 mod 3, which
// projects any input onto the reachable subspace.
func DecodeCornerOrientation(residues [CornerCount]int, target *State) {
	sum := 0
	for i := 0; i < CornerCount-1; i++ {
		r := mod3(residues[i])
		target.CornerOrient[i] = uint8(r)
		sum += r
	}
	target.CornerOrient[CornerCount-1] = uint8(mod3(-sum))
}

// EdgeParity returns the sum of bits mod 2. Every reachable state has parity 0.
func EdgeParity(bits [EdgeCount]uint8) int {
	p := 0
	for _, b := range bits {
		p ^= int(b & 1)
	}
	return p
}

// CornerTwist returns the sum of residues mod 3. Every reachable state has
// twist 0.
func CornerTwist(residues [CornerCount]int) int {
	sum := 0
	for _, r := range residues {
		sum += r
	}
	return mod3(sum)
}

func mod3(v int) int {
	return ((v % 3) + 3) % 3
}

// Package layout fixes the register addressing shared by the classical move
// model and the circuit compiler.
//
// A Layout pairs an ordered move alphabet of size k with a sequence length d
// and a per-symbol bit width b. Symbol i of a sequence occupies bits
// [i*b, (i+1)*b) of the sequence register, and alphabet code v is stored
// little-endian across those bits (bit j holds (v>>j)&1). The invariant
// register that the compiled effects act on is always 12 bits wide, one per
// edge slot.
//
// A Layout is immutable after New and safe for concurrent use.
package layout

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/gitrdm/cubeq/pkg/cube"
)

// InvariantWidth is the width of the edge-orientation register.
const InvariantWidth = cube.EdgeCount

// MaxBitsPerSymbol bounds the per-symbol width.
const MaxBitsPerSymbol = 16

var (
	// ErrAlphabetTooLarge is returned when k > 2^bitsPerSymbol.
	ErrAlphabetTooLarge = fmt.Errorf("%w: alphabet does not fit symbol width", cube.ErrConfiguration)
	// ErrInvalidCode is returned when a symbol code has no alphabet entry.
	// This happens for the padding codes k..2^b-1 when k is not a power of two.
	ErrInvalidCode = errors.New("symbol code outside alphabet")
	// ErrSearchSpaceTooLarge is returned when k^d does not fit an int.
	ErrSearchSpaceTooLarge = fmt.Errorf("%w: search space overflows", cube.ErrConfiguration)
)

// DefaultAlphabet is the restricted demo move set. Only F and F' change edge
// orientation within it.
func DefaultAlphabet() []string {
	return []string{"U", "R", "F", "U'", "R'", "F'"}
}

// Layout is an alphabet plus register geometry.
type Layout struct {
	alphabet      []string
	index         map[string]int
	depth         int
	bitsPerSymbol int
}

// New validates and builds a Layout. A bitsPerSymbol of zero selects the
// smallest width that can hold every alphabet code.
func New(alphabet []string, depth, bitsPerSymbol int) (*Layout, error) {
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", cube.ErrConfiguration)
	}
	if depth < 1 {
		return nil, fmt.Errorf("%w: sequence length %d, need at least 1", cube.ErrConfiguration, depth)
	}
	if bitsPerSymbol < 0 || bitsPerSymbol > MaxBitsPerSymbol {
		return nil, fmt.Errorf("%w: bits per symbol %d outside [0, %d]", cube.ErrConfiguration, bitsPerSymbol, MaxBitsPerSymbol)
	}
	if bitsPerSymbol == 0 {
		bitsPerSymbol = MinBits(len(alphabet))
	}
	if len(alphabet) > 1<<bitsPerSymbol {
		return nil, fmt.Errorf("%w: %d symbols, %d bits hold %d", ErrAlphabetTooLarge, len(alphabet), bitsPerSymbol, 1<<bitsPerSymbol)
	}
	if _, ok := power(len(alphabet), depth); !ok {
		return nil, fmt.Errorf("%w: %d^%d", ErrSearchSpaceTooLarge, len(alphabet), depth)
	}

	l := &Layout{
		alphabet:      append([]string(nil), alphabet...),
		index:         make(map[string]int, len(alphabet)),
		depth:         depth,
		bitsPerSymbol: bitsPerSymbol,
	}
	for i, tok := range alphabet {
		if _, dup := l.index[tok]; dup {
			return nil, fmt.Errorf("%w: duplicate alphabet token %q", cube.ErrConfiguration, tok)
		}
		l.index[tok] = i
	}
	return l, nil
}

// MinBits returns the smallest b >= 1 with k <= 2^b.
func MinBits(k int) int {
	if k <= 2 {
		return 1
	}
	return bits.Len(uint(k - 1))
}

// Alphabet returns a copy of the move tokens in code order.
func (l *Layout) Alphabet() []string { return append([]string(nil), l.alphabet...) }

// Size returns k, the number of alphabet symbols.
func (l *Layout) Size() int { return len(l.alphabet) }

// Depth returns d, the sequence length.
func (l *Layout) Depth() int { return l.depth }

// BitsPerSymbol returns b.
func (l *Layout) BitsPerSymbol() int { return l.bitsPerSymbol }

// SequenceWidth returns d*b, the width of the sequence register.
func (l *Layout) SequenceWidth() int { return l.depth * l.bitsPerSymbol }

// InvariantWidth returns the width of the invariant register.
func (l *Layout) InvariantWidth() int { return InvariantWidth }

// SearchSpace returns k^d, the number of valid sequences. New guarantees
// it fits an int.
func (l *Layout) SearchSpace() int {
	n, _ := power(len(l.alphabet), l.depth)
	return n
}

// power returns k^d and whether it fits a non-negative int.
func power(k, d int) (int, bool) {
	n := uint64(1)
	for i := 0; i < d; i++ {
		hi, lo := bits.Mul64(n, uint64(k))
		if hi != 0 || lo > math.MaxInt {
			return 0, false
		}
		n = lo
	}
	return int(n), true
}

// SymbolBitsSlice returns the half-open bit range [lo, hi) of symbol i in
// the sequence register. It panics if i is not in [0, Depth()).
func (l *Layout) SymbolBitsSlice(i int) (lo, hi int) {
	if i < 0 || i >= l.depth {
		panic(fmt.Sprintf("layout: symbol index %d out of range [0, %d)", i, l.depth))
	}
	lo = i * l.bitsPerSymbol
	return lo, lo + l.bitsPerSymbol
}

// CodeBit reports bit j of code v.
func CodeBit(v, j int) bool {
	return (v>>j)&1 == 1
}

// EncodeSequence lays codes out as sequence-register bits.
func (l *Layout) EncodeSequence(codes []int) ([]uint8, error) {
	if len(codes) != l.depth {
		return nil, fmt.Errorf("got %d codes, want %d", len(codes), l.depth)
	}
	out := make([]uint8, l.SequenceWidth())
	for i, v := range codes {
		if v < 0 || v >= 1<<l.bitsPerSymbol {
			return nil, fmt.Errorf("position %d: code %d does not fit %d bits", i, v, l.bitsPerSymbol)
		}
		lo, _ := l.SymbolBitsSlice(i)
		for j := 0; j < l.bitsPerSymbol; j++ {
			if CodeBit(v, j) {
				out[lo+j] = 1
			}
		}
	}
	return out, nil
}

// DecodeSequence reads one code per position from sequence-register bits.
// Padding codes are returned as is; Tokens rejects them.
func (l *Layout) DecodeSequence(reg []uint8) ([]int, error) {
	if len(reg) != l.SequenceWidth() {
		return nil, fmt.Errorf("got %d bits, want %d", len(reg), l.SequenceWidth())
	}
	codes := make([]int, l.depth)
	for i := range codes {
		lo, hi := l.SymbolBitsSlice(i)
		v := 0
		for j := lo; j < hi; j++ {
			if reg[j]&1 == 1 {
				v |= 1 << (j - lo)
			}
		}
		codes[i] = v
	}
	return codes, nil
}

// Tokens maps codes to alphabet tokens.
func (l *Layout) Tokens(codes []int) ([]string, error) {
	out := make([]string, len(codes))
	for i, v := range codes {
		if v < 0 || v >= len(l.alphabet) {
			return nil, fmt.Errorf("position %d: %w: %d (alphabet size %d)", i, ErrInvalidCode, v, len(l.alphabet))
		}
		out[i] = l.alphabet[v]
	}
	return out, nil
}

// Codes maps alphabet tokens to codes.
func (l *Layout) Codes(tokens []string) ([]int, error) {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		v, ok := l.index[tok]
		if !ok {
			return nil, fmt.Errorf("position %d: token %q not in alphabet", i, tok)
		}
		out[i] = v
	}
	return out, nil
}

// String summarises the layout.
func (l *Layout) String() string {
	return fmt.Sprintf("Layout{k=%d d=%d b=%d alphabet=%v}", len(l.alphabet), l.depth, l.bitsPerSymbol, l.alphabet)
}

package cube

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration is the root of every error caused by bad static input:
// unknown faces, malformed move suffixes, oversized alphabets. These are
// raised at parse or construction time and are never recovered internally.
var ErrConfiguration = errors.New("configuration error")

var (
	// ErrMoveNotSupported is returned for a token whose face letter is not
	// one of U, D, R, L, F, B.
	ErrMoveNotSupported = fmt.Errorf("%w: move not supported", ErrConfiguration)
	// ErrMalformedMove is returned for an empty token or a suffix other than
	// "", "2" and "'".
	ErrMalformedMove = fmt.Errorf("%w: malformed move", ErrConfiguration)
)

// Face identifies one of the six outer layers.
type Face uint8

const (
	U Face = iota
	D
	R
	L
	F
	B
)

// Faces lists every face in table order.
var Faces = [...]Face{U, D, R, L, F, B}

func (f Face) String() string {
	if int(f) < len(faceLetters) {
		return string(faceLetters[f])
	}
	return fmt.Sprintf("Face(%d)", uint8(f))
}

const faceLetters = "UDRLFB"

// Move is a face plus a number of clockwise quarter turns (1, 2 or 3).
type Move struct {
	Face  Face
	Turns int
}

// ParseMove decodes a token such as "R", "U2" or "F'".
func ParseMove(token string) (Move, error) {
	if token == "" {
		return Move{}, fmt.Errorf("%w: empty token", ErrMalformedMove)
	}
	idx := strings.IndexByte(faceLetters, token[0])
	if idx < 0 {
		return Move{}, fmt.Errorf("%w: face %q in %q", ErrMoveNotSupported, token[:1], token)
	}
	turns := 1
	switch suffix := token[1:]; suffix {
	case "":
	case "2":
		turns = 2
	case "'":
		turns = 3
	default:
		return Move{}, fmt.Errorf("%w: suffix %q in %q", ErrMalformedMove, suffix, token)
	}
	return Move{Face: Face(idx), Turns: turns}, nil
}

// MustParseMove is like ParseMove but panics on error. Intended for
// constant tokens in tests and examples.
func MustParseMove(token string) Move {
	m, err := ParseMove(token)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseSequence splits s on whitespace and parses every token.
func ParseSequence(s string) ([]Move, error) {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))
	for i, tok := range fields {
		m, err := ParseMove(tok)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// String renders the move in standard notation.
func (m Move) String() string {
	switch ((m.Turns % 4) + 4) % 4 {
	case 2:
		return m.Face.String() + "2"
	case 3:
		return m.Face.String() + "'"
	default:
		return m.Face.String()
	}
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	return Move{Face: m.Face, Turns: (4 - m.Turns%4) % 4}
}

// InvertSequence returns the sequence that undoes moves.
func InvertSequence(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// FormatSequence joins moves with single spaces.
func FormatSequence(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// faceTable holds the fixed slot cycles and flip set of one face.
type faceTable struct {
	corners [4]int
	edges   [4]int
	flips   []int
}

// faceTables is indexed by Face and never written after initialisation.
var faceTables = [...]faceTable{
	U: {corners: [4]int{0, 1, 2, 3}, edges: [4]int{0, 1, 2, 3}},
	D: {corners: [4]int{4, 5, 6, 7}, edges: [4]int{8, 9, 10, 11}},
	R: {corners: [4]int{0, 1, 5, 4}, edges: [4]int{1, 5, 9, 4}},
	L: {corners: [4]int{2, 3, 7, 6}, edges: [4]int{3, 7, 11, 6}},
	F: {corners: [4]int{3, 0, 4, 7}, edges: [4]int{0, 4, 8, 7}, flips: []int{0, 4, 8, 7}},
	B: {corners: [4]int{1, 2, 6, 5}, edges: [4]int{2, 5, 10, 6}, flips: []int{2, 5, 10, 6}},
}

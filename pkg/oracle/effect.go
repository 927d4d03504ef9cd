// Package oracle compiles the edge-orientation effect of a symbolic move
// sequence into a reversible circuit and wraps it in a phase-marking
// predicate for amplitude amplification.
//
// The compiled effect acts on two registers: the sequence register laid out
// by a layout.Layout, and the 12-bit invariant register holding edge
// orientation. For every position i and alphabet code v whose move flips
// edges, it toggles those invariant bits when symbol i equals v. The
// sequence register is left untouched, and since every toggle is an XOR the
// whole fragment is its own inverse.
package oracle

import (
	"context"
	"fmt"

	"github.com/gitrdm/cubeq/internal/parallel"
	"github.com/gitrdm/cubeq/pkg/circuit"
	"github.com/gitrdm/cubeq/pkg/cube"
	"github.com/gitrdm/cubeq/pkg/layout"
)

// Effect appends a reversible transform of the invariant register,
// controlled by the sequence register, to a circuit.
//
// Undo must append the exact inverse of Apply. Oracles call Undo to clear the
// invariant register after testing it, so effects that are not involutions
// must implement a real inverse there.
type Effect interface {
	Apply(c *circuit.Circuit, seq, inv circuit.Register) error
	Undo(c *circuit.Circuit, seq, inv circuit.Register) error
}

// EffectOption configures an EdgeFlipEffect.
type EffectOption func(*effectConfig)

type effectConfig struct {
	workers int
}

// WithWorkers sets how many goroutines synthesize fragments. Zero or a
// negative value means one per CPU. The default is 1.
func WithWorkers(n int) EffectOption {
	return func(c *effectConfig) { c.workers = n }
}

// EdgeFlipEffect is the compiled edge-orientation effect for one layout.
type EdgeFlipEffect struct {
	layout *layout.Layout
	flips  [][]int
	frag   *circuit.Circuit
}

var _ Effect = (*EdgeFlipEffect)(nil)

// NewEdgeFlipEffect parses the layout's alphabet and synthesizes the
// effect fragment. Tokens that do not parse are configuration errors.
func NewEdgeFlipEffect(l *layout.Layout, opts ...EffectOption) (*EdgeFlipEffect, error) {
	cfg := effectConfig{workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	alphabet := l.Alphabet()
	e := &EdgeFlipEffect{
		layout: l,
		flips:  make([][]int, len(alphabet)),
	}
	for v, tok := range alphabet {
		m, err := cube.ParseMove(tok)
		if err != nil {
			return nil, fmt.Errorf("alphabet code %d: %w", v, err)
		}
		e.flips[v] = cube.FlipSet(m)
	}

	frag, err := e.synthesize(cfg.workers)
	if err != nil {
		return nil, err
	}
	e.frag = frag
	return e, nil
}

// synthesize builds one sub-fragment per (position, code) pair and
// concatenates them in pair order. Pairs only touch their own symbol slice
// and their own output slot, so they can be built in any order.
func (e *EdgeFlipEffect) synthesize(workers int) (*circuit.Circuit, error) {
	k, d := e.layout.Size(), e.layout.Depth()
	parts := make([][]circuit.Gate, d*k)

	err := parallel.ForEach(context.Background(), workers, len(parts), func(p int) error {
		i, v := p/k, p%k
		if len(e.flips[v]) == 0 {
			return nil
		}
		parts[p] = e.pairGates(i, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize edge flip effect: %w", err)
	}

	frag := circuit.New("edge-flip")
	if _, err := frag.AddRegister("seq", e.layout.SequenceWidth()); err != nil {
		return nil, err
	}
	if _, err := frag.AddRegister("inv", layout.InvariantWidth); err != nil {
		return nil, err
	}
	for _, gates := range parts {
		frag.Append(gates...)
	}
	return frag, nil
}

// pairGates toggles the flip set of code v when symbol i equals v. The
// symbol's zero code bits are inverted around the toggles so that the
// match reads as all-ones.
func (e *EdgeFlipEffect) pairGates(i, v int) []circuit.Gate {
	lo, hi := e.layout.SymbolBitsSlice(i)
	controls := make([]int, 0, hi-lo)
	var zeros []circuit.Gate
	for j := lo; j < hi; j++ {
		controls = append(controls, j)
		if !layout.CodeBit(v, j-lo) {
			zeros = append(zeros, circuit.Gate{Kind: circuit.X, Target: j})
		}
	}

	invBase := e.layout.SequenceWidth()
	gates := make([]circuit.Gate, 0, 2*len(zeros)+len(e.flips[v]))
	gates = append(gates, zeros...)
	for _, edge := range e.flips[v] {
		gates = append(gates, circuit.Gate{Kind: circuit.MCX, Controls: controls, Target: invBase + edge})
	}
	gates = append(gates, zeros...)
	return gates
}

// Layout returns the layout the effect was compiled for.
func (e *EdgeFlipEffect) Layout() *layout.Layout { return e.layout }

// Flips returns the invariant bits toggled when a symbol holds code v.
func (e *EdgeFlipEffect) Flips(v int) []int {
	return append([]int(nil), e.flips[v]...)
}

// Fragment returns the synthesized fragment over registers seq|inv. The
// caller must not modify it.
func (e *EdgeFlipEffect) Fragment() *circuit.Circuit { return e.frag }

// Apply appends the effect to c.
func (e *EdgeFlipEffect) Apply(c *circuit.Circuit, seq, inv circuit.Register) error {
	if seq.Size != e.layout.SequenceWidth() {
		return fmt.Errorf("edge flip effect: sequence register %s has %d qubits, want %d", seq.Name, seq.Size, e.layout.SequenceWidth())
	}
	if inv.Size != layout.InvariantWidth {
		return fmt.Errorf("edge flip effect: invariant register %s has %d qubits, want %d", inv.Name, inv.Size, layout.InvariantWidth)
	}
	return c.Compose(e.frag, append(seq.Qubits(), inv.Qubits()...))
}

// Undo appends the inverse of Apply. Every gate is a controlled XOR, so the
// effect is an involution and the inverse is the effect itself.
func (e *EdgeFlipEffect) Undo(c *circuit.Circuit, seq, inv circuit.Register) error {
	return e.Apply(c, seq, inv)
}

// Classical folds the move model over codes starting from the given edge
// orientation and returns the final orientation. It is the reference the
// compiled fragment must agree with.
func (e *EdgeFlipEffect) Classical(codes []int, initial [cube.EdgeCount]uint8) ([cube.EdgeCount]uint8, error) {
	return fold(e.layout, codes, initial)
}

func fold(l *layout.Layout, codes []int, initial [cube.EdgeCount]uint8) ([cube.EdgeCount]uint8, error) {
	tokens, err := l.Tokens(codes)
	if err != nil {
		return initial, err
	}
	s := cube.Solved()
	cube.DecodeEdgeOrientation(initial, &s)
	s, err = cube.ApplySequence(s, tokens)
	if err != nil {
		return initial, err
	}
	return cube.EncodeEdgeOrientation(s), nil
}

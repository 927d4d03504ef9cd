package oracle

import (
	"fmt"

	"github.com/gitrdm/cubeq/pkg/circuit"
	"github.com/gitrdm/cubeq/pkg/cube"
	"github.com/gitrdm/cubeq/pkg/layout"
)

// OracleOption configures a PatternOracle.
type OracleOption func(*PatternOracle)

// WithTarget sets the invariant pattern the oracle marks. The default is
// all-zero, i.e. every edge oriented.
func WithTarget(target [cube.EdgeCount]uint8) OracleOption {
	return func(o *PatternOracle) {
		for i, b := range target {
			o.target[i] = b & 1
		}
	}
}

// PatternOracle flips a flag qubit for exactly those sequence values whose
// effect leaves the invariant register equal to the target pattern.
type PatternOracle struct {
	layout *layout.Layout
	effect Effect
	target [cube.EdgeCount]uint8
}

// NewPatternOracle wraps eff in a target-pattern test.
func NewPatternOracle(l *layout.Layout, eff Effect, opts ...OracleOption) *PatternOracle {
	o := &PatternOracle{layout: l, effect: eff}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Target returns the pattern the oracle marks.
func (o *PatternOracle) Target() [cube.EdgeCount]uint8 { return o.target }

// Build returns the oracle as a fragment over registers seq, inv and flag,
// in that order.
func (o *PatternOracle) Build() (*circuit.Circuit, error) {
	c := circuit.New("oracle")
	seq, err := c.AddRegister("seq", o.layout.SequenceWidth())
	if err != nil {
		return nil, err
	}
	inv, err := c.AddRegister("inv", layout.InvariantWidth)
	if err != nil {
		return nil, err
	}
	flag, err := c.AddRegister("flag", 1)
	if err != nil {
		return nil, err
	}
	if err := o.Apply(c, seq, inv, flag.Qubit(0)); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply appends the oracle to c: run the effect, toggle flag if the
// invariant register matches the target, then undo the effect. Every
// qubit except flag ends where it started.
func (o *PatternOracle) Apply(c *circuit.Circuit, seq, inv circuit.Register, flag int) error {
	if err := o.effect.Apply(c, seq, inv); err != nil {
		return fmt.Errorf("oracle compute: %w", err)
	}

	// Bits whose target is 0 are inverted so a match reads as all-ones.
	var zeros []int
	for i, b := range o.target {
		if b == 0 {
			zeros = append(zeros, inv.Qubit(i))
		}
	}
	c.XAll(zeros)
	c.MCX(inv.Qubits(), flag)
	c.XAll(zeros)

	if err := o.effect.Undo(c, seq, inv); err != nil {
		return fmt.Errorf("oracle uncompute: %w", err)
	}
	return nil
}

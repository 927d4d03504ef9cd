// Package circuit is a small gate-level IR for reversible and quantum
// circuits over named registers.
//
// A Circuit owns a flat qubit index space carved into named registers, a
// flat classical bit space, and an ordered gate list. Fragments built over
// their own registers can be inlined into a larger circuit with Compose.
// Nothing here executes gates; see package sim for a backend.
package circuit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind is a gate type.
type Kind uint8

const (
	// X flips a qubit.
	X Kind = iota
	// H is the Hadamard gate.
	H
	// Z negates the phase of |1>.
	Z
	// MCX flips Target when every control is 1. With no controls it is X.
	MCX
	// Measure reads Target into classical bit Clbit.
	Measure
)

var kindNames = [...]string{X: "x", H: "h", Z: "z", MCX: "mcx", Measure: "measure"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Gate is one operation. Controls is only used by MCX, Clbit only by Measure.
type Gate struct {
	Kind     Kind
	Controls []int
	Target   int
	Clbit    int
}

// Register is a named contiguous run of qubits or classical bits.
type Register struct {
	Name   string
	Offset int
	Size   int
}

// Qubit returns the absolute index of the i-th element.
func (r Register) Qubit(i int) int {
	if i < 0 || i >= r.Size {
		panic(fmt.Sprintf("circuit: index %d out of range for register %s[%d]", i, r.Name, r.Size))
	}
	return r.Offset + i
}

// Qubits returns every absolute index in the register.
func (r Register) Qubits() []int {
	return r.Slice(0, r.Size)
}

// Slice returns the absolute indices of elements [lo, hi).
func (r Register) Slice(lo, hi int) []int {
	if lo < 0 || hi > r.Size || lo > hi {
		panic(fmt.Sprintf("circuit: slice [%d,%d) out of range for register %s[%d]", lo, hi, r.Name, r.Size))
	}
	out := make([]int, hi-lo)
	for i := range out {
		out[i] = r.Offset + lo + i
	}
	return out
}

// Counts maps a measured bit string to how often it was observed. Character
// i of the key is classical bit i.
type Counts map[string]int

// ErrDuplicateRegister is returned when a register name is reused.
var ErrDuplicateRegister = errors.New("duplicate register name")

// Circuit is an ordered gate list over named registers.
type Circuit struct {
	Name string

	qregs  []Register
	cregs  []Register
	qubits int
	clbits int
	gates  []Gate
}

// New returns an empty circuit.
func New(name string) *Circuit {
	return &Circuit{Name: name}
}

// AddRegister appends a quantum register of the given size.
func (c *Circuit) AddRegister(name string, size int) (Register, error) {
	if err := c.checkName(name, size); err != nil {
		return Register{}, err
	}
	r := Register{Name: name, Offset: c.qubits, Size: size}
	c.qregs = append(c.qregs, r)
	c.qubits += size
	return r, nil
}

// AddClassical appends a classical register of the given size.
func (c *Circuit) AddClassical(name string, size int) (Register, error) {
	if err := c.checkName(name, size); err != nil {
		return Register{}, err
	}
	r := Register{Name: name, Offset: c.clbits, Size: size}
	c.cregs = append(c.cregs, r)
	c.clbits += size
	return r, nil
}

func (c *Circuit) checkName(name string, size int) error {
	if size < 1 {
		return fmt.Errorf("register %q: size %d, need at least 1", name, size)
	}
	for _, r := range append(append([]Register(nil), c.qregs...), c.cregs...) {
		if r.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateRegister, name)
		}
	}
	return nil
}

// Register looks up a quantum or classical register by name.
func (c *Circuit) Register(name string) (Register, bool) {
	for _, r := range c.qregs {
		if r.Name == name {
			return r, true
		}
	}
	for _, r := range c.cregs {
		if r.Name == name {
			return r, true
		}
	}
	return Register{}, false
}

// Registers returns the quantum registers in declaration order.
func (c *Circuit) Registers() []Register { return append([]Register(nil), c.qregs...) }

// NumQubits returns the total qubit count.
func (c *Circuit) NumQubits() int { return c.qubits }

// NumClbits returns the total classical bit count.
func (c *Circuit) NumClbits() int { return c.clbits }

// Gates returns the gate list. Callers must not modify it.
func (c *Circuit) Gates() []Gate { return c.gates }

// Len returns the number of gates.
func (c *Circuit) Len() int { return len(c.gates) }

// X appends a NOT on q.
func (c *Circuit) X(q int) { c.gates = append(c.gates, Gate{Kind: X, Target: q}) }

// H appends a Hadamard on q.
func (c *Circuit) H(q int) { c.gates = append(c.gates, Gate{Kind: H, Target: q}) }

// Z appends a phase flip on q.
func (c *Circuit) Z(q int) { c.gates = append(c.gates, Gate{Kind: Z, Target: q}) }

// MCX appends a multi-controlled NOT. The controls slice is copied.
func (c *Circuit) MCX(controls []int, target int) {
	c.gates = append(c.gates, Gate{Kind: MCX, Controls: append([]int(nil), controls...), Target: target})
}

// Measure appends a measurement of q into classical bit clbit.
func (c *Circuit) Measure(q, clbit int) {
	c.gates = append(c.gates, Gate{Kind: Measure, Target: q, Clbit: clbit})
}

// XAll applies X to every index in qs.
func (c *Circuit) XAll(qs []int) {
	for _, q := range qs {
		c.X(q)
	}
}

// HAll applies H to every index in qs.
func (c *Circuit) HAll(qs []int) {
	for _, q := range qs {
		c.H(q)
	}
}

// Append adds already-built gates verbatim.
func (c *Circuit) Append(gates ...Gate) {
	for _, g := range gates {
		g.Controls = append([]int(nil), g.Controls...)
		c.gates = append(c.gates, g)
	}
}

// Compose inlines frag, mapping its qubit i to qubits[i]. Fragments with
// measurements cannot be composed.
func (c *Circuit) Compose(frag *Circuit, qubits []int) error {
	if len(qubits) != frag.qubits {
		return fmt.Errorf("compose %q: got %d qubits, fragment has %d", frag.Name, len(qubits), frag.qubits)
	}
	for _, q := range qubits {
		if q < 0 || q >= c.qubits {
			return fmt.Errorf("compose %q: qubit %d out of range [0,%d)", frag.Name, q, c.qubits)
		}
	}
	for _, g := range frag.gates {
		if g.Kind == Measure {
			return fmt.Errorf("compose %q: fragment contains measurements", frag.Name)
		}
		ng := Gate{Kind: g.Kind, Target: qubits[g.Target]}
		if len(g.Controls) > 0 {
			ng.Controls = make([]int, len(g.Controls))
			for i, q := range g.Controls {
				ng.Controls[i] = qubits[q]
			}
		}
		c.gates = append(c.gates, ng)
	}
	return nil
}

// Validate checks that every index is in range and that no gate uses the
// same qubit twice.
func (c *Circuit) Validate() error {
	for i, g := range c.gates {
		if g.Target < 0 || g.Target >= c.qubits {
			return fmt.Errorf("gate %d (%s): target %d out of range [0,%d)", i, g.Kind, g.Target, c.qubits)
		}
		switch g.Kind {
		case MCX:
			seen := map[int]bool{g.Target: true}
			for _, q := range g.Controls {
				if q < 0 || q >= c.qubits {
					return fmt.Errorf("gate %d (mcx): control %d out of range [0,%d)", i, q, c.qubits)
				}
				if seen[q] {
					return fmt.Errorf("gate %d (mcx): qubit %d used twice", i, q)
				}
				seen[q] = true
			}
		case Measure:
			if g.Clbit < 0 || g.Clbit >= c.clbits {
				return fmt.Errorf("gate %d (measure): clbit %d out of range [0,%d)", i, g.Clbit, c.clbits)
			}
		case X, H, Z:
		default:
			return fmt.Errorf("gate %d: unknown kind %s", i, g.Kind)
		}
	}
	return nil
}

// Eval runs the circuit on a classical basis state and returns the final
// bits, one entry per qubit. Only X and MCX are classical; any other gate is
// an error. The input slice is not modified.
func (c *Circuit) Eval(bits []uint8) ([]uint8, error) {
	if len(bits) != c.qubits {
		return nil, fmt.Errorf("eval %q: got %d bits, circuit has %d qubits", c.Name, len(bits), c.qubits)
	}
	out := make([]uint8, len(bits))
	for i, b := range bits {
		out[i] = b & 1
	}
	for i, g := range c.gates {
		switch g.Kind {
		case X:
			out[g.Target] ^= 1
		case MCX:
			fire := uint8(1)
			for _, q := range g.Controls {
				fire &= out[q]
			}
			out[g.Target] ^= fire
		default:
			return nil, fmt.Errorf("eval %q: gate %d (%s) is not classical", c.Name, i, g.Kind)
		}
	}
	return out, nil
}

// Stats counts gates per kind.
func (c *Circuit) Stats() map[Kind]int {
	out := make(map[Kind]int)
	for _, g := range c.gates {
		out[g.Kind]++
	}
	return out
}

// String lists registers and gate counts.
func (c *Circuit) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d qubits, %d clbits, %d gates", c.Name, c.qubits, c.clbits, len(c.gates))
	stats := c.Stats()
	kinds := make([]int, 0, len(stats))
	for k := range stats {
		kinds = append(kinds, int(k))
	}
	sort.Ints(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&sb, " %s=%d", Kind(k), stats[Kind(k)])
	}
	return sb.String()
}

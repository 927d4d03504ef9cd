// Package sim is a sparse state-vector simulator for circuit.Circuit.
//
// The state is a map from basis index to amplitude, so memory grows with
// the number of basis states that carry weight rather than with 2^n. The
// circuits built by the grover package keep every register except the
// sequence register classical, which keeps the map small even for circuits
// with a few dozen qubits.
//
// Measurements are deferred: every Measure gate is recorded and sampled
// after the last unitary gate. A gate that touches an already measured qubit
// is rejected with ErrMidCircuitMeasurement.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/gitrdm/cubeq/internal/logging"
	"github.com/gitrdm/cubeq/pkg/circuit"
)

// MaxQubits is the widest circuit the simulator accepts.
const MaxQubits = 64

// pruneBelow drops basis states whose probability falls under this after a
// Hadamard, which removes cancellation residue.
const pruneBelow = 1e-20

var (
	// ErrMidCircuitMeasurement is returned when a gate acts on a qubit
	// after it has been measured.
	ErrMidCircuitMeasurement = errors.New("gate after measurement")
	// ErrTooManyQubits is returned for circuits wider than MaxQubits.
	ErrTooManyQubits = fmt.Errorf("circuit wider than %d qubits", MaxQubits)
	// ErrInvalidShots is returned when fewer than one shot is requested.
	ErrInvalidShots = errors.New("shots must be at least 1")
)

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed fixes the sampling seed.
func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger. The default comes from logging.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// Simulator runs circuits. It is safe for concurrent use; sampling draws
// from one shared source under a mutex.
type Simulator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *slog.Logger
}

// New returns a simulator seeded from the clock unless WithSeed is given.
func New(opts ...Option) *Simulator {
	s := &Simulator{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s
}

// Run executes c and samples shots outcomes of its classical bits.
func (s *Simulator) Run(ctx context.Context, c *circuit.Circuit, shots int) (circuit.Counts, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShots, shots)
	}
	dist, err := s.distribution(ctx, c)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	cum := make([]float64, len(keys))
	total := 0.0
	for i, k := range keys {
		total += dist[k]
		cum[i] = total
	}

	counts := make(circuit.Counts)
	s.mu.Lock()
	for n := 0; n < shots; n++ {
		r := s.rng.Float64() * total
		i := sort.SearchFloat64s(cum, r)
		if i == len(keys) {
			i--
		}
		counts[keys[i]]++
	}
	s.mu.Unlock()
	return counts, nil
}

// Distribution returns the exact probability of every classical outcome
// with non-negligible weight. Keys follow the same convention as Run.
func (s *Simulator) Distribution(c *circuit.Circuit) (map[string]float64, error) {
	return s.distribution(context.Background(), c)
}

func (s *Simulator) distribution(ctx context.Context, c *circuit.Circuit) (map[string]float64, error) {
	n := c.NumQubits()
	if n > MaxQubits {
		return nil, fmt.Errorf("%w: %d", ErrTooManyQubits, n)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid circuit: %w", err)
	}

	st := state{0: 1}
	measured := make(map[int]int) // qubit -> clbit
	var order []int
	for i, g := range c.Gates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := checkUnmeasured(measured, g); err != nil {
			return nil, fmt.Errorf("gate %d (%s): %w", i, g.Kind, err)
		}
		switch g.Kind {
		case circuit.X:
			st = st.mcx(0, bit(g.Target))
		case circuit.MCX:
			var mask uint64
			for _, q := range g.Controls {
				mask |= bit(q)
			}
			st = st.mcx(mask, bit(g.Target))
		case circuit.Z:
			st.z(bit(g.Target))
		case circuit.H:
			st = st.h(bit(g.Target))
		case circuit.Measure:
			measured[g.Target] = g.Clbit
			order = append(order, g.Target)
		}
	}
	s.logger.Debug("simulated circuit",
		"circuit", c.Name, "qubits", n, "gates", c.Len(), "terms", len(st))

	dist := make(map[string]float64)
	key := make([]byte, c.NumClbits())
	for idx, amp := range st {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		if p < pruneBelow {
			continue
		}
		for j := range key {
			key[j] = '0'
		}
		for _, q := range order {
			if idx&bit(q) != 0 {
				key[measured[q]] = '1'
			} else {
				key[measured[q]] = '0'
			}
		}
		dist[string(key)] += p
	}
	return dist, nil
}

func checkUnmeasured(measured map[int]int, g circuit.Gate) error {
	if _, ok := measured[g.Target]; ok {
		return fmt.Errorf("%w: qubit %d", ErrMidCircuitMeasurement, g.Target)
	}
	for _, q := range g.Controls {
		if _, ok := measured[q]; ok {
			return fmt.Errorf("%w: qubit %d", ErrMidCircuitMeasurement, q)
		}
	}
	return nil
}

func bit(q int) uint64 { return 1 << uint(q) }

// state maps basis index to amplitude. Absent entries are zero.
type state map[uint64]complex128

// mcx flips target on every basis state where all control bits are set. An
// empty mask is a plain X.
func (s state) mcx(controls, target uint64) state {
	out := make(state, len(s))
	for idx, a := range s {
		if idx&controls == controls {
			idx ^= target
		}
		out[idx] = a
	}
	return out
}

func (s state) z(target uint64) {
	for idx, a := range s {
		if idx&target != 0 {
			s[idx] = -a
		}
	}
}

func (s state) h(target uint64) state {
	f := complex(1/math.Sqrt2, 0)
	out := make(state, 2*len(s))
	for idx, a := range s {
		lo, hi := idx&^target, idx|target
		out[lo] += f * a
		if idx&target == 0 {
			out[hi] += f * a
		} else {
			out[hi] -= f * a
		}
	}
	for idx, a := range out {
		if real(a)*real(a)+imag(a)*imag(a) < pruneBelow {
			delete(out, idx)
		}
	}
	return out
}

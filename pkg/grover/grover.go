// Package grover runs amplitude amplification over move sequences.
//
// An Engine prepares the sequence register in uniform superposition, loads
// the scrambled edge orientation into the invariant register, puts the flag
// qubit in |->, and then alternates the pattern oracle with a diffusion over
// the sequence register. Measuring the sequence register samples move
// sequences biased toward those that restore the target orientation.
//
// Execution is delegated to a Backend. The engine never retries: backend
// errors are returned as is, and a run in which no solution shows up is a
// normal result, not an error.
package grover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gitrdm/cubeq/internal/logging"
	"github.com/gitrdm/cubeq/pkg/circuit"
	"github.com/gitrdm/cubeq/pkg/cube"
	"github.com/gitrdm/cubeq/pkg/layout"
	"github.com/gitrdm/cubeq/pkg/oracle"
)

// Counts maps a measured bit string to its frequency. Character i of the
// key is classical bit i, which holds sequence-register bit i.
type Counts = circuit.Counts

// Backend executes a circuit and returns measurement counts. Run blocks
// until the histogram is available. Engine.Run returns a backend error
// unchanged.
type Backend interface {
	Run(ctx context.Context, c *circuit.Circuit, shots int) (Counts, error)
}

// ErrNoBackend is returned by Run on an engine built without a backend.
var ErrNoBackend = errors.New("no backend configured")

// MaxIterations bounds the rounds per circuit, whether configured or
// derived from the search space.
const MaxIterations = 10000

// Iterations returns max(1, round(pi/4 * sqrt(n/m))). A non-positive m is
// treated as 1, the usual assumption when the solution count is unknown.
func Iterations(n, m int) int {
	if m <= 0 {
		m = 1
	}
	r := int(math.Round(math.Pi / 4 * math.Sqrt(float64(n)/float64(m))))
	if r < 1 {
		return 1
	}
	return r
}

// Diffuse appends the reflection about the uniform superposition over reg:
// H and X on every qubit, a multi-controlled Z built from H-MCX-H on the
// last qubit, then X and H again.
func Diffuse(c *circuit.Circuit, reg circuit.Register) {
	qs := reg.Qubits()
	last := qs[len(qs)-1]
	c.HAll(qs)
	c.XAll(qs)
	c.H(last)
	c.MCX(qs[:len(qs)-1], last)
	c.H(last)
	c.XAll(qs)
	c.HAll(qs)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The default is logging.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTracer overrides the tracer. The default is the global provider's
// tracer for this package.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// Engine holds the compiled oracle for one configuration. It is safe to
// call Circuit and Run concurrently.
type Engine struct {
	cfg        Config
	layout     *layout.Layout
	effect     *oracle.EdgeFlipEffect
	oracle     *oracle.PatternOracle
	oracleFrag *circuit.Circuit
	iterations int
	backend    Backend
	logger     *slog.Logger
	tracer     trace.Tracer
}

// New validates cfg and compiles the oracle. backend may be nil for an
// engine that only builds circuits.
func New(cfg Config, backend Backend, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l, err := layout.New(cfg.Alphabet, cfg.Depth, cfg.BitsPerSymbol)
	if err != nil {
		return nil, err
	}
	eff, err := oracle.NewEdgeFlipEffect(l, oracle.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, err
	}
	target, err := InitialFromScramble(cfg.Target)
	if err != nil {
		return nil, err
	}
	o := oracle.NewPatternOracle(l, eff, oracle.WithTarget(target))
	frag, err := o.Build()
	if err != nil {
		return nil, fmt.Errorf("build oracle: %w", err)
	}
	circuitsBuilt.WithLabelValues("oracle").Inc()

	e := &Engine{
		cfg:        cfg,
		layout:     l,
		effect:     eff,
		oracle:     o,
		oracleFrag: frag,
		iterations: cfg.Iterations,
		backend:    backend,
	}
	if e.iterations == 0 {
		e.iterations = Iterations(l.SearchSpace(), cfg.Solutions)
	}
	if e.iterations > MaxIterations {
		return nil, fmt.Errorf("%w: %d iterations for a search space of %d, limit %d",
			cube.ErrConfiguration, e.iterations, l.SearchSpace(), MaxIterations)
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.Default()
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer("github.com/gitrdm/cubeq/pkg/grover")
	}

	e.logger.Debug("engine ready",
		"layout", l.String(),
		"search_space", l.SearchSpace(),
		"iterations", e.iterations,
		"oracle_gates", frag.Len())
	return e, nil
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// Layout returns the register layout.
func (e *Engine) Layout() *layout.Layout { return e.layout }

// Iterations returns the number of oracle and diffusion rounds per circuit.
func (e *Engine) Iterations() int { return e.iterations }

// Oracle returns the compiled oracle fragment over seq|inv|flag.
func (e *Engine) Oracle() *circuit.Circuit { return e.oracleFrag }

// Circuit assembles the full search circuit for a starting orientation.
// Classical bit i receives sequence-register bit i.
func (e *Engine) Circuit(initial [cube.EdgeCount]uint8) (*circuit.Circuit, error) {
	c := circuit.New("grover")
	seq, err := c.AddRegister("seq", e.layout.SequenceWidth())
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
	out, err := c.AddClassical("out", seq.Size)
	if err != nil {
		return nil, err
	}

	c.HAll(seq.Qubits())
	for i, b := range initial {
		if b&1 == 1 {
			c.X(inv.Qubit(i))
		}
	}
	c.X(flag.Qubit(0))
	c.H(flag.Qubit(0))

	wires := append(append(seq.Qubits(), inv.Qubits()...), flag.Qubit(0))
	for r := 0; r < e.iterations; r++ {
		if err := c.Compose(e.oracleFrag, wires); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", r, err)
		}
		Diffuse(c, seq)
	}

	for i := 0; i < seq.Size; i++ {
		c.Measure(seq.Qubit(i), out.Qubit(i))
	}

	circuitsBuilt.WithLabelValues("grover").Inc()
	circuitGates.Observe(float64(c.Len()))
	return c, nil
}

// Run builds the circuit for initial, executes it on the backend and decodes
// the histogram.
func (e *Engine) Run(ctx context.Context, initial [cube.EdgeCount]uint8, shots int) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	ctx, span := e.tracer.Start(ctx, "grover.Run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("iterations", e.iterations),
		attribute.Int("shots", shots),
		attribute.Int("search_space", e.layout.SearchSpace()),
	))
	defer span.End()

	if e.backend == nil {
		span.RecordError(ErrNoBackend)
		span.SetStatus(codes.Error, "no backend")
		return nil, ErrNoBackend
	}
	if shots < 1 {
		err := fmt.Errorf("%w: shots %d, need at least 1", cube.ErrConfiguration, shots)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid shots")
		return nil, err
	}

	c, err := e.Circuit(initial)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "circuit build failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("gates", c.Len()), attribute.Int("qubits", c.NumQubits()))

	counts, err := e.backend.Run(ctx, c, shots)
	if err != nil {
		backendErrors.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "backend failed")
		e.logger.Warn("backend failed", "run_id", runID, "error", err)
		return nil, err
	}

	res := &Result{
		RunID:      runID,
		Iterations: e.iterations,
		Shots:      shots,
		Counts:     counts,
		Outcomes:   e.outcomes(counts, initial),
	}
	runSeconds.Observe(time.Since(start).Seconds())

	if top, ok := res.Top(); ok {
		span.SetAttributes(attribute.String("top_outcome", top.Bits), attribute.Bool("top_solves", top.Solves))
		e.logger.Info("grover run complete",
			"run_id", runID,
			"iterations", e.iterations,
			"shots", shots,
			"distinct", len(counts),
			"top", top.Bits,
			"top_count", top.Count,
			"top_solves", top.Solves)
	}
	span.SetStatus(codes.Ok, "")
	return res, nil
}

func (e *Engine) outcomes(counts Counts, initial [cube.EdgeCount]uint8) []Outcome {
	target := e.oracle.Target()
	out := make([]Outcome, 0, len(counts))
	for bits, n := range counts {
		o := Outcome{Bits: bits, Count: n}
		symbols, moves, err := e.Decode(bits)
		o.Codes = symbols
		if err == nil {
			o.Moves = moves
			o.Valid = true
			if final, err := e.effect.Classical(symbols, initial); err == nil {
				o.Solves = final == target
			}
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Bits < out[j].Bits
	})
	return out
}

// Decode turns a measured key into symbol codes and move tokens. Codes are
// returned even when a padding code makes the token lookup fail with
// layout.ErrInvalidCode.
func (e *Engine) Decode(bits string) ([]int, []string, error) {
	if len(bits) != e.layout.SequenceWidth() {
		return nil, nil, fmt.Errorf("outcome %q: got %d bits, want %d", bits, len(bits), e.layout.SequenceWidth())
	}
	reg := make([]uint8, len(bits))
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
		case '1':
			reg[i] = 1
		default:
			return nil, nil, fmt.Errorf("outcome %q: invalid character %q", bits, bits[i])
		}
	}
	symbols, err := e.layout.DecodeSequence(reg)
	if err != nil {
		return nil, nil, err
	}
	moves, err := e.layout.Tokens(symbols)
	if err != nil {
		return symbols, nil, err
	}
	return symbols, moves, nil
}

// IsSolution reports whether the code sequence takes initial to the
// engine's target orientation.
func (e *Engine) IsSolution(symbols []int, initial [cube.EdgeCount]uint8) (bool, error) {
	final, err := e.effect.Classical(symbols, initial)
	if err != nil {
		return false, err
	}
	return final == e.oracle.Target(), nil
}

// InitialFromScramble returns the orientation with the listed edge
// positions flipped. Each listing toggles, so a position listed twice ends
// up unflipped.
func InitialFromScramble(positions []int) ([cube.EdgeCount]uint8, error) {
	var v [cube.EdgeCount]uint8
	for _, p := range positions {
		if p < 0 || p >= cube.EdgeCount {
			return v, fmt.Errorf("%w: edge position %d outside [0, %d)", cube.ErrConfiguration, p, cube.EdgeCount)
		}
		v[p] ^= 1
	}
	return v, nil
}

package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/cubeq/pkg/circuit"
)

func newCircuit(t *testing.T, qubits, clbits int) (*circuit.Circuit, circuit.Register, circuit.Register) {
	t.Helper()
	c := circuit.New(t.Name())
	q, err := c.AddRegister("q", qubits)
	require.NoError(t, err)
	cl, err := c.AddClassical("c", clbits)
	require.NoError(t, err)
	return c, q, cl
}

func TestDistribution_Entangled(t *testing.T) {
	c, q, cl := newCircuit(t, 2, 2)
	c.H(q.Qubit(0))
	c.MCX([]int{q.Qubit(0)}, q.Qubit(1))
	c.Measure(q.Qubit(0), cl.Qubit(0))
	c.Measure(q.Qubit(1), cl.Qubit(1))

	dist, err := New().Distribution(c)
	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.InDelta(t, 0.5, dist["00"], 1e-12)
	assert.InDelta(t, 0.5, dist["11"], 1e-12)
}

func TestDistribution_Interference(t *testing.T) {
	// H H is the identity; H Z H is X.
	c, q, cl := newCircuit(t, 2, 2)
	c.H(q.Qubit(0))
	c.H(q.Qubit(0))
	c.H(q.Qubit(1))
	c.Z(q.Qubit(1))
	c.H(q.Qubit(1))
	c.Measure(q.Qubit(0), cl.Qubit(0))
	c.Measure(q.Qubit(1), cl.Qubit(1))

	dist, err := New().Distribution(c)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"01": dist["01"]}, dist)
	assert.InDelta(t, 1, dist["01"], 1e-12)
}

func TestDistribution_KeyFollowsClbitIndex(t *testing.T) {
	c, q, cl := newCircuit(t, 3, 3)
	c.X(q.Qubit(0))
	c.MCX([]int{q.Qubit(0)}, q.Qubit(2))
	c.MCX([]int{q.Qubit(0), q.Qubit(1)}, q.Qubit(2)) // controls not all set
	// Qubit 2 goes to clbit 0; clbit 2 is never written.
	c.Measure(q.Qubit(2), cl.Qubit(0))
	c.Measure(q.Qubit(1), cl.Qubit(1))

	dist, err := New().Distribution(c)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"100": 1}, dist)
}

func TestRun_Deterministic(t *testing.T) {
	c, q, cl := newCircuit(t, 1, 1)
	c.X(q.Qubit(0))
	c.Measure(q.Qubit(0), cl.Qubit(0))

	counts, err := New().Run(context.Background(), c, 25)
	require.NoError(t, err)
	assert.Equal(t, circuit.Counts{"1": 25}, counts)
}

func TestRun_SeedIsReproducible(t *testing.T) {
	c, q, cl := newCircuit(t, 3, 3)
	c.HAll(q.Qubits())
	for i := 0; i < 3; i++ {
		c.Measure(q.Qubit(i), cl.Qubit(i))
	}

	a, err := New(WithSeed(42)).Run(context.Background(), c, 500)
	require.NoError(t, err)
	b, err := New(WithSeed(42)).Run(context.Background(), c, 500)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	total := 0
	for k, n := range a {
		assert.Len(t, k, 3)
		total += n
	}
	assert.Equal(t, 500, total)
}

func TestRun_Errors(t *testing.T) {
	c, q, cl := newCircuit(t, 1, 1)
	c.Measure(q.Qubit(0), cl.Qubit(0))
	c.X(q.Qubit(0))

	_, err := New().Run(context.Background(), c, 1)
	assert.ErrorIs(t, err, ErrMidCircuitMeasurement)

	ok, q2, cl2 := newCircuit(t, 1, 1)
	ok.Measure(q2.Qubit(0), cl2.Qubit(0))
	_, err = New().Run(context.Background(), ok, 0)
	assert.ErrorIs(t, err, ErrInvalidShots)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().Run(ctx, ok, 1)
	assert.ErrorIs(t, err, context.Canceled)

	wide := circuit.New("wide")
	_, err = wide.AddRegister("q", MaxQubits+1)
	require.NoError(t, err)
	_, err = New().Run(context.Background(), wide, 1)
	assert.ErrorIs(t, err, ErrTooManyQubits)

	bad, _, _ := newCircuit(t, 1, 1)
	bad.X(5)
	_, err = New().Run(context.Background(), bad, 1)
	assert.Error(t, err)
}

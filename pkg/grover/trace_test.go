package grover

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/gitrdm/cubeq/internal/logging"
	"github.com/gitrdm/cubeq/pkg/cube"
)

func TestEngine_RunSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	fb := &fakeBackend{counts: Counts{"000000": 4}}
	e, err := New(DefaultConfig(), fb, WithLogger(logging.Discard()), WithTracer(tp.Tracer("test")))
	require.NoError(t, err)

	res, err := e.Run(context.Background(), [cube.EdgeCount]uint8{}, 4)
	require.NoError(t, err)

	fb.err = errors.New("queue full")
	_, err = e.Run(context.Background(), [cube.EdgeCount]uint8{}, 4)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, s := range spans {
		assert.Equal(t, "grover.Run", s.Name())
	}
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.NotEmpty(t, spans[1].Events(), "error should be recorded as an event")

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, res.RunID, attrs["run_id"])
	assert.Equal(t, "6", attrs["iterations"])
	assert.Equal(t, "4", attrs["shots"])
	assert.Equal(t, "000000", attrs["top_outcome"])
}

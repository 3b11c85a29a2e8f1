package context

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunContext_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRunID(ctx))

	run := &RunContext{RunID: "run-1", Command: "provision", StartedAt: time.Now()}
	ctx = WithRun(ctx, run)

	assert.Same(t, run, GetRun(ctx))
	assert.Equal(t, "run-1", GetRunID(ctx))
}

func TestGetTraceID_GeneratesWhenMissing(t *testing.T) {
	ctx := context.Background()
	assert.NotEmpty(t, GetTraceID(ctx))
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithTrace(ctx, &TraceContext{TraceID: "t", RequestID: "r"})
	assert.Equal(t, "t", GetTraceID(ctx))
	assert.Equal(t, "r", GetRequestID(ctx))
}

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-staker/internal/ratelimit"
)

func TestLimiter_Unlimited(t *testing.T) {
	l := ratelimit.NewLimiter("rpc", ratelimit.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for range 1000 {
		require.NoError(t, l.Wait(ctx))
	}
}

func TestLimiter_Burst(t *testing.T) {
	l := ratelimit.NewLimiter("rpc", ratelimit.Config{RequestsPerSecond: 1, Burst: 3})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	for range 3 {
		require.NoError(t, l.Wait(ctx))
	}

	// The fourth token is a second away, past the deadline
	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait for rpc")
}

func TestLimiter_Canceled(t *testing.T) {
	l := ratelimit.NewLimiter("rpc", ratelimit.Config{RequestsPerSecond: 0.001})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, l.Wait(ctx))

	cancel()
	assert.Error(t, l.Wait(ctx))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	allowed, err := CheckAndSetRateLimit(context.Background(), nil, "adal", "signin", time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.NoError(t, ClearRateLimit(context.Background(), nil, "adal", "signin"))
}

func TestRateLimitDisabledWithZeroWindow(t *testing.T) {
	allowed, err := CheckAndSetRateLimit(context.Background(), nil, "adal", "signin", 0)
	require.NoError(t, err)
	assert.True(t, allowed)
}

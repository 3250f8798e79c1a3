package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryLimiter_BurstThenDeny(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Minute, 2)

	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"), "burst exhausted")
}

func TestInMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Minute, 1)

	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"), "a busy client must not starve others")
}

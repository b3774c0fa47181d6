package memo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolCallKeyOrderIndependent(t *testing.T) {
	a := ToolCallKey("account_balance", map[string]any{"address": "15oF4u", "row": 1})
	b := ToolCallKey("account_balance", map[string]any{"row": 1, "address": "15oF4u"})
	assert.Equal(t, a, b)

	c := ToolCallKey("account_balance", map[string]any{"address": "15oF4u", "row": 2})
	assert.NotEqual(t, a, c)

	d := ToolCallKey("extrinsic_detail", map[string]any{"address": "15oF4u", "row": 1})
	assert.NotEqual(t, a, d)
}

func TestLLMKeyIncludesPromptIdentity(t *testing.T) {
	a := LLMKey("recognizer/v1", "what is the balance", "polkadot")
	b := LLMKey("recognizer/v2", "what is the balance", "polkadot")
	assert.NotEqual(t, a, b)

	c := LLMKey("recognizer/v1", "what is the balance", "polkadot")
	assert.Equal(t, a, c)
}

func TestDoCachesSuccess(t *testing.T) {
	cache := New(16, time.Minute)
	calls := 0
	fn := func(context.Context) (any, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := cache.Do(context.Background(), 42, fn)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, calls)
}

func TestDoNeverCachesErrors(t *testing.T) {
	cache := New(16, time.Minute)
	calls := 0
	boom := errors.New("backend down")
	fn := func(context.Context) (any, error) {
		calls++
		return nil, boom
	}

	for i := 0; i < 2; i++ {
		_, err := cache.Do(context.Background(), 7, fn)
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, cache.Len())
}

func TestExpiryIsLazy(t *testing.T) {
	cache := New(16, 10*time.Millisecond)
	cache.Set(1, "old")

	_, ok := cache.Get(1)
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = cache.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestLRUEviction(t *testing.T) {
	cache := New(2, time.Minute)
	cache.Set(1, "a")
	cache.Set(2, "b")

	// Touch 1 so 2 becomes the eviction candidate.
	_, ok := cache.Get(1)
	require.True(t, ok)

	cache.Set(3, "c")
	assert.Equal(t, 2, cache.Len())

	_, ok = cache.Get(2)
	assert.False(t, ok)
	_, ok = cache.Get(1)
	assert.True(t, ok)
	_, ok = cache.Get(3)
	assert.True(t, ok)
}

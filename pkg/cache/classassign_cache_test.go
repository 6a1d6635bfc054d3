package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassAssignCache_SetGet(t *testing.T) {
	mem := MustNew(&Options{Backend: BackendMemory})
	defer mem.Close()

	cc := NewClassAssignCache(mem, time.Minute)
	ctx := context.Background()

	result := &CachedClassAssignment{
		Assignment:     map[string]string{"s1": "A", "s2": "A"},
		Unassigned:     []string{"s3"},
		ObjectiveValue: 7,
	}

	require.NoError(t, cc.Set(ctx, "hash1", "preprocessed", result, 0))

	got, found, err := cc.Get(ctx, "hash1", "preprocessed")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, result.Assignment, got.Assignment)
	assert.Equal(t, result.Unassigned, got.Unassigned)
	assert.Equal(t, result.ObjectiveValue, got.ObjectiveValue)
	assert.False(t, got.ComputedAt.IsZero())
}

func TestClassAssignCache_GetMiss(t *testing.T) {
	mem := MustNew(&Options{Backend: BackendMemory})
	defer mem.Close()

	cc := NewClassAssignCache(mem, time.Minute)

	got, found, err := cc.Get(context.Background(), "nonexistent", "full")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestClassAssignCache_FormulationIsolation(t *testing.T) {
	mem := MustNew(&Options{Backend: BackendMemory})
	defer mem.Close()

	cc := NewClassAssignCache(mem, time.Minute)
	ctx := context.Background()

	preprocessed := &CachedClassAssignment{ObjectiveValue: 5}
	full := &CachedClassAssignment{ObjectiveValue: 9}

	require.NoError(t, cc.Set(ctx, "samehash", "preprocessed", preprocessed, 0))
	require.NoError(t, cc.Set(ctx, "samehash", "full", full, 0))

	gotPre, found, err := cc.Get(ctx, "samehash", "preprocessed")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(5), gotPre.ObjectiveValue)

	gotFull, found, err := cc.Get(ctx, "samehash", "full")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(9), gotFull.ObjectiveValue)
}

func TestClassAssignCache_Invalidate(t *testing.T) {
	mem := MustNew(&Options{Backend: BackendMemory})
	defer mem.Close()

	cc := NewClassAssignCache(mem, time.Minute)
	ctx := context.Background()

	require.NoError(t, cc.Set(ctx, "hash1", "preprocessed", &CachedClassAssignment{ObjectiveValue: 1}, 0))
	require.NoError(t, cc.Set(ctx, "hash1", "full", &CachedClassAssignment{ObjectiveValue: 2}, 0))
	require.NoError(t, cc.Set(ctx, "hash2", "preprocessed", &CachedClassAssignment{ObjectiveValue: 3}, 0))

	require.NoError(t, cc.Invalidate(ctx, "hash1"))

	_, found, err := cc.Get(ctx, "hash1", "preprocessed")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = cc.Get(ctx, "hash1", "full")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = cc.Get(ctx, "hash2", "preprocessed")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestClassAssignCache_InvalidateAll(t *testing.T) {
	mem := MustNew(&Options{Backend: BackendMemory})
	defer mem.Close()

	cc := NewClassAssignCache(mem, time.Minute)
	ctx := context.Background()

	require.NoError(t, cc.Set(ctx, "hash1", "preprocessed", &CachedClassAssignment{ObjectiveValue: 1}, 0))
	require.NoError(t, cc.Set(ctx, "hash2", "full", &CachedClassAssignment{ObjectiveValue: 2}, 0))

	count, err := cc.InvalidateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, found, err := cc.Get(ctx, "hash1", "preprocessed")
	require.NoError(t, err)
	assert.False(t, found)
}

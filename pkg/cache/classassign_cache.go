package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ClassAssignCache memoizes class-assignment solves keyed by a hash of their
// input, so identical requests skip the community-detection and ILP steps.
type ClassAssignCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedClassAssignment is the cacheable outcome of one class-assignment solve.
type CachedClassAssignment struct {
	Assignment     map[string]string `json:"assignment"` // student id -> class id
	Unassigned     []string          `json:"unassigned"`
	ObjectiveValue int64             `json:"objective_value"`
	ComputedAt     time.Time         `json:"computed_at"`
}

// NewClassAssignCache wraps cache with class-assignment-solve-specific (de)serialization.
func NewClassAssignCache(cache Cache, defaultTTL time.Duration) *ClassAssignCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &ClassAssignCache{cache: cache, defaultTTL: defaultTTL}
}

// Get retrieves a cached result for the given input hash and formulation
// ("preprocessed" or "full").
func (cc *ClassAssignCache) Get(ctx context.Context, inputHash, formulation string) (*CachedClassAssignment, bool, error) {
	key := BuildSolveKey("classassign", inputHash, formulation)

	data, err := cc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedClassAssignment
	if err := json.Unmarshal(data, &result); err != nil {
		_ = cc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup of corrupted entry
		return nil, false, nil
	}

	return &result, true, nil
}

// Set stores a class-assignment solve's result under the given input hash and formulation.
func (cc *ClassAssignCache) Set(ctx context.Context, inputHash, formulation string, result *CachedClassAssignment, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cc.defaultTTL
	}

	result.ComputedAt = time.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return cc.cache.Set(ctx, BuildSolveKey("classassign", inputHash, formulation), data, ttl)
}

// Invalidate removes every cached formulation for the given input hash.
func (cc *ClassAssignCache) Invalidate(ctx context.Context, inputHash string) error {
	pattern := fmt.Sprintf("solve:classassign:*:%s", inputHash)
	_, err := cc.cache.DeleteByPattern(ctx, pattern)
	return err
}

// InvalidateAll removes all cached class-assignment solves.
func (cc *ClassAssignCache) InvalidateAll(ctx context.Context) (int64, error) {
	return cc.cache.DeleteByPattern(ctx, "solve:classassign:*")
}

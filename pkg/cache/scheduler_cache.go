package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SchedulerCache memoizes conference-scheduling solves keyed by a hash of
// their input, so identical requests skip the min-cost-flow solver.
type SchedulerCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedScheduleResult is the cacheable outcome of one scheduling solve.
type CachedScheduleResult struct {
	Schedule    map[string]string `json:"schedule"` // "parent|teacher" -> slot
	Drops       []string          `json:"drops"`    // "parent|teacher"
	TotalReward int64             `json:"total_reward"`
	ComputedAt  time.Time         `json:"computed_at"`
}

// NewSchedulerCache wraps cache with scheduling-solve-specific (de)serialization.
func NewSchedulerCache(cache Cache, defaultTTL time.Duration) *SchedulerCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SchedulerCache{cache: cache, defaultTTL: defaultTTL}
}

// Get retrieves a cached result for the given input hash and formulation
// ("gadget" or "aggregator").
func (sc *SchedulerCache) Get(ctx context.Context, inputHash, formulation string) (*CachedScheduleResult, bool, error) {
	key := BuildSolveKey("schedule", inputHash, formulation)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedScheduleResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup of corrupted entry
		return nil, false, nil
	}

	return &result, true, nil
}

// Set stores a scheduling solve's result under the given input hash and formulation.
func (sc *SchedulerCache) Set(ctx context.Context, inputHash, formulation string, result *CachedScheduleResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	result.ComputedAt = time.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, BuildSolveKey("schedule", inputHash, formulation), data, ttl)
}

// Invalidate removes every cached formulation for the given input hash.
func (sc *SchedulerCache) Invalidate(ctx context.Context, inputHash string) error {
	pattern := fmt.Sprintf("solve:schedule:*:%s", inputHash)
	_, err := sc.cache.DeleteByPattern(ctx, pattern)
	return err
}

// InvalidateAll removes all cached scheduling solves.
func (sc *SchedulerCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "solve:schedule:*")
}

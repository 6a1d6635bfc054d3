// Package main is a thin smoke-test entrypoint for the two solver cores.
//
// It wires up configuration, logging, and metrics the way a real service
// built on this module would, then runs one conference-scheduling solve
// (Core A, gadget formulation) and one class-assignment solve (Core B)
// over small inline sample data. It does not parse flags or load a
// dataset from disk; those concerns belong to a real transport/API layer,
// which is out of scope here.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Print-In-Progress/edconnect-algorithms/internal/classassign"
	"github.com/Print-In-Progress/edconnect-algorithms/internal/scheduling"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/cache"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/config"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/logger"
	"github.com/Print-In-Progress/edconnect-algorithms/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)

	solveCache, err := cache.New(cache.FromConfig(&cfg.Cache))
	if err != nil {
		logger.Fatal("failed to construct cache", "error", err)
	}
	defer solveCache.Close()

	runID := uuid.New().String()
	log := logger.WithRequestID(runID)
	log.Info("starting solve run", "run_id", runID)

	ctx := context.Background()
	runScheduling(ctx, cfg, m, solveCache, runID)
	runClassAssignment(ctx, cfg, m, solveCache, runID)
}

func runScheduling(ctx context.Context, cfg *config.Config, m *metrics.Metrics, backend cache.Cache, runID string) {
	log := logger.WithRequestID(runID)
	input := scheduling.GadgetInput{
		TimeSlots: []string{"mon-9am", "mon-10am", "tue-9am"},
		Teachers:  []string{"ms-alvarez", "mr-chen"},
		ParentPreferences: []scheduling.ParentPreference{
			{Parent: "parent-1", Teachers: []string{"ms-alvarez", "mr-chen"}, PreferredSlots: []string{"mon-9am"}},
			{Parent: "parent-2", Teachers: []string{"ms-alvarez"}, PreferredSlots: []string{"tue-9am"}},
		},
		PreferredReward: cfg.Scheduling.PreferredReward,
		DropPenalty:     cfg.Scheduling.DropPenalty,
	}

	for _, warning := range scheduling.CheckFeasibility(input) {
		log.Warn("scheduling feasibility warning", "teacher", warning.Teacher, "message", warning.Message)
	}

	prefs := make([]cache.ParentPreferenceInput, len(input.ParentPreferences))
	for i, p := range input.ParentPreferences {
		prefs[i] = cache.ParentPreferenceInput{Parent: p.Parent, Teachers: p.Teachers, PreferredSlots: p.PreferredSlots}
	}
	inputHash := cache.SchedulingInputHash(input.TimeSlots, input.Teachers, prefs, input.PreferredReward, input.DropPenalty)
	schedCache := cache.NewSchedulerCache(backend, cfg.Cache.DefaultTTL)

	if cached, hit, err := schedCache.Get(ctx, inputHash, "gadget"); err == nil && hit {
		log.Info("scheduling solve served from cache", "total_reward", cached.TotalReward)
		return
	}

	timer := metrics.NewTimer(m.SolveDuration, "scheduling")
	result, err := scheduling.SolveGadget(input)
	duration := timer.ObserveDuration()
	m.RecordSolve("scheduling", err == nil, duration)
	if err != nil {
		log.Error("scheduling solve failed", "error", err)
		return
	}
	m.RecordSchedulingResult("gadget", result.TotalReward, len(input.ParentPreferences), len(result.Drops))

	preferredSlots := make(map[string][]string, len(input.ParentPreferences))
	for _, p := range input.ParentPreferences {
		preferredSlots[p.Parent] = p.PreferredSlots
	}
	suggestions := scheduling.BuildSuggestions(result.Schedule, input.TimeSlots, preferredSlots)

	log.Info("scheduling solve complete",
		"total_reward", result.TotalReward,
		"scheduled", len(result.Schedule),
		"dropped", len(result.Drops),
		"suggestions", len(suggestions),
	)

	cached := cacheableSchedule(result)
	if err := schedCache.Set(ctx, inputHash, "gadget", cached, cfg.Cache.DefaultTTL); err != nil {
		log.Warn("failed to cache scheduling result", "error", err)
	}
}

func cacheableSchedule(result *scheduling.Result) *cache.CachedScheduleResult {
	schedule := make(map[string]string, len(result.Schedule))
	for req, slot := range result.Schedule {
		schedule[req.Parent+"|"+req.Teacher] = slot
	}
	drops := make([]string, len(result.Drops))
	for i, req := range result.Drops {
		drops[i] = req.Parent + "|" + req.Teacher
	}
	return &cache.CachedScheduleResult{
		Schedule:    schedule,
		Drops:       drops,
		TotalReward: result.TotalReward,
	}
}

func runClassAssignment(ctx context.Context, cfg *config.Config, m *metrics.Metrics, backend cache.Cache, runID string) {
	log := logger.WithRequestID(runID)
	input := classassign.Input{
		Students: map[string]classassign.Student{
			"s1": {ID: "s1", Preferences: []string{"s2", "s3"}, Sex: "f"},
			"s2": {ID: "s2", Preferences: []string{"s1", "s3"}, Sex: "f"},
			"s3": {ID: "s3", Preferences: []string{"s1", "s2"}, Sex: "m"},
			"s4": {ID: "s4", Preferences: []string{"s5"}, Sex: "m", Attributes: map[string]bool{"iep": true}},
			"s5": {ID: "s5", Preferences: []string{"s4"}, Sex: "f"},
		},
		Classes:          []classassign.ClassDef{{ID: "homeroom-a", Capacity: 3}, {ID: "homeroom-b", Capacity: 3}},
		GenderRatio:      &classassign.GenderRatio{M: 0.5, F: 0.5},
		ClusterThreshold: cfg.ClassAssign.ClusterThreshold,
		TimeLimitSeconds: cfg.ClassAssign.TimeLimitSeconds,
	}

	assignCache := cache.NewClassAssignCache(backend, cfg.Cache.DefaultTTL)
	inputHash := classAssignInputHash(input)

	if cached, hit, err := assignCache.Get(ctx, inputHash, "auto"); err == nil && hit {
		log.Info("class assignment served from cache", "objective", cached.ObjectiveValue)
		return
	}

	timer := metrics.NewTimer(m.SolveDuration, "class_assign")
	result, err := classassign.Solve(input)
	duration := timer.ObserveDuration()
	m.RecordSolve("class_assign", err == nil, duration)
	if err != nil {
		log.Error("class assignment solve failed", "error", err)
		return
	}

	if len(result.Unassigned) > 0 {
		m.RecordRepairPlacement("overcapacity")
	}
	m.SetUnassigned("final", len(result.Unassigned))

	log.Info("class assignment solve complete",
		"objective", result.Objective,
		"unassigned", len(result.Unassigned),
	)

	cached := &cache.CachedClassAssignment{
		Assignment:     flattenAssignment(result),
		Unassigned:     result.Unassigned,
		ObjectiveValue: result.Objective,
	}
	if err := assignCache.Set(ctx, inputHash, "auto", cached, cfg.Cache.DefaultTTL); err != nil {
		log.Warn("failed to cache class assignment result", "error", err)
	}
}

func flattenAssignment(result *classassign.Assignment) map[string]string {
	out := make(map[string]string, len(result.Classes))
	for classID, members := range result.Classes {
		for _, studentID := range members {
			out[studentID] = classID
		}
	}
	return out
}

func classAssignInputHash(input classassign.Input) string {
	students := make([]cache.StudentInput, 0, len(input.Students))
	for _, s := range input.Students {
		students = append(students, cache.StudentInput{
			ID:          s.ID,
			Preferences: s.Preferences,
			Sex:         s.Sex,
			Categorical: s.Attributes,
		})
	}
	classes := make([]cache.ClassInput, len(input.Classes))
	for i, c := range input.Classes {
		classes[i] = cache.ClassInput{ID: c.ID, Capacity: c.Capacity}
	}
	var m, f float64
	if input.GenderRatio != nil {
		m, f = input.GenderRatio.M, input.GenderRatio.F
	}
	return cache.ClassAssignInputHash(students, classes, m, f, input.GenderRatio != nil, input.TimeLimitSeconds)
}

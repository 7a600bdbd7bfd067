package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of stage latency samples.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Pipeline stage names recorded by the analyzer.
const (
	StageParse   = "parse"
	StageSegment = "segment"
	StageRank    = "rank"
	StageExtract = "extract"
	StageTotal   = "total"
)

// LatencyStats tracks recent durations of one pipeline stage within a
// rolling window.
type LatencyStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewLatencyStats(maxAge time.Duration) *LatencyStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &LatencyStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *LatencyStats) Record(durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
	})
}

func (s *LatencyStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func (s *LatencyStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	if lower == upper {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}

// StageStats holds one LatencyStats per pipeline stage.
type StageStats struct {
	mu     sync.Mutex
	maxAge time.Duration
	stages map[string]*LatencyStats
}

func NewStageStats(maxAge time.Duration) *StageStats {
	return &StageStats{maxAge: maxAge, stages: make(map[string]*LatencyStats)}
}

// Observe records d against stage.
func (s *StageStats) Observe(stage string, d time.Duration) {
	s.mu.Lock()
	ls, ok := s.stages[stage]
	if !ok {
		ls = NewLatencyStats(s.maxAge)
		s.stages[stage] = ls
	}
	s.mu.Unlock()
	ls.Record(d.Milliseconds())
}

// Snapshot returns the current aggregate for every stage seen so far.
func (s *StageStats) Snapshot() map[string]StatsSnapshot {
	s.mu.Lock()
	stages := make(map[string]*LatencyStats, len(s.stages))
	for k, v := range s.stages {
		stages[k] = v
	}
	s.mu.Unlock()

	out := make(map[string]StatsSnapshot, len(stages))
	for k, v := range stages {
		out[k] = v.Snapshot()
	}
	return out
}

package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for session operations.
const (
	PhaseSettle  = "settle"
	PhaseVerify  = "verify"
	PhaseProve   = "prove"
	PhasePersist = "persist"
)

// PerfSample holds timing data for a single operation.
type PerfSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// PerfCollector tracks operation timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	opStart       time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of operations to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// Start begins timing a new operation.
func (p *PerfCollector) Start() {
	p.opStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// End finishes timing the current operation, records the sample and returns
// its duration.
func (p *PerfCollector) End() time.Duration {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	sample := PerfSample{
		Duration: now.Sub(p.opStart),
		Phases:   p.currentPhases,
	}

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.lastPhase = ""
	return sample.Duration
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Count       int
	AvgDuration time.Duration
	MaxDuration time.Duration
	PhaseAvg    map[string]time.Duration
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Count:    p.sampleCount,
		PhaseAvg: make(map[string]time.Duration),
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.Duration
		stats.MaxDuration = max(stats.MaxDuration, s.Duration)
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	stats.AvgDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		stats.PhaseAvg[phase] = sum / time.Duration(p.sampleCount)
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("count", s.Count),
		slog.Int64("avg_us", s.AvgDuration.Microseconds()),
		slog.Int64("max_us", s.MaxDuration.Microseconds()),
	}
	for phase, avg := range s.PhaseAvg {
		attrs = append(attrs, slog.Int64(phase+"_us", avg.Microseconds()))
	}
	return slog.GroupValue(attrs...)
}

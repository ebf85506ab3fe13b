package game

import (
	"slices"
	"time"
)

// Render-side phases timed per frame.
const (
	phaseSnapshot = "snapshot"
	phaseDraw     = "draw"
	phaseUI       = "ui"
)

// framePerf tracks rolling render-phase timings. Owned by the render loop.
type framePerf struct {
	samples    map[string][]time.Duration
	maxSamples int
}

func newFramePerf(maxSamples int) *framePerf {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &framePerf{
		samples:    make(map[string][]time.Duration),
		maxSamples: maxSamples,
	}
}

// Record adds a duration sample for the named phase.
func (p *framePerf) Record(name string, d time.Duration) {
	s := append(p.samples[name], d)
	if len(s) > p.maxSamples {
		s = s[1:]
	}
	p.samples[name] = s
}

// Avg returns the average duration for the named phase.
func (p *framePerf) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all phase averages.
func (p *framePerf) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns phase names, slowest first.
func (p *framePerf) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return int(p.Avg(b) - p.Avg(a))
	})
	return names
}

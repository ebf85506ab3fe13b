package game

import (
	"testing"
	"time"
)

func TestFramePerfRollingAverage(t *testing.T) {
	p := newFramePerf(2)
	p.Record(phaseDraw, 10*time.Millisecond)
	p.Record(phaseDraw, 20*time.Millisecond)
	p.Record(phaseDraw, 40*time.Millisecond)

	if got := p.Avg(phaseDraw); got != 30*time.Millisecond {
		t.Errorf("Avg = %v, want 30ms (oldest sample evicted)", got)
	}
	if got := p.Avg(phaseUI); got != 0 {
		t.Errorf("Avg of unknown phase = %v, want 0", got)
	}
}

func TestFramePerfSortedNames(t *testing.T) {
	p := newFramePerf(10)
	p.Record(phaseSnapshot, time.Millisecond)
	p.Record(phaseDraw, 5*time.Millisecond)
	p.Record(phaseUI, 2*time.Millisecond)

	names := p.SortedNames()
	want := []string{phaseDraw, phaseUI, phaseSnapshot}
	if len(names) != len(want) {
		t.Fatalf("SortedNames = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("SortedNames[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if got := p.Total(); got != 8*time.Millisecond {
		t.Errorf("Total = %v, want 8ms", got)
	}
}

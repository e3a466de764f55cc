package fractal

import (
	"slices"
	"testing"
)

func TestScheduleOrder(t *testing.T) {
	want := []Phase{
		PhaseReadParams, PhaseAllocGrid, PhaseAllocRows, PhaseCompute,
		PhaseSerialize, PhaseFreeRows, PhaseFreeGrid,
	}

	steps := Schedule(2)
	if len(steps) != 2*len(want) {
		t.Fatalf("Schedule(2) has %d steps, want %d", len(steps), 2*len(want))
	}
	for pass := range 2 {
		var got []Phase
		for _, s := range steps[pass*len(want) : (pass+1)*len(want)] {
			got = append(got, s.Phase)
		}
		if !slices.Equal(got, want) {
			t.Errorf("pass %d phases = %v, want %v", pass, got, want)
		}
	}
}

func TestStepRuns(t *testing.T) {
	serial := map[Phase]bool{
		PhaseReadParams: true,
		PhaseAllocGrid:  true,
		PhaseSerialize:  true,
		PhaseFreeGrid:   true,
	}
	for _, s := range Schedule(1) {
		if !s.Runs(0) {
			t.Errorf("%v does not run on worker 0", s.Phase)
		}
		if s.Runs(3) == serial[s.Phase] {
			t.Errorf("%v runs on worker 3: %v, want %v", s.Phase, s.Runs(3), !serial[s.Phase])
		}
	}
}

func TestPhaseString(t *testing.T) {
	if got := PhaseCompute.String(); got != "COMPUTE" {
		t.Errorf("PhaseCompute.String() = %q", got)
	}
	if got := Phase(42).String(); got != "Phase(42)" {
		t.Errorf("Phase(42).String() = %q", got)
	}
}

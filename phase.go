package fractal

import "fmt"

// Phase is one state of a pass.
type Phase int

const (
	PhaseReadParams Phase = iota
	PhaseAllocGrid
	PhaseAllocRows
	PhaseCompute
	PhaseSerialize
	PhaseFreeRows
	PhaseFreeGrid
)

func (p Phase) String() string {
	switch p {
	case PhaseReadParams:
		return "READ_PARAMS"
	case PhaseAllocGrid:
		return "ALLOC_GRID"
	case PhaseAllocRows:
		return "ALLOC_ROWS"
	case PhaseCompute:
		return "COMPUTE"
	case PhaseSerialize:
		return "SERIALIZE"
	case PhaseFreeRows:
		return "FREE_ROWS"
	case PhaseFreeGrid:
		return "FREE_GRID"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Step is a scheduled phase. Serial steps run on worker 0 only,
// the others run on every worker over its own partition.
// Every step ends with a barrier rendezvous.
type Step struct {
	Phase  Phase
	Serial bool
}

// passSteps is the order every worker walks through for one pass.
var passSteps = []Step{
	{Phase: PhaseReadParams, Serial: true},
	{Phase: PhaseAllocGrid, Serial: true},
	{Phase: PhaseAllocRows},
	{Phase: PhaseCompute},
	{Phase: PhaseSerialize, Serial: true},
	{Phase: PhaseFreeRows},
	{Phase: PhaseFreeGrid, Serial: true},
}

// Schedule returns the full step sequence for the given number of passes.
func Schedule(passes int) []Step {
	steps := make([]Step, 0, passes*len(passSteps))
	for range passes {
		steps = append(steps, passSteps...)
	}
	return steps
}

// Runs reports whether worker id executes s.
func (s Step) Runs(id int) bool {
	return !s.Serial || id == 0
}

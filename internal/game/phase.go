package game

// Phase is a step of the per-piece cycle.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseGeneration
	PhaseFalling
	PhaseLock
	PhasePattern
	PhaseIterate
	PhaseAnimate
	PhaseEliminate
	PhaseCompletion
	PhaseGameOver
)

var phaseNames = [...]string{
	PhaseNotStarted: "not started",
	PhaseGeneration: "generation",
	PhaseFalling:    "falling",
	PhaseLock:       "lock",
	PhasePattern:    "pattern",
	PhaseIterate:    "iterate",
	PhaseAnimate:    "animate",
	PhaseEliminate:  "eliminate",
	PhaseCompletion: "completion",
	PhaseGameOver:   "game over",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Controllable reports whether a falling piece accepts input in this phase.
func (p Phase) Controllable() bool {
	return p == PhaseFalling || p == PhaseLock
}

package freecell

// SolverConfig collects the tunable search constants. The priority weights
// are empirically chosen and shape search order only; correctness does not
// depend on them.
type SolverConfig struct {
	// UnsolvedWeight multiplies the count of cards off their foundations.
	UnsolvedWeight int `json:"unsolved_weight"`
	// LockWeight multiplies the count of locked cards.
	LockWeight int `json:"lock_weight"`
	// ShortPathLen is the path length below which every branch grades 0;
	// fresh boards compete on discovery order alone.
	ShortPathLen int `json:"short_path_len"`
	// LongPathLen is the path length above which LongPathWeight applies
	// instead of PathWeight, pushing deep branches back harder.
	LongPathLen int `json:"long_path_len"`
	// PathWeight multiplies the path length in the middle band.
	PathWeight int `json:"path_weight"`
	// LongPathWeight multiplies the path length past LongPathLen.
	LongPathWeight int `json:"long_path_weight"`
}

// DefaultSolverConfig returns the tuned defaults.
// Solver stats over the first few thousand deals: average solution path
// 93 moves, minimum 70, maximum 121; hence the 8/88 length thresholds.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		UnsolvedWeight: 10,
		LockWeight:     9,
		ShortPathLen:   8,
		LongPathLen:    88,
		PathWeight:     4,
		LongPathWeight: 8,
	}
}

// GradePolicy maps a board to its frontier grade; lower is expanded
// earlier. The policy is pluggable so weighting variants can be swapped
// without touching the solver loop.
type GradePolicy func(g *Game) int

// LengthGradePolicy builds the default policy: the heuristic counters
// weighted by the config, plus a length term that switches on thresholds.
func LengthGradePolicy(cfg SolverConfig) GradePolicy {
	return func(g *Game) int {
		n := len(g.Path())
		if n < cfg.ShortPathLen {
			return 0
		}
		grade := cfg.UnsolvedWeight*g.CountUnsolved() + cfg.LockWeight*g.CountLocks()
		if n > cfg.LongPathLen {
			return grade + n*cfg.LongPathWeight
		}
		return grade + n*cfg.PathWeight
	}
}

// PlainGradePolicy grades by the weighted heuristic counters plus the raw
// path length, with no thresholds. The historical alternative to
// LengthGradePolicy.
func PlainGradePolicy(cfg SolverConfig) GradePolicy {
	return func(g *Game) int {
		return cfg.UnsolvedWeight*g.CountUnsolved() + cfg.LockWeight*g.CountLocks() + len(g.Path())
	}
}

package freecell

import (
	"github.com/sirupsen/logrus"

	"github.com/constf1/freecell-solver/internal/deck"
	"github.com/constf1/freecell-solver/internal/grader"
)

// Status is the solver state machine.
type Status int

const (
	// StatusIdle: constructed, nothing dealt yet.
	StatusIdle Status = iota
	// StatusSearching: dealt, frontier holds work, no solution yet.
	StatusSearching
	// StatusExhausted: frontier drained without a solution.
	StatusExhausted
	// StatusSolved: at least one solution recorded; stepping may continue
	// to improve it.
	StatusSolved
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusExhausted:
		return "exhausted"
	case StatusSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// StepResult reports the outcome of one unit of incremental work.
type StepResult int

const (
	// StepExhausted: the frontier was empty, no more work exists.
	StepExhausted StepResult = iota
	// StepContinue: a batch was processed without finding a solution.
	StepContinue
	// StepSolved: a new best solution was recorded this step.
	StepSolved
)

// Solver runs an incremental best-first branch-and-bound search over one
// deal. All state is exclusively owned: one board mutated in place, a
// grade-bucketed frontier of candidate paths, a visited map from
// fingerprints to the best known estimate, and at most one solution.
// Single-threaded by design; the caller decides between steps whether to
// continue.
type Solver struct {
	cfg    SolverConfig
	policy GradePolicy
	bank   *grader.Grader[int, Path]
	done   map[Key]int
	game   *Game
	path   Path // best solution so far, nil if none
	status Status
	log    logrus.FieldLogger
}

// NewSolver builds an idle solver. A nil logger falls back to the standard
// logrus logger; debug lines are emitted at debug level only.
func NewSolver(cfg SolverConfig, log logrus.FieldLogger) *Solver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Solver{
		cfg:    cfg,
		policy: LengthGradePolicy(cfg),
		bank:   grader.New[int, Path](),
		done:   make(map[Key]int),
		game:   NewGame(),
		log:    log,
	}
}

// SetGradePolicy replaces the frontier grading policy. Takes effect from
// the next Step.
func (s *Solver) SetGradePolicy(policy GradePolicy) {
	if policy != nil {
		s.policy = policy
	}
}

// Game exposes the solver's board for inspection and replay. Callers must
// not mutate it between Step calls.
func (s *Solver) Game() *Game {
	return s.game
}

// Solution returns the shortest solution found so far.
func (s *Solver) Solution() (Path, bool) {
	if s.path == nil {
		return nil, false
	}
	return s.path, true
}

func (s *Solver) Status() Status {
	return s.status
}

// BankLen returns the number of paths awaiting expansion.
func (s *Solver) BankLen() int {
	return s.bank.Len()
}

// DoneLen returns the number of recorded states in the visited map.
func (s *Solver) DoneLen() int {
	return len(s.done)
}

// Clear resets the solver to idle.
func (s *Solver) Clear() {
	s.game.Clear()
	s.bank.Clear()
	clear(s.done)
	s.path = nil
	s.status = StatusIdle
}

// Deal clears all state, builds the initial desk from the seed, applies
// auto-play, seeds the frontier with the resulting path under grade 0 and
// records its fingerprint. The board is left rewound to the deal.
func (s *Solver) Deal(seed uint64) {
	s.Clear()

	s.game.Deal(deck.Deal(seed))
	s.game.MoveCardsAuto()

	s.bank.Add(0, s.game.Path().Clone())
	s.done[s.game.Invariant()] = len(s.game.Path())

	s.game.Rewind()
	s.status = StatusSearching
}

// Step performs one bounded unit of work: extract up to batchLimit paths
// from the lowest grade, expand each, and record any solution shorter than
// pathUpperLimit. The limit is tightened to the current solution first, so
// the search never chases something no better.
func (s *Solver) Step(pathUpperLimit, batchLimit int) StepResult {
	if s.path != nil && len(s.path) < pathUpperLimit {
		pathUpperLimit = len(s.path)
	}

	grade, ok := s.bank.First()
	if !ok {
		if s.status == StatusSearching {
			s.status = StatusExhausted
		}
		return StepExhausted
	}
	input, _ := s.bank.SplitOff(grade, batchLimit)

	// With other grades still banked, children compete by priority;
	// otherwise grading is flat to avoid pointless bucket churn.
	prioritize := s.bank.Len() > 0

	for len(input) > 0 {
		path := input[len(input)-1]
		input = input[:len(input)-1]

		s.game.SetPath(path)
		mark := len(path)

		// Generate before mutating: moves are only valid against the
		// exact board they were produced from.
		moves := s.game.AllMoves()

		for _, mv := range moves {
			s.game.Backward(mark)
			s.game.MoveCard(mv.Giver(), mv.Taker())
			s.game.MoveCardsAuto()

			// Skip over long solutions.
			estimate := s.game.EstimatePathLen()
			if estimate >= pathUpperLimit {
				continue
			}

			if s.game.HasNextMove() {
				// Not solved yet. Keep the path if this state is new or
				// reached better than before.
				key := s.game.Invariant()
				if known, seen := s.done[key]; !seen || estimate < known {
					s.done[key] = estimate
					childGrade := 0
					if prioritize {
						childGrade = s.policy(s.game)
					}
					s.bank.Add(childGrade, s.game.Path().Clone())
				}
			}

			solLen := len(s.game.Path())
			if solLen < pathUpperLimit && s.game.IsDone() {
				s.path = s.game.Path().Clone()
				s.status = StatusSolved
				s.log.Debugf("[solver] solved, path of %d moves", solLen)

				// Drain the unexamined rest of the batch back, then get
				// rid of paths that can no longer beat the solution.
				for i := len(input) - 1; i >= 0; i-- {
					s.bank.Add(grade, input[i])
				}
				s.clean(solLen)

				return StepSolved
			}
		}
	}

	return StepContinue
}

// clean sweeps the frontier and the visited map after a new solution:
// only entries that can still beat limit survive.
func (s *Solver) clean(limit int) {
	bankBefore := s.bank.Len()
	s.bank.Retain(func(_ int, path Path) bool {
		s.game.SetPath(path)
		return s.game.EstimatePathLen() < limit
	})

	doneBefore := len(s.done)
	for key, length := range s.done {
		if length >= limit {
			delete(s.done, key)
		}
	}

	s.log.Debugf("[solver] cleaning: bank=%d removed=%d; done=%d removed=%d",
		s.bank.Len(), bankBefore-s.bank.Len(), len(s.done), doneBefore-len(s.done))
}

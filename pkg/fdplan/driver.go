package fdplan

import "context"

// ReturnCode is the top-level result of a Run call (spec §6).
type ReturnCode int

const (
	FoundCode ReturnCode = iota
	NotFoundCode
	AbortCode
)

// Result is what a driver returns from Run.
type Result struct {
	Code ReturnCode
	Path Path
}

// PreferredMode controls how a driver treats the preferred-operator
// subset a heuristic returns (spec §4.5, §9).
type PreferredMode int

const (
	// PreferredModeNone pushes every applicable operator, in
	// whatever order the successor generator returned them.
	PreferredModeNone PreferredMode = iota
	// PreferredModePrefer pushes every applicable operator but with
	// preferred ones first, benefiting FIFO-ordered lists.
	PreferredModePrefer
	// PreferredModeOnly pushes only the preferred subset.
	PreferredModeOnly
)

// DriverConfig tunes the shared search skeleton.
type DriverConfig struct {
	ProgressFreq  int
	Preferred     PreferredMode
	Pathmax       bool // A* only
	ScratchOpSize int  // initial capacity of the applicable-ops scratch buffer
}

// DefaultDriverConfig returns reasonable defaults.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		ProgressFreq:  1000,
		Preferred:     PreferredModePrefer,
		ScratchOpSize: 64,
	}
}

// ProgressFunc is the sole cancellation point (spec §5): it is called
// every ProgressFreq steps, and returning Abort causes the driver to
// stop and surface ABORT to the caller.
type ProgressFunc func(*Statistics) HeurOutcome

// AnnounceFunc is the multi-agent public-state announcement hook
// (spec §4.6): called whenever a driver opens a child whose producing
// operator has a non-empty RecvSet, so the coordination layer can
// extract the public slice and notify every recipient agent. Single-
// agent callers leave this nil.
type AnnounceFunc func(ctx context.Context, op *Operator, childID StateID, g, h int)

// Problem is the aggregate the core searches: variables (via Pool's
// packer), initial state, goal, and the successor generator built over
// the grounded operator set. Loading a Problem from any file format is
// out of scope (spec §6) — callers construct one directly.
type Problem struct {
	Pool    *StatePool
	Goal    *PartialState
	SuccGen *SuccessorGenerator
}

// Core owns the fields every driver shares: the problem, the
// heuristic, the state space, the open list, accumulated statistics,
// and the applicable-ops scratch buffer preferred operators are sorted
// into. Drivers differ only in push-cost policy, restart policy, and
// open/close/reopen semantics — the "tagged variant" dispatch the
// design notes call for, rather than an inheritance hierarchy.
type Core struct {
	Problem  *Problem
	Heur     Heuristic
	Space    *StateSpace
	Open     OpenList
	Stats    *Statistics
	Config   DriverConfig
	Progress ProgressFunc
	Announce AnnounceFunc

	scratch     []*Operator
	opPreferred int
}

// maybeAnnounce calls the Announce hook when set and op carries a
// non-empty RecvSet (spec §4.6).
func (c *Core) maybeAnnounce(ctx context.Context, op *Operator, childID StateID, g, h int) {
	if c.Announce == nil || op == nil || op.RecvSet == 0 {
		return
	}
	c.Announce(ctx, op, childID, g, h)
}

// NewCore wires a Core around a problem, heuristic, open list
// implementation, and config. Each driver constructor calls this and
// wraps the result.
func NewCore(problem *Problem, heur Heuristic, open OpenList, cfg DriverConfig) *Core {
	if cfg.ScratchOpSize <= 0 {
		cfg.ScratchOpSize = 64
	}
	return &Core{
		Problem: problem,
		Heur:    heur,
		Space:   NewStateSpace(),
		Open:    open,
		Stats:   NewStatistics(),
		Config:  cfg,
		scratch: make([]*Operator, 0, cfg.ScratchOpSize),
	}
}

// applicableOps finds the applicable operators for stateID, sorts any
// preferred subset the heuristic named to the front of c.scratch, and
// records the preferred count in c.opPreferred. The returned slice
// aliases c.scratch and is only valid until the next call.
func (c *Core) applicableOps(stateID StateID, preferred []*Operator) []*Operator {
	state := c.Problem.Pool.Raw(stateID)
	ops, total := c.Problem.SuccGen.Find(state, c.scratch[:0])
	_ = total // truncation is a capacity-planning concern, not handled here

	if len(preferred) == 0 || c.Config.Preferred == PreferredModeNone {
		c.opPreferred = 0
		return ops
	}
	isPreferred := make(map[*Operator]bool, len(preferred))
	for _, op := range preferred {
		isPreferred[op] = true
	}
	n := 0
	for i := range ops {
		if isPreferred[ops[i]] {
			ops[n], ops[i] = ops[i], ops[n]
			n++
		}
	}
	c.opPreferred = n
	return ops
}

// pushOps pushes ops onto the open list at a uniform cost, honoring
// the configured preferred-operator mode.
func (c *Core) pushOps(ops []*Operator, parentState StateID, cost int) {
	limit := len(ops)
	if c.Config.Preferred == PreferredModeOnly {
		limit = c.opPreferred
	}
	for i := 0; i < limit; i++ {
		c.Open.Push(cost, parentState, ops[i])
	}
}

// goalReached reports whether stateID satisfies the problem's goal.
func (c *Core) goalReached(stateID StateID) bool {
	return c.Problem.Pool.PartialIsSubset(c.Problem.Goal, stateID)
}

// checkProgress calls the progress callback every ProgressFreq steps,
// reporting whether the callback requested an abort.
func (c *Core) checkProgress() bool {
	c.Stats.IncSteps()
	if c.Config.ProgressFreq <= 0 || c.Progress == nil {
		return false
	}
	snap := c.Stats.Snapshot()
	if snap.Steps%int64(c.Config.ProgressFreq) != 0 {
		return false
	}
	return c.Progress(c.Stats) == Abort
}

// StepOutcome is what one driver.Step call reports to the shared Run loop.
type StepOutcome int

const (
	StepContinue StepOutcome = iota
	StepFound
	StepDeadEnd
	StepAbort
)

// Driver is the minimal per-algorithm surface: initialize with the
// problem's start state, and perform one step. EHC, lazy best-first,
// and A* each implement this over a shared *Core.
type Driver interface {
	Init(ctx context.Context, initial StateID) (StepOutcome, StateID)
	Step(ctx context.Context) (StepOutcome, StateID)
}

// RunSearch drives d to completion: FOUND (with the reconstructed
// path), NOT_FOUND, or ABORT (spec §6's three return codes).
func RunSearch(ctx context.Context, d Driver, core *Core, initial StateID) (Result, error) {
	if outcome, goalID := d.Init(ctx, initial); outcome != StepContinue {
		switch outcome {
		case StepFound:
			core.Stats.SetFound(true)
			return Result{Code: FoundCode, Path: Path{Operators: core.Space.ExtractPath(goalID)}}, nil
		case StepDeadEnd:
			core.Stats.SetFound(false)
			return Result{Code: NotFoundCode}, nil
		default:
			return Result{Code: AbortCode}, nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return Result{Code: AbortCode}, ctx.Err()
		default:
		}

		outcome, goalID := d.Step(ctx)
		switch outcome {
		case StepContinue:
			continue
		case StepFound:
			core.Stats.SetFound(true)
			return Result{Code: FoundCode, Path: Path{Operators: core.Space.ExtractPath(goalID)}}, nil
		case StepDeadEnd:
			core.Stats.SetFound(false)
			return Result{Code: NotFoundCode}, nil
		case StepAbort:
			return Result{Code: AbortCode}, nil
		default:
			return Result{Code: AbortCode}, NewConfigError("driver returned unknown step outcome %d", outcome)
		}
	}
}

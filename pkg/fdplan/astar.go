package fdplan

import "context"

// AStarDriver implements A* search: states are ordered by f = g + h,
// nodes are reopened whenever a cheaper g is found (the state space's
// g-monotonicity invariant, spec §4.3), and the heuristic is evaluated
// eagerly at push time so f can be computed before the node competes
// for a pop. With an admissible, consistent heuristic this returns an
// optimal plan; with Pathmax enabled, each child's h is additionally
// floored at parent.h - edgeCost, which preserves optimality under
// heuristics that are admissible but not consistent.
type AStarDriver struct {
	core *Core
}

// NewAStarDriver builds an A* driver over the given open list. A
// HeapList or BucketList both give the cost-monotone pop order A*
// needs; the caller picks based on the problem's cost range (spec
// §4.4).
func NewAStarDriver(problem *Problem, heur Heuristic, open OpenList, cfg DriverConfig) *AStarDriver {
	return &AStarDriver{core: NewCore(problem, heur, open, cfg)}
}

func (d *AStarDriver) Core() *Core { return d.core }

func (d *AStarDriver) Init(ctx context.Context, initial StateID) (StepOutcome, StateID) {
	core := d.core

	hr := core.Heur.Evaluate(ctx, core.Problem.Pool, initial)
	core.Stats.IncEvaluated()
	switch hr.Outcome {
	case DeadEnd:
		return StepDeadEnd, NoState
	case Abort:
		return StepAbort, NoState
	}

	core.Space.Open(initial, NoState, nil, 0, hr.Value)
	if core.goalReached(initial) {
		return StepFound, initial
	}
	d.expand(ctx, initial, 0, hr.Value, hr.Preferred)
	return StepContinue, NoState
}

// expand closes stateID (which must already be OPEN with known g and
// h) and pushes each applicable operator's child at f = g + cost + h,
// evaluating the heuristic eagerly so the push cost is a true f value.
func (d *AStarDriver) expand(ctx context.Context, stateID StateID, g, h int, preferred []*Operator) {
	core := d.core
	core.Space.Close(stateID)
	core.Stats.IncExpanded()
	ops := core.applicableOps(stateID, preferred)
	core.Stats.AddGenerated(len(ops))

	limit := len(ops)
	if core.Config.Preferred == PreferredModeOnly {
		limit = core.opPreferred
	}
	for i := 0; i < limit; i++ {
		op := ops[i]
		childID := op.Apply(core.Problem.Pool, stateID)
		childG := g + op.Cost

		childH, outcome := d.childHeuristic(ctx, childID, h, op.Cost)
		if outcome == DeadEnd {
			continue
		}
		if outcome == Abort {
			continue // the child is dropped unpushed; expand does not report the Abort to Init or Step
		}
		core.Open.Push(childG+childH, stateID, op)
	}
}

// childHeuristic evaluates the heuristic for a child, applying the
// pathmax correction when configured.
func (d *AStarDriver) childHeuristic(ctx context.Context, childID StateID, parentH, edgeCost int) (int, HeurOutcome) {
	core := d.core
	hr := core.Heur.Evaluate(ctx, core.Problem.Pool, childID)
	core.Stats.IncEvaluated()
	if hr.Outcome != Continue {
		return 0, hr.Outcome
	}
	h := hr.Value
	if core.Config.Pathmax {
		floor := parentH - edgeCost
		if floor > h {
			h = floor
		}
	}
	return h, Continue
}

func (d *AStarDriver) Step(ctx context.Context) (StepOutcome, StateID) {
	core := d.core

	if abort := core.checkProgress(); abort {
		return StepAbort, NoState
	}

	edge, ok := core.Open.Pop()
	if !ok {
		return StepDeadEnd, NoState
	}

	childID := edge.Op.Apply(core.Problem.Pool, edge.ParentState)
	parentNode, _ := core.Space.Peek(edge.ParentState)
	g := parentNode.G + edge.Op.Cost

	if existing, exists := core.Space.Peek(childID); exists && existing.Status == StatusClosed && g >= existing.G {
		return StepContinue, NoState
	}

	// Re-evaluate at pop time rather than threading the push-time
	// HeurResult through the open list: simpler, and the cost doubling
	// is acceptable since it only recurs for states that actually reach
	// the front of the queue rather than every generated state.
	hr := core.Heur.Evaluate(ctx, core.Problem.Pool, childID)
	switch hr.Outcome {
	case DeadEnd:
		return StepContinue, NoState
	case Abort:
		return StepAbort, NoState
	}
	h := hr.Value
	if core.Config.Pathmax {
		if floor := parentNode.H - edge.Op.Cost; floor > h {
			h = floor
		}
	}

	if !core.Space.Open(childID, edge.ParentState, edge.Op, g, h) {
		return StepContinue, NoState
	}
	core.maybeAnnounce(ctx, edge.Op, childID, g, h)

	if core.goalReached(childID) {
		return StepFound, childID
	}

	d.expand(ctx, childID, g, h, hr.Preferred)
	return StepContinue, NoState
}

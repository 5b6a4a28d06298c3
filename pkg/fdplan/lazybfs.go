package fdplan

import "context"

// LazyBFSDriver implements lazy (greedy) best-first search (spec
// §4.5): states are popped in order of heuristic value alone, with no
// regard to path cost, and a node is never reopened once closed. The
// heuristic is evaluated lazily, at pop time rather than at push time
// — a successor sits in the open list carrying only its parent's h as
// a provisional sort key until it is actually popped.
type LazyBFSDriver struct {
	core *Core
}

// NewLazyBFSDriver builds a lazy best-first driver over the given open
// list implementation (heap, bucket, or map — the caller's choice of
// §4.4 variant).
func NewLazyBFSDriver(problem *Problem, heur Heuristic, open OpenList, cfg DriverConfig) *LazyBFSDriver {
	return &LazyBFSDriver{core: NewCore(problem, heur, open, cfg)}
}

func (d *LazyBFSDriver) Core() *Core { return d.core }

func (d *LazyBFSDriver) Init(ctx context.Context, initial StateID) (StepOutcome, StateID) {
	core := d.core

	if core.goalReached(initial) {
		core.Space.Open(initial, NoState, nil, 0, 0)
		return StepFound, initial
	}

	hr := core.Heur.Evaluate(ctx, core.Problem.Pool, initial)
	core.Stats.IncEvaluated()
	switch hr.Outcome {
	case DeadEnd:
		return StepDeadEnd, NoState
	case Abort:
		return StepAbort, NoState
	}

	core.Space.Open(initial, NoState, nil, 0, hr.Value)
	d.expand(initial, hr.Value, hr.Preferred)
	return StepContinue, NoState
}

// expand closes stateID, finds its applicable operators, and pushes
// each at a cost equal to the parent's heuristic value — the defining
// trait of lazy best-first ordering: the list orders by the *parent's*
// estimate, deferring each child's own evaluation until it is popped.
func (d *LazyBFSDriver) expand(stateID StateID, parentH int, preferred []*Operator) {
	core := d.core
	core.Space.Close(stateID)
	core.Stats.IncExpanded()
	ops := core.applicableOps(stateID, preferred)
	core.Stats.AddGenerated(len(ops))
	core.pushOps(ops, stateID, parentH)
}

func (d *LazyBFSDriver) Step(ctx context.Context) (StepOutcome, StateID) {
	core := d.core

	if abort := core.checkProgress(); abort {
		return StepAbort, NoState
	}

	edge, ok := core.Open.Pop()
	if !ok {
		return StepDeadEnd, NoState
	}

	childID := edge.Op.Apply(core.Problem.Pool, edge.ParentState)
	if node, exists := core.Space.Peek(childID); exists && node.Status == StatusClosed {
		return StepContinue, NoState
	}

	hr := core.Heur.Evaluate(ctx, core.Problem.Pool, childID)
	core.Stats.IncEvaluated()
	switch hr.Outcome {
	case DeadEnd:
		return StepContinue, NoState
	case Abort:
		return StepAbort, NoState
	}

	parentNode, _ := core.Space.Peek(edge.ParentState)
	g := parentNode.G + edge.Op.Cost
	if !core.Space.Open(childID, edge.ParentState, edge.Op, g, hr.Value) {
		return StepContinue, NoState
	}
	core.maybeAnnounce(ctx, edge.Op, childID, g, hr.Value)

	if core.goalReached(childID) {
		return StepFound, childID
	}

	d.expand(childID, hr.Value, hr.Preferred)
	return StepContinue, NoState
}

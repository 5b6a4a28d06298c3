package fdplan

import "context"

// EHCDriver implements enforced hill-climbing (spec §4.5): it expands
// states in FIFO order, and as soon as any successor strictly improves
// on the best heuristic value seen so far, the open list is cleared
// and the search restarts from that successor. EHC never reopens a
// node and ignores operator cost entirely — it optimizes for plan
// length under the assumption that any improving successor is worth
// taking immediately.
type EHCDriver struct {
	core  *Core
	bestH int
}

// NewEHCDriver builds an EHC driver. The open list is always a plain
// FIFO: cost-based ordering would be moot since every push uses cost
// zero and the list is cleared on every improvement.
func NewEHCDriver(problem *Problem, heur Heuristic, cfg DriverConfig) *EHCDriver {
	return &EHCDriver{core: NewCore(problem, heur, NewFIFOList(), cfg)}
}

// Core exposes the shared state for callers that want to inspect
// statistics or the state space mid-search or after completion.
func (d *EHCDriver) Core() *Core { return d.core }

func (d *EHCDriver) Init(ctx context.Context, initial StateID) (StepOutcome, StateID) {
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

	d.bestH = hr.Value
	core.Space.Open(initial, NoState, nil, 0, hr.Value)
	d.expand(initial, hr.Preferred)
	return StepContinue, NoState
}

func (d *EHCDriver) expand(stateID StateID, preferred []*Operator) {
	core := d.core
	core.Space.Close(stateID)
	core.Stats.IncExpanded()
	ops := core.applicableOps(stateID, preferred)
	core.Stats.AddGenerated(len(ops))
	core.pushOps(ops, stateID, 0)
}

func (d *EHCDriver) Step(ctx context.Context) (StepOutcome, StateID) {
	core := d.core

	if abort := core.checkProgress(); abort {
		return StepAbort, NoState
	}

	edge, ok := core.Open.Pop()
	if !ok {
		return StepDeadEnd, NoState
	}

	childID := edge.Op.Apply(core.Problem.Pool, edge.ParentState)
	if node, exists := core.Space.Peek(childID); exists && node.Status != StatusNew {
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
	core.Space.Open(childID, edge.ParentState, edge.Op, g, hr.Value)
	core.maybeAnnounce(ctx, edge.Op, childID, g, hr.Value)

	if core.goalReached(childID) {
		return StepFound, childID
	}

	if hr.Value < d.bestH {
		d.bestH = hr.Value
		core.Open.Clear()
	}
	d.expand(childID, hr.Preferred)
	return StepContinue, NoState
}

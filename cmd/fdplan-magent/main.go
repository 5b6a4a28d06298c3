// Package main demonstrates the multi-agent coordination protocol
// (spec §4.6): two agents each run a local search over their own
// subproblem, agent 0 announces its goal state's public slice to
// agent 1 when it reaches it, and both participate in the arbiter's
// distributed-termination handshake before exiting. Like the
// teacher's cmd/example demo, this wires library pieces together to
// show the shape of the thing rather than standing in as a production
// CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gitrdm/fdplan/internal/agentrun"
	"github.com/gitrdm/fdplan/internal/logging"
	"github.com/gitrdm/fdplan/internal/transport"
	"github.com/gitrdm/fdplan/pkg/fdplan"
)

const numAgents = 2

// localHeuristic is the same goal-count estimator fdplan-search uses;
// duplicated here rather than shared because a real heuristic would
// differ per agent (it would also consult remote state), and this demo
// keeps both binaries self-contained.
type localHeuristic struct {
	goal *fdplan.PartialState
}

func (h *localHeuristic) Evaluate(_ context.Context, pool *fdplan.StatePool, id fdplan.StateID) fdplan.HeurResult {
	state := pool.Raw(id)
	n := 0
	for _, pv := range h.goal.Pairs() {
		if pool.Packer().GetValue(state, pv.Var) != pv.Val {
			n++
		}
	}
	return fdplan.HeurResult{Outcome: fdplan.Continue, Value: n}
}

func (h *localHeuristic) HandleUpdate(_ context.Context, _ fdplan.Message) fdplan.HeurResult {
	return fdplan.HeurResult{Outcome: fdplan.Continue}
}

func (h *localHeuristic) ServeRequest(_ context.Context, _ fdplan.Message) error { return nil }

// buildAgentProblem gives agent 0 a variable "a" (0..2, goal 2) and
// agent 1 a variable "b" (0..1, goal 1) — disjoint local subproblems,
// each with a single incrementing operator. The operator that drives
// "a" to its goal value carries a RecvSet naming agent 1, so reaching
// it triggers a public-state announcement agent 1 can observe.
func buildAgentProblem(agentID int) (*fdplan.Problem, fdplan.StateID, *fdplan.Operator) {
	switch agentID {
	case 0:
		a := fdplan.NewVariable("a", 3)
		packer := fdplan.NewPacker([]fdplan.Variable{a})
		pool := fdplan.NewStatePool(packer)
		initial := pool.InsertValues([]int{0})
		goal := fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 2})

		step1 := &fdplan.Operator{
			Name: "a:0->1", Cost: 1, GlobalID: 0, Owner: 0, OwnerSet: 1 << 0,
			Pre: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 0}),
			Eff: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 1}),
		}
		step2 := &fdplan.Operator{
			Name: "a:1->2", Cost: 1, GlobalID: 1, Owner: 0, OwnerSet: 1 << 0,
			RecvSet: 1 << 1,
			Pre:     fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 1}),
			Eff:     fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 2}),
		}
		sg := fdplan.BuildSuccessorGenerator(packer, []*fdplan.Operator{step1, step2})
		return &fdplan.Problem{Pool: pool, Goal: goal, SuccGen: sg}, initial, step2

	default:
		b := fdplan.NewVariable("b", 2)
		packer := fdplan.NewPacker([]fdplan.Variable{b})
		pool := fdplan.NewStatePool(packer)
		initial := pool.InsertValues([]int{0})
		goal := fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 1})

		setB := &fdplan.Operator{
			Name: "b:0->1", Cost: 1, GlobalID: 0, Owner: 1, OwnerSet: 1 << 1,
			Pre: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 0}),
			Eff: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 1}),
		}
		sg := fdplan.BuildSuccessorGenerator(packer, []*fdplan.Operator{setB})
		return &fdplan.Problem{Pool: pool, Goal: goal, SuccGen: sg}, initial, nil
	}
}

func runAgent(ctx context.Context, agentID int, router *transport.Router, log fdplanLogger) error {
	problem, initial, announceOp := buildAgentProblem(agentID)
	heur := &localHeuristic{goal: problem.Goal}
	coord := fdplan.NewCoordinator(agentID, numAgents, router, problem.Pool, heur, nil)

	driver := fdplan.NewLazyBFSDriver(problem, heur, fdplan.NewHeapList(), fdplan.DefaultDriverConfig())
	core := driver.Core()
	core.Announce = coord.AnnouncePublicState

	result, err := fdplan.RunSearch(ctx, driver, core, initial)
	if err != nil {
		return err
	}

	log.Infow("agent finished local search", "agent", agentID, "found", result.Code == fdplan.FoundCode)
	if announceOp != nil && result.Code == fdplan.FoundCode {
		log.Infow("agent's goal-reaching operator announced its public state", "agent", agentID, "op", announceOp.Name)
	}

	if err := router.SendToArbiter(ctx, agentID, string(transport.KindDone), nil); err != nil {
		return err
	}

	if agentID == 0 {
		arb := fdplan.NewArbiter(router, numAgents)
		if arb.NotifyDone(0) {
			return arb.ConfirmTermination(ctx)
		}
		for msg := range router.ArbiterFeed(ctx) {
			allDone := arb.NotifyDone(msg.From)
			router.Release(msg)
			if allDone {
				return arb.ConfirmTermination(ctx)
			}
		}
		return ctx.Err()
	}

	// Serve the mailbox until the arbiter's token arrives; agent 0's
	// public-state announcement can be queued ahead of it.
	for {
		msg, release, err := router.Recv(ctx, agentID)
		if err != nil {
			return err
		}
		kind := msg.Kind
		release()
		if kind == transport.KindToken {
			return nil
		}
	}
}

// fdplanLogger is the narrow logging surface runAgent needs; satisfied
// by logging.Logger.
type fdplanLogger interface {
	Infow(msg string, kv ...interface{})
}

func main() {
	log, err := logging.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "building logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	router, err := transport.NewRouter(numAgents, 16, 0)
	if err != nil {
		log.Errorw("building router", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := agentrun.NewPool(numAgents)
	if err := pool.Run(ctx, numAgents, func(ctx context.Context, agentIndex int) error {
		return runAgent(ctx, agentIndex, router, log)
	}); err != nil {
		log.Errorw("multi-agent run failed", "error", err)
		os.Exit(1)
	}

	log.Infow("all agents terminated")
}

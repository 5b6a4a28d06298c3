// Package main runs a single-agent fdplan search over a small
// hardcoded problem (the scenario 3 "two-step ordering" instance) to
// demonstrate wiring a driver, a heuristic, and the stats server
// together. A real problem loader (JSON/protobuf) is out of scope of
// the core; this binary hand-builds its problem instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gitrdm/fdplan/internal/logging"
	"github.com/gitrdm/fdplan/internal/metrics"
	"github.com/gitrdm/fdplan/internal/statsserver"
	"github.com/gitrdm/fdplan/pkg/fdplan"
)

// goalCountHeuristic counts unsatisfied goal pairs — the simplest
// heuristic that makes EHC/lazy-BFS/A* actually search rather than
// flail blindly; concrete heuristics are out of scope of the core
// itself (spec §1), so this lives in the demo binary instead.
type goalCountHeuristic struct {
	goal *fdplan.PartialState
	pool *fdplan.StatePool
}

func (h *goalCountHeuristic) Evaluate(_ context.Context, pool *fdplan.StatePool, id fdplan.StateID) fdplan.HeurResult {
	state := pool.Raw(id)
	unsat := countUnsatisfied(h.goal, pool.Packer(), state)
	return fdplan.HeurResult{Outcome: fdplan.Continue, Value: unsat}
}

func countUnsatisfied(goal *fdplan.PartialState, packer *fdplan.Packer, state fdplan.State) int {
	n := 0
	for _, pv := range goal.Pairs() {
		if packer.GetValue(state, pv.Var) != pv.Val {
			n++
		}
	}
	return n
}

func (h *goalCountHeuristic) HandleUpdate(_ context.Context, _ fdplan.Message) fdplan.HeurResult {
	return fdplan.HeurResult{Outcome: fdplan.Continue}
}

func (h *goalCountHeuristic) ServeRequest(_ context.Context, _ fdplan.Message) error { return nil }

// buildScenario3 constructs spec §8 scenario 3: a ∈ {0,1,2}, b ∈
// {0,1}; initial {a:0,b:0}; goal {a:2,b:1}; three operators
// inc_a, inc_a2, set_b, each cost 1.
func buildScenario3() (*fdplan.Problem, fdplan.StateID) {
	a := fdplan.NewVariable("a", 3)
	b := fdplan.NewVariable("b", 2)
	packer := fdplan.NewPacker([]fdplan.Variable{a, b})
	pool := fdplan.NewStatePool(packer)

	initial := pool.InsertValues([]int{0, 0})
	goal := fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 2}, fdplan.VarVal{Var: 1, Val: 1})

	incA := &fdplan.Operator{
		Name: "inc_a", Cost: 1, GlobalID: 0,
		Pre: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 0}),
		Eff: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 1}),
	}
	incA2 := &fdplan.Operator{
		Name: "inc_a2", Cost: 1, GlobalID: 1,
		Pre: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 1}),
		Eff: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 2}),
	}
	setB := &fdplan.Operator{
		Name: "set_b", Cost: 1, GlobalID: 2,
		Pre: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 0, Val: 2}),
		Eff: fdplan.PartialFrom(packer, fdplan.VarVal{Var: 1, Val: 1}),
	}

	ops := []*fdplan.Operator{incA, incA2, setB}
	sg := fdplan.BuildSuccessorGenerator(packer, ops)

	return &fdplan.Problem{Pool: pool, Goal: goal, SuccGen: sg}, initial
}

func main() {
	driverName := flag.String("driver", string(fdplan.DriverLazyBFS), "ehc|lazy-bfs|astar")
	openListName := flag.String("open-list", string(fdplan.OpenListHeap), "fifo|heap|bucket|map")
	statsAddr := flag.String("stats-addr", "", "if set, serve /stats and /metrics on this address")
	flag.Parse()

	log, err := logging.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "building logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	problem, initial := buildScenario3()
	heur := &goalCountHeuristic{goal: problem.Goal, pool: problem.Pool}

	registry := fdplan.NewDriverRegistry()
	driver, err := registry.Build(fdplan.DriverName(*driverName), fdplan.OpenListName(*openListName), 1000, problem, heur, fdplan.DefaultDriverConfig())
	if err != nil {
		log.Errorw("building driver", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var core *fdplan.Core
	switch d := driver.(type) {
	case *fdplan.EHCDriver:
		core = d.Core()
	case *fdplan.LazyBFSDriver:
		core = d.Core()
	case *fdplan.AStarDriver:
		core = d.Core()
	}

	var collectors *metrics.Collectors
	if *statsAddr != "" && core != nil {
		reg := prometheus.NewRegistry()
		collectors, err = metrics.NewCollectors(reg, "fdplan")
		if err != nil {
			log.Errorw("registering metrics", "error", err)
			os.Exit(1)
		}
		srv := statsserver.New(*statsAddr, core.Stats, reg, log)
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				log.Warnw("stats server stopped", "error", err)
			}
		}()

		// core.Progress already ticks every ProgressFreq steps (the
		// driver's sole cancellation point); piggyback the gauge
		// refresh on it rather than adding a second timer, so /metrics
		// tracks a live run instead of reading the pre-search zero
		// snapshot forever.
		core.Progress = func(stats *fdplan.Statistics) fdplan.HeurOutcome {
			collectors.Update(stats.Snapshot())
			return fdplan.Continue
		}
		collectors.Update(core.Stats.Snapshot())
	}

	result, err := fdplan.RunSearch(ctx, driver, core, initial)
	if err != nil {
		log.Errorw("search error", "error", err)
		os.Exit(1)
	}
	if collectors != nil {
		collectors.Update(core.Stats.Snapshot())
	}

	switch result.Code {
	case fdplan.FoundCode:
		log.Infow("plan found", "length", len(result.Path.Operators), "cost", result.Path.Cost())
		for _, name := range result.Path.Names() {
			fmt.Println(name)
		}
	case fdplan.NotFoundCode:
		log.Infow("no plan exists")
	case fdplan.AbortCode:
		log.Warnw("search aborted")
	}
}

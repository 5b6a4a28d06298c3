// Package agentrun runs the N per-agent goroutines of an in-process
// multi-agent planning demo: one goroutine per planning agent, started
// together and torn down together, with first-error propagation and
// cooperative cancellation.
//
// This is a deliberately narrower replacement for the teacher's
// dynamically-scaling WorkerPool (internal/parallel/pool.go): a
// multi-agent search has a fixed, small agent count decided once at
// startup (bounded by fdplan.MaxAgents), not an elastic task queue
// under unpredictable load, so the scale-up/scale-down machinery the
// teacher built for goal-evaluation backpressure has no job to do
// here. What carries over is the teacher's insistence on bounding
// concurrency and propagating failures rather than losing them.
package agentrun

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/gitrdm/fdplan/pkg/fdplan"
)

// AgentFunc is one agent's run loop: given its index and a context
// that is cancelled the moment any agent (or the caller) fails or
// stops, run the agent to completion.
type AgentFunc func(ctx context.Context, agentIndex int) error

// Pool runs a fixed set of agent goroutines with a shared cancellation
// context and an optional concurrency cap (useful when running more
// logical agents than available cores, so not every agent actually
// executes at once).
type Pool struct {
	maxConcurrent int
}

// NewPool returns a Pool that runs at most maxConcurrent agents
// simultaneously. maxConcurrent <= 0 means unbounded (one goroutine
// per agent, all running at once).
func NewPool(maxConcurrent int) *Pool {
	return &Pool{maxConcurrent: maxConcurrent}
}

// Run launches fn for each of numAgents agents and waits for all of
// them to finish, returning the first non-nil error and cancelling the
// remaining agents' context. numAgents must fit fdplan's agent-count
// cap, since the owner/recv bitsets operators carry are only 64 bits
// wide.
func (p *Pool) Run(ctx context.Context, numAgents int, fn AgentFunc) error {
	if numAgents <= 0 || numAgents > fdplan.MaxAgents {
		return fdplan.NewConfigError("agentrun: numAgents %d out of range [1,%d]", numAgents, fdplan.MaxAgents)
	}

	g, gctx := errgroup.WithContext(ctx)

	var sem *semaphore.Weighted
	if p.maxConcurrent > 0 && p.maxConcurrent < numAgents {
		sem = semaphore.NewWeighted(int64(p.maxConcurrent))
	}

	for i := 0; i < numAgents; i++ {
		i := i
		g.Go(func() error {
			if sem != nil {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
			}
			return fn(gctx, i)
		})
	}

	return g.Wait()
}

// Package fdplan implements the core of a classical finite-domain
// representation (FDR) planner: a state pool, an operator successor
// generator, a state-space node registry, a family of lazy open lists,
// and three search drivers (enforced hill climbing, lazy best-first,
// and A*) that share a common step skeleton.
//
// The package does not load problems from disk, does not implement any
// concrete heuristic, and does not parse command-line arguments: those
// are external collaborators. fdplan consumes a Problem (variables,
// initial state, goal, operators) and a Heuristic, and searches the
// induced state graph for a sequence of operators from the initial
// state to a goal-satisfying state.
//
// State representation is bit-packed: a State is a fixed-width word
// buffer produced by a Packer computed once from the variable list.
// Partial states (preconditions, effects, goals) carry their own
// packed mask/value cache alongside the authoritative sparse
// (variable, value) list, so pool, operator, and open-list code never
// alias a shared mutable buffer — the decoupled form described in the
// design notes.
package fdplan

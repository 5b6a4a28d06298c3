package fdplan

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/gitrdm/fdplan/pkg/fdplan/fdplanmock"
)

// TestAStarDriverInitAbortsOnHeuristicAbort verifies that a heuristic
// signaling Abort on the initial state is surfaced as StepAbort without
// ever touching the open list or state space.
func TestAStarDriverInitAbortsOnHeuristicAbort(t *testing.T) {
	ctrl := gomock.NewController(t)
	problem, initial := buildOneOpProblem()

	mockHeur := fdplanmock.NewMockHeuristic(ctrl)
	mockHeur.EXPECT().
		Evaluate(gomock.Any(), problem.Pool, initial).
		Return(HeurResult{Outcome: Abort}).
		Times(1)

	driver := NewAStarDriver(problem, mockHeur, NewHeapList(), DefaultDriverConfig())
	outcome, _ := driver.Init(context.Background(), initial)
	if outcome != StepAbort {
		t.Fatalf("expected StepAbort, got %v", outcome)
	}
}

// TestAStarDriverInitDeadEndsOnHeuristicDeadEnd verifies the DeadEnd
// outcome on the initial state short-circuits Init without expansion.
func TestAStarDriverInitDeadEndsOnHeuristicDeadEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	problem, initial := buildOneOpProblem()

	mockHeur := fdplanmock.NewMockHeuristic(ctrl)
	mockHeur.EXPECT().
		Evaluate(gomock.Any(), gomock.Any(), initial).
		Return(HeurResult{Outcome: DeadEnd}).
		Times(1)

	driver := NewAStarDriver(problem, mockHeur, NewHeapList(), DefaultDriverConfig())
	outcome, _ := driver.Init(context.Background(), initial)
	if outcome != StepDeadEnd {
		t.Fatalf("expected StepDeadEnd, got %v", outcome)
	}
}

// TestAStarDriverExpandsExactlyOncePerChildOnContinue verifies the
// eager push-time Evaluate call count: one call for the initial state
// and one per applicable operator on expansion.
func TestAStarDriverExpandsExactlyOncePerChildOnContinue(t *testing.T) {
	ctrl := gomock.NewController(t)
	problem, initial := buildOneOpProblem()

	mockHeur := fdplanmock.NewMockHeuristic(ctrl)
	mockHeur.EXPECT().Evaluate(gomock.Any(), gomock.Any(), initial).
		Return(HeurResult{Outcome: Continue, Value: 1}).
		Times(1)
	mockHeur.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(HeurResult{Outcome: Continue, Value: 0}).
		Times(1)

	driver := NewAStarDriver(problem, mockHeur, NewHeapList(), DefaultDriverConfig())
	outcome, _ := driver.Init(context.Background(), initial)
	if outcome != StepContinue {
		t.Fatalf("expected StepContinue after expansion, got %v", outcome)
	}
}

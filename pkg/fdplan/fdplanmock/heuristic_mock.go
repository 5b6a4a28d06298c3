// Written by hand in MockGen's output shape; not generated.
// Source: github.com/gitrdm/fdplan/pkg/fdplan (interfaces: Heuristic)

// Package fdplanmock holds a hand-maintained gomock double for
// fdplan.Heuristic, standing in for a generated one since this tree
// never runs mockgen. The shape matches what mockgen would produce.
package fdplanmock

import (
	"context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	fdplan "github.com/gitrdm/fdplan/pkg/fdplan"
)

// MockHeuristic is a mock of the Heuristic interface.
type MockHeuristic struct {
	ctrl     *gomock.Controller
	recorder *MockHeuristicMockRecorder
}

// MockHeuristicMockRecorder is the mock recorder for MockHeuristic.
type MockHeuristicMockRecorder struct {
	mock *MockHeuristic
}

// NewMockHeuristic creates a new mock instance.
func NewMockHeuristic(ctrl *gomock.Controller) *MockHeuristic {
	mock := &MockHeuristic{ctrl: ctrl}
	mock.recorder = &MockHeuristicMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockHeuristic) EXPECT() *MockHeuristicMockRecorder {
	return m.recorder
}

// Evaluate mocks base method.
func (m *MockHeuristic) Evaluate(ctx context.Context, pool *fdplan.StatePool, stateID fdplan.StateID) fdplan.HeurResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Evaluate", ctx, pool, stateID)
	ret0, _ := ret[0].(fdplan.HeurResult)
	return ret0
}

// Evaluate indicates an expected call of Evaluate.
func (mr *MockHeuristicMockRecorder) Evaluate(ctx, pool, stateID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Evaluate", reflect.TypeOf((*MockHeuristic)(nil).Evaluate), ctx, pool, stateID)
}

// HandleUpdate mocks base method.
func (m *MockHeuristic) HandleUpdate(ctx context.Context, msg fdplan.Message) fdplan.HeurResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HandleUpdate", ctx, msg)
	ret0, _ := ret[0].(fdplan.HeurResult)
	return ret0
}

// HandleUpdate indicates an expected call of HandleUpdate.
func (mr *MockHeuristicMockRecorder) HandleUpdate(ctx, msg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HandleUpdate", reflect.TypeOf((*MockHeuristic)(nil).HandleUpdate), ctx, msg)
}

// ServeRequest mocks base method.
func (m *MockHeuristic) ServeRequest(ctx context.Context, msg fdplan.Message) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ServeRequest", ctx, msg)
	ret0, _ := ret[0].(error)
	return ret0
}

// ServeRequest indicates an expected call of ServeRequest.
func (mr *MockHeuristicMockRecorder) ServeRequest(ctx, msg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ServeRequest", reflect.TypeOf((*MockHeuristic)(nil).ServeRequest), ctx, msg)
}

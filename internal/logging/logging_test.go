package logging

import "testing"

func TestNewNopDoesNotPanic(t *testing.T) {
	log := NewNop()
	log.Debugw("debug", "k", 1)
	log.Infow("info", "k", 1)
	log.Warnw("warn", "k", 1)
	log.Errorw("error", "k", 1)
	child := log.With("component", "test")
	child.Infow("from child")
	if err := log.Sync(); err != nil {
		t.Errorf("Sync on a nop logger should not error, got %v", err)
	}
}

func TestNewDevelopmentBuildsAWorkingLogger(t *testing.T) {
	log, err := NewDevelopment()
	if err != nil {
		t.Fatalf("NewDevelopment returned error: %v", err)
	}
	log.Infow("hello", "agent", 0)
}

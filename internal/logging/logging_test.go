package logging

import "testing"

func TestStandardLoggerSetGetLevelRoundTrips(t *testing.T) {
	l := New()
	for _, lvl := range []Level{Error, Warn, Info, Debug} {
		l.SetLevel(lvl)
		if got := l.GetLevel(); got != lvl {
			t.Errorf("SetLevel(%v) then GetLevel() = %v", lvl, got)
		}
	}
}

func TestStandardLoggerWithFieldsReturnsLogger(t *testing.T) {
	l := New()
	got := l.WithFields(Fields{"stage": "check"})
	if got == nil {
		t.Fatal("WithFields returned nil")
	}
	// Must not panic, and must still satisfy Logger.
	got.Info("entering %s", "check")
}

func TestNoOpLoggerDiscardsEverything(t *testing.T) {
	l := NewNoOpLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")

	l.SetLevel(Debug)
	if got := l.GetLevel(); got != Debug {
		t.Errorf("GetLevel() = %v, want %v", got, Debug)
	}
	if w := l.WithFields(Fields{"a": 1}); w != l {
		t.Error("WithFields should return the same NoOpLogger instance")
	}
}

func TestLoggerInterfaceSatisfiedByBothImplementations(t *testing.T) {
	var loggers = []Logger{New(), NewNoOpLogger()}
	for _, l := range loggers {
		l.Info("ok")
	}
}

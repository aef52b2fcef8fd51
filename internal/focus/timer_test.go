package focus

import (
	"errors"
	"testing"
)

func shortModes() Modes {
	return Modes{
		ModePomodoro: {Work: 3, Break: 2},
		ModeLong:     {Work: 5, Break: 4},
	}
}

func TestNewTimerDefaults(t *testing.T) {
	timer := NewTimer(nil)
	if timer.Mode != ModePomodoro || timer.Session != SessionWork || timer.Remaining != 25*60 {
		t.Fatalf("unexpected default timer: %+v", timer)
	}
	if timer.Clock() != "25:00" {
		t.Fatalf("unexpected clock %q", timer.Clock())
	}
}

func TestPauseReportsWorkedSeconds(t *testing.T) {
	timer := NewTimer(DefaultModes())
	if !timer.Start() || timer.Start() {
		t.Fatal("expected first Start to succeed and second to be ignored")
	}
	for i := 0; i < 90; i++ {
		timer.Tick()
	}
	if worked := timer.Pause(); worked != 90 {
		t.Fatalf("expected 90 worked seconds, got %d", worked)
	}
	if worked := timer.Pause(); worked != 0 {
		t.Fatalf("expected no time from a second pause, got %d", worked)
	}
	timer.Tick()
	if timer.Remaining != 25*60-90 {
		t.Fatalf("paused timer must not tick, remaining %d", timer.Remaining)
	}

	timer.Start()
	timer.Tick()
	if worked := timer.Reset(); worked != 1 {
		t.Fatalf("expected reset to report 1 second, got %d", worked)
	}
	if timer.Remaining != 25*60 || timer.Session != SessionWork {
		t.Fatalf("unexpected timer after reset: %+v", timer)
	}
}

func TestTickCompletesSessions(t *testing.T) {
	timer := NewTimer(shortModes())
	timer.Start()
	var done bool
	var worked int
	var finished Session
	for i := 0; i < 3; i++ {
		done, worked, finished = timer.Tick()
	}
	if !done || worked != 3 || finished != SessionWork {
		t.Fatalf("expected finished work session, got done=%v worked=%d finished=%s", done, worked, finished)
	}
	if timer.Session != SessionBreak || timer.Remaining != 2 || timer.Running || timer.Completed != 1 {
		t.Fatalf("unexpected timer after work session: %+v", timer)
	}

	timer.Start()
	timer.Tick()
	done, worked, finished = timer.Tick()
	if !done || worked != 0 || finished != SessionBreak {
		t.Fatalf("break must not report worked time: done=%v worked=%d", done, worked)
	}
	if timer.Session != SessionWork || timer.Remaining != 3 {
		t.Fatalf("unexpected timer after break: %+v", timer)
	}
}

func TestSetMode(t *testing.T) {
	timer := NewTimer(shortModes())
	timer.Start()
	timer.Tick()
	worked, err := timer.SetMode(ModeLong)
	if err != nil || worked != 1 {
		t.Fatalf("set mode: worked=%d err=%v", worked, err)
	}
	if timer.Remaining != 5 || timer.Running {
		t.Fatalf("unexpected timer after mode switch: %+v", timer)
	}
	if _, err := timer.SetMode("sprint"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestProgress(t *testing.T) {
	timer := NewTimer(Modes{ModePomodoro: {Work: 4, Break: 1}})
	timer.Start()
	timer.Tick()
	if got := timer.Progress(); got != 0.25 {
		t.Fatalf("expected 0.25 progress, got %v", got)
	}
}

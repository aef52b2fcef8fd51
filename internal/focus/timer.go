// Package focus implements the Pomodoro countdown. The timer is driven by
// one Tick per second from the caller; it owns no goroutines.
package focus

import (
	"errors"
	"fmt"
)

var ErrUnknownMode = errors.New("focus: unknown mode")

type Mode string

const (
	ModePomodoro Mode = "pomodoro"
	ModeLong     Mode = "long-pomodoro"
)

type Session string

const (
	SessionWork  Session = "work"
	SessionBreak Session = "break"
)

// Durations are in seconds.
type Durations struct {
	Work  int
	Break int
}

func (d Durations) of(s Session) int {
	if s == SessionBreak {
		return d.Break
	}
	return d.Work
}

// Modes maps each mode to its session lengths.
type Modes map[Mode]Durations

func DefaultModes() Modes {
	return Modes{
		ModePomodoro: {Work: 25 * 60, Break: 5 * 60},
		ModeLong:     {Work: 50 * 60, Break: 10 * 60},
	}
}

// ModesFromMinutes builds the two modes from configured minute values.
func ModesFromMinutes(work, brk, longWork, longBreak int) Modes {
	return Modes{
		ModePomodoro: {Work: work * 60, Break: brk * 60},
		ModeLong:     {Work: longWork * 60, Break: longBreak * 60},
	}
}

type Timer struct {
	modes        Modes
	Mode         Mode
	Session      Session
	Remaining    int
	Running      bool
	Completed    int
	sessionStart int
}

func NewTimer(modes Modes) Timer {
	if len(modes) == 0 {
		modes = DefaultModes()
	}
	t := Timer{modes: modes, Mode: ModePomodoro, Session: SessionWork}
	t.Remaining = t.Total()
	return t
}

// Total is the full length of the current session.
func (t *Timer) Total() int {
	return t.modes[t.Mode].of(t.Session)
}

// Start begins or resumes the countdown. It reports false if the timer was
// already running.
func (t *Timer) Start() bool {
	if t.Running {
		return false
	}
	if t.Remaining <= 0 {
		t.Remaining = t.Total()
	}
	t.Running = true
	t.sessionStart = t.Remaining
	return true
}

// Pause stops the countdown and returns the work seconds elapsed since the
// last Start. Break time is never reported.
func (t *Timer) Pause() int {
	if !t.Running {
		return 0
	}
	t.Running = false
	return t.worked()
}

// Tick advances one second. When the session runs out it completes it and
// returns done with the worked seconds of the finished session.
func (t *Timer) Tick() (done bool, worked int, finished Session) {
	if !t.Running {
		return false, 0, t.Session
	}
	if t.Remaining > 0 {
		t.Remaining--
	}
	if t.Remaining > 0 {
		return false, 0, t.Session
	}
	worked, finished = t.Complete()
	return true, worked, finished
}

// Complete ends the current session, switches to the other one and loads
// its full duration.
func (t *Timer) Complete() (worked int, finished Session) {
	if t.Running {
		worked = t.worked()
	}
	finished = t.Session
	t.Running = false
	if t.Session == SessionWork {
		t.Completed++
		t.Session = SessionBreak
	} else {
		t.Session = SessionWork
	}
	t.Remaining = t.Total()
	return worked, finished
}

// Reset pauses, returns to a fresh work session and reports the worked
// seconds the pause produced.
func (t *Timer) Reset() int {
	worked := t.Pause()
	t.Session = SessionWork
	t.Remaining = t.Total()
	return worked
}

// SetMode switches mode and resets.
func (t *Timer) SetMode(m Mode) (int, error) {
	if _, ok := t.modes[m]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	worked := t.Pause()
	t.Mode = m
	t.Session = SessionWork
	t.Remaining = t.Total()
	return worked, nil
}

// Progress is the elapsed fraction of the current session.
func (t *Timer) Progress() float64 {
	total := t.Total()
	if total <= 0 {
		return 0
	}
	return float64(total-t.Remaining) / float64(total)
}

// Clock renders the remaining time as MM:SS.
func (t *Timer) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.Remaining/60, t.Remaining%60)
}

func (t *Timer) worked() int {
	if t.Session != SessionWork {
		return 0
	}
	w := t.sessionStart - t.Remaining
	t.sessionStart = t.Remaining
	return max(w, 0)
}

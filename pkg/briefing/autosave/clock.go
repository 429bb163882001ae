package autosave

import "time"

// Timer is the cancelable handle behind the debounce window.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules f after d and returns its handle. Production wires
// StdTimerFactory; tests substitute a manual factory so the window can be
// fired deterministically.
type TimerFactory func(d time.Duration, f func()) Timer

func StdTimerFactory(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

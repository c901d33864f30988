// Package schedule runs cancellable delayed actions.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Task is a pending delayed action.
type Task interface {
	// Cancel prevents the action from running. It reports false when the
	// action already ran or was cancelled before.
	Cancel() bool
}

type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// Clock schedules actions on the runtime timer.
type Clock struct{}

var _ Scheduler = Clock{}

func (Clock) After(d time.Duration, fn func()) Task {
	return timerTask{timer: time.AfterFunc(d, fn)}
}

type timerTask struct {
	timer *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.timer.Stop()
}

// Manual is a Scheduler driven explicitly through Advance. Actions run on the
// goroutine calling Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

var _ Scheduler = (*Manual)(nil)

func NewManual() *Manual {
	return &Manual{}
}

type manualTask struct {
	owner *Manual
	due   time.Duration
	fn    func()
	done  bool
}

func (m *Manual) After(d time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	task := &manualTask{owner: m, due: m.now + d, fn: fn}
	m.tasks = append(m.tasks, task)
	return task
}

func (t *manualTask) Cancel() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Advance moves the clock forward and runs every task that became due, in
// due order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTask
	pending := m.tasks[:0]
	for _, task := range m.tasks {
		switch {
		case task.done:
		case task.due <= m.now:
			task.done = true
			due = append(due, task)
		default:
			pending = append(pending, task)
		}
	}
	m.tasks = pending
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, task := range due {
		task.fn()
	}
}

// Pending reports how many tasks are neither run nor cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, task := range m.tasks {
		if !task.done {
			n++
		}
	}
	return n
}

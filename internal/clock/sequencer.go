package clock

import "sort"

// Task names used across entities.
const (
	TaskPursue       = "pursue"
	TaskPunch        = "punch"
	TaskCharge       = "charge"
	TaskDash         = "dash"
	TaskDashCooldown = "dash-cooldown"
	TaskRevive       = "revive"
	TaskReload       = "reload"
)

type task struct {
	name   string
	due    float64
	period float64
	order  uint64
	once   func(now float64)
	loop   func(now float64) bool
}

// Sequencer owns the timed tasks of one entity. Each task has a name; starting
// a name that is already running cancels the old task first, so two copies of
// the same loop never run side by side.
type Sequencer struct {
	tasks map[string]*task
	next  uint64
}

// NewSequencer creates an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{tasks: make(map[string]*task)}
}

// After runs fn once, delay seconds after now.
func (s *Sequencer) After(name string, now, delay float64, fn func(now float64)) {
	s.start(&task{name: name, due: now + delay, once: fn})
}

// Every runs fn immediately and then every period seconds until fn returns
// false or the task is cancelled.
func (s *Sequencer) Every(name string, now, period float64, fn func(now float64) bool) {
	t := &task{name: name, due: now, period: period, loop: fn}
	s.start(t)
	s.fire(t, now)
}

func (s *Sequencer) start(t *task) {
	s.Cancel(t.name)
	s.next++
	t.order = s.next
	s.tasks[t.name] = t
}

// Cancel stops the named task. It reports whether a task was running.
func (s *Sequencer) Cancel(name string) bool {
	if _, ok := s.tasks[name]; !ok {
		return false
	}
	delete(s.tasks, name)
	return true
}

// CancelAll stops every task and returns how many were running.
func (s *Sequencer) CancelAll() int {
	n := len(s.tasks)
	for name := range s.tasks {
		delete(s.tasks, name)
	}
	return n
}

// Active reports whether the named task is running.
func (s *Sequencer) Active(name string) bool {
	_, ok := s.tasks[name]
	return ok
}

// Len returns the number of running tasks.
func (s *Sequencer) Len() int { return len(s.tasks) }

// Names returns the running task names in start order.
func (s *Sequencer) Names() []string {
	ts := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].order < ts[j].order })
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.name
	}
	return names
}

// Advance fires every task due at or before now, in (due, start order).
// A task cancelled or replaced by an earlier one in the same pass is skipped.
func (s *Sequencer) Advance(now float64) {
	due := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.due <= now {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].order < due[j].order
	})
	for _, t := range due {
		if s.tasks[t.name] != t {
			continue
		}
		s.fire(t, now)
	}
}

func (s *Sequencer) fire(t *task, now float64) {
	if t.once != nil {
		delete(s.tasks, t.name)
		t.once(now)
		return
	}
	if !t.loop(now) {
		if s.tasks[t.name] == t {
			delete(s.tasks, t.name)
		}
		return
	}
	if s.tasks[t.name] == t {
		t.due = now + t.period
	}
}

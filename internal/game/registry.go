package game

// Task is a periodic action. Countdown ticks are skipped before the first
// run; after each run the task rests Throttle-1 ticks.
type Task struct {
	Name      string
	Action    func(tick int)
	Throttle  int
	Countdown int
}

// Registry runs the tasks of the current phase once per tick, in order.
type Registry struct {
	tasks []*Task
	gen   uint64
}

// Add appends a task.
func (r *Registry) Add(t Task) {
	if t.Throttle < 1 {
		t.Throttle = 1
	}
	r.tasks = append(r.tasks, &t)
}

// Replace swaps every task for tasks.
func (r *Registry) Replace(tasks ...Task) {
	r.Clear()
	for _, t := range tasks {
		r.Add(t)
	}
}

// Clear removes every task.
func (r *Registry) Clear() {
	r.tasks = nil
	r.gen++
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Run processes one tick. A task that replaces or clears the registry ends
// the pass: nothing from the old set runs after it.
func (r *Registry) Run(tick int) {
	gen := r.gen
	for i := 0; i < len(r.tasks); i++ {
		t := r.tasks[i]
		if t.Countdown > 0 {
			t.Countdown--
			continue
		}
		t.Countdown = t.Throttle - 1
		t.Action(tick)
		if r.gen != gen {
			return
		}
	}
}

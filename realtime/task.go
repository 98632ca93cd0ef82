package realtime

import (
	"sort"
)

// Task is a unit of host work queued for the next tick.
type Task struct {
	Fn          func()
	SequenceNum uint64
	Priority    int
}

// sortTasks orders tasks deterministically.
// Higher priority first, then submission order.
func sortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}
		return tasks[i].SequenceNum < tasks[j].SequenceNum
	})
}

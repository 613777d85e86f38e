package domain

import "strings"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskToDo       TaskStatus = "To do"
	TaskInProgress TaskStatus = "In progress"
	TaskDone       TaskStatus = "Done"
)

// WorkorderStatus is the lifecycle state of a work order.
type WorkorderStatus string

const (
	WorkorderNew        WorkorderStatus = "New"
	WorkorderInProgress WorkorderStatus = "In progress"
	WorkorderDone       WorkorderStatus = "Done"
)

// Alias tables are keyed by canonicalKey output.
var taskAliases = map[string]TaskStatus{
	"to do":       TaskToDo,
	"todo":        TaskToDo,
	"in progress": TaskInProgress,
	"inprogress":  TaskInProgress,
	"bezig":       TaskInProgress,
	"doing":       TaskInProgress,
	"done":        TaskDone,
	"afgerond":    TaskDone,
	"completed":   TaskDone,
	"complete":    TaskDone,
}

var workorderAliases = map[string]WorkorderStatus{
	"new":            WorkorderNew,
	"nieuw":          WorkorderNew,
	"open":           WorkorderNew,
	"in progress":    WorkorderInProgress,
	"inprogress":     WorkorderInProgress,
	"in behandeling": WorkorderInProgress,
	"done":           WorkorderDone,
	"afgerond":       WorkorderDone,
	"completed":      WorkorderDone,
	"closed":         WorkorderDone,
}

// canonicalKey lowercases s, turns '-' and '_' into spaces and collapses runs
// of whitespace, so "To-Do", "to_do" and "  TO   do " share a key.
func canonicalKey(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// ParseTaskStatus reports the canonical task status for s, if s is a known
// spelling.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	st, ok := taskAliases[canonicalKey(s)]
	return st, ok
}

// NormalizeTaskStatus maps any input to a canonical status; unknown values
// fall back to To do.
func NormalizeTaskStatus(s string) TaskStatus {
	if st, ok := ParseTaskStatus(s); ok {
		return st
	}
	return TaskToDo
}

// ParseWorkorderStatus reports the canonical work order status for s.
func ParseWorkorderStatus(s string) (WorkorderStatus, bool) {
	st, ok := workorderAliases[canonicalKey(s)]
	return st, ok
}

// NormalizeWorkorderStatus maps any input to a canonical status; unknown
// values fall back to New.
func NormalizeWorkorderStatus(s string) WorkorderStatus {
	if st, ok := ParseWorkorderStatus(s); ok {
		return st
	}
	return WorkorderNew
}

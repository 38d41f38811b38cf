package model

// TaskFilter selects which lifecycle states a task listing includes.
type TaskFilter string

const (
	// FilterAll returns every non-deleted task, completed or not.
	FilterAll TaskFilter = "all"
	// FilterPending returns tasks that are neither completed nor deleted.
	FilterPending TaskFilter = "pending"
	// FilterCompleted returns completed tasks that are not deleted.
	FilterCompleted TaskFilter = "completed"
	// FilterDeleted returns soft-deleted tasks only.
	FilterDeleted TaskFilter = "deleted"
	// FilterAllIncludingDeleted returns every task regardless of state.
	FilterAllIncludingDeleted TaskFilter = "all_including_deleted"
)

// ParseTaskFilter maps a query-string value to a filter. Unknown or empty
// values fall back to FilterAll rather than erroring, matching the listing
// endpoint's contract of never rejecting a read.
func ParseTaskFilter(s string) TaskFilter {
	switch TaskFilter(s) {
	case FilterPending, FilterCompleted, FilterDeleted, FilterAllIncludingDeleted:
		return TaskFilter(s)
	default:
		return FilterAll
	}
}

// Matches reports whether the task belongs in a listing under this filter.
// It is the in-memory mirror of the SQL conditions the repository applies.
func (f TaskFilter) Matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed && !t.Deleted
	case FilterCompleted:
		return t.Completed && !t.Deleted
	case FilterDeleted:
		return t.Deleted
	case FilterAllIncludingDeleted:
		return true
	default: // FilterAll
		return !t.Deleted
	}
}

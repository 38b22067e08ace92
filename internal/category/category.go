// Package category derives the cross-cutting quick-filter categories
// (important, forgotten, overdue, mine, unassigned, completed) from task
// status, priority and date fields. The predicates are independent booleans;
// a task may match several at once.
package category

import (
	"strings"
	"time"

	"github.com/teamgrid/tracker-api/internal/constants"
	"github.com/teamgrid/tracker-api/internal/models"
)

type Category string

const (
	Important  Category = "important"
	Forgotten  Category = "forgotten"
	Overdue    Category = "overdue"
	Mine       Category = "mine"
	Unassigned Category = "unassigned"
	Completed  Category = "completed"
)

// Flags holds the independent category predicates for one task.
type Flags struct {
	Important  bool `json:"important"`
	Forgotten  bool `json:"forgotten"`
	Overdue    bool `json:"overdue"`
	Mine       bool `json:"mine"`
	Unassigned bool `json:"unassigned"`
	Completed  bool `json:"completed"`
}

// Viewer identifies the current user for the "mine" predicate. A user may be
// linked to several employee records across companies.
type Viewer struct {
	UserID      uint64
	EmployeeIDs map[uint64]struct{}
}

// Legacy name fallbacks for status rows migrated without the explicit
// IsTerminal/IsUrgent flags. Matching is case-insensitive on the full name.
var (
	terminalNames = map[string]struct{}{
		"done": {}, "complete": {}, "completed": {}, "closed": {},
		"finished": {}, "cancelled": {}, "canceled": {},
	}
	urgentNames = map[string]struct{}{
		"urgent": {}, "asap": {}, "critical": {},
	}
	highPriorityNames = map[string]struct{}{
		"high": {}, "critical": {}, "urgent": {},
	}
)

// IsTerminalStatus prefers the explicit flag and falls back to name matching
// for legacy data.
func IsTerminalStatus(s models.Status) bool {
	if s.IsTerminal {
		return true
	}
	_, ok := terminalNames[strings.ToLower(strings.TrimSpace(s.Name))]
	return ok
}

func isUrgentStatus(s models.Status) bool {
	if s.IsUrgent {
		return true
	}
	_, ok := urgentNames[strings.ToLower(strings.TrimSpace(s.Name))]
	return ok
}

func isHighPriority(p *models.Priority) bool {
	if p == nil {
		return false
	}
	_, ok := highPriorityNames[strings.ToLower(strings.TrimSpace(p.Name))]
	return ok
}

// dateOf truncates a timestamp to its calendar date; category date
// comparisons ignore time of day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Classify evaluates all category predicates for a task as of now.
func Classify(task models.Task, viewer Viewer, now time.Time) Flags {
	var f Flags

	f.Completed = IsTerminalStatus(task.Status)

	today := dateOf(now)
	if task.Deadline != nil {
		deadline := dateOf(*task.Deadline)
		f.Overdue = deadline.Before(today) && !f.Completed

		days := int(deadline.Sub(today).Hours() / 24)
		if days >= 0 && days <= constants.ImportantDeadlineWindowDays {
			f.Important = true
		}
	}
	if isHighPriority(task.Priority) || isUrgentStatus(task.Status) {
		f.Important = true
	}

	if !f.Completed {
		stale := now.Sub(task.LastActivity()) > time.Duration(constants.ForgottenAfterDays)*24*time.Hour
		f.Forgotten = stale
	}

	if task.ExecutorID == nil {
		f.Unassigned = true
	} else if _, ok := viewer.EmployeeIDs[*task.ExecutorID]; ok {
		f.Mine = true
	}

	return f
}

func (f Flags) has(cat Category) bool {
	switch cat {
	case Important:
		return f.Important
	case Forgotten:
		return f.Forgotten
	case Overdue:
		return f.Overdue
	case Mine:
		return f.Mine
	case Unassigned:
		return f.Unassigned
	case Completed:
		return f.Completed
	}
	return false
}

// Badge picks the single indicator shown when only one icon fits:
// overdue wins over important, important over forgotten. Empty when none
// apply.
func Badge(f Flags) Category {
	switch {
	case f.Overdue:
		return Overdue
	case f.Important:
		return Important
	case f.Forgotten:
		return Forgotten
	}
	return ""
}

// Counts tallies every category across a collection.
type Counts struct {
	Important  int `json:"important"`
	Forgotten  int `json:"forgotten"`
	Overdue    int `json:"overdue"`
	Mine       int `json:"mine"`
	Unassigned int `json:"unassigned"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// CountTasks classifies the whole collection and sums per category.
func CountTasks(tasks []models.Task, viewer Viewer, now time.Time) Counts {
	var c Counts
	c.Total = len(tasks)
	for i := range tasks {
		f := Classify(tasks[i], viewer, now)
		if f.Important {
			c.Important++
		}
		if f.Forgotten {
			c.Forgotten++
		}
		if f.Overdue {
			c.Overdue++
		}
		if f.Mine {
			c.Mine++
		}
		if f.Unassigned {
			c.Unassigned++
		}
		if f.Completed {
			c.Completed++
		}
	}
	return c
}

// FilterByCategory keeps the tasks matching one category, preserving order.
func FilterByCategory(tasks []models.Task, cat Category, viewer Viewer, now time.Time) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if Classify(tasks[i], viewer, now).has(cat) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// ParseCategory validates a category name from a query parameter.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case Important:
		return Important, true
	case Forgotten:
		return Forgotten, true
	case Overdue:
		return Overdue, true
	case Mine:
		return Mine, true
	case Unassigned:
		return Unassigned, true
	case Completed:
		return Completed, true
	}
	return "", false
}

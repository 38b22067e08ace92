package category

import (
	"sort"
	"strings"

	"github.com/teamgrid/tracker-api/internal/models"
)

// Sort fields accepted by SortTasks.
const (
	SortByTitle    = "title"
	SortByDeadline = "deadline"
	SortByCreated  = "created_at"
	SortByStatus   = "status"
	SortByPriority = "priority"
)

// SortTasks stably re-orders an already flattened and filtered collection.
// It runs after hierarchy building on purpose: re-sorting is a flat-view
// concern and must never disturb the pre-order contiguity of a tree view.
// Unknown fields leave the input order untouched. desc reverses the
// comparison, with nil values always sorting last.
func SortTasks(tasks []models.Task, field string, desc bool) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	less := lessFunc(field)
	if less == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		cmp, bothSet := less(a, b)
		if !bothSet {
			// nil-valued rows sink to the bottom in either direction
			return cmp
		}
		if desc {
			return !cmp && !equalByField(field, a, b)
		}
		return cmp
	})
	return out
}

// lessFunc returns (a < b, both values present).
func lessFunc(field string) func(a, b *models.Task) (bool, bool) {
	switch field {
	case SortByTitle:
		return func(a, b *models.Task) (bool, bool) {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title), true
		}
	case SortByCreated:
		return func(a, b *models.Task) (bool, bool) {
			return a.CreatedAt.Before(b.CreatedAt), true
		}
	case SortByStatus:
		return func(a, b *models.Task) (bool, bool) {
			return a.Status.StepOrder < b.Status.StepOrder, true
		}
	case SortByDeadline:
		return func(a, b *models.Task) (bool, bool) {
			switch {
			case a.Deadline == nil && b.Deadline == nil:
				return false, true
			case a.Deadline == nil:
				return false, false
			case b.Deadline == nil:
				return true, false
			}
			return a.Deadline.Before(*b.Deadline), true
		}
	case SortByPriority:
		return func(a, b *models.Task) (bool, bool) {
			switch {
			case a.Priority == nil && b.Priority == nil:
				return false, true
			case a.Priority == nil:
				return false, false
			case b.Priority == nil:
				return true, false
			}
			return a.Priority.Rank < b.Priority.Rank, true
		}
	}
	return nil
}

func equalByField(field string, a, b *models.Task) bool {
	switch field {
	case SortByTitle:
		return strings.EqualFold(a.Title, b.Title)
	case SortByCreated:
		return a.CreatedAt.Equal(b.CreatedAt)
	case SortByStatus:
		return a.Status.StepOrder == b.Status.StepOrder
	case SortByDeadline:
		return a.Deadline != nil && b.Deadline != nil && a.Deadline.Equal(*b.Deadline)
	case SortByPriority:
		return a.Priority != nil && b.Priority != nil && a.Priority.Rank == b.Priority.Rank
	}
	return false
}

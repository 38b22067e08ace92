package tasktree

import "github.com/teamgrid/tracker-api/internal/models"

// IsVisible reports whether the task at index should be rendered given the
// set of collapsed task IDs. A task is hidden when any strict ancestor is
// collapsed. The flat sequence is pre-order, so the nearest preceding task
// with a strictly lower level is the parent; the scan walks the ancestor
// chain through successive level boundaries instead of inspecting every
// preceding row.
func IsVisible(flat []models.Task, index int, collapsed map[uint64]struct{}) bool {
	if index < 0 || index >= len(flat) {
		return false
	}

	level := flat[index].Level
	for i := index - 1; i >= 0 && level > 0; i-- {
		if flat[i].Level >= level {
			continue
		}
		if _, ok := collapsed[flat[i].ID]; ok {
			return false
		}
		level = flat[i].Level
	}
	return true
}

// VisibleTasks filters a flattened sequence down to the rows a collapsed
// tree view actually shows, preserving order.
func VisibleTasks(flat []models.Task, collapsed map[uint64]struct{}) []models.Task {
	out := make([]models.Task, 0, len(flat))
	for i := range flat {
		if IsVisible(flat, i, collapsed) {
			out = append(out, flat[i])
		}
	}
	return out
}

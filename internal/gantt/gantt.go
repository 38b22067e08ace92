// Package gantt derives the per-task annotations the Gantt view needs:
// an ordinal progress percentage and a stable row order within each status
// column.
package gantt

import (
	"math"

	"github.com/teamgrid/tracker-api/internal/models"
)

// ProgressOf maps a task's status to a 0-100 percentage from the status's
// ordinal position: round(stepOrder / max(stepOrder) * 100). This is a
// coarse visualization aid, not a measure of actual work done. A status
// missing from the list yields 0.
func ProgressOf(task models.Task, statuses []models.Status) int {
	maxStep := 0
	for i := range statuses {
		if statuses[i].StepOrder > maxStep {
			maxStep = statuses[i].StepOrder
		}
	}
	if maxStep < 1 {
		maxStep = 1
	}

	for i := range statuses {
		if statuses[i].ID == task.StatusID {
			return int(math.Round(float64(statuses[i].StepOrder) / float64(maxStep) * 100))
		}
	}
	return 0
}

// AssignStatusOrder fills OrderInStatus in place: each task's ordinal among
// tasks sharing its status, counted in sequence order. The input is expected
// to already be the flattened display order, so kanban columns and Gantt rows
// agree with the tree view.
func AssignStatusOrder(tasks []models.Task) {
	seen := make(map[uint64]int, len(tasks))
	for i := range tasks {
		tasks[i].OrderInStatus = seen[tasks[i].StatusID]
		seen[tasks[i].StatusID]++
	}
}

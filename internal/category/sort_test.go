package category

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teamgrid/tracker-api/internal/models"
)

func TestSortTasksByTitle(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "beta"},
		{ID: 2, Title: "Alpha"},
		{ID: 3, Title: "gamma"},
	}

	sorted := SortTasks(tasks, SortByTitle, false)
	assert.Equal(t, []uint64{2, 1, 3}, taskIDs(sorted))

	desc := SortTasks(tasks, SortByTitle, true)
	assert.Equal(t, []uint64{3, 1, 2}, taskIDs(desc))
}

func TestSortTasksByDeadlineNilLast(t *testing.T) {
	d1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: 1},
		{ID: 2, Deadline: &d2},
		{ID: 3, Deadline: &d1},
	}

	asc := SortTasks(tasks, SortByDeadline, false)
	assert.Equal(t, []uint64{3, 2, 1}, taskIDs(asc))

	// nil deadlines stay last even descending
	desc := SortTasks(tasks, SortByDeadline, true)
	assert.Equal(t, []uint64{2, 3, 1}, taskIDs(desc))
}

func TestSortTasksUnknownFieldKeepsOrder(t *testing.T) {
	tasks := []models.Task{{ID: 3}, {ID: 1}, {ID: 2}}

	sorted := SortTasks(tasks, "nope", false)
	assert.Equal(t, []uint64{3, 1, 2}, taskIDs(sorted))
}

func TestSortTasksIsStable(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Status: models.Status{StepOrder: 1}},
		{ID: 2, Status: models.Status{StepOrder: 0}},
		{ID: 3, Status: models.Status{StepOrder: 1}},
	}

	sorted := SortTasks(tasks, SortByStatus, false)
	assert.Equal(t, []uint64{2, 1, 3}, taskIDs(sorted))
}

func taskIDs(tasks []models.Task) []uint64 {
	out := make([]uint64, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].ID
	}
	return out
}

package gantt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamgrid/tracker-api/internal/models"
)

func TestProgressFromStatusOrdinal(t *testing.T) {
	statuses := []models.Status{
		{ID: 1, StepOrder: 0},
		{ID: 2, StepOrder: 2},
		{ID: 3, StepOrder: 4},
	}

	assert.Equal(t, 0, ProgressOf(models.Task{StatusID: 1}, statuses))
	assert.Equal(t, 50, ProgressOf(models.Task{StatusID: 2}, statuses))
	assert.Equal(t, 100, ProgressOf(models.Task{StatusID: 3}, statuses))
}

func TestProgressRoundsToNearestInteger(t *testing.T) {
	statuses := []models.Status{
		{ID: 1, StepOrder: 1},
		{ID: 2, StepOrder: 3},
	}

	// 1/3 * 100 rounds to 33
	assert.Equal(t, 33, ProgressOf(models.Task{StatusID: 1}, statuses))
}

func TestProgressUnknownStatusIsZero(t *testing.T) {
	statuses := []models.Status{{ID: 1, StepOrder: 2}}

	assert.Equal(t, 0, ProgressOf(models.Task{StatusID: 99}, statuses))
}

func TestProgressAllZeroStepOrders(t *testing.T) {
	statuses := []models.Status{{ID: 1, StepOrder: 0}, {ID: 2, StepOrder: 0}}

	assert.Equal(t, 0, ProgressOf(models.Task{StatusID: 2}, statuses))
}

func TestProgressEmptyStatusList(t *testing.T) {
	assert.Equal(t, 0, ProgressOf(models.Task{StatusID: 1}, nil))
}

func TestAssignStatusOrderCountsPerColumn(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, StatusID: 1},
		{ID: 2, StatusID: 2},
		{ID: 3, StatusID: 1},
		{ID: 4, StatusID: 1},
		{ID: 5, StatusID: 2},
	}

	AssignStatusOrder(tasks)

	assert.Equal(t, 0, tasks[0].OrderInStatus)
	assert.Equal(t, 0, tasks[1].OrderInStatus)
	assert.Equal(t, 1, tasks[2].OrderInStatus)
	assert.Equal(t, 2, tasks[3].OrderInStatus)
	assert.Equal(t, 1, tasks[4].OrderInStatus)
}

package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamgrid/tracker-api/internal/database"
	apierrors "github.com/teamgrid/tracker-api/internal/errors"
	"github.com/teamgrid/tracker-api/internal/models"
)

// RequireTaskAccess checks if the user may see a task: any access path into
// the task's company, or creatorship for personal (companyless) tasks.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("Creator").
			Preload("Status").
			Preload("Priority").
			Preload("Executor").
			First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		authorized := false
		if task.CompanyID == nil {
			authorized = task.CreatorID == userID
		} else {
			authorized = hasCompanyAccess(userID, *task.CompanyID)
		}
		if !authorized {
			// 404 instead of 403 to avoid leaking task existence
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Next()
	}
}

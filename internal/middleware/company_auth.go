package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamgrid/tracker-api/internal/database"
	apierrors "github.com/teamgrid/tracker-api/internal/errors"
	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/repository"
)

// RequireCompanyAccess checks that the user has any access path into the
// company named in the URL: ownership, membership, a linked employee record,
// or primary-company preference.
func RequireCompanyAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyIDStr := c.Param("id")
		companyID, err := strconv.ParseUint(companyIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid company ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var company models.Company
		if err := database.GetDB().First(&company, companyID).Error; err != nil {
			apierrors.NotFound(c, "Company not found")
			c.Abort()
			return
		}

		if !hasCompanyAccess(userID, companyID) {
			// 404 instead of 403 to avoid leaking company existence
			apierrors.NotFound(c, "Company not found")
			c.Abort()
			return
		}

		c.Set("company", company)
		c.Next()
	}
}

// RequireCompanyOwner restricts a route to the company's owner. Must run
// after RequireCompanyAccess.
func RequireCompanyOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		value, exists := c.Get("company")
		if !exists {
			apierrors.InternalError(c, "Company context missing")
			c.Abort()
			return
		}
		company := value.(models.Company)

		if company.OwnerID != userID {
			apierrors.Forbidden(c, "Only the company owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasCompanyAccess(userID, companyID uint64) bool {
	access, err := repository.NewCompanyRepository(database.GetDB()).ListVisibleCompanies(userID)
	if err != nil {
		return false
	}
	for _, a := range access {
		if a.Company.ID == companyID {
			return true
		}
	}
	return false
}

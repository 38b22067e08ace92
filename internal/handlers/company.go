package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamgrid/tracker-api/internal/dto"
	apierrors "github.com/teamgrid/tracker-api/internal/errors"
	"github.com/teamgrid/tracker-api/internal/middleware"
	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/services"
)

// CompanyHandler coordinates company-related HTTP handlers.
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CreateCompany creates a company owned by the current user.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCompanyRequest struct {
		Name string `json:"name" binding:"required"`
	}
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.CreateCompany(services.CreateCompanyInput{
		Name:    req.Name,
		OwnerID: userID,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCompanyName) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create company")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}

// ListCompanies returns the companies visible to the current user, ordered
// by access-role priority then name.
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	access, err := h.companyService.ListVisibleCompanies(userID)
	if err != nil {
		apierrors.StoreUnavailable(c, "")
		return
	}

	companies := make([]dto.CompanyDTO, 0, len(access))
	for _, a := range access {
		companies = append(companies, dto.ToCompanyAccessDTO(a))
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// GetCompany returns a company with its members.
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	value, _ := c.Get("company")
	company := value.(models.Company)

	_, members, err := h.companyService.GetCompanyWithMembers(company.ID)
	if err != nil {
		if errors.Is(err, services.ErrCompanyNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to load company")
		return
	}

	memberDTOs := make([]dto.CompanyMemberDTO, 0, len(members))
	for _, m := range members {
		memberDTOs = append(memberDTOs, dto.ToCompanyMemberDTO(m))
	}
	c.JSON(http.StatusOK, gin.H{
		"company": dto.ToCompanyDTO(company),
		"members": memberDTOs,
	})
}

// AddMember enrolls a user into the company. Owner only.
func (h *CompanyHandler) AddMember(c *gin.Context) {
	value, _ := c.Get("company")
	company := value.(models.Company)

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
		Role   string `json:"role"`
	}
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.companyService.AddMember(services.AddMemberInput{
		CompanyID: company.ID,
		UserID:    req.UserID,
		Role:      models.CompanyRole(req.Role),
	})
	if err != nil {
		if errors.Is(err, services.ErrAlreadyMember) {
			apierrors.Conflict(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to add member")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member added"})
}

// AddEmployee adds a staff record to the company. Owner only.
func (h *CompanyHandler) AddEmployee(c *gin.Context) {
	value, _ := c.Get("company")
	company := value.(models.Company)

	type AddEmployeeRequest struct {
		Name   string  `json:"name" binding:"required"`
		Email  string  `json:"email"`
		UserID *uint64 `json:"user_id"`
	}
	var req AddEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.companyService.AddEmployee(services.AddEmployeeInput{
		CompanyID: company.ID,
		Name:      req.Name,
		Email:     req.Email,
		UserID:    req.UserID,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmployeeName) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to add employee")
		return
	}

	c.JSON(http.StatusCreated, dto.EmployeeDTO{
		ID:    employee.ID,
		Name:  employee.Name,
		Email: employee.Email,
	})
}

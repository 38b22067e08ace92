package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/repository"
)

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrInvalidCompanyName  = errors.New("company name cannot be empty")
	ErrAlreadyMember       = errors.New("user is already a member of this company")
	ErrInvalidEmployeeName = errors.New("employee name cannot be empty")
)

// CompanyService provides business logic for company operations.
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CreateCompanyInput represents parameters to create a new company.
type CreateCompanyInput struct {
	Name    string
	OwnerID uint64
}

// CreateCompany creates a company and enrolls the owner as its first member.
func (s *CompanyService) CreateCompany(input CreateCompanyInput) (*models.Company, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidCompanyName
	}

	company := &models.Company{
		Name:    strings.TrimSpace(input.Name),
		OwnerID: input.OwnerID,
	}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	member := &models.CompanyMember{
		CompanyID: company.ID,
		UserID:    input.OwnerID,
		Role:      models.RoleOwner,
		JoinedAt:  time.Now(),
	}
	if err := s.companyRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add owner to company: %w", err)
	}

	return company, nil
}

// ListVisibleCompanies returns every company the user may see tasks for,
// ordered by access-role priority then name.
func (s *CompanyService) ListVisibleCompanies(userID uint64) ([]repository.CompanyAccess, error) {
	access, err := s.companyRepo.ListVisibleCompanies(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible companies: %w", err)
	}
	return access, nil
}

// GetCompanyWithMembers returns a company and all of its members.
func (s *CompanyService) GetCompanyWithMembers(companyID uint64) (*models.Company, []models.CompanyMember, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCompanyNotFound
		}
		return nil, nil, fmt.Errorf("failed to find company: %w", err)
	}

	members, err := s.companyRepo.ListMembers(companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list company members: %w", err)
	}

	return company, members, nil
}

// AddMemberInput represents parameters to enroll a user into a company.
type AddMemberInput struct {
	CompanyID uint64
	UserID    uint64
	Role      models.CompanyRole
}

// AddMember enrolls a user into a company.
func (s *CompanyService) AddMember(input AddMemberInput) error {
	if _, err := s.companyRepo.FindMember(input.CompanyID, input.UserID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	member := &models.CompanyMember{
		CompanyID: input.CompanyID,
		UserID:    input.UserID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	if err := s.companyRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// AddEmployeeInput represents parameters to add a staff record.
type AddEmployeeInput struct {
	CompanyID uint64
	Name      string
	Email     string
	UserID    *uint64
}

// AddEmployee adds a staff record, optionally linked to a user account.
func (s *CompanyService) AddEmployee(input AddEmployeeInput) (*models.Employee, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidEmployeeName
	}

	employee := &models.Employee{
		CompanyID: input.CompanyID,
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		UserID:    input.UserID,
	}
	if err := s.companyRepo.AddEmployee(employee); err != nil {
		return nil, fmt.Errorf("failed to add employee: %w", err)
	}
	return employee, nil
}

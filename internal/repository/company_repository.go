package repository

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/models"
)

// GormCompanyRepository is a GORM implementation of CompanyRepository
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(id uint64) (*models.Company, error) {
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Update updates a company
func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

// ListVisibleCompanies resolves the viewer's tenant set as the union of
// four access paths: ownership, membership, linked employment, and the
// primary-company preference. No single path is authoritative; duplicates
// collapse to the strongest role.
func (r *GormCompanyRepository) ListVisibleCompanies(userID uint64) ([]CompanyAccess, error) {
	merged := make(map[uint64]*CompanyAccess)

	collect := func(companies []models.Company, role AccessRole) {
		for i := range companies {
			existing, ok := merged[companies[i].ID]
			if !ok {
				merged[companies[i].ID] = &CompanyAccess{Company: companies[i], Role: role}
				continue
			}
			if rolePriority(role) < rolePriority(existing.Role) {
				existing.Role = role
			}
		}
	}

	var owned []models.Company
	if err := r.db.Where("owner_id = ?", userID).Find(&owned).Error; err != nil {
		return nil, fmt.Errorf("failed to query owned companies: %w", err)
	}
	collect(owned, AccessOwner)

	var member []models.Company
	err := r.db.
		Joins("JOIN company_members ON company_members.company_id = companies.id").
		Where("company_members.user_id = ?", userID).
		Find(&member).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	collect(member, AccessMember)

	var employed []models.Company
	err = r.db.
		Joins("JOIN employees ON employees.company_id = companies.id").
		Where("employees.user_id = ? AND employees.deleted_at IS NULL", userID).
		Find(&employed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query employments: %w", err)
	}
	collect(employed, AccessEmployee)

	var primary []models.Company
	err = r.db.
		Joins("JOIN users ON users.primary_company_id = companies.id").
		Where("users.id = ?", userID).
		Find(&primary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query primary company: %w", err)
	}
	collect(primary, AccessPrimary)

	out := make([]CompanyAccess, 0, len(merged))
	for _, access := range merged {
		out = append(out, *access)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := rolePriority(out[i].Role), rolePriority(out[j].Role)
		if pi != pj {
			return pi < pj
		}
		if out[i].Company.Name != out[j].Company.Name {
			return out[i].Company.Name < out[j].Company.Name
		}
		return out[i].Company.ID < out[j].Company.ID
	})
	return out, nil
}

// AddMember adds a member to a company
func (r *GormCompanyRepository) AddMember(member *models.CompanyMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific company member
func (r *GormCompanyRepository) FindMember(companyID, userID uint64) (*models.CompanyMember, error) {
	var member models.CompanyMember
	if err := r.db.Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a company
func (r *GormCompanyRepository) ListMembers(companyID uint64) ([]models.CompanyMember, error) {
	var members []models.CompanyMember
	if err := r.db.Preload("User").
		Where("company_id = ?", companyID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// AddEmployee adds a staff record to a company
func (r *GormCompanyRepository) AddEmployee(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// ListEmployeeIDsForUser lists employee record ids linked to a user account.
func (r *GormCompanyRepository) ListEmployeeIDsForUser(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Employee{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query employee records: %w", err)
	}
	return ids, nil
}

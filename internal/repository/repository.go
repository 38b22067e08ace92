package repository

import (
	"github.com/teamgrid/tracker-api/internal/models"
)

// AccessRole is how a user sees into a company. Multiple paths may coexist;
// visibility is their union. The role only affects display ordering.
type AccessRole string

const (
	AccessOwner    AccessRole = "owner"
	AccessMember   AccessRole = "member"
	AccessEmployee AccessRole = "employee"
	AccessPrimary  AccessRole = "primary"
)

// rolePriority orders access roles for display; lower sorts first.
func rolePriority(r AccessRole) int {
	switch r {
	case AccessOwner:
		return 0
	case AccessMember:
		return 1
	case AccessEmployee:
		return 2
	case AccessPrimary:
		return 3
	}
	return 4
}

// CompanyAccess is one resolved visible company tagged with the strongest
// access path the user has into it.
type CompanyAccess struct {
	Company models.Company
	Role    AccessRole
}

// TaskFilter holds the parameters of a visibility query.
type TaskFilter struct {
	// ViewerID is the authenticated user; personal tasks (nil company)
	// are visible to their creator only.
	ViewerID uint64
	// VisibleCompanyIDs is the resolved tenant set. Empty narrows the
	// query to the viewer's personal tasks.
	VisibleCompanyIDs []uint64
	// CompanyID restricts the query to a single tenant when set.
	CompanyID *uint64
	// ExecutorID restricts to tasks assigned to one employee when set.
	ExecutorID *uint64
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListActive retrieves visible tasks whose status is not terminal,
	// ordered by creation time descending.
	ListActive(filter TaskFilter) ([]models.Task, error)

	// ListCompleted retrieves visible tasks whose status is terminal,
	// ordered by last update (falling back to creation time) descending.
	ListCompleted(filter TaskFilter) ([]models.Task, error)

	// ListDescendants expands a root id set to all transitive descendants
	// via parent links. The terminal-status exclusion and the optional
	// executor filter are re-applied at every hop, so a resolved branch
	// disconnects its subtree.
	ListDescendants(rootIDs []uint64, filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// DeleteSubtree soft deletes a task and all of its descendants in a
	// single transaction.
	DeleteSubtree(id uint64) error
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Create creates a new company
	Create(company *models.Company) error

	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)

	// Update updates a company
	Update(company *models.Company) error

	// ListVisibleCompanies resolves every company the user may see tasks
	// for: owned, explicit membership, linked employee record, or primary
	// company. Deduplicated by company id, strongest role wins, ordered by
	// role priority then name.
	ListVisibleCompanies(userID uint64) ([]CompanyAccess, error)

	// AddMember adds a member to a company
	AddMember(member *models.CompanyMember) error

	// FindMember finds a specific company member
	FindMember(companyID, userID uint64) (*models.CompanyMember, error)

	// ListMembers lists all members of a company
	ListMembers(companyID uint64) ([]models.CompanyMember, error)

	// AddEmployee adds a staff record to a company
	AddEmployee(employee *models.Employee) error

	// ListEmployeeIDsForUser lists employee record ids linked to a user
	// account across all companies.
	ListEmployeeIDsForUser(userID uint64) ([]uint64, error)
}

// StatusRepository defines the interface for workflow status access
type StatusRepository interface {
	// ListOrdered returns all statuses ordered by step order.
	ListOrdered() ([]models.Status, error)

	// FindByID finds a status by ID
	FindByID(id uint64) (*models.Status, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

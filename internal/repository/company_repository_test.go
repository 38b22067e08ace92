package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyMember{},
		&models.Employee{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})
	return db
}

func TestListVisibleCompaniesMergesAccessPaths(t *testing.T) {
	db := newTestDB(t)
	repo := NewCompanyRepository(db)

	user := models.User{Email: "dev@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	other := models.User{Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&other).Error)

	owned := models.Company{Name: "Owned", OwnerID: user.ID}
	require.NoError(t, db.Create(&owned).Error)
	joined := models.Company{Name: "Joined", OwnerID: other.ID}
	require.NoError(t, db.Create(&joined).Error)
	staffed := models.Company{Name: "Staffed", OwnerID: other.ID}
	require.NoError(t, db.Create(&staffed).Error)
	unrelated := models.Company{Name: "Unrelated", OwnerID: other.ID}
	require.NoError(t, db.Create(&unrelated).Error)

	require.NoError(t, db.Create(&models.CompanyMember{
		CompanyID: joined.ID, UserID: user.ID, Role: models.RoleMember, JoinedAt: time.Now(),
	}).Error)
	// Membership in an owned company must not weaken the owner role.
	require.NoError(t, db.Create(&models.CompanyMember{
		CompanyID: owned.ID, UserID: user.ID, Role: models.RoleOwner, JoinedAt: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&models.Employee{
		CompanyID: staffed.ID, Name: "Dev", UserID: &user.ID,
	}).Error)

	access, err := repo.ListVisibleCompanies(user.ID)
	require.NoError(t, err)
	require.Len(t, access, 3)

	byID := make(map[uint64]AccessRole, len(access))
	for _, a := range access {
		byID[a.Company.ID] = a.Role
	}
	assert.Equal(t, AccessOwner, byID[owned.ID])
	assert.Equal(t, AccessMember, byID[joined.ID])
	assert.Equal(t, AccessEmployee, byID[staffed.ID])
	assert.NotContains(t, byID, unrelated.ID)

	// Strongest role sorts first.
	assert.Equal(t, owned.ID, access[0].Company.ID)
}

func TestListVisibleCompaniesIgnoresRemovedEmployees(t *testing.T) {
	db := newTestDB(t)
	repo := NewCompanyRepository(db)

	user := models.User{Email: "dev@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	other := models.User{Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&other).Error)
	company := models.Company{Name: "Former", OwnerID: other.ID}
	require.NoError(t, db.Create(&company).Error)

	employee := models.Employee{CompanyID: company.ID, Name: "Dev", UserID: &user.ID}
	require.NoError(t, db.Create(&employee).Error)
	require.NoError(t, db.Delete(&employee).Error)

	access, err := repo.ListVisibleCompanies(user.ID)
	require.NoError(t, err)
	assert.Empty(t, access)
}

func TestListVisibleCompaniesIncludesPrimaryCompany(t *testing.T) {
	db := newTestDB(t)
	repo := NewCompanyRepository(db)

	other := models.User{Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&other).Error)
	company := models.Company{Name: "Primary", OwnerID: other.ID}
	require.NoError(t, db.Create(&company).Error)

	user := models.User{Email: "dev@example.com", PasswordHash: "x", PrimaryCompanyID: &company.ID}
	require.NoError(t, db.Create(&user).Error)

	access, err := repo.ListVisibleCompanies(user.ID)
	require.NoError(t, err)
	require.Len(t, access, 1)
	assert.Equal(t, company.ID, access[0].Company.ID)
	assert.Equal(t, AccessPrimary, access[0].Role)
}

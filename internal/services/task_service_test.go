package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teamgrid/tracker-api/internal/models"
	"github.com/teamgrid/tracker-api/internal/repository"
)

// TaskServiceTestSuite exercises the visibility and hierarchy pipeline
// against an in-memory database.
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService

	active   models.Status
	terminal models.Status
}

func (suite *TaskServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyMember{},
		&models.Employee{},
		&models.Status{},
		&models.Priority{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewCompanyRepository(suite.db),
		repository.NewStatusRepository(suite.db),
		zap.NewNop(),
	)

	suite.active = suite.createStatus("In Progress", 1, false)
	suite.terminal = suite.createStatus("Done", 3, true)
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createUser(email string) *models.User {
	user := &models.User{Email: email, PasswordHash: "hashedpassword"}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskServiceTestSuite) createCompany(name string, ownerID uint64) *models.Company {
	company := &models.Company{Name: name, OwnerID: ownerID}
	suite.Require().NoError(suite.db.Create(company).Error)
	return company
}

func (suite *TaskServiceTestSuite) createStatus(name string, step int, terminal bool) models.Status {
	status := models.Status{Name: name, StepOrder: step, IsTerminal: terminal}
	suite.Require().NoError(suite.db.Create(&status).Error)
	return status
}

type taskSpec struct {
	title     string
	creatorID uint64
	companyID *uint64
	parentID  *uint64
	statusID  uint64
	executor  *uint64
	createdAt time.Time
	updatedAt *time.Time
}

func (suite *TaskServiceTestSuite) createTask(spec taskSpec) *models.Task {
	if spec.statusID == 0 {
		spec.statusID = suite.active.ID
	}
	if spec.createdAt.IsZero() {
		spec.createdAt = time.Now().Add(-time.Hour)
	}
	task := &models.Task{
		Title:      spec.title,
		CreatorID:  spec.creatorID,
		CompanyID:  spec.companyID,
		ParentID:   spec.parentID,
		StatusID:   spec.statusID,
		ExecutorID: spec.executor,
		CreatedAt:  spec.createdAt,
		UpdatedAt:  spec.updatedAt,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func taskIDs(tasks []models.Task) []uint64 {
	out := make([]uint64, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].ID
	}
	return out
}

func taskLevels(tasks []models.Task) []int {
	out := make([]int, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Level
	}
	return out
}

func (suite *TaskServiceTestSuite) TestTenantIsolation() {
	alice := suite.createUser("alice@example.com")
	bob := suite.createUser("bob@example.com")
	mine := suite.createCompany("Mine", alice.ID)
	other := suite.createCompany("Other", bob.ID)

	visible := suite.createTask(taskSpec{title: "visible", creatorID: alice.ID, companyID: &mine.ID})
	suite.createTask(taskSpec{title: "foreign", creatorID: bob.ID, companyID: &other.ID})
	suite.createTask(taskSpec{title: "bob personal", creatorID: bob.ID})

	tasks, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID})
	suite.Require().NoError(err)
	suite.Equal([]uint64{visible.ID}, taskIDs(tasks))
}

func (suite *TaskServiceTestSuite) TestPersonalTaskFallback() {
	alice := suite.createUser("alice@example.com")
	bob := suite.createUser("bob@example.com")

	own := suite.createTask(taskSpec{title: "own", creatorID: alice.ID})
	suite.createTask(taskSpec{title: "not own", creatorID: bob.ID})

	tasks, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID})
	suite.Require().NoError(err)
	suite.Equal([]uint64{own.ID}, taskIDs(tasks))
}

func (suite *TaskServiceTestSuite) TestMembershipGrantsVisibility() {
	alice := suite.createUser("alice@example.com")
	bob := suite.createUser("bob@example.com")
	company := suite.createCompany("Shared", bob.ID)
	suite.Require().NoError(suite.db.Create(&models.CompanyMember{
		CompanyID: company.ID,
		UserID:    alice.ID,
		Role:      models.RoleMember,
		JoinedAt:  time.Now(),
	}).Error)

	task := suite.createTask(taskSpec{title: "shared", creatorID: bob.ID, companyID: &company.ID})

	tasks, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID})
	suite.Require().NoError(err)
	suite.Equal([]uint64{task.ID}, taskIDs(tasks))
}

func (suite *TaskServiceTestSuite) TestCompanyFilterSurfacesCrossTenantDescendants() {
	alice := suite.createUser("alice@example.com")
	bob := suite.createUser("bob@example.com")
	mine := suite.createCompany("Mine", alice.ID)
	other := suite.createCompany("Other", bob.ID)

	base := time.Now().Add(-3 * time.Hour)
	root := suite.createTask(taskSpec{title: "root", creatorID: alice.ID, companyID: &mine.ID, createdAt: base})
	child := suite.createTask(taskSpec{title: "child", creatorID: alice.ID, companyID: &mine.ID, parentID: &root.ID, createdAt: base.Add(time.Minute)})
	grandchild := suite.createTask(taskSpec{title: "grandchild", creatorID: bob.ID, companyID: &other.ID, parentID: &child.ID, createdAt: base.Add(2 * time.Minute)})

	tasks, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID, CompanyID: &mine.ID})
	suite.Require().NoError(err)

	suite.Equal([]uint64{root.ID, child.ID, grandchild.ID}, taskIDs(tasks))
	suite.Equal([]int{0, 1, 2}, taskLevels(tasks))
	suite.True(tasks[0].HasChildren)
	suite.True(tasks[1].HasChildren)
	suite.False(tasks[2].HasChildren)
}

func (suite *TaskServiceTestSuite) TestTerminalBranchDisconnectsSubtree() {
	alice := suite.createUser("alice@example.com")
	mine := suite.createCompany("Mine", alice.ID)
	other := suite.createCompany("Other", alice.ID)

	root := suite.createTask(taskSpec{title: "root", creatorID: alice.ID, companyID: &mine.ID})
	done := suite.createTask(taskSpec{title: "done branch", creatorID: alice.ID, companyID: &other.ID, parentID: &root.ID, statusID: suite.terminal.ID})
	suite.createTask(taskSpec{title: "below done", creatorID: alice.ID, companyID: &other.ID, parentID: &done.ID})

	tasks, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID, CompanyID: &mine.ID})
	suite.Require().NoError(err)

	// The terminal child is dropped at its hop, disconnecting everything
	// beneath it from the visible set.
	suite.Equal([]uint64{root.ID}, taskIDs(tasks))
}

func (suite *TaskServiceTestSuite) TestActiveViewExcludesTerminalStatuses() {
	alice := suite.createUser("alice@example.com")

	open := suite.createTask(taskSpec{title: "open", creatorID: alice.ID})
	suite.createTask(taskSpec{title: "done", creatorID: alice.ID, statusID: suite.terminal.ID})

	tasks, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID})
	suite.Require().NoError(err)
	suite.Equal([]uint64{open.ID}, taskIDs(tasks))
}

func (suite *TaskServiceTestSuite) TestCompletedListOrdersByLastTouch() {
	alice := suite.createUser("alice@example.com")

	base := time.Now().Add(-48 * time.Hour)
	older := suite.createTask(taskSpec{title: "older", creatorID: alice.ID, statusID: suite.terminal.ID, createdAt: base.Add(time.Hour)})
	recentTouch := base.Add(10 * time.Hour)
	touched := suite.createTask(taskSpec{title: "touched", creatorID: alice.ID, statusID: suite.terminal.ID, createdAt: base, updatedAt: &recentTouch})

	tasks, err := suite.service.ListCompletedTasks(ListTasksInput{UserID: alice.ID})
	suite.Require().NoError(err)
	suite.Equal([]uint64{touched.ID, older.ID}, taskIDs(tasks))
}

func (suite *TaskServiceTestSuite) TestExecutorFilter() {
	alice := suite.createUser("alice@example.com")
	company := suite.createCompany("Mine", alice.ID)

	employee := &models.Employee{CompanyID: company.ID, Name: "Dev", UserID: &alice.ID}
	suite.Require().NoError(suite.db.Create(employee).Error)

	assigned := suite.createTask(taskSpec{title: "assigned", creatorID: alice.ID, companyID: &company.ID, executor: &employee.ID})
	suite.createTask(taskSpec{title: "unassigned", creatorID: alice.ID, companyID: &company.ID})

	tasks, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID, ExecutorID: &employee.ID})
	suite.Require().NoError(err)
	suite.Equal([]uint64{assigned.ID}, taskIDs(tasks))
}

func (suite *TaskServiceTestSuite) TestCompanyFilterRequiresAccess() {
	alice := suite.createUser("alice@example.com")
	bob := suite.createUser("bob@example.com")
	foreign := suite.createCompany("Foreign", bob.ID)

	_, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID, CompanyID: &foreign.ID})
	suite.ErrorIs(err, ErrNotCompanyVisible)
}

func (suite *TaskServiceTestSuite) TestEmptyResultIsNotAnError() {
	alice := suite.createUser("alice@example.com")

	tasks, err := suite.service.ListVisibleTasks(ListTasksInput{UserID: alice.ID})
	suite.Require().NoError(err)
	suite.Empty(tasks)
}

func (suite *TaskServiceTestSuite) TestViewerResolvesLinkedEmployees() {
	alice := suite.createUser("alice@example.com")
	company := suite.createCompany("Mine", alice.ID)
	employee := &models.Employee{CompanyID: company.ID, Name: "Dev", UserID: &alice.ID}
	suite.Require().NoError(suite.db.Create(employee).Error)

	viewer, err := suite.service.Viewer(alice.ID)
	suite.Require().NoError(err)
	suite.Contains(viewer.EmployeeIDs, employee.ID)
	suite.Equal(alice.ID, viewer.UserID)
}

func (suite *TaskServiceTestSuite) TestCreateTaskInheritsParentCompany() {
	alice := suite.createUser("alice@example.com")
	company := suite.createCompany("Mine", alice.ID)
	parent := suite.createTask(taskSpec{title: "parent", creatorID: alice.ID, companyID: &company.ID})

	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:     "sub",
		ParentID:  &parent.ID,
		StatusID:  suite.active.ID,
		CreatorID: alice.ID,
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(task.CompanyID)
	suite.Equal(company.ID, *task.CompanyID)
}

func (suite *TaskServiceTestSuite) TestCreateTaskValidation() {
	alice := suite.createUser("alice@example.com")

	_, err := suite.service.CreateTask(CreateTaskInput{StatusID: suite.active.ID, CreatorID: alice.ID})
	suite.ErrorIs(err, ErrTitleRequired)

	_, err = suite.service.CreateTask(CreateTaskInput{Title: "x", StatusID: 999, CreatorID: alice.ID})
	suite.ErrorIs(err, ErrStatusNotFound)

	missing := uint64(999)
	_, err = suite.service.CreateTask(CreateTaskInput{Title: "x", StatusID: suite.active.ID, ParentID: &missing, CreatorID: alice.ID})
	suite.ErrorIs(err, ErrParentNotFound)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskSetsUpdatedAt() {
	alice := suite.createUser("alice@example.com")
	task := suite.createTask(taskSpec{title: "t", creatorID: alice.ID})
	suite.Nil(task.UpdatedAt)

	title := "renamed"
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Title: &title})
	suite.Require().NoError(err)
	suite.Equal("renamed", updated.Title)
	suite.NotNil(updated.UpdatedAt)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskCascadesToSubtree() {
	alice := suite.createUser("alice@example.com")
	root := suite.createTask(taskSpec{title: "root", creatorID: alice.ID})
	child := suite.createTask(taskSpec{title: "child", creatorID: alice.ID, parentID: &root.ID})
	suite.createTask(taskSpec{title: "grandchild", creatorID: alice.ID, parentID: &child.ID})

	suite.Require().NoError(suite.service.DeleteTask(root.ID, alice.ID))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Task{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskForbiddenForOutsiders() {
	alice := suite.createUser("alice@example.com")
	mallory := suite.createUser("mallory@example.com")
	task := suite.createTask(taskSpec{title: "t", creatorID: alice.ID})

	err := suite.service.DeleteTask(task.ID, mallory.ID)
	suite.ErrorIs(err, ErrTaskDeleteForbidden)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskAllowedForCompanyOwner() {
	alice := suite.createUser("alice@example.com")
	owner := suite.createUser("owner@example.com")
	company := suite.createCompany("Owned", owner.ID)
	suite.Require().NoError(suite.db.Create(&models.CompanyMember{
		CompanyID: company.ID,
		UserID:    alice.ID,
		Role:      models.RoleMember,
		JoinedAt:  time.Now(),
	}).Error)
	task := suite.createTask(taskSpec{title: "t", creatorID: alice.ID, companyID: &company.ID})

	suite.Require().NoError(suite.service.DeleteTask(task.ID, owner.ID))
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

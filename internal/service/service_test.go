package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
	"github.com/staff-projects-api/internal/repository"
	"github.com/staff-projects-api/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testDateLayout = "2006-01-02"

// testEnv собирает сервисы поверх SQLite в памяти
type testEnv struct {
	db          *gorm.DB
	departments service.DepartmentService
	employees   service.EmployeeService
	projects    service.ProjectService
}

func newTestEnv(t *testing.T, now func() time.Time) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Каждое новое соединение к :memory: - отдельная пустая база
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&domain.Department{}, &domain.Employee{}, &domain.Project{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	deptRepo := repository.NewDepartmentRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	projRepo := repository.NewProjectRepository(db)

	return &testEnv{
		db:          db,
		departments: service.NewDepartmentService(db, deptRepo, empRepo),
		employees:   service.NewEmployeeServiceWithClock(db, empRepo, deptRepo, now),
		projects:    service.NewProjectServiceWithClock(db, projRepo, empRepo, now),
	}
}

// fixedClock возвращает часы, остановленные на указанной дате
func fixedClock(date string) func() time.Time {
	t, err := time.Parse(testDateLayout, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func (e *testEnv) createDepartment(t *testing.T, name string) *domain.Department {
	t.Helper()
	dept, err := e.departments.Create(context.Background(), &dto.DepartmentRequest{Name: name})
	if err != nil {
		t.Fatalf("failed to create department %q: %v", name, err)
	}
	return dept
}

func (e *testEnv) createEmployee(t *testing.T, email string, departmentID int64, salary string) *domain.Employee {
	t.Helper()
	emp, err := e.employees.Create(context.Background(), &dto.EmployeeRequest{
		FirstName:    "Ivan",
		LastName:     "Petrov",
		Email:        email,
		HireDate:     "2020-01-15",
		Salary:       decimal.RequireFromString(salary),
		DepartmentID: departmentID,
	})
	if err != nil {
		t.Fatalf("failed to create employee %q: %v", email, err)
	}
	return emp
}

func (e *testEnv) createProject(t *testing.T, name string, startDate, endDate *string) *domain.Project {
	t.Helper()
	project, err := e.projects.Create(context.Background(), &dto.ProjectRequest{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		t.Fatalf("failed to create project %q: %v", name, err)
	}
	return project
}

func strPtr(s string) *string {
	return &s
}

func isNotFound(err error, entity string) bool {
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		return false
	}
	return notFound.Entity == entity
}

func isDuplicate(err error, field string) bool {
	var duplicate *domain.DuplicateError
	if !errors.As(err, &duplicate) {
		return false
	}
	return duplicate.Field == field
}

func validationFields(err error) []string {
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, len(verrs))
	for i, ve := range verrs {
		fields[i] = ve.Field
	}
	return fields
}

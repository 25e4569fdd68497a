package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/staff-projects-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	WithTx(tx *gorm.DB) EmployeeRepository
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	ListByDepartmentID(ctx context.Context, departmentID int64) ([]domain.Employee, error)
	ListByDepartmentName(ctx context.Context, name string) ([]domain.Employee, error)
	ListBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Employee, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	DeleteByDepartmentID(ctx context.Context, departmentID int64) error
	ClearProjects(ctx context.Context, emp *domain.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// WithTx возвращает репозиторий, работающий в рамках переданной транзакции
func (r *employeeRepository) WithTx(tx *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: tx}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(emp).Error
	if err != nil {
		// Уникальный индекс по email - последняя линия защиты от гонки
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &domain.DuplicateError{Entity: domain.EntityEmployee, Field: "email", Value: emp.Email}
		}
		return storageErr("create employee", err)
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Preload("Projects").First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(domain.EntityEmployee, id)
		}
		return nil, storageErr("get employee by id", err)
	}
	return &emp, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Preload("Projects").Where("email = ?", email).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(domain.EntityEmployee, email)
		}
		return nil, storageErr("get employee by email", err)
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).Find(&employees).Error
	return employees, storageErr("list employees", err)
}

func (r *employeeRepository) ListByDepartmentID(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Find(&employees).Error
	return employees, storageErr("list employees by department id", err)
}

func (r *employeeRepository) ListByDepartmentName(ctx context.Context, name string) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("departments.name = ?", name).
		Find(&employees).Error
	return employees, storageErr("list employees by department name", err)
}

func (r *employeeRepository) ListBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Where("salary BETWEEN ? AND ?", min, max).
		Find(&employees).Error
	return employees, storageErr("list employees by salary range", err)
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("email = ?", email)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, storageErr("count employees by email", err)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &domain.DuplicateError{Entity: domain.EntityEmployee, Field: "email", Value: emp.Email}
		}
		return storageErr("update employee", err)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return storageErr("delete employee", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.EntityEmployee, id)
	}
	return nil
}

func (r *employeeRepository) DeleteByDepartmentID(ctx context.Context, departmentID int64) error {
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Delete(&domain.Employee{}).Error
	return storageErr("delete employees by department id", err)
}

// ClearProjects удаляет все связи сотрудника с проектами
func (r *employeeRepository) ClearProjects(ctx context.Context, emp *domain.Employee) error {
	err := r.db.WithContext(ctx).Model(emp).Association("Projects").Clear()
	return storageErr("clear employee projects", err)
}

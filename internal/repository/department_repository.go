package repository

import (
	"context"
	"errors"

	"github.com/staff-projects-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DepartmentRepository определяет интерфейс для работы с департаментами
type DepartmentRepository interface {
	WithTx(tx *gorm.DB) DepartmentRepository
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	GetByName(ctx context.Context, name string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	ExistsByName(ctx context.Context, name string, excludeID *int64) (bool, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id int64) error
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

// WithTx возвращает репозиторий, работающий в рамках переданной транзакции
func (r *departmentRepository) WithTx(tx *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: tx}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(dept).Error
	if err != nil {
		// Уникальный индекс по имени - последняя линия защиты от гонки
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &domain.DuplicateError{Entity: domain.EntityDepartment, Field: "name", Value: dept.Name}
		}
		return storageErr("create department", err)
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).First(&dept, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(domain.EntityDepartment, id)
		}
		return nil, storageErr("get department by id", err)
	}
	return &dept, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(domain.EntityDepartment, name)
		}
		return nil, storageErr("get department by name", err)
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).Find(&departments).Error
	return departments, storageErr("list departments", err)
}

func (r *departmentRepository) ExistsByName(ctx context.Context, name string, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Department{}).Where("name = ?", name)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, storageErr("count departments by name", err)
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(dept).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &domain.DuplicateError{Entity: domain.EntityDepartment, Field: "name", Value: dept.Name}
		}
		return storageErr("update department", err)
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Department{}, id)
	if result.Error != nil {
		return storageErr("delete department", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.EntityDepartment, id)
	}
	return nil
}

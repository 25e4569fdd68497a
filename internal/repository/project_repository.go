package repository

import (
	"context"
	"errors"

	"github.com/staff-projects-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository определяет интерфейс для работы с проектами
type ProjectRepository interface {
	WithTx(tx *gorm.DB) ProjectRepository
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	ReplaceEmployees(ctx context.Context, project *domain.Project, employees []domain.Employee) error
	ClearEmployees(ctx context.Context, project *domain.Project) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository создаёт новый экземпляр репозитория
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// WithTx возвращает репозиторий, работающий в рамках переданной транзакции
func (r *projectRepository) WithTx(tx *gorm.DB) ProjectRepository {
	return &projectRepository{db: tx}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
	return storageErr("create project", err)
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Preload("Employees").First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(domain.EntityProject, id)
		}
		return nil, storageErr("get project by id", err)
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).Find(&projects).Error
	return projects, storageErr("list projects", err)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
	return storageErr("update project", err)
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Project{}, id)
	if result.Error != nil {
		return storageErr("delete project", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.EntityProject, id)
	}
	return nil
}

// ReplaceEmployees целиком заменяет состав сотрудников проекта.
// Старые связи, не вошедшие в новый состав, удаляются из таблицы связей.
func (r *projectRepository) ReplaceEmployees(ctx context.Context, project *domain.Project, employees []domain.Employee) error {
	err := r.db.WithContext(ctx).Model(project).Association("Employees").Replace(&employees)
	return storageErr("replace project employees", err)
}

// ClearEmployees удаляет все связи проекта с сотрудниками
func (r *projectRepository) ClearEmployees(ctx context.Context, project *domain.Project) error {
	err := r.db.WithContext(ctx).Model(project).Association("Employees").Clear()
	return storageErr("clear project employees", err)
}

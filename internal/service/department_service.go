package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
	"github.com/staff-projects-api/internal/repository"
	"gorm.io/gorm"
)

// DepartmentService определяет интерфейс бизнес-логики для департаментов
type DepartmentService interface {
	Create(ctx context.Context, req *dto.DepartmentRequest) (*domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	GetByName(ctx context.Context, name string) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, id int64, req *dto.DepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
}

type departmentService struct {
	db       *gorm.DB
	deptRepo repository.DepartmentRepository
	empRepo  repository.EmployeeRepository
	validate *validator.Validate
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(db *gorm.DB, deptRepo repository.DepartmentRepository, empRepo repository.EmployeeRepository) DepartmentService {
	return &departmentService{
		db:       db,
		deptRepo: deptRepo,
		empRepo:  empRepo,
		validate: newValidator(),
	}
}

func (s *departmentService) Create(ctx context.Context, req *dto.DepartmentRequest) (*domain.Department, error) {
	if verrs := validateStruct(s.validate, req); verrs != nil {
		return nil, verrs
	}

	name := strings.TrimSpace(req.Name)
	dept := &domain.Department{
		Name:        name,
		Description: req.Description,
	}

	// Проверка уникальности и вставка выполняются в одной транзакции
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.deptRepo.WithTx(tx)

		exists, err := repo.ExistsByName(ctx, name, nil)
		if err != nil {
			return err
		}
		if exists {
			return &domain.DuplicateError{Entity: domain.EntityDepartment, Field: "name", Value: name}
		}

		return repo.Create(ctx, dept)
	})
	if err != nil {
		return nil, err
	}

	return dept, nil
}

func (s *departmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	return s.deptRepo.GetByID(ctx, id)
}

func (s *departmentService) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	return s.deptRepo.GetByName(ctx, name)
}

func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *departmentService) Update(ctx context.Context, id int64, req *dto.DepartmentRequest) (*domain.Department, error) {
	if verrs := validateStruct(s.validate, req); verrs != nil {
		return nil, verrs
	}

	name := strings.TrimSpace(req.Name)

	var dept *domain.Department
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.deptRepo.WithTx(tx)

		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// Уникальность имени проверяется и при обновлении,
		// исключая сам обновляемый департамент
		exists, err := repo.ExistsByName(ctx, name, &id)
		if err != nil {
			return err
		}
		if exists {
			return &domain.DuplicateError{Entity: domain.EntityDepartment, Field: "name", Value: name}
		}

		existing.Name = name
		existing.Description = req.Description
		if err := repo.Update(ctx, existing); err != nil {
			return err
		}

		dept = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dept, nil
}

func (s *departmentService) Delete(ctx context.Context, id int64) error {
	// Удаление каскадное: вместе с департаментом удаляются его
	// сотрудники и их связи с проектами - всё в одной транзакции
	return s.db.Transaction(func(tx *gorm.DB) error {
		deptRepo := s.deptRepo.WithTx(tx)
		empRepo := s.empRepo.WithTx(tx)

		if _, err := deptRepo.GetByID(ctx, id); err != nil {
			return err
		}

		employees, err := empRepo.ListByDepartmentID(ctx, id)
		if err != nil {
			return err
		}
		for i := range employees {
			if err := empRepo.ClearProjects(ctx, &employees[i]); err != nil {
				return err
			}
		}

		if err := empRepo.DeleteByDepartmentID(ctx, id); err != nil {
			return err
		}

		return deptRepo.Delete(ctx, id)
	})
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
	"github.com/staff-projects-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService определяет интерфейс бизнес-логики для проектов
type ProjectService interface {
	Create(ctx context.Context, req *dto.ProjectRequest) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListActive(ctx context.Context) ([]domain.Project, error)
	ListEmployees(ctx context.Context, projectID int64) ([]domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.ProjectRequest) (*domain.Project, error)
	AssignEmployees(ctx context.Context, projectID int64, employeeIDs []int64) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

type projectService struct {
	db       *gorm.DB
	projRepo repository.ProjectRepository
	empRepo  repository.EmployeeRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewProjectService создаёт новый экземпляр сервиса
func NewProjectService(db *gorm.DB, projRepo repository.ProjectRepository, empRepo repository.EmployeeRepository) ProjectService {
	return NewProjectServiceWithClock(db, projRepo, empRepo, time.Now)
}

// NewProjectServiceWithClock создаёт сервис с подменяемыми часами.
// Часы определяют границу "сегодня" при вычислении активности проекта.
func NewProjectServiceWithClock(db *gorm.DB, projRepo repository.ProjectRepository, empRepo repository.EmployeeRepository, now func() time.Time) ProjectService {
	return &projectService{
		db:       db,
		projRepo: projRepo,
		empRepo:  empRepo,
		validate: newValidator(),
		now:      now,
	}
}

func (s *projectService) Create(ctx context.Context, req *dto.ProjectRequest) (*domain.Project, error) {
	project, err := s.buildProject(req)
	if err != nil {
		return nil, err
	}

	if err := s.projRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projRepo.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projRepo.List(ctx)
}

// ListActive возвращает проекты, активные на момент вызова.
// Предикат вычисляется по текущим часам, поэтому результат может
// меняться между вызовами без каких-либо записей в хранилище.
func (s *projectService) ListActive(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	active := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if p.ActiveAt(now) {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *projectService) ListEmployees(ctx context.Context, projectID int64) ([]domain.Employee, error) {
	project, err := s.projRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return project.Employees, nil
}

func (s *projectService) Update(ctx context.Context, id int64, req *dto.ProjectRequest) (*domain.Project, error) {
	project, err := s.buildProject(req)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.projRepo.WithTx(tx)

		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}

		project.ID = id
		return repo.Update(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// AssignEmployees целиком заменяет состав сотрудников проекта.
// Если хотя бы один id не существует, транзакция откатывается и
// прежний состав остаётся нетронутым.
func (s *projectService) AssignEmployees(ctx context.Context, projectID int64, employeeIDs []int64) (*domain.Project, error) {
	if len(employeeIDs) == 0 {
		return nil, domain.ValidationErrors{{Field: "employee_ids", Message: "must not be empty"}}
	}

	var out *domain.Project
	err := s.db.Transaction(func(tx *gorm.DB) error {
		projRepo := s.projRepo.WithTx(tx)
		empRepo := s.empRepo.WithTx(tx)

		project, err := projRepo.GetByID(ctx, projectID)
		if err != nil {
			return err
		}

		employees := make([]domain.Employee, 0, len(employeeIDs))
		for _, empID := range employeeIDs {
			emp, err := empRepo.GetByID(ctx, empID)
			if err != nil {
				return err
			}
			employees = append(employees, *emp)
		}

		if err := projRepo.ReplaceEmployees(ctx, project, employees); err != nil {
			return err
		}

		project.Employees = employees
		out = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.projRepo.WithTx(tx)

		project, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.ClearEmployees(ctx, project); err != nil {
			return err
		}

		return repo.Delete(ctx, id)
	})
}

// buildProject проверяет поля и инвариант диапазона дат,
// затем собирает доменную сущность
func (s *projectService) buildProject(req *dto.ProjectRequest) (*domain.Project, error) {
	if verrs := validateStruct(s.validate, req); verrs != nil {
		return nil, verrs
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	// Равные даты допустимы, окончание раньше начала - нет
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, &domain.InvalidDateRangeError{}
	}

	return &domain.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		// Формат уже проверен тегом datetime, сюда попадать не должны
		return nil, domain.ValidationErrors{{Field: "date", Message: "must be a date in format " + dateLayout}}
	}
	date := domain.DateOnly(parsed)
	return &date, nil
}

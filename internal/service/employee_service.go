package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
	"github.com/staff-projects-api/internal/repository"
	"gorm.io/gorm"
)

// maxSalary - верхняя граница зарплаты: не более 8 целых разрядов
var maxSalary = decimal.New(1, 8)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	ListByDepartmentName(ctx context.Context, name string) ([]domain.Employee, error)
	ListBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Employee, error)
	AverageSalaryByDepartment(ctx context.Context, departmentID int64) (decimal.Decimal, error)
	Update(ctx context.Context, id int64, req *dto.EmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	db       *gorm.DB
	empRepo  repository.EmployeeRepository
	deptRepo repository.DepartmentRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(db *gorm.DB, empRepo repository.EmployeeRepository, deptRepo repository.DepartmentRepository) EmployeeService {
	return NewEmployeeServiceWithClock(db, empRepo, deptRepo, time.Now)
}

// NewEmployeeServiceWithClock создаёт сервис с подменяемыми часами.
// Часы нужны для проверки "дата найма не в будущем".
func NewEmployeeServiceWithClock(db *gorm.DB, empRepo repository.EmployeeRepository, deptRepo repository.DepartmentRepository, now func() time.Time) EmployeeService {
	return &employeeService{
		db:       db,
		empRepo:  empRepo,
		deptRepo: deptRepo,
		validate: newValidator(),
		now:      now,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error) {
	emp, err := s.buildEmployee(req)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		deptRepo := s.deptRepo.WithTx(tx)
		empRepo := s.empRepo.WithTx(tx)

		// Департамент должен существовать
		if _, err := deptRepo.GetByID(ctx, emp.DepartmentID); err != nil {
			return err
		}

		exists, err := empRepo.ExistsByEmail(ctx, emp.Email, nil)
		if err != nil {
			return err
		}
		if exists {
			return &domain.DuplicateError{Entity: domain.EntityEmployee, Field: "email", Value: emp.Email}
		}

		return empRepo.Create(ctx, emp)
	})
	if err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return s.empRepo.GetByEmail(ctx, email)
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.empRepo.List(ctx)
}

// ListByDepartmentName возвращает пустой список, а не ошибку,
// если департамента нет или в нём никто не работает
func (s *employeeService) ListByDepartmentName(ctx context.Context, name string) ([]domain.Employee, error) {
	return s.empRepo.ListByDepartmentName(ctx, name)
}

func (s *employeeService) ListBySalaryRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Employee, error) {
	if min.GreaterThan(max) {
		return nil, domain.ValidationErrors{{Field: "min", Message: "must not be greater than max"}}
	}
	return s.empRepo.ListBySalaryRange(ctx, min, max)
}

// AverageSalaryByDepartment считает среднюю зарплату с полной точностью.
// Для департамента без сотрудников возвращается ноль, а не ошибка.
func (s *employeeService) AverageSalaryByDepartment(ctx context.Context, departmentID int64) (decimal.Decimal, error) {
	employees, err := s.empRepo.ListByDepartmentID(ctx, departmentID)
	if err != nil {
		return decimal.Zero, err
	}
	if len(employees) == 0 {
		return decimal.Zero, nil
	}

	sum := decimal.Zero
	for _, emp := range employees {
		sum = sum.Add(emp.Salary)
	}
	return sum.Div(decimal.NewFromInt(int64(len(employees)))), nil
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.EmployeeRequest) (*domain.Employee, error) {
	emp, err := s.buildEmployee(req)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		deptRepo := s.deptRepo.WithTx(tx)
		empRepo := s.empRepo.WithTx(tx)

		if _, err := empRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := deptRepo.GetByID(ctx, emp.DepartmentID); err != nil {
			return err
		}

		// Email должен оставаться уникальным и после обновления
		exists, err := empRepo.ExistsByEmail(ctx, emp.Email, &id)
		if err != nil {
			return err
		}
		if exists {
			return &domain.DuplicateError{Entity: domain.EntityEmployee, Field: "email", Value: emp.Email}
		}

		emp.ID = id
		return empRepo.Update(ctx, emp)
	})
	if err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	// Связи с проектами снимаются в той же транзакции,
	// чтобы в таблице связей не осталось висячих строк
	return s.db.Transaction(func(tx *gorm.DB) error {
		empRepo := s.empRepo.WithTx(tx)

		emp, err := empRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := empRepo.ClearProjects(ctx, emp); err != nil {
			return err
		}

		return empRepo.Delete(ctx, id)
	})
}

// buildEmployee проверяет все ограничения полей и собирает доменную
// сущность. Нарушения накапливаются и возвращаются одним списком.
func (s *employeeService) buildEmployee(req *dto.EmployeeRequest) (*domain.Employee, error) {
	verrs := validateStruct(s.validate, req)

	var hireDate time.Time
	if req.HireDate != "" {
		if parsed, err := time.Parse(dateLayout, req.HireDate); err == nil {
			hireDate = domain.DateOnly(parsed)
			if hireDate.After(domain.DateOnly(s.now())) {
				verrs = append(verrs, domain.ValidationError{Field: "hire_date", Message: "must not be in the future"})
			}
		}
	}

	verrs = appendSalaryViolations(verrs, req.Salary)

	if len(verrs) > 0 {
		return nil, verrs
	}

	return &domain.Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		HireDate:     hireDate,
		Salary:       req.Salary,
		DepartmentID: req.DepartmentID,
	}, nil
}

func appendSalaryViolations(verrs domain.ValidationErrors, salary decimal.Decimal) domain.ValidationErrors {
	if !salary.IsPositive() {
		return append(verrs, domain.ValidationError{Field: "salary", Message: "must be greater than 0"})
	}
	if salary.Exponent() < -2 {
		verrs = append(verrs, domain.ValidationError{Field: "salary", Message: "must have at most 2 decimal places"})
	}
	if salary.GreaterThanOrEqual(maxSalary) {
		verrs = append(verrs, domain.ValidationError{Field: "salary", Message: "must have at most 8 integer digits"})
	}
	return verrs
}

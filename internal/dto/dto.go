package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepartmentRequest - запрос на создание или полное обновление департамента
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"omitempty,max=200"`
}

// EmployeeRequest - запрос на создание или полное обновление сотрудника.
// Зарплата проверяется в сервисе: тегами не выразить ограничение
// "больше нуля, не более 8 целых и 2 дробных разрядов".
type EmployeeRequest struct {
	FirstName    string          `json:"first_name" validate:"required,min=2,max=50"`
	LastName     string          `json:"last_name" validate:"required,min=2,max=50"`
	Email        string          `json:"email" validate:"required,email"`
	HireDate     string          `json:"hire_date" validate:"required,datetime=2006-01-02"`
	Salary       decimal.Decimal `json:"salary" validate:"-"`
	DepartmentID int64           `json:"department_id" validate:"required,min=1"`
}

// ProjectRequest - запрос на создание или полное обновление проекта
type ProjectRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// AssignEmployeesRequest - запрос на замену состава сотрудников проекта
type AssignEmployeesRequest struct {
	EmployeeIDs []int64 `json:"employee_ids" validate:"required,min=1,dive,min=1"`
}

// DepartmentResponse - ответ с данными департамента
type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID           int64           `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	HireDate     string          `json:"hire_date"`
	Salary       decimal.Decimal `json:"salary"`
	DepartmentID int64           `json:"department_id"`
	ProjectIDs   []int64         `json:"project_ids,omitempty"`
}

// ProjectResponse - ответ с данными проекта.
// Active вычисляется на момент формирования ответа и не хранится.
type ProjectResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	StartDate   *string            `json:"start_date"`
	EndDate     *string            `json:"end_date"`
	Active      bool               `json:"active"`
	Employees   []EmployeeResponse `json:"employees,omitempty"`
}

// AverageSalaryResponse - ответ со средней зарплатой по департаменту
type AverageSalaryResponse struct {
	DepartmentID  int64           `json:"department_id"`
	AverageSalary decimal.Decimal `json:"average_salary"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

package service_test

import (
	"context"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
)

func TestEmployeeCreateAndFetchByEmail(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))
	ctx := context.Background()

	dept := env.createDepartment(t, "Engineering")

	created, err := env.employees.Create(ctx, &dto.EmployeeRequest{
		FirstName:    "Anna",
		LastName:     "Ivanova",
		Email:        "anna@example.com",
		HireDate:     "2024-06-15",
		Salary:       decimal.RequireFromString("50000.00"),
		DepartmentID: dept.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("Create() must assign an id")
	}

	// Поиск по email и по id возвращают одного и того же сотрудника
	byEmail, err := env.employees.GetByEmail(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	byID, err := env.employees.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byEmail.ID != byID.ID || byEmail.Email != byID.Email {
		t.Errorf("GetByEmail() and GetByID() disagree: %+v vs %+v", byEmail, byID)
	}

	// Зарплата возвращается без потери точности
	if !byEmail.Salary.Equal(decimal.RequireFromString("50000.00")) {
		t.Errorf("salary drifted: got %s, want 50000.00", byEmail.Salary)
	}

	// Департамент сотрудника - "Engineering"
	fromDept, err := env.employees.ListByDepartmentName(ctx, "Engineering")
	if err != nil {
		t.Fatalf("ListByDepartmentName() error = %v", err)
	}
	if len(fromDept) != 1 || fromDept[0].ID != created.ID {
		t.Errorf("ListByDepartmentName() = %+v", fromDept)
	}
}

func TestEmployeeCreateDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))
	ctx := context.Background()

	dept := env.createDepartment(t, "Engineering")
	env.createEmployee(t, "anna@example.com", dept.ID, "50000")

	_, err := env.employees.Create(ctx, &dto.EmployeeRequest{
		FirstName:    "Other",
		LastName:     "Person",
		Email:        "anna@example.com",
		HireDate:     "2023-01-01",
		Salary:       decimal.RequireFromString("40000"),
		DepartmentID: dept.ID,
	})
	if !isDuplicate(err, "email") {
		t.Errorf("Create() with duplicate email: got %v, want DuplicateError on email", err)
	}
}

func TestEmployeeCreateUnknownDepartment(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))

	_, err := env.employees.Create(context.Background(), &dto.EmployeeRequest{
		FirstName:    "Anna",
		LastName:     "Ivanova",
		Email:        "anna@example.com",
		HireDate:     "2023-01-01",
		Salary:       decimal.RequireFromString("40000"),
		DepartmentID: 777,
	})
	if !isNotFound(err, domain.EntityDepartment) {
		t.Errorf("Create() with unknown department: got %v, want NotFoundError", err)
	}
}

func TestEmployeeValidationAggregatesViolations(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))

	_, err := env.employees.Create(context.Background(), &dto.EmployeeRequest{
		FirstName:    "A",
		LastName:     "",
		Email:        "not-an-email",
		HireDate:     "2024-06-16", // завтра
		Salary:       decimal.RequireFromString("-10"),
		DepartmentID: 1,
	})

	fields := validationFields(err)
	if fields == nil {
		t.Fatalf("Create() with invalid fields: got %v, want ValidationErrors", err)
	}
	for _, want := range []string{"first_name", "last_name", "email", "hire_date", "salary"} {
		if !slices.Contains(fields, want) {
			t.Errorf("validation must flag %q, flagged: %v", want, fields)
		}
	}
}

func TestEmployeeSalaryDigitBudget(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))
	ctx := context.Background()
	dept := env.createDepartment(t, "Engineering")

	base := dto.EmployeeRequest{
		FirstName:    "Anna",
		LastName:     "Ivanova",
		Email:        "anna@example.com",
		HireDate:     "2024-01-01",
		DepartmentID: dept.ID,
	}

	tooManyFraction := base
	tooManyFraction.Salary = decimal.RequireFromString("100.123")
	if _, err := env.employees.Create(ctx, &tooManyFraction); !slices.Contains(validationFields(err), "salary") {
		t.Errorf("salary with 3 decimal places must be rejected, got %v", err)
	}

	tooManyInteger := base
	tooManyInteger.Salary = decimal.RequireFromString("100000000") // 9 разрядов
	if _, err := env.employees.Create(ctx, &tooManyInteger); !slices.Contains(validationFields(err), "salary") {
		t.Errorf("salary with 9 integer digits must be rejected, got %v", err)
	}

	atLimit := base
	atLimit.Salary = decimal.RequireFromString("99999999.99")
	if _, err := env.employees.Create(ctx, &atLimit); err != nil {
		t.Errorf("salary at the digit limit must be accepted, got %v", err)
	}
}

func TestEmployeeListBySalaryRange(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))
	ctx := context.Background()
	dept := env.createDepartment(t, "Engineering")

	low := env.createEmployee(t, "low@example.com", dept.ID, "30000")
	mid := env.createEmployee(t, "mid@example.com", dept.ID, "50000")
	high := env.createEmployee(t, "high@example.com", dept.ID, "90000")

	// Границы включительные
	employees, err := env.employees.ListBySalaryRange(ctx,
		decimal.RequireFromString("30000"), decimal.RequireFromString("50000"))
	if err != nil {
		t.Fatalf("ListBySalaryRange() error = %v", err)
	}
	got := make([]int64, 0, len(employees))
	for _, emp := range employees {
		got = append(got, emp.ID)
	}
	if len(got) != 2 || !slices.Contains(got, low.ID) || !slices.Contains(got, mid.ID) {
		t.Errorf("ListBySalaryRange(30000, 50000) = %v, want [%d %d]", got, low.ID, mid.ID)
	}

	// Пустой результат - не ошибка
	employees, err = env.employees.ListBySalaryRange(ctx,
		decimal.RequireFromString("100000"), decimal.RequireFromString("200000"))
	if err != nil {
		t.Fatalf("ListBySalaryRange() error = %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("empty range must give empty result, got %d employees (high=%d)", len(employees), high.ID)
	}

	// min > max - ошибка вызывающего
	if _, err := env.employees.ListBySalaryRange(ctx,
		decimal.RequireFromString("2"), decimal.RequireFromString("1")); validationFields(err) == nil {
		t.Errorf("min > max must be a validation error, got %v", err)
	}
}

func TestEmployeeAverageSalaryByDepartment(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))
	ctx := context.Background()

	dept := env.createDepartment(t, "Engineering")
	empty := env.createDepartment(t, "Marketing")

	env.createEmployee(t, "a@example.com", dept.ID, "45000.00")
	env.createEmployee(t, "b@example.com", dept.ID, "95000.00")
	env.createEmployee(t, "c@example.com", dept.ID, "75000.00")

	avg, err := env.employees.AverageSalaryByDepartment(ctx, dept.ID)
	if err != nil {
		t.Fatalf("AverageSalaryByDepartment() error = %v", err)
	}
	if avg.StringFixed(2) != "71666.67" {
		t.Errorf("average = %s, want 71666.67 after rounding", avg.StringFixed(2))
	}
	// Среднее держит полную точность, а не обрезается до двух знаков
	if avg.Sub(decimal.RequireFromString("71666.6666")).Abs().GreaterThan(decimal.RequireFromString("0.001")) {
		t.Errorf("average lost precision: %s", avg)
	}

	// Департамент без сотрудников - ноль, не ошибка
	avg, err = env.employees.AverageSalaryByDepartment(ctx, empty.ID)
	if err != nil {
		t.Fatalf("AverageSalaryByDepartment() on empty department error = %v", err)
	}
	if !avg.IsZero() {
		t.Errorf("average for empty department = %s, want 0", avg)
	}
}

func TestEmployeeListByDepartmentNameUnknown(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))

	employees, err := env.employees.ListByDepartmentName(context.Background(), "Nowhere")
	if err != nil {
		t.Fatalf("ListByDepartmentName() error = %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("unknown department must give empty list, got %d", len(employees))
	}
}

func TestEmployeeUpdate(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))
	ctx := context.Background()

	dept := env.createDepartment(t, "Engineering")
	other := env.createDepartment(t, "Marketing")
	emp := env.createEmployee(t, "anna@example.com", dept.ID, "50000")

	updated, err := env.employees.Update(ctx, emp.ID, &dto.EmployeeRequest{
		FirstName:    "Anna",
		LastName:     "Sidorova",
		Email:        "anna.s@example.com",
		HireDate:     "2021-03-01",
		Salary:       decimal.RequireFromString("65000.00"),
		DepartmentID: other.ID,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != emp.ID {
		t.Errorf("Update() must preserve id: got %d, want %d", updated.ID, emp.ID)
	}
	if updated.DepartmentID != other.ID {
		t.Errorf("Update() must move employee to department %d, got %d", other.ID, updated.DepartmentID)
	}

	reloaded, err := env.employees.GetByID(ctx, emp.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if reloaded.Email != "anna.s@example.com" || !reloaded.Salary.Equal(decimal.RequireFromString("65000")) {
		t.Errorf("Update() not persisted: %+v", reloaded)
	}
}

func TestEmployeeUpdateRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))
	ctx := context.Background()

	dept := env.createDepartment(t, "Engineering")
	env.createEmployee(t, "first@example.com", dept.ID, "50000")
	second := env.createEmployee(t, "second@example.com", dept.ID, "50000")

	_, err := env.employees.Update(ctx, second.ID, &dto.EmployeeRequest{
		FirstName:    "Ivan",
		LastName:     "Petrov",
		Email:        "first@example.com",
		HireDate:     "2020-01-15",
		Salary:       decimal.RequireFromString("50000"),
		DepartmentID: dept.ID,
	})
	if !isDuplicate(err, "email") {
		t.Errorf("Update() to duplicate email: got %v, want DuplicateError", err)
	}

	// Свой собственный email - не дубликат
	if _, err := env.employees.Update(ctx, second.ID, &dto.EmployeeRequest{
		FirstName:    "Ivan",
		LastName:     "Petrov",
		Email:        "second@example.com",
		HireDate:     "2020-01-15",
		Salary:       decimal.RequireFromString("51000"),
		DepartmentID: dept.ID,
	}); err != nil {
		t.Errorf("Update() keeping own email must succeed, got %v", err)
	}
}

func TestEmployeeDeleteRemovesProjectLinks(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))
	ctx := context.Background()

	dept := env.createDepartment(t, "Engineering")
	emp := env.createEmployee(t, "anna@example.com", dept.ID, "50000")
	project := env.createProject(t, "Apollo", nil, nil)

	if _, err := env.projects.AssignEmployees(ctx, project.ID, []int64{emp.ID}); err != nil {
		t.Fatalf("AssignEmployees() error = %v", err)
	}

	if err := env.employees.Delete(ctx, emp.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := env.employees.GetByID(ctx, emp.ID); !isNotFound(err, domain.EntityEmployee) {
		t.Errorf("employee must be gone, got %v", err)
	}

	employees, err := env.projects.ListEmployees(ctx, project.ID)
	if err != nil {
		t.Fatalf("ListEmployees() error = %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("project must not reference deleted employee, got %d links", len(employees))
	}
}

func TestEmployeeDeleteNotFound(t *testing.T) {
	env := newTestEnv(t, fixedClock("2024-06-15"))

	err := env.employees.Delete(context.Background(), 999)
	if !isNotFound(err, domain.EntityEmployee) {
		t.Errorf("Delete() unknown id: got %v, want NotFoundError", err)
	}
}

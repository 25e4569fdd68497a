package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Department представляет департамент организации
type Department struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:varchar(200)"`

	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// Employee представляет сотрудника
type Employee struct {
	ID           int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName    string          `json:"first_name" gorm:"type:varchar(50);not null"`
	LastName     string          `json:"last_name" gorm:"type:varchar(50);not null"`
	Email        string          `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	HireDate     time.Time       `json:"hire_date" gorm:"type:date;not null"`
	Salary       decimal.Decimal `json:"salary" gorm:"type:numeric(10,2);not null"`
	DepartmentID int64           `json:"department_id" gorm:"not null;index"`

	Department *Department `json:"-" gorm:"foreignKey:DepartmentID"`
	Projects   []Project   `json:"-" gorm:"many2many:employee_projects;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Project представляет проект, над которым работают сотрудники
type Project struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"type:varchar(100);not null"`
	Description string     `json:"description" gorm:"type:varchar(1000)"`
	StartDate   *time.Time `json:"start_date" gorm:"type:date"`
	EndDate     *time.Time `json:"end_date" gorm:"type:date"`

	Employees []Employee `json:"-" gorm:"many2many:employee_projects;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Project) TableName() string {
	return "projects"
}

// ActiveAt отвечает, активен ли проект на указанный момент времени.
// Проект активен, если дата окончания не задана или ещё не прошла
// (дата окончания, равная сегодняшней, считается активной).
// Флаг нигде не хранится и вычисляется на каждом чтении.
func (p *Project) ActiveAt(now time.Time) bool {
	if p.EndDate == nil {
		return true
	}
	return !DateOnly(*p.EndDate).Before(DateOnly(now))
}

// DateOnly отбрасывает время, оставляя только календарную дату в UTC.
// Все датовые поля сравниваются именно так, чтобы граница
// "сегодня" не зависела от времени суток.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

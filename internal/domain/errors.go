package domain

import (
	"fmt"
	"strings"
)

// Имена сущностей, используемые в ошибках
const (
	EntityDepartment = "department"
	EntityEmployee   = "employee"
	EntityProject    = "project"
)

// NotFoundError возвращается, когда сущность с указанным ключом не существует
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// NewNotFoundError создаёт NotFoundError для сущности и ключа произвольного типа
func NewNotFoundError(entity string, key any) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
}

// DuplicateError возвращается при нарушении уникальности поля сущности
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with this %s already exists: %s", e.Entity, e.Field, e.Value)
}

// ValidationError описывает одно нарушенное ограничение поля
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors агрегирует все нарушения, найденные за один проход валидации
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// InvalidDateRangeError возвращается, когда дата окончания проекта
// раньше даты начала
type InvalidDateRangeError struct{}

func (e *InvalidDateRangeError) Error() string {
	return "end date must not be before start date"
}

// StorageError оборачивает ошибку хранилища, не являющуюся доменной.
// Текст внутренней ошибки наружу не отдаётся.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ErrorCode возвращает стабильный символьный код доменной ошибки,
// например DEPARTMENT_NOT_FOUND или DUPLICATE_EMAIL
func (e *NotFoundError) ErrorCode() string {
	return strings.ToUpper(e.Entity) + "_NOT_FOUND"
}

// ErrorCode возвращает стабильный символьный код, например DUPLICATE_NAME
func (e *DuplicateError) ErrorCode() string {
	return "DUPLICATE_" + strings.ToUpper(e.Field)
}

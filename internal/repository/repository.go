package repository

import (
	"github.com/staff-projects-api/internal/domain"
)

// storageErr оборачивает ошибку хранилища в доменную StorageError
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &domain.StorageError{Op: op, Err: err}
}

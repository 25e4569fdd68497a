package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
)

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	resp := dto.ErrorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// handleServiceError переводит доменные ошибки в HTTP-статусы
// и стабильные символьные коды. Внутренние ошибки наружу не
// раскрываются - клиент получает только общий код.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var notFound *domain.NotFoundError
	var duplicate *domain.DuplicateError
	var validation domain.ValidationErrors
	var dateRange *domain.InvalidDateRangeError

	switch {
	case errors.As(err, &notFound):
		respondError(w, logger, http.StatusNotFound, notFound.ErrorCode(), notFound.Error())
	case errors.As(err, &duplicate):
		respondError(w, logger, http.StatusConflict, duplicate.ErrorCode(), duplicate.Error())
	case errors.As(err, &validation):
		respondError(w, logger, http.StatusBadRequest, "VALIDATION_ERROR", validation.Error())
	case errors.As(err, &dateRange):
		respondError(w, logger, http.StatusBadRequest, "INVALID_DATE_RANGE", dateRange.Error())
	default:
		logger.Error("internal error", slog.Any("error", err))
		respondError(w, logger, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
	}
}

// pathID извлекает числовой идентификатор из сегмента пути
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

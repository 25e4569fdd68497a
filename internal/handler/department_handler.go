package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
	"github.com/staff-projects-api/internal/service"
)

type DepartmentHandler struct {
	service service.DepartmentService
	logger  *slog.Logger
}

func NewDepartmentHandler(service service.DepartmentService, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		service: service,
		logger:  logger,
	}
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.DepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	dept, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "department id must be an integer")
		return
	}

	dept, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	dept, err := h.service.GetByName(r.Context(), r.PathValue("name"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	resp := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		resp = append(resp, toDepartmentResponse(&departments[i]))
	}
	respondJSON(w, h.logger, http.StatusOK, resp)
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "department id must be an integer")
		return
	}

	var req dto.DepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	dept, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "department id must be an integer")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDepartmentResponse(dept *domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
	}
}

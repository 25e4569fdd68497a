package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
	"github.com/staff-projects-api/internal/service"
)

type ProjectHandler struct {
	service service.ProjectService
	logger  *slog.Logger
	now     func() time.Time
}

func NewProjectHandler(service service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	project, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, h.toProjectResponse(project))
}

func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "project id must be an integer")
		return
	}

	project, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, h.toProjectResponse(project))
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, h.toProjectResponses(projects))
}

func (h *ProjectHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListActive(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, h.toProjectResponses(projects))
}

func (h *ProjectHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "project id must be an integer")
		return
	}

	employees, err := h.service.ListEmployees(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toEmployeeResponses(employees))
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "project id must be an integer")
		return
	}

	var req dto.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	project, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, h.toProjectResponse(project))
}

func (h *ProjectHandler) AssignEmployees(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "project id must be an integer")
		return
	}

	var req dto.AssignEmployeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}
	if len(req.EmployeeIDs) == 0 {
		respondError(w, h.logger, http.StatusBadRequest, "VALIDATION_ERROR", "employee_ids: must not be empty")
		return
	}

	project, err := h.service.AssignEmployees(r.Context(), id, req.EmployeeIDs)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, h.toProjectResponse(project))
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "project id must be an integer")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) toProjectResponse(project *domain.Project) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Active:      project.ActiveAt(h.now()),
	}

	if project.StartDate != nil {
		start := project.StartDate.Format(dateLayout)
		resp.StartDate = &start
	}
	if project.EndDate != nil {
		end := project.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	if len(project.Employees) > 0 {
		resp.Employees = toEmployeeResponses(project.Employees)
	}

	return resp
}

func (h *ProjectHandler) toProjectResponses(projects []domain.Project) []dto.ProjectResponse {
	resp := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, h.toProjectResponse(&projects[i]))
	}
	return resp
}

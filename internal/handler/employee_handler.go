package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/staff-projects-api/internal/domain"
	"github.com/staff-projects-api/internal/dto"
	"github.com/staff-projects-api/internal/service"
)

const dateLayout = "2006-01-02"

type EmployeeHandler struct {
	service service.EmployeeService
	logger  *slog.Logger
}

func NewEmployeeHandler(service service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	emp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "employee id must be an integer")
		return
	}

	emp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	emp, err := h.service.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toEmployeeResponses(employees))
}

func (h *EmployeeHandler) ListByDepartment(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListByDepartmentName(r.Context(), r.PathValue("name"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toEmployeeResponses(employees))
}

func (h *EmployeeHandler) ListBySalaryRange(w http.ResponseWriter, r *http.Request) {
	minParam := r.URL.Query().Get("min")
	maxParam := r.URL.Query().Get("max")
	if minParam == "" || maxParam == "" {
		respondError(w, h.logger, http.StatusBadRequest, "MISSING_PARAMETER", "query parameters min and max are required")
		return
	}

	min, err := decimal.NewFromString(minParam)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_PARAMETER", "min must be a decimal number")
		return
	}
	max, err := decimal.NewFromString(maxParam)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_PARAMETER", "max must be a decimal number")
		return
	}

	employees, err := h.service.ListBySalaryRange(r.Context(), min, max)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toEmployeeResponses(employees))
}

func (h *EmployeeHandler) AverageSalaryByDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, err := pathID(r, "departmentId")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "department id must be an integer")
		return
	}

	average, err := h.service.AverageSalaryByDepartment(r.Context(), departmentID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, dto.AverageSalaryResponse{
		DepartmentID:  departmentID,
		AverageSalary: average,
	})
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "employee id must be an integer")
		return
	}

	var req dto.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		return
	}

	emp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "INVALID_ID", "employee id must be an integer")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:           emp.ID,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		Email:        emp.Email,
		HireDate:     emp.HireDate.Format(dateLayout),
		Salary:       emp.Salary,
		DepartmentID: emp.DepartmentID,
	}

	if len(emp.Projects) > 0 {
		resp.ProjectIDs = make([]int64, len(emp.Projects))
		for i, p := range emp.Projects {
			resp.ProjectIDs[i] = p.ID
		}
	}

	return resp
}

func toEmployeeResponses(employees []domain.Employee) []dto.EmployeeResponse {
	resp := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, toEmployeeResponse(&employees[i]))
	}
	return resp
}

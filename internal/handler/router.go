package handler

import (
	"log/slog"
	"net/http"

	"github.com/staff-projects-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	deptHandler *DepartmentHandler
	empHandler  *EmployeeHandler
	projHandler *ProjectHandler
}

// NewRouter создаёт новый роутер
func NewRouter(deptHandler *DepartmentHandler, empHandler *EmployeeHandler, projHandler *ProjectHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		logger:      logger,
		deptHandler: deptHandler,
		empHandler:  empHandler,
		projHandler: projHandler,
	}
}

// Setup регистрирует все маршруты и оборачивает их в middleware
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("GET /api/departments", r.deptHandler.List)
	r.mux.HandleFunc("POST /api/departments", r.deptHandler.Create)
	r.mux.HandleFunc("GET /api/departments/{id}", r.deptHandler.GetByID)
	r.mux.HandleFunc("PUT /api/departments/{id}", r.deptHandler.Update)
	r.mux.HandleFunc("DELETE /api/departments/{id}", r.deptHandler.Delete)
	r.mux.HandleFunc("GET /api/departments/name/{name}", r.deptHandler.GetByName)

	r.mux.HandleFunc("GET /api/employees", r.empHandler.List)
	r.mux.HandleFunc("POST /api/employees", r.empHandler.Create)
	r.mux.HandleFunc("GET /api/employees/{id}", r.empHandler.GetByID)
	r.mux.HandleFunc("PUT /api/employees/{id}", r.empHandler.Update)
	r.mux.HandleFunc("DELETE /api/employees/{id}", r.empHandler.Delete)
	r.mux.HandleFunc("GET /api/employees/email/{email}", r.empHandler.GetByEmail)
	r.mux.HandleFunc("GET /api/employees/department/{name}", r.empHandler.ListByDepartment)
	r.mux.HandleFunc("GET /api/employees/salary", r.empHandler.ListBySalaryRange)
	r.mux.HandleFunc("GET /api/employees/average-salary/{departmentId}", r.empHandler.AverageSalaryByDepartment)

	r.mux.HandleFunc("GET /api/projects", r.projHandler.List)
	r.mux.HandleFunc("POST /api/projects", r.projHandler.Create)
	r.mux.HandleFunc("GET /api/projects/active", r.projHandler.ListActive)
	r.mux.HandleFunc("GET /api/projects/{id}", r.projHandler.GetByID)
	r.mux.HandleFunc("PUT /api/projects/{id}", r.projHandler.Update)
	r.mux.HandleFunc("DELETE /api/projects/{id}", r.projHandler.Delete)
	r.mux.HandleFunc("GET /api/projects/{id}/employees", r.projHandler.ListEmployees)
	r.mux.HandleFunc("PUT /api/projects/{id}/employees", r.projHandler.AssignEmployees)
	// Альтернативный маршрут назначения, сохранён для совместимости
	r.mux.HandleFunc("POST /api/projects/{id}/assign-employees", r.projHandler.AssignEmployees)

	// Health check
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

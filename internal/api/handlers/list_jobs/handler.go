package list_jobs

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs"
	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs/models"
)

const (
	msgMissingCompanyID = "отсутствует ID компании"
	msgInvalidStatus    = "некорректный статус заказа"
)

type Handler struct {
	service JobService
	logger  Logger
}

func NewHandler(service JobService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/jobs
// Query params: status (опционально, по умолчанию open; all - без фильтра)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("GET /jobs - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	status := r.URL.Query().Get("status")

	result, err := h.service.List(r.Context(), &models.ListJobsRequest{
		CompanyID: companyID,
		Status:    status,
	})
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrInvalidStatus):
			h.logger.Warn("GET /jobs - Invalid status: %q", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /jobs - Failed to list jobs: company_id=%s, error=%v", companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /jobs - Jobs retrieved successfully: company_id=%s, count=%d", companyID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

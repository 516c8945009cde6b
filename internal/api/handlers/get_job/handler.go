package get_job

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs"
)

const (
	msgInvalidJobID     = "некорректный ID заказа"
	msgMissingCompanyID = "отсутствует ID компании"
	msgNotFound         = "заказ не найден"
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

// Handle GET /api/v1/jobs/{jobId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	jobID, err := handlers.PathUUID(r, "jobId")
	if err != nil {
		h.logger.Warn("GET /jobs/{id} - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("GET /jobs/{id} - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	job, err := h.service.GetByID(r.Context(), companyID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("GET /jobs/{id} - Job not found: job_id=%s", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /jobs/{id} - Failed to get job: job_id=%s, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /jobs/{id} - Job retrieved successfully: job_id=%s", jobID)
	handlers.RespondJSON(w, http.StatusOK, job)
}

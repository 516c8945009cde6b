package cancel_job

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs"
	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs/models"
)

const (
	msgInvalidJobID       = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCompanyID   = "отсутствует ID компании"
	msgNotFound           = "заказ не найден"
	msgCannotCancel       = "заказ не может быть отменен"
	msgInvalidInput       = "некорректная причина отмены"
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

// Handle PATCH /api/v1/jobs/{jobId}/cancel
// Тело запроса необязательно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	jobID, err := handlers.PathUUID(r, "jobId")
	if err != nil {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req models.CancelJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	job, err := h.service.Cancel(r.Context(), companyID, jobID, &req)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Job not found: job_id=%s", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, jobs.ErrInvalidTransition):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Cannot cancel: job_id=%s, error=%v", jobID, err)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, jobs.ErrInvalidInput):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Invalid input: job_id=%s, error=%v", jobID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /jobs/{id}/cancel - Failed to cancel job: job_id=%s, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /jobs/{id}/cancel - Job cancelled successfully: job_id=%s, workers_kept=%d",
		jobID, job.AcceptedWorkers)
	handlers.RespondJSON(w, http.StatusOK, job)
}

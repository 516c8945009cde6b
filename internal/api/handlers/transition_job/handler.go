package transition_job

import (
	"errors"
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
	msgInvalidTransition  = "переход статуса заказа недопустим"
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

// Handle PATCH /api/v1/jobs/{jobId}/status
// Body: {"action": "publish" | "start" | "complete" | "mark_paid"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	jobID, err := handlers.PathUUID(r, "jobId")
	if err != nil {
		h.logger.Warn("PATCH /jobs/{id}/status - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /jobs/{id}/status - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req models.TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /jobs/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	job, err := h.service.Transition(r.Context(), companyID, jobID, &req)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("PATCH /jobs/{id}/status - Job not found: job_id=%s", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, jobs.ErrInvalidTransition):
			h.logger.Warn("PATCH /jobs/{id}/status - Invalid transition: job_id=%s, action=%s, error=%v",
				jobID, req.Action, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /jobs/{id}/status - Failed to change status: job_id=%s, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /jobs/{id}/status - Status changed: job_id=%s, status=%s", jobID, job.Status)
	handlers.RespondJSON(w, http.StatusOK, job)
}

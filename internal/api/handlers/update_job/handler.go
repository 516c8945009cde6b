package update_job

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
	msgCannotEdit         = "заказ можно изменить только в статусе draft или open"
	msgInvalidInput       = "некорректные данные заказа"
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

// Handle PUT /api/v1/jobs/{jobId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	jobID, err := handlers.PathUUID(r, "jobId")
	if err != nil {
		h.logger.Warn("PUT /jobs/{id} - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	companyID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("PUT /jobs/{id} - Missing company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req models.UpdateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /jobs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	job, err := h.service.UpdateDetails(r.Context(), companyID, jobID, &req)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("PUT /jobs/{id} - Job not found: job_id=%s", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, jobs.ErrCannotEdit):
			h.logger.Warn("PUT /jobs/{id} - Cannot edit: job_id=%s", jobID)
			handlers.RespondConflict(w, msgCannotEdit)

		case errors.Is(err, jobs.ErrInvalidInput):
			h.logger.Warn("PUT /jobs/{id} - Invalid input: job_id=%s, error=%v", jobID, err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		default:
			h.logger.Error("PUT /jobs/{id} - Failed to update job: job_id=%s, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /jobs/{id} - Job updated successfully: job_id=%s", jobID)
	handlers.RespondJSON(w, http.StatusOK, job)
}

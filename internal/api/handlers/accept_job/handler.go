package accept_job

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	acceptJob "github.com/m04kA/SMC-SchedulingService/internal/usecase/accept_job"
)

const (
	msgInvalidJobID    = "некорректный ID заказа"
	msgMissingIdentity = "отсутствует ID компании или пользователя"
	msgNotFound        = "заказ не найден"
	msgInvalidState    = "заказ не принимает исполнителей"
	msgAlreadyAccepted = "вы уже приняли этот заказ"
	msgInvalidInput    = "некорректные данные запроса"
)

type Handler struct {
	useCase AcceptJobUseCase
	logger  Logger
}

func NewHandler(useCase AcceptJobUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/jobs/{jobId}/accept
// Исполнитель берется из X-User-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	jobID, err := handlers.PathUUID(r, "jobId")
	if err != nil {
		h.logger.Warn("POST /jobs/{id}/accept - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	companyID, okCompany := middleware.GetCompanyID(r.Context())
	workerID, okUser := middleware.GetUserID(r.Context())
	if !okCompany || !okUser {
		h.logger.Warn("POST /jobs/{id}/accept - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptJob.Request{
		CompanyID: companyID,
		JobID:     jobID,
		WorkerID:  workerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptJob.ErrJobNotFound):
			h.logger.Warn("POST /jobs/{id}/accept - Job not found: job_id=%s", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptJob.ErrDuplicateAssignment):
			h.logger.Warn("POST /jobs/{id}/accept - Duplicate assignment: job_id=%s, worker_id=%s", jobID, workerID)
			handlers.RespondConflict(w, msgAlreadyAccepted)

		case errors.Is(err, acceptJob.ErrInvalidState):
			h.logger.Warn("POST /jobs/{id}/accept - Job not accepting workers: job_id=%s, error=%v", jobID, err)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, acceptJob.ErrInvalidInput):
			h.logger.Warn("POST /jobs/{id}/accept - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /jobs/{id}/accept - Failed to accept job: job_id=%s, worker_id=%s, error=%v",
				jobID, workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /jobs/{id}/accept - Job accepted: job_id=%s, worker_id=%s, %d/%d workers",
		jobID, workerID, result.Result.AcceptedWorkers, result.Result.RequiredWorkers)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

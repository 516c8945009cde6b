package accept_job

import (
	"time"

	"github.com/google/uuid"

	acceptJob "github.com/m04kA/SMC-SchedulingService/internal/usecase/accept_job"
)

// AcceptJobResponse HTTP response model
type AcceptJobResponse struct {
	JobID            uuid.UUID `json:"jobId"`
	WorkerID         uuid.UUID `json:"workerId"`
	Status           string    `json:"status"`
	AcceptedWorkers  int       `json:"acceptedWorkers"`
	RequiredWorkers  int       `json:"requiredWorkers"`
	RemainingWorkers int       `json:"remainingWorkers"`
	AssignedAt       time.Time `json:"assignedAt"`
	Message          string    `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acceptJob.Response) *AcceptJobResponse {
	remaining := resp.Result.RequiredWorkers - resp.Result.AcceptedWorkers
	if remaining < 0 {
		remaining = 0
	}

	return &AcceptJobResponse{
		JobID:            resp.Result.JobID,
		WorkerID:         resp.Result.WorkerID,
		Status:           string(resp.Result.Status),
		AcceptedWorkers:  resp.Result.AcceptedWorkers,
		RequiredWorkers:  resp.Result.RequiredWorkers,
		RemainingWorkers: remaining,
		AssignedAt:       resp.Result.AssignedAt,
		Message:          resp.Message,
	}
}

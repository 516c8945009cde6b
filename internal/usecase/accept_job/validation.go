package accept_job

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	msgFullyStaffed = "Job fully staffed and scheduled!"
	msgMoreNeeded   = "Successfully accepted job. %d more worker(s) needed."
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID == uuid.Nil {
		return fmt.Errorf("%w: companyID is required", ErrInvalidInput)
	}
	if req.JobID == uuid.Nil {
		return fmt.Errorf("%w: jobID is required", ErrInvalidInput)
	}
	if req.WorkerID == uuid.Nil {
		return fmt.Errorf("%w: workerID is required", ErrInvalidInput)
	}
	return nil
}

// buildMessage формирует сообщение для исполнителя
func buildMessage(result domain.AcceptResult) string {
	if result.Status == domain.JobStatusScheduled {
		return msgFullyStaffed
	}
	remaining := result.RequiredWorkers - result.AcceptedWorkers
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf(msgMoreNeeded, remaining)
}

// outcomeOf возвращает исход для метрик по результату Execute
func outcomeOf(result *domain.AcceptResult, err error) string {
	switch {
	case err == nil && result.Status == domain.JobStatusScheduled:
		return outcomeScheduled
	case err == nil:
		return outcomeAccepted
	case errors.Is(err, ErrDuplicateAssignment):
		return outcomeDuplicate
	case errors.Is(err, ErrInvalidState):
		return outcomeInvalidState
	case errors.Is(err, ErrJobNotFound):
		return outcomeNotFound
	default:
		return outcomeError
	}
}

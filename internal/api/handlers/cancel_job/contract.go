package cancel_job

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs/models"
)

type JobService interface {
	Cancel(ctx context.Context, companyID, id uuid.UUID, req *models.CancelJobRequest) (*models.JobResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

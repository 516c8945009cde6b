package update_job

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs/models"
)

type JobService interface {
	UpdateDetails(ctx context.Context, companyID, id uuid.UUID, req *models.UpdateJobRequest) (*models.JobResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

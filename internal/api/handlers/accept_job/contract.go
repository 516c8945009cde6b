package accept_job

import (
	"context"

	acceptJob "github.com/m04kA/SMC-SchedulingService/internal/usecase/accept_job"
)

type AcceptJobUseCase interface {
	Execute(ctx context.Context, req *acceptJob.Request) (*acceptJob.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

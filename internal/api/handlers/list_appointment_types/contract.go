package list_appointment_types

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types/models"
)

type AppointmentTypeService interface {
	List(ctx context.Context, req *models.ListAppointmentTypesRequest) (*models.AppointmentTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

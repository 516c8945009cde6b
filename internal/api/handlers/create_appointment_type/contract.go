package create_appointment_type

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types/models"
)

type AppointmentTypeService interface {
	Create(ctx context.Context, companyID uuid.UUID, req *models.CreateAppointmentTypeRequest) (*models.AppointmentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

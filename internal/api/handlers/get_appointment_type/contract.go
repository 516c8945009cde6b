package get_appointment_type

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointment_types/models"
)

type AppointmentTypeService interface {
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.AppointmentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

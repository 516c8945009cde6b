package appointment_types

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentTypeRepository интерфейс репозитория типов услуг
type AppointmentTypeRepository interface {
	Create(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.AppointmentType, error)
	List(ctx context.Context, filter domain.AppointmentTypesFilter) ([]*domain.AppointmentType, error)
	Update(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error)
	ToggleActive(ctx context.Context, companyID, id uuid.UUID) (*domain.AppointmentType, error)
	SetCalendars(ctx context.Context, companyID, id uuid.UUID, calendarIDs []uuid.UUID) (*domain.AppointmentType, error)
	SetForms(ctx context.Context, companyID, id uuid.UUID, formIDs []uuid.UUID) (*domain.AppointmentType, error)
}

// CalendarRepository интерфейс репозитория календарей (проверка назначаемых календарей)
type CalendarRepository interface {
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Calendar, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

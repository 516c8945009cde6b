package calendars

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Calendar, error)
	List(ctx context.Context, companyID uuid.UUID, activeOnly bool) ([]*domain.Calendar, error)
	Update(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error)
	ToggleActive(ctx context.Context, companyID, id uuid.UUID) (*domain.Calendar, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_job

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Calendar, error)
}

// AppointmentTypeRepository интерфейс репозитория типов услуг
type AppointmentTypeRepository interface {
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.AppointmentType, error)
}

// JobRepository интерфейс репозитория заказов
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
}

// FormServiceClient интерфейс клиента для FormService
type FormServiceClient interface {
	GetForms(ctx context.Context, companyID uuid.UUID, formIDs []uuid.UUID) ([]*domain.Form, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveJobCreated(status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// JobRepository интерфейс репозитория заказов
type JobRepository interface {
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.Job, error)
	GetByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, filter domain.JobsFilter) ([]*domain.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error
	UpdateDetails(ctx context.Context, job *domain.Job) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

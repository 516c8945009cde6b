package create_job

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание заказа.
// Незаданные длительность, цены и политика берутся из типа услуги.
type Request struct {
	CompanyID         uuid.UUID
	CalendarID        uuid.UUID
	AppointmentTypeID uuid.UUID
	Customer          domain.Customer

	Title             *string
	Description       *string
	ScheduledDate     time.Time        // Дата заказа (без времени)
	ScheduledTime     types.TimeString // Время начала слота, например "10:00"
	EstimatedDuration *int
	BasePrice         *float64
	MinimumPrice      *float64
	LocationAddress   *string
	RequiredWorkers   *int // По умолчанию 1
	AssignmentPolicy  *string
	FormResponses     domain.FormResponses

	Draft bool // true - заказ создается в статусе draft
}

// Response модель ответа с созданным заказом
type Response struct {
	Job *domain.Job
}

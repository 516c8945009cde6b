package accept_job

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на принятие заказа исполнителем
type Request struct {
	CompanyID uuid.UUID
	JobID     uuid.UUID
	WorkerID  uuid.UUID // ID исполнителя из X-User-ID
}

// Response модель ответа после принятия заказа
type Response struct {
	Result  domain.AcceptResult
	Message string
}

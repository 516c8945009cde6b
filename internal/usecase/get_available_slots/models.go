package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение слотов календаря
type Request struct {
	CompanyID  uuid.UUID // ID компании
	CalendarID uuid.UUID // ID календаря
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	CalendarID      uuid.UUID // ID календаря
	CalendarActive  bool      // Выключенный календарь не принимает новые заказы
	DurationMinutes int       // Длительность слота
	Slots           []Slot    // Слоты в порядке возрастания
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	ScheduledJobs   int              // Количество неотмененных заказов на это время
	IsPast          bool             // Слот уже начался
}

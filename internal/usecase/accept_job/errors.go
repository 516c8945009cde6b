package accept_job

import "errors"

var (
	// ErrJobNotFound возвращается, когда заказ не найден у компании
	ErrJobNotFound = errors.New("accept_job: job not found")

	// ErrInvalidState возвращается, когда заказ не набирает исполнителей (статус не open/scheduling)
	ErrInvalidState = errors.New("accept_job: job is not accepting workers")

	// ErrDuplicateAssignment возвращается, когда исполнитель уже принял заказ
	ErrDuplicateAssignment = errors.New("accept_job: worker already accepted this job")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_job: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_job: internal error")
)

// Исходы принятия заказа для метрик
const (
	outcomeAccepted     = "accepted"
	outcomeScheduled    = "scheduled"
	outcomeDuplicate    = "duplicate"
	outcomeInvalidState = "invalid_state"
	outcomeNotFound     = "not_found"
	outcomeError        = "error"
)

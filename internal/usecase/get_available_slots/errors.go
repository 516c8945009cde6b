package get_available_slots

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден у компании
	ErrCalendarNotFound = errors.New("get_available_slots: calendar not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)

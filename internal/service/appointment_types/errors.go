package appointment_types

import "errors"

var (
	// ErrAppointmentTypeNotFound возвращается, когда тип услуги не найден
	ErrAppointmentTypeNotFound = errors.New("appointment type not found")

	// ErrCalendarNotFound возвращается, когда назначаемый календарь не найден у компании
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

package create_job

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден у компании
	ErrCalendarNotFound = errors.New("create_job: calendar not found")

	// ErrCalendarInactive возвращается, когда календарь выключен
	ErrCalendarInactive = errors.New("create_job: calendar is inactive")

	// ErrAppointmentTypeNotFound возвращается, когда тип услуги не найден у компании
	ErrAppointmentTypeNotFound = errors.New("create_job: appointment type not found")

	// ErrAppointmentTypeInactive возвращается, когда тип услуги выключен
	ErrAppointmentTypeInactive = errors.New("create_job: appointment type is inactive")

	// ErrAppointmentTypeNotOffered возвращается, когда тип услуги не назначен на календарь
	ErrAppointmentTypeNotOffered = errors.New("create_job: appointment type is not offered on this calendar")

	// ErrDateInPast возвращается, когда дата заказа в прошлом
	ErrDateInPast = errors.New("create_job: scheduled date is in the past")

	// ErrSlotUnavailable возвращается, когда время вне окна доступности или не кратно слоту
	ErrSlotUnavailable = errors.New("create_job: time slot is not available")

	// ErrRequiredFormFieldMissing возвращается, когда не заполнено обязательное поле формы
	ErrRequiredFormFieldMissing = errors.New("create_job: required form field is missing")

	// ErrFormServiceUnavailable возвращается, когда не удалось получить формы из FormService
	ErrFormServiceUnavailable = errors.New("create_job: form service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_job: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_job: internal error")
)

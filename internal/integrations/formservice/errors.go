package formservice

import "errors"

var (
	// ErrFormNotFound возвращается, когда форма не найдена у компании
	ErrFormNotFound = errors.New("formservice client: form not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("formservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("formservice client: invalid response")
)

package jobs

import "errors"

var (
	// ErrJobNotFound возвращается, когда заказ не найден
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidTransition возвращается, когда действие недопустимо в текущем статусе
	ErrInvalidTransition = errors.New("job status transition not allowed")

	// ErrCannotEdit возвращается при попытке изменить заказ после начала подбора исполнителей
	ErrCannotEdit = errors.New("job can only be edited in draft or open status")

	// ErrInvalidStatus возвращается при неизвестном статусе в фильтре
	ErrInvalidStatus = errors.New("invalid job status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

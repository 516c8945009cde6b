package job

import "errors"

var (
	// ErrJobNotFound возвращается, когда заказ не найден
	ErrJobNotFound = errors.New("job.repository: job not found")

	// ErrDuplicateAssignment возвращается, когда исполнитель уже назначен на заказ
	ErrDuplicateAssignment = errors.New("job.repository: worker already assigned to job")

	// ErrReferenceNotFound возвращается, когда календарь или тип услуги не существует
	ErrReferenceNotFound = errors.New("job.repository: referenced entity not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("job.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("job.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("job.repository: failed to scan row")
)

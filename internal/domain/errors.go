package domain

import "errors"

var (
	// ErrInvalidSlotDuration длительность слота не из допустимого набора
	ErrInvalidSlotDuration = errors.New("slot duration must be one of 15, 30, 45, 60")

	// ErrInvalidWindow окно доступности некорректно (start >= end или неверный формат)
	ErrInvalidWindow = errors.New("availability window start must be before end")

	// ErrWindowNotAligned длина окна не кратна длительности слота
	ErrWindowNotAligned = errors.New("availability window length must be a multiple of the slot duration")

	// ErrEmptyName пустое название
	ErrEmptyName = errors.New("name is required")

	// ErrNonPositiveDuration длительность должна быть больше нуля
	ErrNonPositiveDuration = errors.New("duration must be positive")

	// ErrNegativePrice минимальная цена отрицательная
	ErrNegativePrice = errors.New("minimum price must not be negative")

	// ErrPriceBelowMinimum базовая цена меньше минимальной
	ErrPriceBelowMinimum = errors.New("base price must not be below minimum price")

	// ErrInvalidAssignmentPolicy неизвестная политика назначения
	ErrInvalidAssignmentPolicy = errors.New("unknown assignment policy")

	// ErrInvalidColor цвет не в формате #RRGGBB
	ErrInvalidColor = errors.New("color must be in #RRGGBB format")
)

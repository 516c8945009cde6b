package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Calendar defaults
const (
	DefaultCalendarColor   = "#3B82F6"
	DefaultSlotDuration    = 30
	DefaultRequiredWorkers = 1
)

// AllowedSlotDurations допустимые длительности слота календаря (минуты)
var AllowedSlotDurations = []int{15, 30, 45, 60}

// Business validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 2000
	MaxRequiredWorkers   = 100
)

// JobStatusFilterAll значение фильтра, отключающее фильтрацию по статусу
const JobStatusFilterAll = "all"

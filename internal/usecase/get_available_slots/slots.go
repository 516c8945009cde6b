package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// buildSlots собирает слоты календаря на дату и отмечает занятость и прошедшие слоты.
// Последовательность слотов берется из календаря: от начала окна с шагом
// длительности слота, конец окна не включается.
func buildSlots(calendar *domain.Calendar, date, now time.Time, jobs []*domain.Job) []Slot {
	scheduled := countScheduledJobs(jobs)

	result := make([]Slot, 0)
	for start := range calendar.Slots(date) {
		result = append(result, Slot{
			StartTime:       start,
			DurationMinutes: calendar.TimeSlotDuration,
			ScheduledJobs:   scheduled[start],
			IsPast:          isSlotInPast(date, start, now),
		})
	}

	return result
}

// countScheduledJobs подсчитывает неотмененные заказы по времени начала
func countScheduledJobs(jobs []*domain.Job) map[types.TimeString]int {
	counts := make(map[types.TimeString]int, len(jobs))
	for _, job := range jobs {
		// Отмененные заказы слот не занимают
		if job.Status == domain.JobStatusCancelled {
			continue
		}
		counts[job.ScheduledTime]++
	}
	return counts
}

// isSlotInPast проверяет, что слот на дату уже начался
func isSlotInPast(date time.Time, start types.TimeString, now time.Time) bool {
	if isDateInPast(date, now) {
		return true
	}
	if !domain.SameDay(date, now) {
		return false
	}
	return !start.IsAfter(types.NewTimeString(now))
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

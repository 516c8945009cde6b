package create_job

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const draftTitleSuffix = " (Draft)"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID == uuid.Nil {
		return fmt.Errorf("%w: companyID is required", ErrInvalidInput)
	}

	if req.CalendarID == uuid.Nil {
		return fmt.Errorf("%w: calendarId is required", ErrInvalidInput)
	}

	if req.AppointmentTypeID == uuid.Nil {
		return fmt.Errorf("%w: appointmentTypeId is required", ErrInvalidInput)
	}

	if req.Customer.ID == uuid.Nil {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Customer.FirstName) == "" {
		return fmt.Errorf("%w: customer first name is required", ErrInvalidInput)
	}

	if req.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduledDate is required", ErrInvalidInput)
	}

	if req.ScheduledTime.IsZero() {
		return fmt.Errorf("%w: scheduledTime is required", ErrInvalidInput)
	}

	if err := req.ScheduledTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid scheduledTime format: %v", ErrInvalidInput, err)
	}

	if req.RequiredWorkers != nil && (*req.RequiredWorkers < 1 || *req.RequiredWorkers > domain.MaxRequiredWorkers) {
		return fmt.Errorf("%w: requiredWorkers must be between 1 and %d", ErrInvalidInput, domain.MaxRequiredWorkers)
	}

	if req.Title != nil && len(strings.TrimSpace(*req.Title)) > domain.MaxNameLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	return nil
}

// validateAppointmentType проверяет, что тип услуги можно использовать на календаре
func validateAppointmentType(at *domain.AppointmentType, calendarID uuid.UUID) error {
	if !at.IsActive {
		return ErrAppointmentTypeInactive
	}
	if !at.IsOfferedOn(calendarID) {
		return ErrAppointmentTypeNotOffered
	}
	return nil
}

// validateFormResponses проверяет обязательные поля форм с признаком form_required
func validateFormResponses(forms []*domain.Form, responses domain.FormResponses) error {
	for _, form := range forms {
		missing := form.MissingRequiredFields(responses[form.ID])
		if len(missing) == 0 {
			continue
		}

		labels := make([]string, 0, len(missing))
		for _, field := range missing {
			labels = append(labels, field.Label)
		}
		return fmt.Errorf("%w: form %q: %s", ErrRequiredFormFieldMissing, form.Name, strings.Join(labels, ", "))
	}
	return nil
}

// buildTitle возвращает заголовок заказа: переданный или "Имя Фамилия - Тип услуги".
// К сгенерированному заголовку черновика добавляется " (Draft)".
func buildTitle(title *string, customer domain.Customer, at *domain.AppointmentType, draft bool) string {
	if title != nil {
		if trimmed := strings.TrimSpace(*title); trimmed != "" {
			return trimmed
		}
	}

	generated := at.Name
	if name := customer.FullName(); name != "" {
		generated = fmt.Sprintf("%s - %s", name, at.Name)
	}
	if draft {
		generated += draftTitleSuffix
	}
	return generated
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

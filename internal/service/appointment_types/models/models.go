package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// CreateAppointmentTypeRequest запрос на создание типа услуги.
// Назначения календарей и форм задаются отдельными запросами.
type CreateAppointmentTypeRequest struct {
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	BaseDuration     int     `json:"baseDuration"`     // минуты
	MinimumPrice     float64 `json:"minimumPrice"`
	BasePrice        float64 `json:"basePrice"`
	AssignmentPolicy *string `json:"assignmentType,omitempty"` // self_assign | auto_assign | manual_assign
}

// UpdateAppointmentTypeRequest запрос на обновление типа услуги (только переданные поля)
type UpdateAppointmentTypeRequest struct {
	Name             *string  `json:"name,omitempty"`
	Description      *string  `json:"description,omitempty"`
	BaseDuration     *int     `json:"baseDuration,omitempty"`
	MinimumPrice     *float64 `json:"minimumPrice,omitempty"`
	BasePrice        *float64 `json:"basePrice,omitempty"`
	AssignmentPolicy *string  `json:"assignmentType,omitempty"`
}

// AssignCalendarsRequest полный набор календарей типа услуги
type AssignCalendarsRequest struct {
	CalendarIDs []uuid.UUID `json:"calendarIds"`
}

// AssignFormsRequest полный набор форм типа услуги
type AssignFormsRequest struct {
	FormIDs []uuid.UUID `json:"formIds"`
}

// ListAppointmentTypesRequest фильтр списка типов услуг
type ListAppointmentTypesRequest struct {
	CompanyID  uuid.UUID
	ActiveOnly bool
	CalendarID *uuid.UUID
}

// Response модели

// AppointmentTypeResponse ответ с данными типа услуги
type AppointmentTypeResponse struct {
	ID               uuid.UUID   `json:"id"`
	CompanyID        uuid.UUID   `json:"companyId"`
	Name             string      `json:"name"`
	Description      *string     `json:"description,omitempty"`
	BaseDuration     int         `json:"baseDuration"`
	MinimumPrice     float64     `json:"minimumPrice"`
	BasePrice        float64     `json:"basePrice"`
	AssignmentPolicy string      `json:"assignmentType"`
	IsActive         bool        `json:"isActive"`
	CalendarIDs      []uuid.UUID `json:"calendarIds"`
	FormIDs          []uuid.UUID `json:"formIds"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// AppointmentTypeListResponse ответ со списком типов услуг
type AppointmentTypeListResponse struct {
	AppointmentTypes []AppointmentTypeResponse `json:"appointmentTypes"`
	Total            int                       `json:"total"`
}

// FromDomainAppointmentType конвертирует domain.AppointmentType в ответ
func FromDomainAppointmentType(at *domain.AppointmentType) *AppointmentTypeResponse {
	calendarIDs := at.CalendarIDs
	if calendarIDs == nil {
		calendarIDs = []uuid.UUID{}
	}
	formIDs := at.FormIDs
	if formIDs == nil {
		formIDs = []uuid.UUID{}
	}

	return &AppointmentTypeResponse{
		ID:               at.ID,
		CompanyID:        at.CompanyID,
		Name:             at.Name,
		Description:      at.Description,
		BaseDuration:     at.BaseDuration,
		MinimumPrice:     at.MinimumPrice,
		BasePrice:        at.BasePrice,
		AssignmentPolicy: string(at.AssignmentPolicy),
		IsActive:         at.IsActive,
		CalendarIDs:      calendarIDs,
		FormIDs:          formIDs,
		CreatedAt:        at.CreatedAt,
		UpdatedAt:        at.UpdatedAt,
	}
}

// FromDomainAppointmentTypeList конвертирует список типов услуг
func FromDomainAppointmentTypeList(types []*domain.AppointmentType) *AppointmentTypeListResponse {
	out := make([]AppointmentTypeResponse, 0, len(types))
	for _, at := range types {
		out = append(out, *FromDomainAppointmentType(at))
	}
	return &AppointmentTypeListResponse{
		AppointmentTypes: out,
		Total:            len(out),
	}
}

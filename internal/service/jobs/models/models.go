package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// ListJobsRequest запрос списка заказов компании.
// Пустой статус означает "open", "all" отключает фильтр.
type ListJobsRequest struct {
	CompanyID uuid.UUID
	Status    string
}

// TransitionRequest запрос на смену статуса (publish, start, complete, mark_paid)
type TransitionRequest struct {
	Action string `json:"action"`
}

// CancelJobRequest запрос на отмену заказа
type CancelJobRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// UpdateJobRequest запрос на изменение деталей заказа (только переданные поля)
type UpdateJobRequest struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	LocationAddress *string  `json:"locationAddress,omitempty"`
	BasePrice       *float64 `json:"basePrice,omitempty"`
	MinimumPrice    *float64 `json:"minimumPrice,omitempty"`
}

// Response модели

// CustomerResponse данные клиента заказа
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
}

// WorkerResponse назначенный исполнитель
type WorkerResponse struct {
	WorkerID   uuid.UUID `json:"workerId"`
	AssignedAt time.Time `json:"assignedAt"`
	IsLead     bool      `json:"isLead"`
	HourlyRate *float64  `json:"hourlyRate"`
}

// JobResponse ответ с данными заказа
type JobResponse struct {
	ID                 uuid.UUID            `json:"id"`
	CompanyID          uuid.UUID            `json:"companyId"`
	CalendarID         uuid.UUID            `json:"calendarId"`
	AppointmentTypeID  uuid.UUID            `json:"appointmentTypeId"`
	Customer           CustomerResponse     `json:"customer"`
	Title              string               `json:"title"`
	Description        *string              `json:"description,omitempty"`
	Status             string               `json:"status"`
	ScheduledDate      string               `json:"scheduledDate"` // "2025-10-13"
	ScheduledTime      string               `json:"scheduledTime"` // "10:00"
	EstimatedDuration  int                  `json:"estimatedDuration"`
	BasePrice          float64              `json:"basePrice"`
	MinimumPrice       float64              `json:"minimumPrice"`
	LocationAddress    *string              `json:"locationAddress,omitempty"`
	RequiredWorkers    int                  `json:"requiredWorkers"`
	AcceptedWorkers    int                  `json:"acceptedWorkers"`
	RemainingWorkers   int                  `json:"remainingWorkers"`
	AssignmentPolicy   string               `json:"assignmentType"`
	FormResponses      domain.FormResponses `json:"formResponses"`
	Workers            []WorkerResponse     `json:"workers"`
	CancellationReason *string              `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time           `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// JobListResponse ответ со списком заказов
type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int           `json:"total"`
}

// FromDomainJob конвертирует domain.Job в JobResponse
func FromDomainJob(job *domain.Job) *JobResponse {
	workers := make([]WorkerResponse, 0, len(job.Workers))
	for _, w := range job.Workers {
		workers = append(workers, WorkerResponse{
			WorkerID:   w.WorkerID,
			AssignedAt: w.AssignedAt,
			IsLead:     w.IsLead,
			HourlyRate: w.HourlyRate,
		})
	}

	formResponses := job.FormResponses
	if formResponses == nil {
		formResponses = domain.FormResponses{}
	}

	return &JobResponse{
		ID:                job.ID,
		CompanyID:         job.CompanyID,
		CalendarID:        job.CalendarID,
		AppointmentTypeID: job.AppointmentTypeID,
		Customer: CustomerResponse{
			ID:        job.Customer.ID,
			FirstName: job.Customer.FirstName,
			LastName:  job.Customer.LastName,
			FullName:  job.Customer.FullName(),
			Email:     job.Customer.Email,
			Phone:     job.Customer.Phone,
		},
		Title:              job.Title,
		Description:        job.Description,
		Status:             string(job.Status),
		ScheduledDate:      job.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:      job.ScheduledTime.String(),
		EstimatedDuration:  job.EstimatedDuration,
		BasePrice:          job.BasePrice,
		MinimumPrice:       job.MinimumPrice,
		LocationAddress:    job.LocationAddress,
		RequiredWorkers:    job.RequiredWorkers,
		AcceptedWorkers:    job.AcceptedWorkers(),
		RemainingWorkers:   job.RemainingWorkers(),
		AssignmentPolicy:   string(job.AssignmentPolicy),
		FormResponses:      formResponses,
		Workers:            workers,
		CancellationReason: job.CancellationReason,
		CancelledAt:        job.CancelledAt,
		CreatedAt:          job.CreatedAt,
		UpdatedAt:          job.UpdatedAt,
	}
}

// FromDomainJobList конвертирует список заказов
func FromDomainJobList(jobs []*domain.Job) *JobListResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, *FromDomainJob(job))
	}
	return &JobListResponse{
		Jobs:  out,
		Total: len(out),
	}
}

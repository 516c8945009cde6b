package create_job

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	jobModels "github.com/m04kA/SMC-SchedulingService/internal/service/jobs/models"
	createJob "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_job"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid scheduled date")
	errInvalidTime = errors.New("invalid scheduled time")
)

// CustomerRequest данные клиента
type CustomerRequest struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
}

// CreateJobRequest HTTP request model
type CreateJobRequest struct {
	CalendarID        uuid.UUID            `json:"calendarId"`
	AppointmentTypeID uuid.UUID            `json:"appointmentTypeId"`
	Customer          CustomerRequest      `json:"customer"`
	Title             *string              `json:"title,omitempty"`
	Description       *string              `json:"description,omitempty"`
	ScheduledDate     string               `json:"scheduledDate"` // "2025-10-13"
	ScheduledTime     string               `json:"scheduledTime"` // "10:00"
	EstimatedDuration *int                 `json:"estimatedDuration,omitempty"`
	BasePrice         *float64             `json:"basePrice,omitempty"`
	MinimumPrice      *float64             `json:"minimumPrice,omitempty"`
	LocationAddress   *string              `json:"locationAddress,omitempty"`
	RequiredWorkers   *int                 `json:"requiredWorkers,omitempty"`
	AssignmentPolicy  *string              `json:"assignmentType,omitempty"`
	FormResponses     domain.FormResponses `json:"formResponses,omitempty"`
	Draft             bool                 `json:"draft,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateJobRequest) ToUseCaseRequest(companyID uuid.UUID) (*createJob.Request, error) {
	scheduledDate, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	scheduledTime, err := types.NewTimeStringFromString(r.ScheduledTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createJob.Request{
		CompanyID:         companyID,
		CalendarID:        r.CalendarID,
		AppointmentTypeID: r.AppointmentTypeID,
		Customer: domain.Customer{
			ID:        r.Customer.ID,
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Email:     r.Customer.Email,
			Phone:     r.Customer.Phone,
		},
		Title:             r.Title,
		Description:       r.Description,
		ScheduledDate:     scheduledDate,
		ScheduledTime:     scheduledTime,
		EstimatedDuration: r.EstimatedDuration,
		BasePrice:         r.BasePrice,
		MinimumPrice:      r.MinimumPrice,
		LocationAddress:   r.LocationAddress,
		RequiredWorkers:   r.RequiredWorkers,
		AssignmentPolicy:  r.AssignmentPolicy,
		FormResponses:     r.FormResponses,
		Draft:             r.Draft,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createJob.Response) *jobModels.JobResponse {
	return jobModels.FromDomainJob(resp.Job)
}

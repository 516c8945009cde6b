package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// JobStatus represents the staffing lifecycle status of a job
type JobStatus string

const (
	JobStatusDraft      JobStatus = "draft"
	JobStatusOpen       JobStatus = "open"
	JobStatusScheduling JobStatus = "scheduling"
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusPaid       JobStatus = "paid"
	JobStatusCancelled  JobStatus = "cancelled"
)

// AllJobStatuses in lifecycle order
var AllJobStatuses = []JobStatus{
	JobStatusDraft,
	JobStatusOpen,
	JobStatusScheduling,
	JobStatusScheduled,
	JobStatusInProgress,
	JobStatusCompleted,
	JobStatusPaid,
	JobStatusCancelled,
}

// ParseJobStatus converts a string into a known JobStatus
func ParseJobStatus(s string) (JobStatus, error) {
	status := JobStatus(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(AllJobStatuses, status) {
		return "", fmt.Errorf("unknown job status %q", s)
	}
	return status, nil
}

// IsTerminal returns true for statuses no transition leaves
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCancelled || s == JobStatusPaid
}

// JobAction is an admin-driven status transition
type JobAction string

const (
	JobActionPublish  JobAction = "publish"
	JobActionStart    JobAction = "start"
	JobActionComplete JobAction = "complete"
	JobActionMarkPaid JobAction = "mark_paid"
	JobActionCancel   JobAction = "cancel"
)

type transition struct {
	from []JobStatus
	to   JobStatus
}

var transitionMap = map[JobAction]transition{
	JobActionPublish:  {from: []JobStatus{JobStatusDraft}, to: JobStatusOpen},
	JobActionStart:    {from: []JobStatus{JobStatusScheduled}, to: JobStatusInProgress},
	JobActionComplete: {from: []JobStatus{JobStatusInProgress}, to: JobStatusCompleted},
	JobActionMarkPaid: {from: []JobStatus{JobStatusCompleted}, to: JobStatusPaid},
	JobActionCancel: {
		from: []JobStatus{
			JobStatusDraft,
			JobStatusOpen,
			JobStatusScheduling,
			JobStatusScheduled,
			JobStatusInProgress,
			JobStatusCompleted,
		},
		to: JobStatusCancelled,
	},
}

// NextStatus returns the status reached by applying action from status.
// ok is false when the action is unknown or not allowed from status.
func NextStatus(action JobAction, from JobStatus) (JobStatus, bool) {
	t, found := transitionMap[action]
	if !found || !slices.Contains(t.from, from) {
		return "", false
	}
	return t.to, true
}

// Customer is a snapshot of the customer a job is performed for
type Customer struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
}

// FullName joins first and last name
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// WorkerAssignment links a worker to a job
type WorkerAssignment struct {
	JobID      uuid.UUID
	WorkerID   uuid.UUID
	AssignedAt time.Time
	IsLead     bool
	HourlyRate *float64
}

// Job is a work order for a customer staffed by one or more workers
type Job struct {
	ID                uuid.UUID
	CompanyID         uuid.UUID
	CalendarID        uuid.UUID
	AppointmentTypeID uuid.UUID
	Customer          Customer

	Title             string
	Description       *string
	Status            JobStatus
	ScheduledDate     time.Time
	ScheduledTime     types.TimeString
	EstimatedDuration int // minutes
	BasePrice         float64
	MinimumPrice      float64
	LocationAddress   *string
	RequiredWorkers   int
	AssignmentPolicy  AssignmentPolicy
	FormResponses     FormResponses

	// Workers in acceptance order
	Workers []WorkerAssignment

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AcceptedWorkers returns the number of assigned workers
func (j *Job) AcceptedWorkers() int {
	return len(j.Workers)
}

// HasWorker returns true if workerID is already assigned
func (j *Job) HasWorker(workerID uuid.UUID) bool {
	return slices.ContainsFunc(j.Workers, func(w WorkerAssignment) bool {
		return w.WorkerID == workerID
	})
}

// CanAcceptWorkers returns true while the job is looking for workers
func (j *Job) CanAcceptWorkers() bool {
	return j.Status == JobStatusOpen || j.Status == JobStatusScheduling
}

// CanBeEdited returns true before scheduling begins
func (j *Job) CanBeEdited() bool {
	return j.Status == JobStatusDraft || j.Status == JobStatusOpen
}

// CanBeCancelled returns true for any non-terminal job
func (j *Job) CanBeCancelled() bool {
	_, ok := NextStatus(JobActionCancel, j.Status)
	return ok
}

// StatusAfterAccept computes the status once the job has accepted workers:
// scheduled when the threshold is met, scheduling when an open job got its
// first but not last worker, unchanged otherwise.
func (j *Job) StatusAfterAccept(accepted int) JobStatus {
	required := j.RequiredWorkers
	if required < 1 {
		required = DefaultRequiredWorkers
	}

	switch {
	case accepted >= required:
		return JobStatusScheduled
	case j.Status == JobStatusOpen:
		return JobStatusScheduling
	default:
		return j.Status
	}
}

// RemainingWorkers returns how many more workers are needed
func (j *Job) RemainingWorkers() int {
	if n := j.RequiredWorkers - j.AcceptedWorkers(); n > 0 {
		return n
	}
	return 0
}

// JobsFilter selects jobs of a company
type JobsFilter struct {
	CompanyID  uuid.UUID
	Status     *JobStatus // nil means every status
	CalendarID *uuid.UUID
	Date       *time.Time // matches ScheduledDate by calendar day
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// AcceptResult is the outcome of a successful worker accept
type AcceptResult struct {
	JobID           uuid.UUID
	WorkerID        uuid.UUID
	Status          JobStatus
	AcceptedWorkers int
	RequiredWorkers int
	AssignedAt      time.Time
}

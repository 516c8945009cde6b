package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssignmentPolicy is the default way workers get attached to jobs of a type.
// It is stored and reported only; accept logic is the same for every policy.
type AssignmentPolicy string

const (
	AssignmentSelfAssign   AssignmentPolicy = "self_assign"
	AssignmentAutoAssign   AssignmentPolicy = "auto_assign"
	AssignmentManualAssign AssignmentPolicy = "manual_assign"
)

// DefaultAssignmentPolicy is used when none is given.
const DefaultAssignmentPolicy = AssignmentManualAssign

// IsValid reports whether p is a known policy.
func (p AssignmentPolicy) IsValid() bool {
	switch p {
	case AssignmentSelfAssign, AssignmentAutoAssign, AssignmentManualAssign:
		return true
	default:
		return false
	}
}

// AppointmentType is a reusable service template instantiated by jobs.
type AppointmentType struct {
	ID               uuid.UUID
	CompanyID        uuid.UUID
	Name             string
	Description      *string
	BaseDuration     int // minutes
	MinimumPrice     float64
	BasePrice        float64
	AssignmentPolicy AssignmentPolicy
	IsActive         bool
	CalendarIDs      []uuid.UUID
	FormIDs          []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidatePricing enforces duration > 0, minimum >= 0 and base >= minimum.
func ValidatePricing(duration int, minimumPrice, basePrice float64) error {
	if duration <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveDuration, duration)
	}
	if minimumPrice < 0 {
		return fmt.Errorf("%w: got %.2f", ErrNegativePrice, minimumPrice)
	}
	if basePrice < minimumPrice {
		return fmt.Errorf("%w: base %.2f, minimum %.2f", ErrPriceBelowMinimum, basePrice, minimumPrice)
	}
	return nil
}

// Validate checks name, pricing and policy.
func (t *AppointmentType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidatePricing(t.BaseDuration, t.MinimumPrice, t.BasePrice); err != nil {
		return err
	}
	if !t.AssignmentPolicy.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAssignmentPolicy, t.AssignmentPolicy)
	}
	return nil
}

// IsOfferedOn reports whether jobs of this type may be placed on calendarID.
// A type without calendar assignments is not restricted.
func (t *AppointmentType) IsOfferedOn(calendarID uuid.UUID) bool {
	return len(t.CalendarIDs) == 0 || slices.Contains(t.CalendarIDs, calendarID)
}

// ToggleActive flips the active flag.
func (t *AppointmentType) ToggleActive() {
	t.IsActive = !t.IsActive
}

// AppointmentTypesFilter selects appointment types of a company.
type AppointmentTypesFilter struct {
	CompanyID  uuid.UUID
	ActiveOnly bool
	CalendarID *uuid.UUID // only types offered on this calendar, see IsOfferedOn
}

// DedupIDs returns ids without duplicates, keeping first occurrence order.
func DedupIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

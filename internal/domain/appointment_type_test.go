package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentType_Validate(t *testing.T) {
	valid := func() *AppointmentType {
		return &AppointmentType{
			Name:             "Deep clean",
			BaseDuration:     60,
			MinimumPrice:     50,
			BasePrice:        75,
			AssignmentPolicy: AssignmentManualAssign,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AppointmentType)
		wantErr error
	}{
		{name: "valid", mutate: func(*AppointmentType) {}},
		{name: "base equals minimum", mutate: func(a *AppointmentType) { a.BasePrice, a.MinimumPrice = 50, 50 }},
		{name: "base below minimum", mutate: func(a *AppointmentType) { a.BasePrice, a.MinimumPrice = 40, 50 }, wantErr: ErrPriceBelowMinimum},
		{name: "negative minimum", mutate: func(a *AppointmentType) { a.MinimumPrice = -1 }, wantErr: ErrNegativePrice},
		{name: "zero duration", mutate: func(a *AppointmentType) { a.BaseDuration = 0 }, wantErr: ErrNonPositiveDuration},
		{name: "empty name", mutate: func(a *AppointmentType) { a.Name = "" }, wantErr: ErrEmptyName},
		{name: "unknown policy", mutate: func(a *AppointmentType) { a.AssignmentPolicy = "round_robin" }, wantErr: ErrInvalidAssignmentPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := valid()
			tt.mutate(at)
			err := at.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAppointmentType_IsOfferedOn(t *testing.T) {
	calA, calB := uuid.New(), uuid.New()

	unrestricted := &AppointmentType{}
	assert.True(t, unrestricted.IsOfferedOn(calA))

	restricted := &AppointmentType{CalendarIDs: []uuid.UUID{calA}}
	assert.True(t, restricted.IsOfferedOn(calA))
	assert.False(t, restricted.IsOfferedOn(calB))
}

func TestDedupIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, DedupIDs([]uuid.UUID{a, b, a}))
	assert.Empty(t, DedupIDs(nil))
}

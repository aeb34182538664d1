package service

import (
	"testing"
	"time"

	"optical-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestAppointment(status entity.AppointmentStatus) *entity.Appointment {
	return &entity.Appointment{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		ScheduledAt: time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC),
		Status:      status,
		Comments:    "initial comment",
	}
}

func TestAppointmentLifecycle_TransitionTable(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()

	tests := []struct {
		current entity.AppointmentStatus
		action  AppointmentAction
		next    entity.AppointmentStatus
		allowed bool
	}{
		{entity.AppointmentStatusCreated, ActionConfirm, entity.AppointmentStatusConfirmed, true},
		{entity.AppointmentStatusCreated, ActionReschedule, entity.AppointmentStatusRescheduled, true},
		{entity.AppointmentStatusCreated, ActionCancel, entity.AppointmentStatusCancelled, true},
		{entity.AppointmentStatusCreated, ActionStart, "", false},
		{entity.AppointmentStatusCreated, ActionFinish, "", false},
		{entity.AppointmentStatusConfirmed, ActionReschedule, entity.AppointmentStatusRescheduled, true},
		{entity.AppointmentStatusConfirmed, ActionCancel, entity.AppointmentStatusCancelled, true},
		{entity.AppointmentStatusConfirmed, ActionStart, entity.AppointmentStatusInProgress, true},
		{entity.AppointmentStatusConfirmed, ActionConfirm, "", false},
		{entity.AppointmentStatusConfirmed, ActionFinish, "", false},
		{entity.AppointmentStatusRescheduled, ActionConfirm, entity.AppointmentStatusConfirmed, true},
		{entity.AppointmentStatusRescheduled, ActionCancel, entity.AppointmentStatusCancelled, true},
		{entity.AppointmentStatusRescheduled, ActionReschedule, "", false},
		{entity.AppointmentStatusRescheduled, ActionStart, "", false},
		{entity.AppointmentStatusInProgress, ActionFinish, entity.AppointmentStatusFinished, true},
		{entity.AppointmentStatusInProgress, ActionCancel, "", false},
		{entity.AppointmentStatusInProgress, ActionConfirm, "", false},
	}

	for _, tc := range tests {
		next, ok := lifecycle.NextStatus(tc.current, tc.action)
		assert.Equal(t, tc.allowed, ok, "%s + %s", tc.current, tc.action)
		if tc.allowed {
			assert.Equal(t, tc.next, next, "%s + %s", tc.current, tc.action)
		}
	}
}

func TestAppointmentLifecycle_TerminalStatesRejectEverything(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()

	for _, terminal := range []entity.AppointmentStatus{
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusFinished,
	} {
		for _, action := range AppointmentActions {
			appt := newTestAppointment(terminal)
			err := lifecycle.RequestTransition(appt, action, TransitionPayload{}, time.Now())
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s + %s", terminal, action)
			assert.Equal(t, terminal, appt.Status)
		}
	}
}

func TestAppointmentLifecycle_RescheduleRequiresDate(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()
	appt := newTestAppointment(entity.AppointmentStatusCreated)

	err := lifecycle.RequestTransition(appt, ActionReschedule, TransitionPayload{}, time.Now())
	assert.ErrorIs(t, err, ErrMissingRescheduleDate)
	assert.Equal(t, entity.AppointmentStatusCreated, appt.Status)
}

func TestAppointmentLifecycle_PastDateTimeLeavesAppointmentUntouched(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	appt := newTestAppointment(entity.AppointmentStatusCreated)
	original := appt.ScheduledAt

	err := lifecycle.RequestTransition(appt, ActionReschedule, TransitionPayload{ScheduledAt: &past}, now)
	assert.ErrorIs(t, err, ErrPastDateTime)
	assert.Equal(t, entity.AppointmentStatusCreated, appt.Status)
	assert.Equal(t, original, appt.ScheduledAt)

	// scheduled_at equal to now is also rejected, the datetime must be
	// strictly in the future
	err = lifecycle.RequestTransition(appt, ActionReschedule, TransitionPayload{ScheduledAt: &now}, now)
	assert.ErrorIs(t, err, ErrPastDateTime)
}

func TestAppointmentLifecycle_RescheduleAppliesOverlays(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	comments := "patient asked to move"
	doctor := &entity.User{ID: uuid.New(), IsActive: true}

	appt := newTestAppointment(entity.AppointmentStatusConfirmed)

	err := lifecycle.RequestTransition(appt, ActionReschedule, TransitionPayload{
		Comments:    &comments,
		ScheduledAt: &future,
		Doctor:      doctor,
	}, now)
	assert.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusRescheduled, appt.Status)
	assert.Equal(t, future, appt.ScheduledAt)
	assert.Equal(t, comments, appt.Comments)
	assert.NotNil(t, appt.DoctorID)
	assert.Equal(t, doctor.ID, *appt.DoctorID)
}

func TestAppointmentLifecycle_NilOverlaysPreserveFields(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()
	appt := newTestAppointment(entity.AppointmentStatusCreated)
	original := *appt

	err := lifecycle.RequestTransition(appt, ActionConfirm, TransitionPayload{}, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusConfirmed, appt.Status)
	assert.Equal(t, original.Comments, appt.Comments)
	assert.Equal(t, original.ScheduledAt, appt.ScheduledAt)
	assert.Nil(t, appt.DoctorID)
}

func TestAppointmentLifecycle_InactiveDoctorOnTransition(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()
	appt := newTestAppointment(entity.AppointmentStatusCreated)
	doctor := &entity.User{ID: uuid.New(), IsActive: false}

	err := lifecycle.RequestTransition(appt, ActionConfirm, TransitionPayload{Doctor: doctor}, time.Now())
	assert.ErrorIs(t, err, ErrInactiveDoctor)
	assert.Equal(t, entity.AppointmentStatusCreated, appt.Status)
	assert.Nil(t, appt.DoctorID)
}

func TestAppointmentLifecycle_FullFlowToFinished(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	appt := newTestAppointment(entity.AppointmentStatusCreated)

	assert.NoError(t, lifecycle.RequestTransition(appt, ActionReschedule, TransitionPayload{ScheduledAt: &future}, now))
	assert.Equal(t, entity.AppointmentStatusRescheduled, appt.Status)

	assert.NoError(t, lifecycle.RequestTransition(appt, ActionConfirm, TransitionPayload{}, now))
	assert.Equal(t, entity.AppointmentStatusConfirmed, appt.Status)

	assert.NoError(t, lifecycle.RequestTransition(appt, ActionStart, TransitionPayload{}, now))
	assert.Equal(t, entity.AppointmentStatusInProgress, appt.Status)

	assert.NoError(t, lifecycle.RequestTransition(appt, ActionFinish, TransitionPayload{}, now))
	assert.Equal(t, entity.AppointmentStatusFinished, appt.Status)
	assert.True(t, appt.IsTerminal())
}

func TestAppointmentLifecycle_ReassignDoctor(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()
	appt := newTestAppointment(entity.AppointmentStatusConfirmed)

	inactive := &entity.User{ID: uuid.New(), IsActive: false}
	err := lifecycle.ReassignDoctor(appt, inactive)
	assert.ErrorIs(t, err, ErrInactiveDoctor)
	assert.Nil(t, appt.DoctorID)

	active := &entity.User{ID: uuid.New(), IsActive: true}
	err = lifecycle.ReassignDoctor(appt, active)
	assert.NoError(t, err)
	assert.Equal(t, active.ID, *appt.DoctorID)
}

func TestAppointmentLifecycle_ValidateCreation(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	activePatient := &entity.Patient{ID: uuid.New(), IsActive: true}
	inactivePatient := &entity.Patient{ID: uuid.New(), IsActive: false}
	activeDoctor := &entity.User{ID: uuid.New(), IsActive: true}
	inactiveDoctor := &entity.User{ID: uuid.New(), IsActive: false}

	assert.NoError(t, lifecycle.ValidateCreation(future, activePatient, nil, now))
	assert.NoError(t, lifecycle.ValidateCreation(future, activePatient, activeDoctor, now))

	err := lifecycle.ValidateCreation(now.Add(-time.Minute), activePatient, nil, now)
	assert.ErrorIs(t, err, ErrPastDateTime)

	err = lifecycle.ValidateCreation(future, inactivePatient, nil, now)
	assert.ErrorIs(t, err, ErrInactivePatient)

	err = lifecycle.ValidateCreation(future, activePatient, inactiveDoctor, now)
	assert.ErrorIs(t, err, ErrInactiveDoctor)
}

func TestAppointmentLifecycle_Predicates(t *testing.T) {
	lifecycle := NewAppointmentLifecycle()

	assert.True(t, lifecycle.CanConfirm(entity.AppointmentStatusCreated))
	assert.True(t, lifecycle.CanConfirm(entity.AppointmentStatusRescheduled))
	assert.False(t, lifecycle.CanConfirm(entity.AppointmentStatusConfirmed))

	assert.True(t, lifecycle.CanReschedule(entity.AppointmentStatusCreated))
	assert.True(t, lifecycle.CanReschedule(entity.AppointmentStatusConfirmed))
	assert.False(t, lifecycle.CanReschedule(entity.AppointmentStatusRescheduled))

	assert.True(t, lifecycle.CanCancel(entity.AppointmentStatusCreated))
	assert.False(t, lifecycle.CanCancel(entity.AppointmentStatusInProgress))

	assert.True(t, lifecycle.CanStart(entity.AppointmentStatusConfirmed))
	assert.False(t, lifecycle.CanStart(entity.AppointmentStatusCreated))

	assert.True(t, lifecycle.CanFinish(entity.AppointmentStatusInProgress))
	assert.False(t, lifecycle.CanFinish(entity.AppointmentStatusConfirmed))

	for _, terminal := range []entity.AppointmentStatus{
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusFinished,
	} {
		assert.False(t, lifecycle.CanConfirm(terminal))
		assert.False(t, lifecycle.CanReschedule(terminal))
		assert.False(t, lifecycle.CanCancel(terminal))
		assert.False(t, lifecycle.CanStart(terminal))
		assert.False(t, lifecycle.CanFinish(terminal))
	}
}

func TestActionForStatus(t *testing.T) {
	tests := []struct {
		target entity.AppointmentStatus
		action AppointmentAction
		ok     bool
	}{
		{entity.AppointmentStatusConfirmed, ActionConfirm, true},
		{entity.AppointmentStatusRescheduled, ActionReschedule, true},
		{entity.AppointmentStatusCancelled, ActionCancel, true},
		{entity.AppointmentStatusInProgress, ActionStart, true},
		{entity.AppointmentStatusFinished, ActionFinish, true},
		{entity.AppointmentStatusCreated, "", false},
		{"unknown", "", false},
	}

	for _, tc := range tests {
		action, ok := ActionForStatus(tc.target)
		assert.Equal(t, tc.ok, ok, "%s", tc.target)
		assert.Equal(t, tc.action, action, "%s", tc.target)
	}
}

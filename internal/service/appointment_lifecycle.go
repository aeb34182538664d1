package service

import (
	"errors"
	"time"

	"optical-clinic-api/internal/domain/entity"
)

var (
	ErrInvalidTransition     = errors.New("appointment status cannot be changed from its current status")
	ErrMissingRescheduleDate = errors.New("a new date and time is required to reschedule")
	ErrPastDateTime          = errors.New("appointment date and time must be in the future")
	ErrInactivePatient       = errors.New("patient is inactive")
	ErrInactiveDoctor        = errors.New("doctor is inactive")
)

// AppointmentAction is a requested lifecycle action on an appointment.
// Each action targets exactly one resulting status.
type AppointmentAction string

const (
	ActionConfirm    AppointmentAction = "confirm"
	ActionReschedule AppointmentAction = "reschedule"
	ActionCancel     AppointmentAction = "cancel"
	ActionStart      AppointmentAction = "start"
	ActionFinish     AppointmentAction = "finish"
)

// AppointmentActions lists every lifecycle action.
var AppointmentActions = []AppointmentAction{
	ActionConfirm, ActionReschedule, ActionCancel, ActionStart, ActionFinish,
}

// transitions encodes the full state machine as data: for each current
// status, the set of allowed actions and the status each one produces.
// Cancelled and finished have no entries; they are terminal.
var transitions = map[entity.AppointmentStatus]map[AppointmentAction]entity.AppointmentStatus{
	entity.AppointmentStatusCreated: {
		ActionConfirm:    entity.AppointmentStatusConfirmed,
		ActionReschedule: entity.AppointmentStatusRescheduled,
		ActionCancel:     entity.AppointmentStatusCancelled,
	},
	entity.AppointmentStatusConfirmed: {
		ActionReschedule: entity.AppointmentStatusRescheduled,
		ActionCancel:     entity.AppointmentStatusCancelled,
		ActionStart:      entity.AppointmentStatusInProgress,
	},
	entity.AppointmentStatusRescheduled: {
		ActionConfirm: entity.AppointmentStatusConfirmed,
		ActionCancel:  entity.AppointmentStatusCancelled,
	},
	entity.AppointmentStatusInProgress: {
		ActionFinish: entity.AppointmentStatusFinished,
	},
}

// TransitionPayload carries the optional attribute overlays accepted
// alongside a status change. Nil fields leave the appointment untouched.
type TransitionPayload struct {
	Comments    *string
	ScheduledAt *time.Time
	Doctor      *entity.User
}

// AppointmentLifecycle validates and applies appointment status
// transitions. It holds no state; callers persist the mutated entity.
type AppointmentLifecycle struct{}

func NewAppointmentLifecycle() *AppointmentLifecycle {
	return &AppointmentLifecycle{}
}

// NextStatus resolves the status that applying action to current would
// produce. ok is false when the transition table has no such entry.
func (l *AppointmentLifecycle) NextStatus(current entity.AppointmentStatus, action AppointmentAction) (entity.AppointmentStatus, bool) {
	next, ok := transitions[current][action]
	return next, ok
}

// RequestTransition validates action against the transition table and,
// on success, applies the resulting status plus any payload overlays to
// appt. On failure appt is left unmodified.
func (l *AppointmentLifecycle) RequestTransition(appt *entity.Appointment, action AppointmentAction, payload TransitionPayload, now time.Time) error {
	next, ok := l.NextStatus(appt.Status, action)
	if !ok {
		return ErrInvalidTransition
	}

	if action == ActionReschedule && payload.ScheduledAt == nil {
		return ErrMissingRescheduleDate
	}
	if payload.ScheduledAt != nil && !payload.ScheduledAt.After(now) {
		return ErrPastDateTime
	}
	if payload.Doctor != nil && !payload.Doctor.IsActive {
		return ErrInactiveDoctor
	}

	appt.Status = next
	if payload.Comments != nil {
		appt.Comments = *payload.Comments
	}
	if payload.ScheduledAt != nil {
		appt.ScheduledAt = *payload.ScheduledAt
	}
	if payload.Doctor != nil {
		doctorID := payload.Doctor.ID
		appt.DoctorID = &doctorID
	}
	return nil
}

// ReassignDoctor replaces the assigned doctor independently of the
// status table. The new doctor must be active.
func (l *AppointmentLifecycle) ReassignDoctor(appt *entity.Appointment, doctor *entity.User) error {
	if !doctor.IsActive {
		return ErrInactiveDoctor
	}
	doctorID := doctor.ID
	appt.DoctorID = &doctorID
	return nil
}

// ValidateCreation checks the creation-time invariants: a strictly
// future datetime, an active patient and, when assigned, an active
// doctor. doctor may be nil.
func (l *AppointmentLifecycle) ValidateCreation(scheduledAt time.Time, patient *entity.Patient, doctor *entity.User, now time.Time) error {
	if !scheduledAt.After(now) {
		return ErrPastDateTime
	}
	if !patient.IsActive {
		return ErrInactivePatient
	}
	if doctor != nil && !doctor.IsActive {
		return ErrInactiveDoctor
	}
	return nil
}

// Derived transition predicates, exposed on list/detail responses so
// clients can enable the right actions without re-encoding the table.

func (l *AppointmentLifecycle) CanConfirm(s entity.AppointmentStatus) bool {
	return l.can(s, ActionConfirm)
}

func (l *AppointmentLifecycle) CanReschedule(s entity.AppointmentStatus) bool {
	return l.can(s, ActionReschedule)
}

func (l *AppointmentLifecycle) CanCancel(s entity.AppointmentStatus) bool {
	return l.can(s, ActionCancel)
}

func (l *AppointmentLifecycle) CanStart(s entity.AppointmentStatus) bool {
	return l.can(s, ActionStart)
}

func (l *AppointmentLifecycle) CanFinish(s entity.AppointmentStatus) bool {
	return l.can(s, ActionFinish)
}

func (l *AppointmentLifecycle) can(s entity.AppointmentStatus, a AppointmentAction) bool {
	_, ok := transitions[s][a]
	return ok
}

// ActionForStatus maps a requested target status to the action that
// produces it, for callers that submit target statuses instead of verbs.
func ActionForStatus(target entity.AppointmentStatus) (AppointmentAction, bool) {
	switch target {
	case entity.AppointmentStatusConfirmed:
		return ActionConfirm, true
	case entity.AppointmentStatusRescheduled:
		return ActionReschedule, true
	case entity.AppointmentStatusCancelled:
		return ActionCancel, true
	case entity.AppointmentStatusInProgress:
		return ActionStart, true
	case entity.AppointmentStatusFinished:
		return ActionFinish, true
	}
	return "", false
}

package service

import (
	"testing"
	"time"

	"optical-clinic-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestClinicalRecordStore_ClinicalFields(t *testing.T) {
	store := NewClinicalRecordStore()

	fields := store.ClinicalFields()
	assert.Len(t, fields, 15)
	assert.Equal(t, FieldRxInUse, fields[0])
	assert.Equal(t, FieldFinalRx, fields[14])

	// the returned slice is a copy, mutating it must not leak into the
	// registry
	fields[0] = "tampered"
	assert.Equal(t, FieldRxInUse, store.ClinicalFields()[0])
}

func TestClinicalRecordStore_IsRegisteredField(t *testing.T) {
	store := NewClinicalRecordStore()

	assert.True(t, store.IsRegisteredField(FieldVisualAcuity))
	assert.True(t, store.IsRegisteredField(FieldSubjectiveRefinement))
	assert.False(t, store.IsRegisteredField("blood_pressure"))
	assert.False(t, store.IsRegisteredField(""))
}

func TestClinicalRecordStore_ReconcileIndividualWins(t *testing.T) {
	store := NewClinicalRecordStore()

	bulk := entity.ClinicalData{
		FieldRxInUse:      "OD -1.00 OS -1.25",
		FieldVisualAcuity: "20/40",
		FieldFindings:     "mild myopia",
	}
	individual := map[string]string{
		FieldVisualAcuity: "20/30",
		FieldFinalRx:      "OD -0.75 OS -1.00",
	}

	merged := store.Reconcile(bulk, individual)

	assert.Equal(t, "20/30", merged[FieldVisualAcuity])
	assert.Equal(t, "OD -1.00 OS -1.25", merged[FieldRxInUse])
	assert.Equal(t, "mild myopia", merged[FieldFindings])
	assert.Equal(t, "OD -0.75 OS -1.00", merged[FieldFinalRx])
	assert.Len(t, merged, 4)

	// input maps are left untouched
	assert.Equal(t, "20/40", bulk[FieldVisualAcuity])
}

func TestClinicalRecordStore_ReconcileNilInputs(t *testing.T) {
	store := NewClinicalRecordStore()

	merged := store.Reconcile(nil, nil)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)

	merged = store.Reconcile(nil, map[string]string{FieldFindings: "clear"})
	assert.Equal(t, "clear", merged[FieldFindings])

	merged = store.Reconcile(entity.ClinicalData{FieldFindings: "clear"}, nil)
	assert.Equal(t, "clear", merged[FieldFindings])
}

func TestClinicalRecordStore_ValidateStructure(t *testing.T) {
	store := NewClinicalRecordStore()

	report := store.ValidateStructure(map[string]string{
		FieldRxInUse:      "OD -1.00",
		FieldVisualAcuity: "20/20",
	})
	assert.True(t, report.Valid())
	assert.Empty(t, report.UnknownFields)
	assert.Len(t, report.RegisteredFields, 15)

	report = store.ValidateStructure(map[string]string{
		FieldRxInUse:     "OD -1.00",
		"blood_pressure": "120/80",
	})
	assert.False(t, report.Valid())
	assert.Equal(t, []string{"blood_pressure"}, report.UnknownFields)

	report = store.ValidateStructure(nil)
	assert.True(t, report.Valid())
}

func TestClinicalRecordStore_StructuredData(t *testing.T) {
	store := NewClinicalRecordStore()

	data := entity.ClinicalData{
		FieldVisualAcuity: "20/25",
		"custom_note":     "keeps old frame",
	}

	structured := store.StructuredData(data)

	assert.Len(t, structured, 15)
	assert.Equal(t, "20/25", structured[FieldVisualAcuity])
	assert.Equal(t, "", structured[FieldRetinoscopy])
	_, hasCustom := structured["custom_note"]
	assert.False(t, hasCustom)
}

func TestClinicalRecordStore_ValidateNextControl(t *testing.T) {
	store := NewClinicalRecordStore()
	today := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	date := func(daysFromToday int) *time.Time {
		d := today.AddDate(0, 0, daysFromToday)
		return &d
	}

	assert.NoError(t, store.ValidateNextControl(nil, today))
	assert.NoError(t, store.ValidateNextControl(date(1), today))
	assert.NoError(t, store.ValidateNextControl(date(30), today))

	// a control date of today or earlier is rejected
	assert.ErrorIs(t, store.ValidateNextControl(date(0), today), ErrPastControlDate)
	assert.ErrorIs(t, store.ValidateNextControl(date(-1), today), ErrPastControlDate)
	assert.ErrorIs(t, store.ValidateNextControl(date(-30), today), ErrPastControlDate)

	// time-of-day does not matter, only the day
	laterToday := time.Date(2026, 9, 10, 23, 59, 0, 0, time.UTC)
	assert.ErrorIs(t, store.ValidateNextControl(&laterToday, today), ErrPastControlDate)
}

func TestClinicalRecordStore_NeedsReminder(t *testing.T) {
	store := NewClinicalRecordStore()
	today := time.Date(2026, 9, 10, 15, 30, 0, 0, time.UTC)

	date := func(daysFromToday int) *time.Time {
		d := today.AddDate(0, 0, daysFromToday)
		return &d
	}

	tests := []struct {
		name         string
		nextControl  *time.Time
		reminderSent bool
		want         bool
	}{
		{"no control date", nil, false, false},
		{"already sent", date(3), true, false},
		{"control 8 days out, outside window", date(8), false, false},
		{"control exactly 7 days out", date(7), false, true},
		{"control 3 days out", date(3), false, true},
		{"control today", date(0), false, true},
		{"control date already passed", date(-2), false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, store.NeedsReminder(tc.nextControl, tc.reminderSent, today))
		})
	}
}

func TestClinicalRecordStore_DaysUntilNextControl(t *testing.T) {
	store := NewClinicalRecordStore()
	today := time.Date(2026, 9, 10, 23, 45, 0, 0, time.UTC)

	_, ok := store.DaysUntilNextControl(nil, today)
	assert.False(t, ok)

	// time-of-day does not affect the day count
	control := time.Date(2026, 9, 15, 1, 0, 0, 0, time.UTC)
	days, ok := store.DaysUntilNextControl(&control, today)
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	sameDay := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	days, ok = store.DaysUntilNextControl(&sameDay, today)
	assert.True(t, ok)
	assert.Equal(t, 0, days)

	passed := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	days, ok = store.DaysUntilNextControl(&passed, today)
	assert.True(t, ok)
	assert.Equal(t, -3, days)
}

func TestClinicalRecordStore_ReminderWindow(t *testing.T) {
	store := NewClinicalRecordStore()
	today := time.Date(2026, 9, 10, 16, 20, 0, 0, time.UTC)

	from, to := store.ReminderWindow(today)

	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC), to)
}

package dto

import (
	"testing"
	"time"

	"optical-clinic-api/pkg/validator"

	"github.com/stretchr/testify/assert"
)

func validCreateDiagnosisRequest() CreateDiagnosisRequest {
	consultedAt := time.Now()
	return CreateDiagnosisRequest{
		PatientID:   "0d9f2f0a-6c4f-4313-9d3a-6e9e3f6f8a11",
		BranchID:    "3f2bb6d8-9f6e-45b2-a0cf-0db1c25c9f42",
		ConsultedAt: &consultedAt,
	}
}

func TestCreateDiagnosisRequest_NextControlDateMustBeFuture(t *testing.T) {
	v := validator.NewValidator()

	req := validCreateDiagnosisRequest()
	past := time.Now().AddDate(0, 0, -30)
	req.NextControlDate = &past
	assert.Error(t, v.Validate(&req))

	today := time.Now()
	req.NextControlDate = &today
	assert.Error(t, v.Validate(&req))

	future := time.Now().AddDate(0, 0, 30)
	req.NextControlDate = &future
	assert.NoError(t, v.Validate(&req))

	req.NextControlDate = nil
	assert.NoError(t, v.Validate(&req))
}

func TestCreateDiagnosisRequest_ConsultedAtRequired(t *testing.T) {
	v := validator.NewValidator()

	req := validCreateDiagnosisRequest()
	assert.NoError(t, v.Validate(&req))

	req.ConsultedAt = nil
	assert.Error(t, v.Validate(&req))
}

func TestUpdateDiagnosisRequest_NextControlDateMustBeFuture(t *testing.T) {
	v := validator.NewValidator()

	var req UpdateDiagnosisRequest
	assert.NoError(t, v.Validate(&req))

	past := time.Now().AddDate(0, 0, -7)
	req.NextControlDate = &past
	assert.Error(t, v.Validate(&req))

	future := time.Now().AddDate(0, 0, 7)
	req.NextControlDate = &future
	assert.NoError(t, v.Validate(&req))
}

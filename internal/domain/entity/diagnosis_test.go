package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClinicalData_Value(t *testing.T) {
	var empty ClinicalData
	v, err := empty.Value()
	assert.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)

	data := ClinicalData{"visual_acuity": "20/20"}
	v, err = data.Value()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"visual_acuity":"20/20"}`, string(v.([]byte)))
}

func TestClinicalData_Scan(t *testing.T) {
	var data ClinicalData

	assert.NoError(t, data.Scan(nil))
	assert.NotNil(t, data)
	assert.Empty(t, data)

	assert.NoError(t, data.Scan([]byte(`{"findings":"mild myopia"}`)))
	assert.Equal(t, "mild myopia", data.Get("findings"))

	assert.NoError(t, data.Scan(`{"final_rx":"OD -0.75"}`))
	assert.Equal(t, "OD -0.75", data.Get("final_rx"))

	assert.Error(t, data.Scan(42))
}

func TestClinicalData_Get(t *testing.T) {
	data := ClinicalData{"findings": "clear"}
	assert.Equal(t, "clear", data.Get("findings"))
	assert.Equal(t, "", data.Get("missing"))

	var nilData ClinicalData
	assert.Equal(t, "", nilData.Get("anything"))
}

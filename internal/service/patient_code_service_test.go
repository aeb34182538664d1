package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPatientCode(t *testing.T) {
	assert.Equal(t, "VOR-00001", FormatPatientCode(1))
	assert.Equal(t, "VOR-00042", FormatPatientCode(42))
	assert.Equal(t, "VOR-99999", FormatPatientCode(99999))
	// codes beyond five digits keep growing instead of wrapping
	assert.Equal(t, "VOR-100000", FormatPatientCode(100000))
}

func TestLastSequence(t *testing.T) {
	tests := []struct {
		code string
		want int64
	}{
		{"VOR-00001", 1},
		{"VOR-00573", 573},
		{"VOR-100001", 100001},
		{"", 0},
		{"VOR", 0},
		{"VOR-", 0},
		{"VOR-abc", 0},
		{"garbage", 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, lastSequence(tc.code), "code %q", tc.code)
	}
}

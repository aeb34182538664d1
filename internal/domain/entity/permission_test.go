package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugifyCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Manage Patients", "manage_patients"},
		{"Gestión de Diagnósticos", "gestion_de_diagnosticos"},
		{"Año  Óptico", "ano_optico"},
		{"already_a_code", "already_a_code"},
		{"  Trim Me  ", "trim_me"},
		{"Multi---Separator!!Name", "multi_separator_name"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, SlugifyCode(tc.name), "name %q", tc.name)
	}
}

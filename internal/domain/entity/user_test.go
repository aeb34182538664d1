package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasPermission(t *testing.T) {
	role := &Role{
		ID:       RoleIDReceptionist,
		Name:     "Receptionist",
		IsActive: true,
		Permissions: []Permission{
			{Code: PermManagePatients, IsActive: true},
			{Code: PermManageAppointments, IsActive: false},
		},
	}

	user := &User{Role: role}

	assert.True(t, user.HasPermission(PermManagePatients))
	// inactive permissions do not grant access
	assert.False(t, user.HasPermission(PermManageAppointments))
	assert.False(t, user.HasPermission(PermManageDiagnoses))

	// a disabled role grants nothing
	role.IsActive = false
	assert.False(t, user.HasPermission(PermManagePatients))

	// user without a role
	assert.False(t, (&User{}).HasPermission(PermManagePatients))
}

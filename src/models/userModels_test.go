package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesHas(t *testing.T) {
	roles := Roles{RolAdviser, RolUserTrabajador}

	assert.True(t, roles.Has(RolAdviser))
	assert.True(t, roles.IsAdviser())
	assert.False(t, roles.IsAdmin())
	assert.False(t, Roles{}.Has(RolAdviser))
}

func TestRolesPersistencia(t *testing.T) {
	roles := Roles{RolAdministrator}

	value, err := roles.Value()
	require.NoError(t, err)
	assert.Equal(t, `["administrator"]`, value)

	var leidos Roles
	require.NoError(t, leidos.Scan(value))
	assert.Equal(t, roles, leidos)

	// La columna puede venir nula para usuarios antiguos
	require.NoError(t, leidos.Scan(nil))
	assert.Empty(t, leidos)

	var nulos Roles
	value, err = nulos.Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
}

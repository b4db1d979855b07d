package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuDiaNormalizesNestedShape(t *testing.T) {
	raw := `{
		"id": 3,
		"fecha": "2025-03-10",
		"principal": {"id": 1, "nombre": "Arroz con pollo"},
		"bebida": {"id": 2, "nombre": "Limonada"},
		"postre": {"id": 4, "nombre": "Flan"},
		"precio": 12.5,
		"cantidad": 40
	}`

	var m MenuDia
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, 3, m.ID)
	assert.Equal(t, PlatoRef{ID: 1, Nombre: "Arroz con pollo"}, m.Principal)
	assert.Equal(t, PlatoRef{ID: 2, Nombre: "Limonada"}, m.Bebida)
	assert.Equal(t, PlatoRef{ID: 4, Nombre: "Flan"}, m.Postre)
}

func TestMenuDiaNormalizesFlattenedShape(t *testing.T) {
	// the backend sometimes flattens refs into suffixed fields
	raw := `{
		"id": 3,
		"fecha": "2025-03-10",
		"principal_id": 1, "principal_nombre": "Arroz con pollo",
		"bebida_id": 2, "bebida_nombre": "Limonada",
		"postre_id": 4, "postre_nombre": "Flan",
		"precio": 12.5,
		"cantidad": 40
	}`

	var m MenuDia
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, PlatoRef{ID: 1, Nombre: "Arroz con pollo"}, m.Principal)
	assert.Equal(t, PlatoRef{ID: 2, Nombre: "Limonada"}, m.Bebida)
	assert.Equal(t, PlatoRef{ID: 4, Nombre: "Flan"}, m.Postre)
}

func TestMenuDiaNestedWinsOverFlattened(t *testing.T) {
	raw := `{
		"id": 3,
		"bebida": {"id": 2, "nombre": "Limonada"},
		"bebida_id": 99, "bebida_nombre": "otra"
	}`

	var m MenuDia
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	assert.Equal(t, PlatoRef{ID: 2, Nombre: "Limonada"}, m.Bebida)
}

package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering-console/models"
)

const umbral = 20

func platoConArroz(cantidadPorPorcion float64) models.Plato {
	return models.Plato{
		ID:     1,
		Nombre: "Arroz con pollo",
		Ingredientes: []models.IngredientePlato{
			{IngredienteID: 10, Nombre: "arroz", Cantidad: cantidadPorPorcion, Unidad: "kg"},
		},
	}
}

func TestCheckAllowedWithLowStockWarning(t *testing.T) {
	// 50 menús × 0.5 kg = 25 kg; hay 30 → permitido, quedan 5 (< 20) → aviso
	stock := []models.Ingrediente{{ID: 10, Nombre: "arroz", Stock: 30, Unidad: "kg"}}

	res := Check([]models.Plato{platoConArroz(0.5)}, 50, stock, umbral)

	require.True(t, res.Permitido())
	require.Len(t, res.Requisitos, 1)
	assert.Equal(t, 25.0, res.Requisitos[0].Requerido)
	assert.Equal(t, 5.0, res.Requisitos[0].Restante())
	require.Len(t, res.Avisos, 1)
	assert.Contains(t, res.Avisos[0], "arroz")
	assert.Contains(t, res.Avisos[0], "5 kg")
}

func TestCheckBlockedNamesShortfall(t *testing.T) {
	// 50 × 0.5 = 25 kg; hay 20 → bloqueado con faltante (necesita 25, hay 20)
	stock := []models.Ingrediente{{ID: 10, Nombre: "arroz", Stock: 20, Unidad: "kg"}}

	res := Check([]models.Plato{platoConArroz(0.5)}, 50, stock, umbral)

	require.False(t, res.Permitido())
	require.Len(t, res.Faltantes, 1)
	assert.Equal(t, "arroz: se necesitan 25 kg, hay 20", res.Faltantes[0])
	assert.Empty(t, res.Avisos)
}

func TestCheckNoWarningAtThreshold(t *testing.T) {
	// quedan exactamente 20 → sin aviso; el umbral es estrictamente menor-que
	stock := []models.Ingrediente{{ID: 10, Nombre: "arroz", Stock: 45, Unidad: "kg"}}

	res := Check([]models.Plato{platoConArroz(0.5)}, 50, stock, umbral)

	require.True(t, res.Permitido())
	assert.Empty(t, res.Avisos)
}

func TestCheckAggregatesAcrossDishes(t *testing.T) {
	principal := models.Plato{
		ID: 1,
		Ingredientes: []models.IngredientePlato{
			{IngredienteID: 10, Nombre: "arroz", Cantidad: 0.3, Unidad: "kg"},
			{IngredienteID: 11, Nombre: "pollo", Cantidad: 0.2, Unidad: "kg"},
		},
	}
	postre := models.Plato{
		ID: 2,
		Ingredientes: []models.IngredientePlato{
			{IngredienteID: 10, Nombre: "arroz", Cantidad: 0.1, Unidad: "kg"},
		},
	}
	stock := []models.Ingrediente{
		{ID: 10, Nombre: "arroz", Stock: 100, Unidad: "kg"},
		{ID: 11, Nombre: "pollo", Stock: 100, Unidad: "kg"},
	}

	res := Check([]models.Plato{principal, postre}, 10, stock, umbral)

	require.True(t, res.Permitido())
	require.Len(t, res.Requisitos, 2)
	// (0.3 + 0.1) × 10 = 4 kg de arroz, 0.2 × 10 = 2 kg de pollo
	assert.Equal(t, 4.0, res.Requisitos[0].Requerido)
	assert.Equal(t, 2.0, res.Requisitos[1].Requerido)
}

func TestCheckMissingStockEntryBlocks(t *testing.T) {
	// un ingrediente sin registro de stock cuenta como 0 disponible
	res := Check([]models.Plato{platoConArroz(0.5)}, 1, nil, umbral)

	require.False(t, res.Permitido())
	assert.Contains(t, res.Faltantes[0], "arroz")
}

func TestCheckEmptyMenu(t *testing.T) {
	res := Check(nil, 50, nil, umbral)
	assert.True(t, res.Permitido())
	assert.Empty(t, res.Requisitos)
}

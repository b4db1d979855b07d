// Package inventory reproduces the client-side stock pre-check that runs
// before a daily menu is created. It is a best-effort duplicate of arithmetic
// the backend also performs; the console blocks obviously impossible menus
// early and warns about low remainders, nothing more.
package inventory

import (
	"fmt"
	"sort"

	"ordering-console/models"
)

// Requisito is the aggregated requirement for one ingredient across the
// selected dishes, next to the stock currently available for it.
type Requisito struct {
	IngredienteID int     `json:"ingrediente_id"`
	Nombre        string  `json:"nombre"`
	Unidad        string  `json:"unidad"`
	Requerido     float64 `json:"requerido"`
	Disponible    float64 `json:"disponible"`
}

// Restante is the stock that would remain after the decrement.
func (r Requisito) Restante() float64 { return r.Disponible - r.Requerido }

type Resultado struct {
	Requisitos []Requisito `json:"requisitos"`
	Faltantes  []string    `json:"faltantes,omitempty"`
	Avisos     []string    `json:"avisos,omitempty"`
}

// Permitido reports whether menu creation may proceed.
func (r Resultado) Permitido() bool { return len(r.Faltantes) == 0 }

// Check computes the stock requirement for creating a menu of the given
// dishes at the requested quantity: each dish contributes its per-serving
// ingredient amounts times cantidad. Any ingredient whose available stock is
// below its requirement blocks creation; an allowed ingredient whose stock
// would fall under umbral after the decrement raises a low-stock warning.
func Check(platos []models.Plato, cantidad int, stock []models.Ingrediente, umbral float64) Resultado {
	disponible := make(map[int]models.Ingrediente, len(stock))
	for _, ing := range stock {
		disponible[ing.ID] = ing
	}

	requerido := make(map[int]*Requisito)
	for _, plato := range platos {
		for _, ing := range plato.Ingredientes {
			req, ok := requerido[ing.IngredienteID]
			if !ok {
				actual := disponible[ing.IngredienteID]
				req = &Requisito{
					IngredienteID: ing.IngredienteID,
					Nombre:        ing.Nombre,
					Unidad:        ing.Unidad,
					Disponible:    actual.Stock,
				}
				requerido[ing.IngredienteID] = req
			}
			req.Requerido += ing.Cantidad * float64(cantidad)
		}
	}

	var res Resultado
	for _, req := range requerido {
		res.Requisitos = append(res.Requisitos, *req)
	}
	sort.Slice(res.Requisitos, func(i, j int) bool {
		return res.Requisitos[i].IngredienteID < res.Requisitos[j].IngredienteID
	})

	for _, req := range res.Requisitos {
		switch {
		case req.Disponible < req.Requerido:
			res.Faltantes = append(res.Faltantes, fmt.Sprintf(
				"%s: se necesitan %g %s, hay %g", req.Nombre, req.Requerido, req.Unidad, req.Disponible))
		case req.Restante() < umbral:
			res.Avisos = append(res.Avisos, fmt.Sprintf(
				"%s: quedarán %g %s en stock", req.Nombre, req.Restante(), req.Unidad))
		}
	}
	return res
}

package models

import (
	"encoding/json"
)

type Plato struct {
	ID           int                `json:"id"`
	Nombre       string             `json:"nombre"`
	Descripcion  string             `json:"descripcion"`
	Precio       float64            `json:"precio"`
	ImagenURL    string             `json:"imagen_url,omitempty"`
	Categoria    string             `json:"categoria"`
	Activo       bool               `json:"activo"`
	Ingredientes []IngredientePlato `json:"ingredientes,omitempty"`
}

// IngredientePlato is the per-serving quantity of one ingredient in a dish.
type IngredientePlato struct {
	IngredienteID int     `json:"ingrediente_id"`
	Nombre        string  `json:"nombre"`
	Cantidad      float64 `json:"cantidad"`
	Unidad        string  `json:"unidad"`
}

type Ingrediente struct {
	ID     int     `json:"id"`
	Nombre string  `json:"nombre"`
	Stock  float64 `json:"stock"`
	Unidad string  `json:"unidad"`
}

type Zona struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Activa bool   `json:"activa"`
}

// PlatoRef is a dish reference inside a daily menu. The backend serves it in
// two shapes — a nested object or flattened "<campo>_id"/"<campo>_nombre"
// fields — so MenuDia normalizes both into this one form at decode time.
type PlatoRef struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// MenuDia is the menu-of-the-day: a main dish, drink and dessert offered on a
// specific date at a fixed price, with a limited quantity.
type MenuDia struct {
	ID        int      `json:"id"`
	Fecha     string   `json:"fecha"`
	Principal PlatoRef `json:"principal"`
	Bebida    PlatoRef `json:"bebida"`
	Postre    PlatoRef `json:"postre"`
	Precio    float64  `json:"precio"`
	Cantidad  int      `json:"cantidad"`
}

// menuDiaWire carries every shape the backend has been seen to emit for a
// daily menu. Normalization happens here, once, instead of at render sites.
type menuDiaWire struct {
	ID    int    `json:"id"`
	Fecha string `json:"fecha"`

	Principal *PlatoRef `json:"principal"`
	Bebida    *PlatoRef `json:"bebida"`
	Postre    *PlatoRef `json:"postre"`

	PrincipalID     int    `json:"principal_id"`
	PrincipalNombre string `json:"principal_nombre"`
	BebidaID        int    `json:"bebida_id"`
	BebidaNombre    string `json:"bebida_nombre"`
	PostreID        int    `json:"postre_id"`
	PostreNombre    string `json:"postre_nombre"`

	Precio   float64 `json:"precio"`
	Cantidad int     `json:"cantidad"`
}

func (m *MenuDia) UnmarshalJSON(data []byte) error {
	var w menuDiaWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.ID = w.ID
	m.Fecha = w.Fecha
	m.Precio = w.Precio
	m.Cantidad = w.Cantidad
	m.Principal = normalizeRef(w.Principal, w.PrincipalID, w.PrincipalNombre)
	m.Bebida = normalizeRef(w.Bebida, w.BebidaID, w.BebidaNombre)
	m.Postre = normalizeRef(w.Postre, w.PostreID, w.PostreNombre)
	return nil
}

func normalizeRef(nested *PlatoRef, id int, nombre string) PlatoRef {
	if nested != nil {
		return *nested
	}
	return PlatoRef{ID: id, Nombre: nombre}
}

// MenuDiaRequest is the admin payload for creating or updating a daily menu.
type MenuDiaRequest struct {
	Fecha       string  `json:"fecha" binding:"required"`
	PrincipalID int     `json:"principal_id" binding:"required"`
	BebidaID    int     `json:"bebida_id" binding:"required"`
	PostreID    int     `json:"postre_id" binding:"required"`
	Precio      float64 `json:"precio" binding:"required,gt=0"`
	Cantidad    int     `json:"cantidad" binding:"required,min=1"`
}

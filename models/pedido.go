package models

import (
	"time"
)

// Pedido mirrors the backend's order record. Id and tracking token are
// server-assigned; the timestamps stay nil until the backend observes the
// matching transition.
type Pedido struct {
	ID         int          `json:"id"`
	Token      string       `json:"token"`
	ClienteID  int          `json:"cliente_id"`
	Estado     Estado       `json:"estado"`
	Items      []ItemPedido `json:"items"`
	ZonaID     int          `json:"zona_id"`
	Direccion  string       `json:"direccion"`
	Lat        *float64     `json:"lat,omitempty"`
	Lng        *float64     `json:"lng,omitempty"`
	MetodoPago string       `json:"metodo_pago"`
	Pagado     bool         `json:"pagado"`
	Total      float64      `json:"total"`

	CreadoEn     time.Time  `json:"creado_en"`
	ConfirmadoEn *time.Time `json:"confirmado_en,omitempty"`
	ListoEn      *time.Time `json:"listo_en,omitempty"`
	DespachadoEn *time.Time `json:"despachado_en,omitempty"`
	EntregadoEn  *time.Time `json:"entregado_en,omitempty"`
}

type ItemPedido struct {
	PlatoID     int      `json:"plato_id"`
	PlatoNombre string   `json:"plato_nombre"`
	Cantidad    int      `json:"cantidad"`
	Precio      float64  `json:"precio"`
	Exclusiones []string `json:"exclusiones,omitempty"`
}

// PedidoRequest is the checkout payload sent to POST /pedidos.
type PedidoRequest struct {
	Items      []ItemPedidoRequest `json:"items" binding:"required,min=1,dive"`
	ZonaID     int                 `json:"zona_id" binding:"required"`
	Direccion  string              `json:"direccion" binding:"required"`
	Lat        *float64            `json:"lat,omitempty"`
	Lng        *float64            `json:"lng,omitempty"`
	MetodoPago string              `json:"metodo_pago" binding:"required,oneof=efectivo tarjeta transferencia"`
}

type ItemPedidoRequest struct {
	PlatoID     int      `json:"plato_id" binding:"required"`
	Cantidad    int      `json:"cantidad" binding:"required,min=1"`
	Exclusiones []string `json:"exclusiones,omitempty"`
}

// PedidoCreado is what checkout returns to the caller: enough to track the
// order without an authenticated session.
type PedidoCreado struct {
	ID     int     `json:"id"`
	Token  string  `json:"token"`
	Estado Estado  `json:"estado"`
	Total  float64 `json:"total"`
}

// Tracking is the public view of an order plus the computed timeline hints.
type Tracking struct {
	Pedido    Pedido   `json:"pedido"`
	Indice    int      `json:"indice"`
	Cancelado bool     `json:"cancelado"`
	Pasos     []Estado `json:"pasos"`
}

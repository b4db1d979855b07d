package models

import (
	"errors"
	"fmt"
)

// Estado is an order status as the backend reports it. The backend owns every
// transition; the console only requests them and renders the result.
type Estado string

const (
	EstadoPendiente        Estado = "Pendiente"
	EstadoConfirmado       Estado = "Confirmado"
	EstadoEnCocina         Estado = "En Cocina"
	EstadoListoParaEntrega Estado = "Listo para Entrega"
	EstadoEnReparto        Estado = "En Reparto"
	EstadoEntregado        Estado = "Entregado"
	EstadoCancelado        Estado = "Cancelado"
)

// Cadena is the ordered non-terminal status chain used for the six-step
// progress bar. Cancelado is terminal and never part of the chain.
var Cadena = []Estado{
	EstadoPendiente,
	EstadoConfirmado,
	EstadoEnCocina,
	EstadoListoParaEntrega,
	EstadoEnReparto,
	EstadoEntregado,
}

var ErrEstadoDesconocido = errors.New("estado desconocido")

func (e Estado) String() string { return string(e) }

func (e Estado) IsValid() bool {
	if e == EstadoCancelado {
		return true
	}
	for _, s := range Cadena {
		if e == s {
			return true
		}
	}
	return false
}

func (e Estado) IsTerminal() bool {
	return e == EstadoEntregado || e == EstadoCancelado
}

// Progreso holds the render hints for an order timeline: the zero-based index
// of the current status within Cadena, or the cancelled flag instead of an
// index when the order is terminal-cancelled.
type Progreso struct {
	Indice    int
	Cancelado bool
}

// ProgressOf computes the timeline position for a status. An unknown status is
// an error rather than a silent "just started" default.
func ProgressOf(e Estado) (Progreso, error) {
	if e == EstadoCancelado {
		return Progreso{Indice: -1, Cancelado: true}, nil
	}
	for i, s := range Cadena {
		if e == s {
			return Progreso{Indice: i}, nil
		}
	}
	return Progreso{}, fmt.Errorf("%w: %q", ErrEstadoDesconocido, string(e))
}

// Completed reports whether step i of the six-step bar renders as completed or
// current. A cancelled order never lights any step.
func (p Progreso) Completed(i int) bool {
	return !p.Cancelado && i >= 0 && i <= p.Indice
}

// Next returns the status that follows e in the chain, or false when e is the
// last step, cancelled, or unknown. Used by the kitchen and delivery boards to
// offer the single forward action; the backend still validates the request.
func Next(e Estado) (Estado, bool) {
	for i, s := range Cadena {
		if e == s && i+1 < len(Cadena) {
			return Cadena[i+1], true
		}
	}
	return "", false
}

package stores

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"ordering-console/backend"
	"ordering-console/models"
)

type Pedidos struct {
	api *backend.Client

	mu    sync.RWMutex
	items []models.Pedido
}

func NewPedidos(api *backend.Client) *Pedidos {
	return &Pedidos{api: api}
}

// Load fetches the full order collection. Desde/hasta are the only query
// parameters the backend supports; everything else filters client-side.
func (s *Pedidos) Load(ctx context.Context) error {
	return s.LoadRange(ctx, nil, nil)
}

func (s *Pedidos) LoadRange(ctx context.Context, desde, hasta *time.Time) error {
	path := "/admin/pedidos"
	q := url.Values{}
	if desde != nil {
		q.Set("desde", desde.Format("2006-01-02"))
	}
	if hasta != nil {
		q.Set("hasta", hasta.Format("2006-01-02"))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var items []models.Pedido
	if err := s.api.Get(ctx, path, &items); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Pedidos) Items() []models.Pedido {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Pedido, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Pedidos) Update(ctx context.Context, id int, p models.Pedido) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Put(ctx, fmt.Sprintf("/admin/pedidos/%d", id), p, nil)
	}, s.Load)
}

func (s *Pedidos) Delete(ctx context.Context, id int) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Delete(ctx, fmt.Sprintf("/admin/pedidos/%d", id))
	}, s.Load)
}

// Confirmar, Cancelar and Reasignar hit the named transition endpoints;
// SetEstado is the admin force-set. All four only request the transition —
// the backend decides, and the re-fetch shows whatever it decided.
func (s *Pedidos) Confirmar(ctx context.Context, id int) error {
	return s.patch(ctx, id, "confirmar", nil)
}

func (s *Pedidos) Cancelar(ctx context.Context, id int) error {
	return s.patch(ctx, id, "cancelar", nil)
}

func (s *Pedidos) Reasignar(ctx context.Context, id, zonaID int) error {
	return s.patch(ctx, id, "reasignar", map[string]int{"zona_id": zonaID})
}

func (s *Pedidos) SetEstado(ctx context.Context, id int, estado models.Estado) error {
	return s.patch(ctx, id, "estado", map[string]string{"estado": string(estado)})
}

func (s *Pedidos) patch(ctx context.Context, id int, action string, body any) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Patch(ctx, fmt.Sprintf("/admin/pedidos/%d/%s", id, action), body, nil)
	}, s.Load)
}

// FilterEstado returns the snapshot's orders in any of the given statuses.
func (s *Pedidos) FilterEstado(estados ...models.Estado) []models.Pedido {
	var out []models.Pedido
	for _, p := range s.Items() {
		for _, e := range estados {
			if p.Estado == e {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// FilterZona returns the snapshot's orders for one delivery zone.
func (s *Pedidos) FilterZona(zonaID int) []models.Pedido {
	var out []models.Pedido
	for _, p := range s.Items() {
		if p.ZonaID == zonaID {
			out = append(out, p)
		}
	}
	return out
}

// FilterFechas filters the snapshot by creation date, inclusive on both ends.
func (s *Pedidos) FilterFechas(desde, hasta time.Time) []models.Pedido {
	var out []models.Pedido
	for _, p := range s.Items() {
		if p.CreadoEn.Before(desde) || p.CreadoEn.After(hasta) {
			continue
		}
		out = append(out, p)
	}
	return out
}

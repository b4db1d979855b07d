package stores

import (
	"context"
	"fmt"
	"sync"

	"ordering-console/backend"
	"ordering-console/models"
)

type Empleados struct {
	api *backend.Client

	mu    sync.RWMutex
	items []models.Empleado
}

func NewEmpleados(api *backend.Client) *Empleados {
	return &Empleados{api: api}
}

func (s *Empleados) Load(ctx context.Context) error {
	var items []models.Empleado
	if err := s.api.Get(ctx, "/admin/empleados", &items); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Empleados) Items() []models.Empleado {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Empleado, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Empleados) Create(ctx context.Context, e models.Empleado) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Post(ctx, "/admin/empleados", e, nil)
	}, s.Load)
}

func (s *Empleados) Update(ctx context.Context, id int, e models.Empleado) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Put(ctx, fmt.Sprintf("/admin/empleados/%d", id), e, nil)
	}, s.Load)
}

func (s *Empleados) Delete(ctx context.Context, id int) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Delete(ctx, fmt.Sprintf("/admin/empleados/%d", id))
	}, s.Load)
}

func (s *Empleados) SearchNombre(q string) []models.Empleado {
	if q == "" {
		return s.Items()
	}
	var out []models.Empleado
	for _, e := range s.Items() {
		if containsFold(e.Nombre, q) || containsFold(e.Email, q) {
			out = append(out, e)
		}
	}
	return out
}

type Clientes struct {
	api *backend.Client

	mu    sync.RWMutex
	items []models.Cliente
}

func NewClientes(api *backend.Client) *Clientes {
	return &Clientes{api: api}
}

func (s *Clientes) Load(ctx context.Context) error {
	var items []models.Cliente
	if err := s.api.Get(ctx, "/admin/clientes", &items); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Clientes) Items() []models.Cliente {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Cliente, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Clientes) Create(ctx context.Context, cl models.Cliente) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Post(ctx, "/admin/clientes", cl, nil)
	}, s.Load)
}

func (s *Clientes) Update(ctx context.Context, id int, cl models.Cliente) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Put(ctx, fmt.Sprintf("/admin/clientes/%d", id), cl, nil)
	}, s.Load)
}

func (s *Clientes) Delete(ctx context.Context, id int) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Delete(ctx, fmt.Sprintf("/admin/clientes/%d", id))
	}, s.Load)
}

func (s *Clientes) SearchNombre(q string) []models.Cliente {
	if q == "" {
		return s.Items()
	}
	var out []models.Cliente
	for _, cl := range s.Items() {
		if containsFold(cl.Nombre, q) || containsFold(cl.Email, q) {
			out = append(out, cl)
		}
	}
	return out
}

package stores

import (
	"context"
	"fmt"
	"sync"

	"ordering-console/backend"
	"ordering-console/models"
)

type Platos struct {
	api *backend.Client

	mu    sync.RWMutex
	items []models.Plato
}

func NewPlatos(api *backend.Client) *Platos {
	return &Platos{api: api}
}

func (s *Platos) Load(ctx context.Context) error {
	var items []models.Plato
	if err := s.api.Get(ctx, "/admin/platos", &items); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Platos) Items() []models.Plato {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Plato, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Platos) Create(ctx context.Context, p models.Plato) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Post(ctx, "/admin/platos", p, nil)
	}, s.Load)
}

func (s *Platos) Update(ctx context.Context, id int, p models.Plato) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Put(ctx, fmt.Sprintf("/admin/platos/%d", id), p, nil)
	}, s.Load)
}

func (s *Platos) Delete(ctx context.Context, id int) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Delete(ctx, fmt.Sprintf("/admin/platos/%d", id))
	}, s.Load)
}

func (s *Platos) SearchNombre(q string) []models.Plato {
	if q == "" {
		return s.Items()
	}
	var out []models.Plato
	for _, p := range s.Items() {
		if containsFold(p.Nombre, q) {
			out = append(out, p)
		}
	}
	return out
}

type Ingredientes struct {
	api *backend.Client

	mu    sync.RWMutex
	items []models.Ingrediente
}

func NewIngredientes(api *backend.Client) *Ingredientes {
	return &Ingredientes{api: api}
}

func (s *Ingredientes) Load(ctx context.Context) error {
	var items []models.Ingrediente
	if err := s.api.Get(ctx, "/admin/ingredientes", &items); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Ingredientes) Items() []models.Ingrediente {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ingrediente, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Ingredientes) Create(ctx context.Context, ing models.Ingrediente) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Post(ctx, "/admin/ingredientes", ing, nil)
	}, s.Load)
}

func (s *Ingredientes) Update(ctx context.Context, id int, ing models.Ingrediente) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Put(ctx, fmt.Sprintf("/admin/ingredientes/%d", id), ing, nil)
	}, s.Load)
}

func (s *Ingredientes) Delete(ctx context.Context, id int) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Delete(ctx, fmt.Sprintf("/admin/ingredientes/%d", id))
	}, s.Load)
}

type Menus struct {
	api *backend.Client

	mu    sync.RWMutex
	items []models.MenuDia
}

func NewMenus(api *backend.Client) *Menus {
	return &Menus{api: api}
}

func (s *Menus) Load(ctx context.Context) error {
	var items []models.MenuDia
	if err := s.api.Get(ctx, "/admin/menu", &items); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Menus) Items() []models.MenuDia {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MenuDia, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Menus) Create(ctx context.Context, m models.MenuDiaRequest) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Post(ctx, "/admin/menu", m, nil)
	}, s.Load)
}

func (s *Menus) Update(ctx context.Context, id int, m models.MenuDiaRequest) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Put(ctx, fmt.Sprintf("/admin/menu/%d", id), m, nil)
	}, s.Load)
}

func (s *Menus) Delete(ctx context.Context, id int) error {
	return mutate(ctx, func(ctx context.Context) error {
		return s.api.Delete(ctx, fmt.Sprintf("/admin/menu/%d", id))
	}, s.Load)
}

type Zonas struct {
	api *backend.Client

	mu    sync.RWMutex
	items []models.Zona
}

func NewZonas(api *backend.Client) *Zonas {
	return &Zonas{api: api}
}

// Load reads zones from the public catalog; there is no admin CRUD for them.
func (s *Zonas) Load(ctx context.Context) error {
	var items []models.Zona
	if err := s.api.Get(ctx, "/catalogo/zonas", &items); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Zonas) Items() []models.Zona {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Zona, len(s.items))
	copy(out, s.items)
	return out
}

package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering-console/backend"
	"ordering-console/models"
)

// fakeBackend counts list fetches and lets each test script the mutation
// outcome, so the one-refetch-per-success contract is observable.
type fakeBackend struct {
	mu         sync.Mutex
	listCalls  int
	pedidos    []models.Pedido
	failPatch  bool
	lastPath   string
	lastMethod string
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastPath = r.URL.Path
		f.lastMethod = r.Method

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/pedidos":
			f.listCalls++
			json.NewEncoder(w).Encode(f.pedidos)
		case r.Method == http.MethodPatch:
			if f.failPatch {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"detail":"transición no permitida"}`))
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusOK)
		}
	})
}

func newPedidosFixture(t *testing.T, f *fakeBackend) (*Pedidos, func()) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	return NewPedidos(backend.New(srv.URL, time.Second)), srv.Close
}

func TestPedidosSuccessfulTransitionRefetchesOnce(t *testing.T) {
	f := &fakeBackend{pedidos: []models.Pedido{{ID: 1, Estado: models.EstadoPendiente}}}
	pedidos, done := newPedidosFixture(t, f)
	defer done()

	require.NoError(t, pedidos.Load(context.Background()))
	require.Equal(t, 1, f.listCalls)

	f.pedidos = []models.Pedido{{ID: 1, Estado: models.EstadoConfirmado}}
	require.NoError(t, pedidos.Confirmar(context.Background(), 1))

	assert.Equal(t, 2, f.listCalls, "exactly one re-fetch after a successful mutation")
	require.Len(t, pedidos.Items(), 1)
	assert.Equal(t, models.EstadoConfirmado, pedidos.Items()[0].Estado)
	assert.Equal(t, "/admin/pedidos", f.lastPath)
}

func TestPedidosFailedTransitionLeavesSnapshotUntouched(t *testing.T) {
	f := &fakeBackend{
		pedidos:   []models.Pedido{{ID: 1, Estado: models.EstadoPendiente}},
		failPatch: true,
	}
	pedidos, done := newPedidosFixture(t, f)
	defer done()

	require.NoError(t, pedidos.Load(context.Background()))
	before := pedidos.Items()

	err := pedidos.SetEstado(context.Background(), 1, models.EstadoEntregado)
	require.Error(t, err)

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "transición no permitida", apiErr.Message)

	assert.Equal(t, before, pedidos.Items(), "snapshot unchanged on failure")
	assert.Equal(t, 1, f.listCalls, "no re-fetch after a failed mutation")
}

func TestPedidosLoadRangeSendsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	pedidos := NewPedidos(backend.New(srv.URL, time.Second))
	desde := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, pedidos.LoadRange(context.Background(), &desde, &hasta))

	assert.Equal(t, "desde=2025-03-01&hasta=2025-03-31", gotQuery)
}

func TestPedidosFilters(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f := &fakeBackend{pedidos: []models.Pedido{
		{ID: 1, Estado: models.EstadoConfirmado, ZonaID: 1, CreadoEn: base},
		{ID: 2, Estado: models.EstadoEnCocina, ZonaID: 2, CreadoEn: base.AddDate(0, 0, 5)},
		{ID: 3, Estado: models.EstadoCancelado, ZonaID: 1, CreadoEn: base.AddDate(0, 0, 10)},
	}}
	pedidos, done := newPedidosFixture(t, f)
	defer done()
	require.NoError(t, pedidos.Load(context.Background()))

	activos := pedidos.FilterEstado(models.EstadoConfirmado, models.EstadoEnCocina)
	require.Len(t, activos, 2)
	assert.Equal(t, 1, activos[0].ID)
	assert.Equal(t, 2, activos[1].ID)

	zona1 := pedidos.FilterZona(1)
	require.Len(t, zona1, 2)

	rango := pedidos.FilterFechas(base.AddDate(0, 0, 1), base.AddDate(0, 0, 7))
	require.Len(t, rango, 1)
	assert.Equal(t, 2, rango[0].ID)
}

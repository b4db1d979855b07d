package controllers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering-console/backend"
	"ordering-console/logger"
	"ordering-console/middlewares"
	"ordering-console/models"
	"ordering-console/poll"
	"ordering-console/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testLog = logger.New("ordering-console-test")

// newConsole wires a minimal copy of the production routes against the given
// upstream, mirroring main.go.
func newConsole(t *testing.T, upstream string) *gin.Engine {
	t.Helper()

	api := backend.New(upstream, time.Second)
	sessions := session.NewManager("", false, 3600)

	tracker := poll.NewRegistry(context.Background(), func(token string) poll.FetchFunc {
		return func(ctx context.Context) (models.Pedido, error) {
			var p models.Pedido
			if err := api.Get(ctx, "/pedidos/"+token+"/track", &p); err != nil {
				return models.Pedido{}, err
			}
			return p, nil
		}
	}, time.Hour, time.Hour)
	t.Cleanup(tracker.Close)

	auth := NewAuthController(api, sessions, testLog)
	public := NewPublicController(api, tracker, testLog)
	kitchen := NewKitchenController(api, testLog)
	admin := NewAdminController(api, testLog, 20)

	r := gin.New()
	r.Use(middlewares.SessionMiddleware(sessions))

	r.POST("/auth/login", auth.Login)
	r.GET("/track/:token", public.Track)
	r.POST("/pedidos", public.Checkout)

	cocina := r.Group("/kitchen")
	cocina.Use(middlewares.RequireRole(models.RolCocina, models.RolAdmin))
	cocina.GET("/pedidos", kitchen.Board)
	cocina.PATCH("/pedidos/:id/estado", kitchen.Advance)

	adm := r.Group("/admin")
	adm.Use(middlewares.RequireRole(models.RolAdmin))
	adm.POST("/menu", admin.CreateMenu)

	return r
}

func withSession(req *http.Request, rol string) {
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "tok-test"})
	blob, _ := json.Marshal(models.Usuario{ID: 1, Rol: rol, Nombre: "Test"})
	req.AddCookie(&http.Cookie{
		Name:  "session_user",
		Value: base64.RawURLEncoding.EncodeToString(blob),
	})
}

func TestRoleGate(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer upstream.Close()
	r := newConsole(t, upstream.URL)

	// no session
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/kitchen/pedidos", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// wrong role
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/kitchen/pedidos", nil)
	withSession(req, models.RolCliente)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// kitchen role passes
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/kitchen/pedidos", nil)
	withSession(req, models.RolCocina)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKitchenBoardFiltersStatuses(t *testing.T) {
	pedidos := []models.Pedido{
		{ID: 1, Estado: models.EstadoPendiente},
		{ID: 2, Estado: models.EstadoConfirmado},
		{ID: 3, Estado: models.EstadoEnCocina},
		{ID: 4, Estado: models.EstadoEntregado},
	}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pedidos)
	}))
	defer upstream.Close()
	r := newConsole(t, upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/kitchen/pedidos", nil)
	withSession(req, models.RolCocina)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var board []models.Pedido
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	require.Len(t, board, 2)
	assert.Equal(t, 2, board[0].ID)
	assert.Equal(t, 3, board[1].ID)
}

func TestKitchenAdvanceProxiesTransition(t *testing.T) {
	var patched string
	var patchBody []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patched = r.URL.Path
			patchBody, _ = json.Marshal(decodeBody(r))
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer upstream.Close()
	r := newConsole(t, upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/kitchen/pedidos/7/estado",
		strings.NewReader(`{"estado":"Listo para Entrega"}`))
	withSession(req, models.RolCocina)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/admin/pedidos/7/estado", patched)
	assert.JSONEq(t, `{"estado":"Listo para Entrega"}`, string(patchBody))
}

func TestKitchenAdvanceRejectsForeignStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the backend must not be called for an invalid kitchen status")
	}))
	defer upstream.Close()
	r := newConsole(t, upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/kitchen/pedidos/7/estado",
		strings.NewReader(`{"estado":"Entregado"}`))
	withSession(req, models.RolCocina)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackComputesProgress(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pedidos/tok-xyz/track", r.URL.Path)
		json.NewEncoder(w).Encode(models.Pedido{ID: 9, Token: "tok-xyz", Estado: models.EstadoEnCocina})
	}))
	defer upstream.Close()
	r := newConsole(t, upstream.URL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/track/tok-xyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var tracking models.Tracking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tracking))
	assert.Equal(t, 2, tracking.Indice)
	assert.False(t, tracking.Cancelado)
	assert.Len(t, tracking.Pasos, 6)
}

func TestCheckoutSurfacesBackendDetail(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"zona sin cobertura"}`))
	}))
	defer upstream.Close()
	r := newConsole(t, upstream.URL)

	body := `{"items":[{"plato_id":1,"cantidad":2}],"zona_id":3,"direccion":"Calle 1","metodo_pago":"efectivo"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/pedidos", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "zona sin cobertura")
}

// decodeBody re-decodes a JSON request body into a generic map.
func decodeBody(r *http.Request) map[string]any {
	var m map[string]any
	json.NewDecoder(r.Body).Decode(&m)
	return m
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordering-console/backend"
	"ordering-console/logger"
	"ordering-console/middlewares"
	"ordering-console/models"
	"ordering-console/poll"
	"ordering-console/stores"
)

// PublicController serves the unauthenticated surface: the catalog, checkout
// and the order-tracking page.
type PublicController struct {
	api     *backend.Client
	tracker *poll.Registry
	log     *logger.Logger
}

func NewPublicController(api *backend.Client, tracker *poll.Registry, log *logger.Logger) *PublicController {
	return &PublicController{api: api, tracker: tracker, log: log}
}

func (p *PublicController) Zonas(c *gin.Context) {
	zonas := stores.NewZonas(p.api)
	if err := zonas.Load(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, zonas.Items())
}

func (p *PublicController) Platos(c *gin.Context) {
	var platos []models.Plato
	if err := p.api.Get(c.Request.Context(), "/catalogo/platos", &platos); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, platos)
}

func (p *PublicController) Menus(c *gin.Context) {
	var menus []models.MenuDia
	if err := p.api.Get(c.Request.Context(), "/catalogo/menus", &menus); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

func (p *PublicController) MenuSemanal(c *gin.Context) {
	var menus []models.MenuDia
	if err := p.api.Get(c.Request.Context(), "/catalogo/menu-semanal", &menus); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

// Checkout places an order. The id and tracking token come back from the
// backend; the console never assigns either.
func (p *PublicController) Checkout(c *gin.Context) {
	defer func() { middlewares.RecordOperation("pedidos", "checkout", ok2xx(c)) }()

	var req models.PedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var creado models.PedidoCreado
	if err := sessionClient(c, p.api).Post(c.Request.Context(), "/pedidos", req, &creado); err != nil {
		p.log.Error(c.GetHeader("X-Request-ID"), "checkout_failed", "backend rejected order", err)
		fail(c, err)
		return
	}

	p.log.Info(c.GetHeader("X-Request-ID"), "checkout_ok", "order placed: "+creado.Token)
	c.JSON(http.StatusCreated, creado)
}

// Track serves the public tracking page from the poll watcher's snapshot, so
// repeat visits don't hammer the backend and a stale in-flight response can
// never replace a newer one.
func (p *PublicController) Track(c *gin.Context) {
	token := c.Param("token")
	w := p.tracker.Track(token)

	latest, haveData := w.Latest()
	if !haveData {
		// first visitor for this token pays one synchronous fetch
		w.Refresh(c.Request.Context())
		if latest, haveData = w.Latest(); !haveData {
			err := w.Err()
			if err == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "pedido no encontrado"})
				return
			}
			fail(c, err)
			return
		}
	}

	prog, err := models.ProgressOf(latest.Estado)
	if err != nil {
		// the backend sent a status this build does not know; surfacing it
		// beats rendering a wrong timeline
		p.log.Error(c.GetHeader("X-Request-ID"), "track_unknown_estado", "unrecognized status from backend", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.Tracking{
		Pedido:    latest,
		Indice:    prog.Indice,
		Cancelado: prog.Cancelado,
		Pasos:     models.Cadena,
	})
}

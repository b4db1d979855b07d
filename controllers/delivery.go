package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ordering-console/backend"
	"ordering-console/logger"
	"ordering-console/middlewares"
	"ordering-console/models"
	"ordering-console/stores"
)

// DeliveryController is the reparto board: orders ready to leave or already
// on the road, optionally narrowed to the rider's zone.
type DeliveryController struct {
	api *backend.Client
	log *logger.Logger
}

func NewDeliveryController(api *backend.Client, log *logger.Logger) *DeliveryController {
	return &DeliveryController{api: api, log: log}
}

func (d *DeliveryController) Board(c *gin.Context) {
	pedidos := stores.NewPedidos(sessionClient(c, d.api))
	if err := pedidos.Load(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}

	board := pedidos.FilterEstado(models.EstadoListoParaEntrega, models.EstadoEnReparto)
	if zona := c.Query("zona"); zona != "" {
		zonaID, err := strconv.Atoi(zona)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "zona inválida"})
			return
		}
		filtered := board[:0:0]
		for _, p := range board {
			if p.ZonaID == zonaID {
				filtered = append(filtered, p)
			}
		}
		board = filtered
	}
	c.JSON(http.StatusOK, board)
}

func (d *DeliveryController) Advance(c *gin.Context) {
	defer func() { middlewares.RecordOperation("pedidos", "delivery_advance", ok2xx(c)) }()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de pedido inválido"})
		return
	}

	var req struct {
		Estado models.Estado `json:"estado" binding:"required,oneof='En Reparto' 'Entregado'"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pedidos := stores.NewPedidos(sessionClient(c, d.api))
	if err := pedidos.SetEstado(c.Request.Context(), id, req.Estado); err != nil {
		d.log.Error(c.GetHeader("X-Request-ID"), "delivery_advance_failed", "backend rejected transition", err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, pedidos.FilterEstado(models.EstadoListoParaEntrega, models.EstadoEnReparto))
}

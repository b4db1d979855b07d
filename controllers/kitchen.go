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

// KitchenController is the cocina board: confirmed orders waiting for the
// kitchen plus the two forward transitions the kitchen may request.
type KitchenController struct {
	api *backend.Client
	log *logger.Logger
}

func NewKitchenController(api *backend.Client, log *logger.Logger) *KitchenController {
	return &KitchenController{api: api, log: log}
}

func (k *KitchenController) Board(c *gin.Context) {
	pedidos := stores.NewPedidos(sessionClient(c, k.api))
	if err := pedidos.Load(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pedidos.FilterEstado(models.EstadoConfirmado, models.EstadoEnCocina))
}

// Advance requests one of the kitchen's transitions. The backend is the
// authority: on rejection the board is left as it was and the message is
// surfaced for the toast.
func (k *KitchenController) Advance(c *gin.Context) {
	defer func() { middlewares.RecordOperation("pedidos", "kitchen_advance", ok2xx(c)) }()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de pedido inválido"})
		return
	}

	var req struct {
		Estado models.Estado `json:"estado" binding:"required,oneof='En Cocina' 'Listo para Entrega'"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pedidos := stores.NewPedidos(sessionClient(c, k.api))
	if err := pedidos.SetEstado(c.Request.Context(), id, req.Estado); err != nil {
		k.log.Error(c.GetHeader("X-Request-ID"), "kitchen_advance_failed", "backend rejected transition", err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, pedidos.FilterEstado(models.EstadoConfirmado, models.EstadoEnCocina))
}

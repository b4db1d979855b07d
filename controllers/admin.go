package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ordering-console/backend"
	"ordering-console/inventory"
	"ordering-console/logger"
	"ordering-console/middlewares"
	"ordering-console/models"
	"ordering-console/stores"
)

// AdminController exposes full CRUD over every backend resource plus the
// order transition requests and menu creation with the stock pre-check.
type AdminController struct {
	api      *backend.Client
	log      *logger.Logger
	lowStock float64
}

func NewAdminController(api *backend.Client, log *logger.Logger, lowStock float64) *AdminController {
	return &AdminController{api: api, log: log, lowStock: lowStock}
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return 0, false
	}
	return id, true
}

// ----- pedidos -----

func (a *AdminController) ListPedidos(c *gin.Context) {
	pedidos := stores.NewPedidos(sessionClient(c, a.api))

	desde, hasta, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := pedidos.LoadRange(c.Request.Context(), desde, hasta); err != nil {
		fail(c, err)
		return
	}

	if estado := c.Query("estado"); estado != "" {
		c.JSON(http.StatusOK, pedidos.FilterEstado(models.Estado(estado)))
		return
	}
	c.JSON(http.StatusOK, pedidos.Items())
}

// DetallePedido feeds the tracking modal: one order plus its timeline hints.
func (a *AdminController) DetallePedido(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var pedido models.Pedido
	if err := sessionClient(c, a.api).Get(c.Request.Context(), fmt.Sprintf("/admin/pedidos/%d", id), &pedido); err != nil {
		fail(c, err)
		return
	}

	prog, err := models.ProgressOf(pedido.Estado)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Tracking{
		Pedido:    pedido,
		Indice:    prog.Indice,
		Cancelado: prog.Cancelado,
		Pasos:     models.Cadena,
	})
}

func (a *AdminController) UpdatePedido(c *gin.Context) {
	defer func() { middlewares.RecordOperation("pedidos", "update", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.Pedido
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pedidos := stores.NewPedidos(sessionClient(c, a.api))
	if err := pedidos.Update(c.Request.Context(), id, p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pedidos.Items())
}

func (a *AdminController) DeletePedido(c *gin.Context) {
	defer func() { middlewares.RecordOperation("pedidos", "delete", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	pedidos := stores.NewPedidos(sessionClient(c, a.api))
	if err := pedidos.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pedidos.Items())
}

func (a *AdminController) ConfirmarPedido(c *gin.Context) {
	a.transition(c, "confirmar", func(s *stores.Pedidos, id int) error {
		return s.Confirmar(c.Request.Context(), id)
	})
}

func (a *AdminController) CancelarPedido(c *gin.Context) {
	a.transition(c, "cancelar", func(s *stores.Pedidos, id int) error {
		return s.Cancelar(c.Request.Context(), id)
	})
}

func (a *AdminController) ReasignarPedido(c *gin.Context) {
	var req struct {
		ZonaID int `json:"zona_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.transition(c, "reasignar", func(s *stores.Pedidos, id int) error {
		return s.Reasignar(c.Request.Context(), id, req.ZonaID)
	})
}

// SetEstadoPedido is the admin force-set: any status, including Cancelado.
// The backend still has the last word.
func (a *AdminController) SetEstadoPedido(c *gin.Context) {
	var req struct {
		Estado models.Estado `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Estado.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estado desconocido: " + string(req.Estado)})
		return
	}
	a.transition(c, "estado", func(s *stores.Pedidos, id int) error {
		return s.SetEstado(c.Request.Context(), id, req.Estado)
	})
}

func (a *AdminController) transition(c *gin.Context, name string, op func(*stores.Pedidos, int) error) {
	defer func() { middlewares.RecordOperation("pedidos", name, ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	pedidos := stores.NewPedidos(sessionClient(c, a.api))
	if err := op(pedidos, id); err != nil {
		a.log.Error(c.GetHeader("X-Request-ID"), "transition_failed", "backend rejected "+name, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pedidos.Items())
}

// ----- empleados -----

func (a *AdminController) ListEmpleados(c *gin.Context) {
	empleados := stores.NewEmpleados(sessionClient(c, a.api))
	if err := empleados.Load(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, empleados.SearchNombre(c.Query("q")))
}

func (a *AdminController) CreateEmpleado(c *gin.Context) {
	defer func() { middlewares.RecordOperation("empleados", "create", ok2xx(c)) }()
	var e models.Empleado
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	empleados := stores.NewEmpleados(sessionClient(c, a.api))
	if err := empleados.Create(c.Request.Context(), e); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, empleados.Items())
}

func (a *AdminController) UpdateEmpleado(c *gin.Context) {
	defer func() { middlewares.RecordOperation("empleados", "update", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	var e models.Empleado
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	empleados := stores.NewEmpleados(sessionClient(c, a.api))
	if err := empleados.Update(c.Request.Context(), id, e); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, empleados.Items())
}

func (a *AdminController) DeleteEmpleado(c *gin.Context) {
	defer func() { middlewares.RecordOperation("empleados", "delete", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	empleados := stores.NewEmpleados(sessionClient(c, a.api))
	if err := empleados.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, empleados.Items())
}

// ----- clientes -----

func (a *AdminController) ListClientes(c *gin.Context) {
	clientes := stores.NewClientes(sessionClient(c, a.api))
	if err := clientes.Load(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes.SearchNombre(c.Query("q")))
}

func (a *AdminController) CreateCliente(c *gin.Context) {
	defer func() { middlewares.RecordOperation("clientes", "create", ok2xx(c)) }()
	var cl models.Cliente
	if err := c.ShouldBindJSON(&cl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clientes := stores.NewClientes(sessionClient(c, a.api))
	if err := clientes.Create(c.Request.Context(), cl); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, clientes.Items())
}

func (a *AdminController) UpdateCliente(c *gin.Context) {
	defer func() { middlewares.RecordOperation("clientes", "update", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cl models.Cliente
	if err := c.ShouldBindJSON(&cl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	clientes := stores.NewClientes(sessionClient(c, a.api))
	if err := clientes.Update(c.Request.Context(), id, cl); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes.Items())
}

func (a *AdminController) DeleteCliente(c *gin.Context) {
	defer func() { middlewares.RecordOperation("clientes", "delete", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	clientes := stores.NewClientes(sessionClient(c, a.api))
	if err := clientes.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes.Items())
}

// ----- platos -----

func (a *AdminController) ListPlatos(c *gin.Context) {
	platos := stores.NewPlatos(sessionClient(c, a.api))
	if err := platos.Load(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, platos.SearchNombre(c.Query("q")))
}

func (a *AdminController) CreatePlato(c *gin.Context) {
	defer func() { middlewares.RecordOperation("platos", "create", ok2xx(c)) }()
	var p models.Plato
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	platos := stores.NewPlatos(sessionClient(c, a.api))
	if err := platos.Create(c.Request.Context(), p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, platos.Items())
}

func (a *AdminController) UpdatePlato(c *gin.Context) {
	defer func() { middlewares.RecordOperation("platos", "update", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.Plato
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	platos := stores.NewPlatos(sessionClient(c, a.api))
	if err := platos.Update(c.Request.Context(), id, p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, platos.Items())
}

func (a *AdminController) DeletePlato(c *gin.Context) {
	defer func() { middlewares.RecordOperation("platos", "delete", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	platos := stores.NewPlatos(sessionClient(c, a.api))
	if err := platos.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, platos.Items())
}

// ----- ingredientes -----

func (a *AdminController) ListIngredientes(c *gin.Context) {
	ingredientes := stores.NewIngredientes(sessionClient(c, a.api))
	if err := ingredientes.Load(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredientes.Items())
}

func (a *AdminController) CreateIngrediente(c *gin.Context) {
	defer func() { middlewares.RecordOperation("ingredientes", "create", ok2xx(c)) }()
	var ing models.Ingrediente
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ingredientes := stores.NewIngredientes(sessionClient(c, a.api))
	if err := ingredientes.Create(c.Request.Context(), ing); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredientes.Items())
}

func (a *AdminController) UpdateIngrediente(c *gin.Context) {
	defer func() { middlewares.RecordOperation("ingredientes", "update", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	var ing models.Ingrediente
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ingredientes := stores.NewIngredientes(sessionClient(c, a.api))
	if err := ingredientes.Update(c.Request.Context(), id, ing); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredientes.Items())
}

func (a *AdminController) DeleteIngrediente(c *gin.Context) {
	defer func() { middlewares.RecordOperation("ingredientes", "delete", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	ingredientes := stores.NewIngredientes(sessionClient(c, a.api))
	if err := ingredientes.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredientes.Items())
}

// ----- menus -----

func (a *AdminController) ListMenus(c *gin.Context) {
	menus := stores.NewMenus(sessionClient(c, a.api))
	if err := menus.Load(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, menus.Items())
}

// CreateMenu reproduces the browser flow exactly: fetch the chosen dishes
// with their per-serving ingredients, run the stock pre-check, then issue one
// stock update per ingredient followed by the menu create. The sequence is
// NOT transactional — a failure midway leaves the earlier decrements applied,
// as in the source system. The backend is expected to re-validate anyway.
func (a *AdminController) CreateMenu(c *gin.Context) {
	defer func() { middlewares.RecordOperation("menu", "create", ok2xx(c)) }()

	var req models.MenuDiaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	api := sessionClient(c, a.api)
	ctx := c.Request.Context()

	var platos []models.Plato
	for _, id := range []int{req.PrincipalID, req.BebidaID, req.PostreID} {
		var p models.Plato
		if err := api.Get(ctx, fmt.Sprintf("/admin/platos/%d", id), &p); err != nil {
			fail(c, err)
			return
		}
		platos = append(platos, p)
	}

	ingredientes := stores.NewIngredientes(api)
	if err := ingredientes.Load(ctx); err != nil {
		fail(c, err)
		return
	}

	res := inventory.Check(platos, req.Cantidad, ingredientes.Items(), a.lowStock)
	if !res.Permitido() {
		c.JSON(http.StatusConflict, gin.H{"error": "stock insuficiente", "faltantes": res.Faltantes})
		return
	}

	stock := make(map[int]models.Ingrediente, len(ingredientes.Items()))
	for _, ing := range ingredientes.Items() {
		stock[ing.ID] = ing
	}
	for _, requisito := range res.Requisitos {
		ing := stock[requisito.IngredienteID]
		ing.Stock = requisito.Restante()
		if err := api.Put(ctx, fmt.Sprintf("/admin/ingredientes/%d", ing.ID), ing, nil); err != nil {
			a.log.Error(c.GetHeader("X-Request-ID"), "stock_decrement_failed",
				"decrement sequence aborted midway, earlier decrements remain applied", err)
			fail(c, err)
			return
		}
	}

	menus := stores.NewMenus(api)
	if err := menus.Create(ctx, req); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"menus": menus.Items(), "avisos": res.Avisos})
}

func (a *AdminController) UpdateMenu(c *gin.Context) {
	defer func() { middlewares.RecordOperation("menu", "update", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.MenuDiaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	menus := stores.NewMenus(sessionClient(c, a.api))
	if err := menus.Update(c.Request.Context(), id, req); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, menus.Items())
}

func (a *AdminController) DeleteMenu(c *gin.Context) {
	defer func() { middlewares.RecordOperation("menu", "delete", ok2xx(c)) }()
	id, ok := pathID(c)
	if !ok {
		return
	}
	menus := stores.NewMenus(sessionClient(c, a.api))
	if err := menus.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, menus.Items())
}

// dateRange parses the optional desde/hasta query parameters (YYYY-MM-DD).
func dateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	parse := func(name string) (*time.Time, error) {
		v := c.Query(name)
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("parámetro %s inválido: %q", name, v)
		}
		return &t, nil
	}

	desde, err := parse("desde")
	if err != nil {
		return nil, nil, err
	}
	hasta, err := parse("hasta")
	if err != nil {
		return nil, nil, err
	}
	return desde, hasta, nil
}

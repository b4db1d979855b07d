package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"ordering-console/backend"
	"ordering-console/config"
	"ordering-console/controllers"
	"ordering-console/logger"
	"ordering-console/middlewares"
	"ordering-console/models"
	"ordering-console/poll"
	"ordering-console/session"
)

func main() {
	cfg := config.LoadConfig()
	consoleLog := logger.New("ordering-console")

	api := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout)
	sessions := session.NewManager(cfg.CookieDomain, cfg.CookieSecure, int(cfg.SessionTTL.Seconds()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// one watcher per actively tracked order, reaped after ten idle minutes
	tracker := poll.NewRegistry(ctx, func(token string) poll.FetchFunc {
		return func(ctx context.Context) (models.Pedido, error) {
			var p models.Pedido
			if err := api.Get(ctx, "/pedidos/"+token+"/track", &p); err != nil {
				return models.Pedido{}, err
			}
			return p, nil
		}
	}, cfg.TrackInterval, 10*time.Minute)

	auth := controllers.NewAuthController(api, sessions, consoleLog)
	public := controllers.NewPublicController(api, tracker, consoleLog)
	kitchen := controllers.NewKitchenController(api, consoleLog)
	delivery := controllers.NewDeliveryController(api, consoleLog)
	admin := controllers.NewAdminController(api, consoleLog, cfg.LowStockMinimum)

	r := gin.Default()
	r.Use(middlewares.PrometheusMiddleware())
	r.Use(middlewares.SessionMiddleware(sessions))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", auth.Login)
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/logout", auth.Logout)

	catalogo := r.Group("/catalogo")
	{
		catalogo.GET("/zonas", public.Zonas)
		catalogo.GET("/platos", public.Platos)
		catalogo.GET("/menus", public.Menus)
		catalogo.GET("/menu-semanal", public.MenuSemanal)
	}

	r.POST("/pedidos", public.Checkout)
	r.GET("/track/:token", public.Track)

	cocina := r.Group("/kitchen")
	cocina.Use(middlewares.RequireRole(models.RolCocina, models.RolAdmin))
	{
		cocina.GET("/pedidos", kitchen.Board)
		cocina.PATCH("/pedidos/:id/estado", kitchen.Advance)
	}

	reparto := r.Group("/delivery")
	reparto.Use(middlewares.RequireRole(models.RolReparto, models.RolAdmin))
	{
		reparto.GET("/pedidos", delivery.Board)
		reparto.PATCH("/pedidos/:id/estado", delivery.Advance)
	}

	adm := r.Group("/admin")
	adm.Use(middlewares.RequireRole(models.RolAdmin))
	{
		adm.GET("/pedidos", admin.ListPedidos)
		adm.GET("/pedidos/:id", admin.DetallePedido)
		adm.PUT("/pedidos/:id", admin.UpdatePedido)
		adm.DELETE("/pedidos/:id", admin.DeletePedido)
		adm.PATCH("/pedidos/:id/confirmar", admin.ConfirmarPedido)
		adm.PATCH("/pedidos/:id/cancelar", admin.CancelarPedido)
		adm.PATCH("/pedidos/:id/reasignar", admin.ReasignarPedido)
		adm.PATCH("/pedidos/:id/estado", admin.SetEstadoPedido)

		adm.GET("/empleados", admin.ListEmpleados)
		adm.POST("/empleados", admin.CreateEmpleado)
		adm.PUT("/empleados/:id", admin.UpdateEmpleado)
		adm.DELETE("/empleados/:id", admin.DeleteEmpleado)

		adm.GET("/clientes", admin.ListClientes)
		adm.POST("/clientes", admin.CreateCliente)
		adm.PUT("/clientes/:id", admin.UpdateCliente)
		adm.DELETE("/clientes/:id", admin.DeleteCliente)

		adm.GET("/platos", admin.ListPlatos)
		adm.POST("/platos", admin.CreatePlato)
		adm.PUT("/platos/:id", admin.UpdatePlato)
		adm.DELETE("/platos/:id", admin.DeletePlato)

		adm.GET("/ingredientes", admin.ListIngredientes)
		adm.POST("/ingredientes", admin.CreateIngrediente)
		adm.PUT("/ingredientes/:id", admin.UpdateIngrediente)
		adm.DELETE("/ingredientes/:id", admin.DeleteIngrediente)

		adm.GET("/menu", admin.ListMenus)
		adm.POST("/menu", admin.CreateMenu)
		adm.PUT("/menu/:id", admin.UpdateMenu)
		adm.DELETE("/menu/:id", admin.DeleteMenu)
	}

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tracker.Sweep(gctx)
		return nil
	})
	g.Go(func() error {
		consoleLog.Info("", "listening", "console listening on "+cfg.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("console stopped: %v", err)
	}
	consoleLog.Info("", "stopped", "console shut down cleanly")
}

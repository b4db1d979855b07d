package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordering-console/backend"
	"ordering-console/logger"
	"ordering-console/middlewares"
	"ordering-console/models"
	"ordering-console/session"
)

type AuthController struct {
	api      *backend.Client
	sessions *session.Manager
	log      *logger.Logger
}

func NewAuthController(api *backend.Client, sessions *session.Manager, log *logger.Logger) *AuthController {
	return &AuthController{api: api, sessions: sessions, log: log}
}

func (a *AuthController) Login(c *gin.Context) {
	defer func() { middlewares.RecordOperation("auth", "login", ok2xx(c)) }()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var resp models.LoginResponse
	if err := a.api.Post(c.Request.Context(), "/auth/login", req, &resp); err != nil {
		a.log.Error(c.GetHeader("X-Request-ID"), "login_failed", "backend rejected login", err)
		fail(c, err)
		return
	}

	a.sessions.Write(c, session.Session{Token: resp.Token, Usuario: resp.Usuario})
	a.log.Info(c.GetHeader("X-Request-ID"), "login_ok", "session established for "+resp.Usuario.Email)
	c.JSON(http.StatusOK, resp.Usuario)
}

func (a *AuthController) Register(c *gin.Context) {
	defer func() { middlewares.RecordOperation("auth", "register", ok2xx(c)) }()

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var resp models.LoginResponse
	if err := a.api.Post(c.Request.Context(), "/auth/register", req, &resp); err != nil {
		fail(c, err)
		return
	}

	// the backend logs the new client straight in
	a.sessions.Write(c, session.Session{Token: resp.Token, Usuario: resp.Usuario})
	c.JSON(http.StatusCreated, resp.Usuario)
}

func (a *AuthController) Logout(c *gin.Context) {
	a.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "sesión cerrada"})
}

// Package session replaces the source system's ambient cookie reads with one
// explicit object and a read/write/clear lifecycle. The token is opaque to
// the console; role checks here are routing convenience only, the backend
// enforces authorization on every proxied call.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ordering-console/models"
)

const (
	tokenCookie = "auth_token"
	userCookie  = "session_user"
)

var ErrNoSession = errors.New("no hay sesión activa")

type Session struct {
	Token   string
	Usuario models.Usuario
}

func (s Session) Authenticated() bool { return s.Token != "" }

type Manager struct {
	domain string
	secure bool
	maxAge int
}

func NewManager(domain string, secure bool, maxAgeSeconds int) *Manager {
	return &Manager{domain: domain, secure: secure, maxAge: maxAgeSeconds}
}

// Read rebuilds the session from the cookie pair. A missing or unreadable
// user blob falls back to the token's claims so a stale cookie still routes.
func (m *Manager) Read(c *gin.Context) (Session, error) {
	token, err := c.Cookie(tokenCookie)
	if err != nil || token == "" {
		return Session{}, ErrNoSession
	}

	s := Session{Token: token}
	if blob, err := c.Cookie(userCookie); err == nil {
		if raw, err := base64.RawURLEncoding.DecodeString(blob); err == nil {
			_ = json.Unmarshal(raw, &s.Usuario)
		}
	}
	if s.Usuario.Rol == "" {
		if rol, err := RolFromToken(token); err == nil {
			s.Usuario.Rol = rol
		}
	}
	return s, nil
}

func (m *Manager) Write(c *gin.Context, s Session) {
	c.SetCookie(tokenCookie, s.Token, m.maxAge, "/", m.domain, m.secure, true)

	raw, err := json.Marshal(s.Usuario)
	if err != nil {
		return
	}
	blob := base64.RawURLEncoding.EncodeToString(raw)
	// user blob is readable by the UI layer, so no HttpOnly
	c.SetCookie(userCookie, blob, m.maxAge, "/", m.domain, m.secure, false)
}

func (m *Manager) Clear(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1, "/", m.domain, m.secure, true)
	c.SetCookie(userCookie, "", -1, "/", m.domain, m.secure, false)
}

// RolFromToken decodes the role claim without verifying the signature. The
// console never trusts it for anything the backend would not re-check.
func RolFromToken(tokenString string) (string, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if rol, ok := claims["rol"].(string); ok {
			return rol, nil
		}
	}
	return "", errors.New("token sin claim de rol")
}

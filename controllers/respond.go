package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ordering-console/backend"
	"ordering-console/middlewares"
)

// fail maps an upstream failure onto the console response: the backend's own
// status and detail when there was a response, 502 when there was none. The
// caller's collection state is untouched either way.
func fail(c *gin.Context, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// sessionClient binds the request's session token, if any, to the backend
// client so every proxied call carries the caller's own credentials.
func sessionClient(c *gin.Context, api *backend.Client) *backend.Client {
	if s, ok := middlewares.GetSession(c); ok {
		return api.WithToken(s.Token)
	}
	return api
}

func ok2xx(c *gin.Context) bool {
	return c.Writer.Status() >= 200 && c.Writer.Status() < 300
}

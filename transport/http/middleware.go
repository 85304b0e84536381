package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
	"github.com/layer-3/inkgate/service"
)

// authStateKey is the gin context key holding the resolved core.AuthState
const authStateKey = "authState"

// AccessGate creates middleware that only lets authenticated visitors through.
// Each request is a fresh mount: the store is read once per request and the
// decision is never revisited while the handler chain runs.
func AccessGate(store ports.TokenStore, gate service.Gate, metrics ports.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolver := service.NewResolver(c.Request.Context(), store)
		decision := gate.Decide(resolver.State())

		if metrics != nil {
			metrics.GateDecision(decision.Render)
		}

		if !decision.Render {
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
			return
		}

		c.Set(authStateKey, resolver.State())
		c.Next()
	}
}

// AuthState returns the state resolved by AccessGate for this request
func AuthState(c *gin.Context) (core.AuthState, bool) {
	v, ok := c.Get(authStateKey)
	if !ok {
		return core.AuthState{}, false
	}
	state, ok := v.(core.AuthState)
	return state, ok
}

// RequestLogger logs one line per request
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func (h Handlers) Health(c *gin.Context) {
	respondOK(c, http.StatusOK, "safari backend is running", gin.H{"status": "ok"})
}

func (h Handlers) DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "store_unavailable", "store is not reachable: "+err.Error(), nil)
		return
	}
	respondOK(c, http.StatusOK, "store connection OK", nil)
}

func (h Handlers) Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "router is not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	respondOK(c, http.StatusOK, "", out)
}

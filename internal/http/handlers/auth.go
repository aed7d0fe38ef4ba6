package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}
	token, user, err := h.auth(c).Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

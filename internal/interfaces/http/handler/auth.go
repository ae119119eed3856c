package handler

import (
	appidentity "github.com/branchpos/backend/internal/application/identity"
	"github.com/branchpos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles operator authentication endpoints
type AuthHandler struct {
	BaseHandler
	auth *appidentity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates an operator's PIN for a branch register
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Me returns the authenticated operator
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	op, err := h.auth.GetOperator(c.Request.Context(), middleware.GetOperatorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, op)
}

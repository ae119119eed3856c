package handler

import (
	"github.com/branchpos/backend/internal/application/branches"
	"github.com/branchpos/backend/internal/domain/branch"
	"github.com/gin-gonic/gin"
)

// BranchHandler handles the branch registry endpoints
type BranchHandler struct {
	BaseHandler
	branches *branches.Service
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branches *branches.Service) *BranchHandler {
	return &BranchHandler{branches: branches}
}

// List returns every registered branch
// GET /api/v1/branches
func (h *BranchHandler) List(c *gin.Context) {
	resp, err := h.branches.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns one branch by key
// GET /api/v1/branches/:key
func (h *BranchHandler) Get(c *gin.Context) {
	resp, err := h.branches.Get(c.Request.Context(), branch.Key(c.Param("key")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Open registers a new branch
// POST /api/v1/branches
func (h *BranchHandler) Open(c *gin.Context) {
	var req branches.OpenBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branches.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

type setBranchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive maintenance"`
}

// SetStatus opens or closes a branch
// PUT /api/v1/branches/:key/status
func (h *BranchHandler) SetStatus(c *gin.Context) {
	var req setBranchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branches.SetStatus(c.Request.Context(), branch.Key(c.Param("key")), branch.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

package handler

import (
	"github.com/branchpos/backend/internal/application/pos"
	"github.com/branchpos/backend/internal/domain/catalog"
	"github.com/branchpos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POSHandler handles the register endpoints: catalog browsing and the
// branch cart
type POSHandler struct {
	BaseHandler
	carts *pos.CartService
}

// NewPOSHandler creates a new POSHandler
func NewPOSHandler(carts *pos.CartService) *POSHandler {
	return &POSHandler{carts: carts}
}

// ListProducts returns the branch catalog, optionally filtered
// GET /api/v1/pos/products?category=coffee&search=latte
func (h *POSHandler) ListProducts(c *gin.Context) {
	filter := catalog.Filter{
		Category:   catalog.Category(c.Query("category")),
		SearchText: c.Query("search"),
	}

	resp, err := h.carts.ListProducts(c.Request.Context(), middleware.GetBranchKey(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetCart returns the branch's pending cart
// GET /api/v1/pos/cart
func (h *POSHandler) GetCart(c *gin.Context) {
	resp, err := h.carts.GetCart(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// AddItem adds a product to the cart
// POST /api/v1/pos/cart/items
func (h *POSHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.carts.AddItem(c.Request.Context(), middleware.GetBranchKey(c), req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type updateItemRequest struct {
	Quantity *int64  `json:"quantity"`
	Notes    *string `json:"notes"`
}

// UpdateItem changes quantity or notes on a cart line. Quantity zero
// removes the line.
// PATCH /api/v1/pos/cart/items/:productId
func (h *POSHandler) UpdateItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Quantity == nil && req.Notes == nil {
		h.BadRequest(c, "Nothing to update")
		return
	}

	key := middleware.GetBranchKey(c)
	var resp *pos.CartResponse
	if req.Quantity != nil {
		resp, err = h.carts.SetQuantity(c.Request.Context(), key, productID, *req.Quantity)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}
	if req.Notes != nil {
		resp, err = h.carts.SetItemNotes(c.Request.Context(), key, productID, *req.Notes)
		if err != nil {
			h.HandleError(c, err)
			return
		}
	}
	h.Success(c, resp)
}

// RemoveItem removes a cart line
// DELETE /api/v1/pos/cart/items/:productId
func (h *POSHandler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	resp, err := h.carts.RemoveItem(c.Request.Context(), middleware.GetBranchKey(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateOrderConfig sets order type, payment method, tip and customer
// details on the pending order
// PUT /api/v1/pos/cart/config
func (h *POSHandler) UpdateOrderConfig(c *gin.Context) {
	var req pos.OrderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.carts.UpdateOrderConfig(c.Request.Context(), middleware.GetBranchKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ClearCart abandons the pending order
// DELETE /api/v1/pos/cart
func (h *POSHandler) ClearCart(c *gin.Context) {
	resp, err := h.carts.ClearCart(c.Request.Context(), middleware.GetBranchKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

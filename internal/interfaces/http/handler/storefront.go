package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vapeshop/storefront/internal/application/storefront"
)

// StorefrontHandler exposes the storefront session over HTTP
// It is the presentation collaborator: every route forwards one user
// intent into the engine and renders the resulting state
type StorefrontHandler struct {
	BaseHandler
	service *storefront.Service
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(service *storefront.Service) *StorefrontHandler {
	return &StorefrontHandler{service: service}
}

// RegisterRoutes registers the storefront routes
func (h *StorefrontHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/categories", h.ListCategories)

	cartGroup := rg.Group("/cart")
	cartGroup.GET("", h.GetCart)
	cartGroup.DELETE("", h.ClearCart)
	cartGroup.POST("/items", h.AddItem)
	cartGroup.PUT("/items/:productId/flavors/:flavorId", h.UpdateItem)
	cartGroup.DELETE("/items/:productId/flavors/:flavorId", h.RemoveItem)

	rg.POST("/checkout", h.Checkout)
}

// ProductListResponse wraps the filtered product list
type ProductListResponse struct {
	Products []storefront.ProductResponse `json:"products"`
	Total    int                          `json:"total"`
	Query    string                       `json:"query,omitempty"`
}

// AddItemRequest sets the quantity for a (product, flavor) pair
// Quantity is the final desired quantity, not an increment; 0 removes
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	FlavorID  string `json:"flavor_id" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required,gte=0"`
}

// UpdateItemRequest sets the quantity of an existing cart line
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// ListProducts returns the catalog filtered by search query and categories
// Query params: q (free text), categories (comma-separated category IDs)
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	query := c.Query("q")
	var categories []string
	if raw := c.Query("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}

	h.service.SetSearch(query)
	h.service.SetCategories(categories...)

	products := h.service.VisibleProducts()
	h.Success(c, ProductListResponse{
		Products: products,
		Total:    len(products),
		Query:    query,
	})
}

// ListCategories returns the filterable categories with product counts
func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	h.Success(c, h.service.Categories())
}

// GetCart returns the cart summary with totals and the checkout gate
func (h *StorefrontHandler) GetCart(c *gin.Context) {
	h.Success(c, h.service.Summary(c.Request.Context()))
}

// ClearCart empties the cart
func (h *StorefrontHandler) ClearCart(c *gin.Context) {
	h.service.ClearCart(c.Request.Context())
	h.Success(c, h.service.Summary(c.Request.Context()))
}

// AddItem confirms a flavor+quantity selection
func (h *StorefrontHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "INVALID_INPUT", err.Error())
		return
	}

	if err := h.service.AddToCart(c.Request.Context(), req.ProductID, req.FlavorID, *req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.service.Summary(c.Request.Context()))
}

// UpdateItem sets the quantity of an existing line; a missing line is a
// no-op and still returns the current summary
func (h *StorefrontHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "INVALID_INPUT", err.Error())
		return
	}

	productID := c.Param("productId")
	flavorID := c.Param("flavorId")
	if err := h.service.UpdateQuantity(c.Request.Context(), productID, flavorID, *req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.service.Summary(c.Request.Context()))
}

// RemoveItem removes a cart line; removing a missing line is a no-op
func (h *StorefrontHandler) RemoveItem(c *gin.Context) {
	h.service.RemoveItem(c.Request.Context(), c.Param("productId"), c.Param("flavorId"))
	h.Success(c, h.service.Summary(c.Request.Context()))
}

// Checkout raises the terminal checkout notification when the
// minimum-order gate passes
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	order, err := h.service.Checkout(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leaar-backend/internal/service"
)

type createProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "product name is required")
		return
	}

	product, err := h.products.Create(c.Request.Context(), service.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"product": productToResponse(product)})
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(&products[i])
	}
	respondOK(c, http.StatusOK, gin.H{"products": resp})
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"product": productToResponse(product)})
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	Image       *string  `json:"image"`
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), service.ProductPatch{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"product": productToResponse(product)})
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.serviceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "product deleted"})
}

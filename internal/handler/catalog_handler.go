package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/service"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// CatalogHandler serves the editable calculator catalog.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type catalogResponse struct {
	Products []models.Product `json:"products"`
	AdminFee float64          `json:"adminFee"`
}

// Get handles GET /v1/catalog
func (h *CatalogHandler) Get(c *gin.Context) {
	utils.Success(c, http.StatusOK, "Catalog retrieved", catalogResponse{
		Products: h.catalog.Products(),
		AdminFee: h.catalog.AdminFee(),
	})
}

// UpdateProduct handles PUT /v1/catalog/products/:index
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequest(c, "Product index must be a number")
		return
	}
	var req service.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), index, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product updated", p)
}

// AddProducts handles POST /v1/catalog/products
func (h *CatalogHandler) AddProducts(c *gin.Context) {
	var req struct {
		Products []service.ProductInput `json:"products"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	products, err := h.catalog.AddProducts(c.Request.Context(), req.Products)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessList(c, "Products added", products, len(products))
}

// SetAdminFee handles PUT /v1/catalog/admin-fee. The fee may be sent as a
// number or as text; text that is not a number stores 0.
func (h *CatalogHandler) SetAdminFee(c *gin.Context) {
	var req struct {
		AdminFee json.RawMessage `json:"adminFee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	fee, err := h.catalog.SetAdminFee(c.Request.Context(), rawText(req.AdminFee))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Admin fee updated", gin.H{"adminFee": fee})
}

// Reset handles POST /v1/catalog/reset
func (h *CatalogHandler) Reset(c *gin.Context) {
	if err := h.catalog.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Catalog reset", catalogResponse{
		Products: h.catalog.Products(),
		AdminFee: h.catalog.AdminFee(),
	})
}

// GetClientDetails handles GET /v1/catalog/client-details
func (h *CatalogHandler) GetClientDetails(c *gin.Context) {
	info, found, err := h.catalog.ClientDetails(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Client details retrieved", gin.H{"clientInfo": info, "saved": found})
}

// SaveClientDetails handles PUT /v1/catalog/client-details
func (h *CatalogHandler) SaveClientDetails(c *gin.Context) {
	var info models.ClientInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	saved, err := h.catalog.SaveClientDetails(c.Request.Context(), info)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Client details processed", gin.H{"saved": saved})
}

// ClearClientDetails handles DELETE /v1/catalog/client-details
func (h *CatalogHandler) ClearClientDetails(c *gin.Context) {
	if err := h.catalog.ClearClientDetails(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Client details cleared", nil)
}

// rawText returns a JSON scalar as text: strings are unquoted, numbers kept
// as written, anything else is empty.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/todopro_api/internal/service"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// QuoteHandler serves stored quotes and contracts and their exports.
type QuoteHandler struct {
	quotes  *service.QuoteService
	exports *service.ExportService
}

func NewQuoteHandler(quotes *service.QuoteService, exports *service.ExportService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, exports: exports}
}

// Generate handles POST /v1/quotes
func (h *QuoteHandler) Generate(c *gin.Context) {
	var req service.GenerateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	q, err := h.quotes.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Quote generated", q)
}

// List handles GET /v1/quotes?search=
func (h *QuoteHandler) List(c *gin.Context) {
	quotes, err := h.quotes.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessList(c, "Quotes retrieved", quotes, len(quotes))
}

// Get handles GET /v1/quotes/:id
func (h *QuoteHandler) Get(c *gin.Context) {
	q, err := h.quotes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Quote retrieved", q)
}

// Delete handles DELETE /v1/quotes/:id
func (h *QuoteHandler) Delete(c *gin.Context) {
	if err := h.quotes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Quote deleted", nil)
}

// Convert handles POST /v1/quotes/:id/contract
func (h *QuoteHandler) Convert(c *gin.Context) {
	contract, err := h.quotes.ConvertToContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Quote converted to contract", contract)
}

// PDF handles GET /v1/quotes/:id/pdf
func (h *QuoteHandler) PDF(c *gin.Context) {
	doc, err := h.exports.PDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if doc.ArchiveURL != "" {
		c.Header("X-Archive-URL", doc.ArchiveURL)
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// Share handles GET /v1/quotes/:id/whatsapp
func (h *QuoteHandler) Share(c *gin.Context) {
	msg, err := h.exports.ShareMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Share message built", msg)
}

// Send handles POST /v1/quotes/:id/whatsapp/send. The body is optional;
// without "to" the client's phone is used.
func (h *QuoteHandler) Send(c *gin.Context) {
	var req struct {
		To string `json:"to"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request body")
			return
		}
	}
	res, err := h.exports.SendWhatsApp(c.Request.Context(), c.Param("id"), req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "WhatsApp message sent", res)
}

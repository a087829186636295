package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/todopro_api/internal/service"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// LeadHandler serves the leads CRM.
type LeadHandler struct {
	leads *service.LeadService
}

func NewLeadHandler(leads *service.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// List handles GET /v1/leads?status=&search=
func (h *LeadHandler) List(c *gin.Context) {
	var f service.LeadFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		utils.BadRequest(c, "Invalid query parameters")
		return
	}
	leads, err := h.leads.List(f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessList(c, "Leads retrieved", leads, len(leads))
}

// Get handles GET /v1/leads/:id
func (h *LeadHandler) Get(c *gin.Context) {
	lead, err := h.leads.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Lead retrieved", lead)
}

// Create handles POST /v1/leads
func (h *LeadHandler) Create(c *gin.Context) {
	var req service.LeadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Lead name is required")
		return
	}
	lead, err := h.leads.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Lead created", lead)
}

// Update handles PUT /v1/leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	var req service.LeadPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	lead, err := h.leads.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Lead updated", lead)
}

// Delete handles DELETE /v1/leads/:id
func (h *LeadHandler) Delete(c *gin.Context) {
	if err := h.leads.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Lead deleted", nil)
}

// Stats handles GET /v1/leads/stats
func (h *LeadHandler) Stats(c *gin.Context) {
	utils.Success(c, http.StatusOK, "Lead stats", h.leads.Stats())
}

// Templates handles GET /v1/leads/templates
func (h *LeadHandler) Templates(c *gin.Context) {
	tpls := h.leads.Templates()
	utils.SuccessList(c, "Templates retrieved", tpls, len(tpls))
}

// AddTemplate handles POST /v1/leads/templates
func (h *LeadHandler) AddTemplate(c *gin.Context) {
	var req service.TemplateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Template name and content are required")
		return
	}
	tpl, err := h.leads.AddTemplate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "Template created", tpl)
}

// Message handles POST /v1/leads/:id/message
func (h *LeadHandler) Message(c *gin.Context) {
	var req struct {
		TemplateID string `json:"templateId" binding:"required"`
		Send       bool   `json:"send"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "templateId is required")
		return
	}
	msg, err := h.leads.Message(c.Request.Context(), c.Param("id"), req.TemplateID, req.Send)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Message prepared", msg)
}

// Notifications handles GET /v1/notifications
func (h *LeadHandler) Notifications(c *gin.Context) {
	notes := h.leads.Notifications()
	utils.SuccessList(c, "Notifications retrieved", notes, len(notes))
}

// DismissNotification handles DELETE /v1/notifications/:id
func (h *LeadHandler) DismissNotification(c *gin.Context) {
	if err := h.leads.DismissNotification(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Notification dismissed", nil)
}

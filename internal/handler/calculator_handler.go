package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/todopro_api/internal/service"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// CalculatorHandler prices product selections without storing anything.
type CalculatorHandler struct {
	calc *service.CalculatorService
}

func NewCalculatorHandler(calc *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calc: calc}
}

// Flat handles POST /v1/calculator/flat
func (h *CalculatorHandler) Flat(c *gin.Context) {
	var req service.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	res, err := h.calc.Flat(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Estimate calculated", res)
}

// Prorated handles POST /v1/calculator/prorated
func (h *CalculatorHandler) Prorated(c *gin.Context) {
	var req service.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	res, err := h.calc.Prorated(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Estimate calculated", res)
}

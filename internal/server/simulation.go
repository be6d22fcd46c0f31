package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	simulationdomain "github.com/smallbiznis/ecoai/internal/simulation/domain"
)

type simulateGrowthRequest struct {
	GrowthPercent *decimal.Decimal `json:"growth_percent"`
	MonthsAhead   *int             `json:"months_ahead"`
}

type simulateRegionRequest struct {
	FromRegion string `json:"from_region"`
	ToRegion   string `json:"to_region"`
}

type simulateEfficiencyRequest struct {
	EfficiencyPercent *decimal.Decimal `json:"efficiency_percent"`
}

func (s *Server) SimulateGrowth(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	var req simulateGrowthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.GrowthPercent == nil {
		AbortWithError(c, newValidationError("growth_percent", "invalid_growth_percent", "growth_percent is required"))
		return
	}

	resp, err := s.simulationSvc.SimulateGrowth(c.Request.Context(), companyID, *req.GrowthPercent, req.MonthsAhead)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SimulateRegionChange(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	var req simulateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.simulationSvc.SimulateRegionChange(c.Request.Context(), companyID,
		strings.TrimSpace(req.FromRegion), strings.TrimSpace(req.ToRegion))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SimulateEfficiency(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	var req simulateEfficiencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.EfficiencyPercent == nil {
		AbortWithError(c, newValidationError("efficiency_percent", "invalid_efficiency_percent", "efficiency_percent is required"))
		return
	}

	resp, err := s.simulationSvc.SimulateEfficiency(c.Request.Context(), companyID, *req.EfficiencyPercent)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SaveScenario(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	var req simulationdomain.SaveScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CompanyID = companyID
	req.Name = strings.TrimSpace(req.Name)

	resp, err := s.simulationSvc.SaveScenario(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListScenarios(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.simulationSvc.ListScenarios(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetScenario(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	resp, err := s.simulationSvc.GetScenario(c.Request.Context(), companyID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteScenario(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := s.simulationSvc.DeleteScenario(c.Request.Context(), companyID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
)

func (s *Server) CheckAlerts(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.alertSvc.CheckThresholds(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListThresholds(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.alertSvc.ListThresholds(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConfigureThreshold(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	var req alertdomain.ConfigureThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CompanyID = companyID
	req.MetricType = strings.TrimSpace(req.MetricType)
	req.Operator = strings.TrimSpace(req.Operator)

	resp, err := s.alertSvc.ConfigureThreshold(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteThreshold(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := s.alertSvc.DeleteThreshold(c.Request.Context(), companyID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) DispatchAlerts(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.alertSvc.Dispatch(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInsights(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.alertSvc.OptimizationSuggestions(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

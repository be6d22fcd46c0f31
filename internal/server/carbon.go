package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
)

type intensityResponse struct {
	Region          string          `json:"region"`
	Name            string          `json:"name"`
	CarbonIntensity decimal.Decimal `json:"carbon_intensity"`
	Unit            string          `json:"unit"`
}

func (s *Server) ListDefaultIntensities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.carbonSvc.ListDefaults()})
}

func (s *Server) ListCarbonConfigs(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.carbonSvc.ListConfigs(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConfigureCarbonIntensity(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	var req carbondomain.ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CompanyID = companyID
	req.Region = strings.TrimSpace(req.Region)

	resp, err := s.carbonSvc.ConfigureIntensity(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCarbonConfig(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	if err := s.carbonSvc.DeleteConfig(c.Request.Context(), companyID, c.Param("region")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetEffectiveIntensity(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	region := strings.ToUpper(strings.TrimSpace(c.Param("region")))
	intensity, err := s.carbonSvc.EffectiveIntensity(c.Request.Context(), companyID, region)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": intensityResponse{
		Region:          region,
		Name:            s.carbonSvc.RegionName(region),
		CarbonIntensity: intensity,
		Unit:            carbondomain.DefaultUnit,
	}})
}

func (s *Server) RecalculateEmissions(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	n, err := s.carbonSvc.RecalculateEmissions(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"recalculated": n}})
}

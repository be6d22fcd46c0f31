package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetDashboard(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.dashboardSvc.FullDashboard(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDashboardKPIs(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.dashboardSvc.ExecutiveSummary(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDashboardDepartments(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.dashboardSvc.DepartmentBreakdown(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDashboardRegions(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.dashboardSvc.RegionBreakdown(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDashboardReport(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	body, err := s.dashboardSvc.Report(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ecoai-report-%s.pdf"`, companyID.String()))
	c.Data(http.StatusOK, "application/pdf", body)
}

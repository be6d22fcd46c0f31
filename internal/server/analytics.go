package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	defaultTrendMonths    = 6
	defaultForecastMonths = 3
	xlsxContentType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) GetTrends(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}
	months, err := intQuery(c, "months", defaultTrendMonths)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.HistoricalTrends(c.Request.Context(), companyID, months)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetForecast(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}
	months, err := intQuery(c, "months", defaultForecastMonths)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Forecast(c.Request.Context(), companyID, months)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetComparison compares AI energy across departments.
func (s *Server) GetComparison(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.attributionSvc.DepartmentBreakdown(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetYearOverYear(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.analyticsSvc.YearOverYear(c.Request.Context(), companyID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportAnalytics(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}
	months, err := intQuery(c, "months", defaultTrendMonths)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	monthsAhead, err := intQuery(c, "months_ahead", defaultForecastMonths)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body, err := s.analyticsSvc.ExportWorkbook(c.Request.Context(), companyID, months, monthsAhead)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="analytics-%s.xlsx"`, companyID.String()))
	c.Data(http.StatusOK, xlsxContentType, body)
}

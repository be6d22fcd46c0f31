package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"github.com/smallbiznis/ecoai/pkg/db/pagination"
)

type recordEnergyRequest struct {
	DepartmentID string          `json:"department_id"`
	TotalKwh     decimal.Decimal `json:"total_kwh"`
	UsageDate    string          `json:"usage_date"`
	PeriodType   string          `json:"period_type"`
	Region       string          `json:"region"`
	Currency     string          `json:"currency"`
}

func (s *Server) RecordEnergyUsage(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	var req recordEnergyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	usageDate, err := parseDate(req.UsageDate)
	if err != nil {
		AbortWithError(c, energydomain.ErrInvalidUsageDate)
		return
	}

	departmentID, err := parseOptionalSnowflakeID(req.DepartmentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.energySvc.Record(c.Request.Context(), energydomain.RecordRequest{
		CompanyID:    companyID,
		DepartmentID: departmentID,
		TotalKwh:     req.TotalKwh,
		UsageDate:    usageDate,
		PeriodType:   strings.TrimSpace(req.PeriodType),
		Region:       strings.TrimSpace(req.Region),
		Currency:     strings.TrimSpace(req.Currency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ImportEnergyCSV(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "invalid_file", "multipart field file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, newValidationError("file", "invalid_file", "unable to read uploaded file"))
		return
	}
	defer file.Close()

	resp, err := s.energySvc.ImportCSV(c.Request.Context(), companyID, file)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEnergyUsage(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	var query struct {
		Start string `form:"start"`
		End   string `form:"end"`
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	start := strings.TrimSpace(query.Start)
	end := strings.TrimSpace(query.End)
	if start == "" && end == "" {
		resp, err := s.energySvc.List(c.Request.Context(), companyID, query.Pagination)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": resp})
		return
	}

	startDate, err := parseDate(start)
	if err != nil {
		AbortWithError(c, newValidationError("start", "invalid_start", "start must be YYYY-MM-DD"))
		return
	}
	endDate, err := parseDate(end)
	if err != nil {
		AbortWithError(c, newValidationError("end", "invalid_end", "end must be YYYY-MM-DD"))
		return
	}

	resp, err := s.energySvc.ListByRange(c.Request.Context(), companyID, startDate, endDate)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListEnergyUsageByRegion(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}

	resp, err := s.energySvc.ListByRegion(c.Request.Context(), companyID, strings.TrimSpace(c.Param("region")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetEnergyUsage(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	resp, err := s.energySvc.Get(c.Request.Context(), companyID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEnergyUsage(c *gin.Context) {
	companyID, ok := companyIDParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := s.energySvc.Delete(c.Request.Context(), companyID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

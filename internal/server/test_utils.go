package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup removes every company whose name starts with prefix. Not routed in production.
func (s *Server) TestCleanup(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, newValidationError("prefix", "required", "prefix is required"))
		return
	}

	ctx := c.Request.Context()
	companies, err := s.companySvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	deleted := 0
	for _, company := range companies {
		if !strings.HasPrefix(company.Name, prefix) {
			continue
		}
		if err := s.companySvc.Delete(ctx, company.ID); err != nil {
			AbortWithError(c, err)
			return
		}
		deleted++
	}

	s.log.Info("test cleanup", zap.String("prefix", prefix), zap.Int("deleted", deleted))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}

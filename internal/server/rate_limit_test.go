package server

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/ecoai/internal/config"
	"github.com/smallbiznis/ecoai/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestRateLimit(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Throttled Co", "US")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s.ingestLimiter = ratelimit.NewIngestLimiter(client, config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, IngestRate: 0.001, IngestBurst: 1},
	})

	body := gin.H{"total_kwh": 10, "usage_date": "2026-10-10"}
	w := s.do(t, http.MethodPost, "/api/companies/"+company.ID+"/energy", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = s.do(t, http.MethodPost, "/api/companies/"+company.ID+"/energy", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limited", decodeError(t, w).Type)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = s.do(t, http.MethodGet, "/api/companies/"+company.ID+"/energy", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

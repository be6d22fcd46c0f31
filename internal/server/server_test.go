package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	alertrepo "github.com/smallbiznis/ecoai/internal/alert/repository"
	alertservice "github.com/smallbiznis/ecoai/internal/alert/service"
	analyticsservice "github.com/smallbiznis/ecoai/internal/analytics/service"
	attributionservice "github.com/smallbiznis/ecoai/internal/attribution/service"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	carbonrepo "github.com/smallbiznis/ecoai/internal/carbon/repository"
	carbonservice "github.com/smallbiznis/ecoai/internal/carbon/service"
	"github.com/smallbiznis/ecoai/internal/clock"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	companyrepo "github.com/smallbiznis/ecoai/internal/company/repository"
	companyservice "github.com/smallbiznis/ecoai/internal/company/service"
	"github.com/smallbiznis/ecoai/internal/config"
	dashboardservice "github.com/smallbiznis/ecoai/internal/dashboard/service"
	energyrepo "github.com/smallbiznis/ecoai/internal/energy/repository"
	energyservice "github.com/smallbiznis/ecoai/internal/energy/service"
	"github.com/smallbiznis/ecoai/internal/providers/pdf"
	simulationrepo "github.com/smallbiznis/ecoai/internal/simulation/repository"
	simulationservice "github.com/smallbiznis/ecoai/internal/simulation/service"
	"github.com/smallbiznis/ecoai/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	node := testutil.MustNode(t)
	clk := clock.NewFakeClock(testNow)
	engine := config.NewStaticEngineConfigHolder(config.DefaultEngineConfig())
	log := zap.NewNop()

	companyRepo := companyrepo.Provide()
	energyRepo := energyrepo.Provide()

	carbonSvc := carbonservice.New(carbonservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: carbonrepo.Provide(),
		CompanyRepo: companyRepo, EnergyRepo: energyRepo,
	})
	attributionSvc := attributionservice.New(attributionservice.Params{
		DB: db, Log: log, CompanyRepo: companyRepo, EnergyRepo: energyRepo,
	})
	analyticsSvc := analyticsservice.New(analyticsservice.Params{
		DB: db, Log: log, Clock: clk, CompanyRepo: companyRepo, EnergyRepo: energyRepo, Engine: engine,
	})
	alertSvc := alertservice.New(alertservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk, Repo: alertrepo.Provide(),
		CompanyRepo: companyRepo, EnergyRepo: energyRepo, Engine: engine,
	})

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin: r,
		Cfg: config.Config{Environment: "test"},
		Log: log,
		CompanySvc: companyservice.New(companyservice.Params{
			DB: db, Log: log, GenID: node, Clock: clk, Repo: companyRepo,
		}),
		EnergySvc: energyservice.New(energyservice.Params{
			DB: db, Log: log, GenID: node, Clock: clk, Repo: energyRepo,
			CompanyRepo: companyRepo, Carbon: carbonSvc,
		}),
		CarbonSvc:      carbonSvc,
		AttributionSvc: attributionSvc,
		AnalyticsSvc:   analyticsSvc,
		AlertSvc:       alertSvc,
		SimulationSvc: simulationservice.New(simulationservice.Params{
			DB: db, Log: log, GenID: node, Clock: clk, Repo: simulationrepo.Provide(),
			CompanyRepo: companyRepo, EnergyRepo: energyRepo, Carbon: carbonSvc, Engine: engine,
		}),
		DashboardSvc: dashboardservice.New(dashboardservice.Params{
			DB: db, Log: log, Clock: clk, CompanyRepo: companyRepo, EnergyRepo: energyRepo,
			Attribution: attributionSvc, Analytics: analyticsSvc, Alerts: alertSvc, PDF: pdf.New(),
		}),
	})
}

func (s *Server) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

type companyJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
}

func createCompany(t *testing.T, s *Server, name, region string) companyJSON {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/companies", gin.H{"name": name, "region": region})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var company companyJSON
	decodeData(t, w, &company)
	return company
}

func TestCompanyLifecycle(t *testing.T) {
	s := newTestServer(t)

	company := createCompany(t, s, "Acme Robotics", "us")
	assert.Equal(t, "acme-robotics", company.Slug)
	assert.Equal(t, "US", company.Region)
	assert.Equal(t, "USD", company.Currency)

	w := s.do(t, http.MethodGet, "/api/companies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var companies []companyJSON
	decodeData(t, w, &companies)
	require.Len(t, companies, 1)

	w = s.do(t, http.MethodPut, "/api/companies/"+company.ID, gin.H{"name": "Acme AI"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated companyJSON
	decodeData(t, w, &updated)
	assert.Equal(t, "Acme AI", updated.Name)

	w = s.do(t, http.MethodPost, "/api/companies/"+company.ID+"/departments", gin.H{"name": "Research", "ai_usage_weight": "0.8"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/companies/"+company.ID+"/departments", gin.H{"name": "research"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decodeError(t, w).Type)

	w = s.do(t, http.MethodDelete, "/api/companies/"+company.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/companies/"+company.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	payload := decodeError(t, w)
	assert.Equal(t, "not_found", payload.Type)
	assert.Equal(t, "company not found", payload.Message)
}

func TestCreateCompanyValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/companies", gin.H{"name": "  ", "region": "US"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	payload := decodeError(t, w)
	assert.Equal(t, "validation_error", payload.Type)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "invalid_name", payload.Errors[0].Code)
	assert.Equal(t, "name", payload.Errors[0].Field)

	req := httptest.NewRequest(http.MethodPost, "/api/companies", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Errors[0].Code)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/companies/not-a-number/dashboard/kpis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordEnergyUsage(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Energy Co", "US")
	base := "/api/companies/" + company.ID + "/energy"

	w := s.do(t, http.MethodPost, base, gin.H{"total_kwh": 1000, "usage_date": "2026-10-10"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var record struct {
		ID              string              `json:"id"`
		TotalKwh        decimal.Decimal     `json:"total_kwh"`
		AiAttributedKwh decimal.NullDecimal `json:"ai_attributed_kwh"`
		Cost            decimal.NullDecimal `json:"cost"`
		Co2eKg          decimal.NullDecimal `json:"co2e_kg"`
		Region          string              `json:"region"`
		PeriodType      string              `json:"period_type"`
	}
	decodeData(t, w, &record)
	assertDecimal(t, "1000", record.TotalKwh)
	assertDecimal(t, "300", record.AiAttributedKwh.Decimal)
	assertDecimal(t, "120", record.Cost.Decimal)
	assertDecimal(t, "115.8", record.Co2eKg.Decimal)
	assert.Equal(t, "US", record.Region)
	assert.Equal(t, "DAILY", record.PeriodType)

	w = s.do(t, http.MethodGet, base+"?start=2026-10-01&end=2026-10-31", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ranged []json.RawMessage
	decodeData(t, w, &ranged)
	assert.Len(t, ranged, 1)

	w = s.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Records []json.RawMessage `json:"records"`
	}
	decodeData(t, w, &page)
	assert.Len(t, page.Records, 1)

	w = s.do(t, http.MethodGet, base+"/region/us", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, base+"/"+record.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, base+"/"+record.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, base+"/"+record.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "energy usage record not found", decodeError(t, w).Message)
}

func TestRecordEnergyUsageRejectsBadDate(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Dates Inc", "US")

	w := s.do(t, http.MethodPost, "/api/companies/"+company.ID+"/energy", gin.H{"total_kwh": 10, "usage_date": "10/10/2026"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_usage_date", decodeError(t, w).Errors[0].Code)

	w = s.do(t, http.MethodGet, "/api/companies/"+company.ID+"/energy?start=2026-10-01&end=bogus", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_end", decodeError(t, w).Errors[0].Code)
}

func TestImportEnergyCSV(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Csv Co", "FR")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "usage.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("date,totalKwh\n2026-10-01,100\nnot-a-date,5\n2026-10-02,200\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/companies/"+company.ID+"/energy/csv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		BatchID  string            `json:"batch_id"`
		Imported []json.RawMessage `json:"imported"`
		Skipped  []json.RawMessage `json:"skipped"`
	}
	decodeData(t, w, &result)
	assert.NotEmpty(t, result.BatchID)
	assert.Len(t, result.Imported, 2)
	assert.Len(t, result.Skipped, 1)

	w = s.do(t, http.MethodPost, "/api/companies/"+company.ID+"/energy/csv", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_file", decodeError(t, w).Errors[0].Code)
}

func TestCarbonEndpoints(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Carbon Co", "US")
	base := "/api/companies/" + company.ID + "/carbon"

	w := s.do(t, http.MethodGet, "/api/carbon/intensities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var defaults []carbondomain.DefaultIntensity
	decodeData(t, w, &defaults)
	assert.NotEmpty(t, defaults)

	var intensity intensityResponse
	w = s.do(t, http.MethodGet, base+"/intensity/in", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &intensity)
	assert.Equal(t, "IN", intensity.Region)
	assertDecimal(t, "708", intensity.CarbonIntensity)

	w = s.do(t, http.MethodPost, base+"/config", gin.H{"region": "in", "carbon_intensity": "650"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, base+"/intensity/IN", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &intensity)
	assertDecimal(t, "650", intensity.CarbonIntensity)

	w = s.do(t, http.MethodPost, base+"/config", gin.H{"region": "IN", "carbon_intensity": "-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_carbon_intensity", decodeError(t, w).Errors[0].Code)

	w = s.do(t, http.MethodDelete, base+"/config/IN", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodDelete, base+"/config/IN", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, base+"/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Analytics Co", "US")
	base := "/api/companies/" + company.ID + "/analytics"

	w := s.do(t, http.MethodGet, base+"/trends", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trends []json.RawMessage
	decodeData(t, w, &trends)
	assert.Len(t, trends, 6)

	w = s.do(t, http.MethodGet, base+"/trends?months=0", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_months", decodeError(t, w).Errors[0].Code)

	w = s.do(t, http.MethodGet, base+"/trends?months=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, base+"/trends?months=100000000", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_months", decodeError(t, w).Errors[0].Code)

	for _, path := range []string{"/forecast", "/comparison", "/yoy"} {
		w = s.do(t, http.MethodGet, base+path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w = s.do(t, http.MethodGet, base+"/export.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestAlertEndpoints(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Alert Co", "US")
	base := "/api/companies/" + company.ID

	w := s.do(t, http.MethodPost, base+"/energy", gin.H{"total_kwh": 1000, "usage_date": "2026-10-10"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, base+"/alerts/thresholds", gin.H{"metric_type": "AI_USAGE_KWH", "threshold_value": 250})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var threshold struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &threshold)

	w = s.do(t, http.MethodPost, base+"/alerts/thresholds", gin.H{"metric_type": "BOGUS", "threshold_value": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_metric_type", decodeError(t, w).Errors[0].Code)

	w = s.do(t, http.MethodGet, base+"/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alerts []struct {
		Severity string `json:"severity"`
	}
	decodeData(t, w, &alerts)
	require.Len(t, alerts, 1)
	assert.Equal(t, "CRITICAL", alerts[0].Severity)

	w = s.do(t, http.MethodPost, base+"/alerts/dispatch", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, base+"/insights", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, base+"/alerts/thresholds/"+threshold.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodDelete, base+"/alerts/thresholds/"+threshold.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSimulationEndpoints(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Sim Co", "US")
	base := "/api/companies/" + company.ID + "/simulate"

	w := s.do(t, http.MethodPost, base+"/growth", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_growth_percent", decodeError(t, w).Errors[0].Code)

	w = s.do(t, http.MethodPost, base+"/growth", gin.H{"growth_percent": 10, "months_ahead": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result struct {
		SimulationType string `json:"simulation_type"`
		Projected      struct {
			AiKwh decimal.Decimal `json:"ai_kwh"`
		} `json:"projected"`
	}
	decodeData(t, w, &result)
	assert.Equal(t, "GROWTH", result.SimulationType)
	assertDecimal(t, "1210", result.Projected.AiKwh)

	w = s.do(t, http.MethodPost, base+"/region", gin.H{"from_region": "IN", "to_region": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, base+"/efficiency", gin.H{"efficiency_percent": 20})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, base+"/save", gin.H{
		"name":            "Double down",
		"simulation_type": "GROWTH",
		"parameters":      gin.H{"growth_percent": "10"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var scenario struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &scenario)

	w = s.do(t, http.MethodPost, base+"/save", gin.H{"name": "x", "simulation_type": "NOPE"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, base+"/scenarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var scenarios []json.RawMessage
	decodeData(t, w, &scenarios)
	assert.Len(t, scenarios, 1)

	w = s.do(t, http.MethodGet, base+"/scenarios/"+scenario.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, base+"/scenarios/"+scenario.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, base+"/scenarios/"+scenario.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "scenario not found", decodeError(t, w).Message)
}

func TestDashboardEndpoints(t *testing.T) {
	s := newTestServer(t)
	company := createCompany(t, s, "Dash Co", "US")
	base := "/api/companies/" + company.ID + "/dashboard"

	for _, path := range []string{"", "/kpis", "/departments", "/regions"} {
		w := s.do(t, http.MethodGet, base+path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := s.do(t, http.MethodGet, base+"/report.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestTestCleanupDeletesByPrefix(t *testing.T) {
	s := newTestServer(t)
	createCompany(t, s, "e2e-one", "US")
	createCompany(t, s, "e2e-two", "US")
	createCompany(t, s, "Keeper", "US")

	w := s.do(t, http.MethodPost, "/api/test/cleanup", gin.H{"prefix": "e2e-"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var companies []companydomain.Company
	w = s.do(t, http.MethodGet, "/api/companies", nil)
	decodeData(t, w, &companies)
	require.Len(t, companies, 1)
	assert.Equal(t, "Keeper", companies[0].Name)
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"wrapped validation", fmt.Errorf("create: %w", companydomain.ErrInvalidCurrency), http.StatusBadRequest, "validation_error"},
		{"duplicate department", companydomain.ErrDuplicateDepartment, http.StatusConflict, "conflict"},
		{"recalculation lock", carbondomain.ErrRecalculationInProgress, http.StatusConflict, "conflict"},
		{"config not found", carbondomain.ErrConfigNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"nil", nil, http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.kind, payload.Type)
		})
	}

	_, payload := mapError(fmt.Errorf("import: %w", companydomain.ErrInvalidCurrency))
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "invalid_currency", payload.Errors[0].Code)
	assert.Equal(t, "currency", payload.Errors[0].Field)
}

func TestClassifyErrorForLog(t *testing.T) {
	kind, reason := classifyErrorForLog(companydomain.ErrInvalidName)
	assert.Equal(t, "client", kind)
	assert.Equal(t, "invalid_name", reason)

	kind, reason = classifyErrorForLog(context.DeadlineExceeded)
	assert.Equal(t, "server", kind)
	assert.Equal(t, "internal_error", reason)
}

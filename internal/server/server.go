package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/ecoai/internal/alert"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	"github.com/smallbiznis/ecoai/internal/analytics"
	analyticsdomain "github.com/smallbiznis/ecoai/internal/analytics/domain"
	"github.com/smallbiznis/ecoai/internal/attribution"
	attributiondomain "github.com/smallbiznis/ecoai/internal/attribution/domain"
	"github.com/smallbiznis/ecoai/internal/carbon"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	"github.com/smallbiznis/ecoai/internal/company"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	"github.com/smallbiznis/ecoai/internal/config"
	"github.com/smallbiznis/ecoai/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/ecoai/internal/dashboard/domain"
	"github.com/smallbiznis/ecoai/internal/energy"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	"github.com/smallbiznis/ecoai/internal/lock"
	"github.com/smallbiznis/ecoai/internal/observability"
	obsmiddleware "github.com/smallbiznis/ecoai/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/ecoai/internal/observability/metrics"
	obstracing "github.com/smallbiznis/ecoai/internal/observability/tracing"
	"github.com/smallbiznis/ecoai/internal/providers"
	"github.com/smallbiznis/ecoai/internal/ratelimit"
	"github.com/smallbiznis/ecoai/internal/simulation"
	simulationdomain "github.com/smallbiznis/ecoai/internal/simulation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	lock.Module,
	ratelimit.Module,
	providers.Module,
	company.Module,
	energy.Module,
	carbon.Module,
	attribution.Module,
	analytics.Module,
	alert.Module,
	simulation.Module,
	dashboard.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	log            *zap.Logger
	companySvc     companydomain.Service
	energySvc      energydomain.Service
	carbonSvc      carbondomain.Service
	attributionSvc attributiondomain.Service
	analyticsSvc   analyticsdomain.Service
	alertSvc       alertdomain.Service
	simulationSvc  simulationdomain.Service
	dashboardSvc   dashboarddomain.Service
	ingestLimiter  *ratelimit.IngestLimiter
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Log            *zap.Logger
	CompanySvc     companydomain.Service
	EnergySvc      energydomain.Service
	CarbonSvc      carbondomain.Service
	AttributionSvc attributiondomain.Service
	AnalyticsSvc   analyticsdomain.Service
	AlertSvc       alertdomain.Service
	SimulationSvc  simulationdomain.Service
	DashboardSvc   dashboarddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		log:            p.Log.Named("http.server"),
		companySvc:     p.CompanySvc,
		energySvc:      p.EnergySvc,
		carbonSvc:      p.CarbonSvc,
		attributionSvc: p.AttributionSvc,
		analyticsSvc:   p.AnalyticsSvc,
		alertSvc:       p.AlertSvc,
		simulationSvc:  p.SimulationSvc,
		dashboardSvc:   p.DashboardSvc,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Companies --------
	api.GET("/companies", s.ListCompanies)
	api.POST("/companies", s.CreateCompany)
	api.GET("/companies/:companyId", s.GetCompany)
	api.PUT("/companies/:companyId", s.UpdateCompany)
	api.DELETE("/companies/:companyId", s.DeleteCompany)

	// -------- Departments --------
	api.GET("/companies/:companyId/departments", s.ListDepartments)
	api.POST("/companies/:companyId/departments", s.CreateDepartment)
	api.GET("/departments/:id", s.GetDepartment)
	api.PUT("/departments/:id", s.UpdateDepartment)
	api.DELETE("/departments/:id", s.DeleteDepartment)

	company := api.Group("/companies/:companyId")

	// -------- Energy --------
	company.POST("/energy", s.IngestRateLimit(), s.RecordEnergyUsage)
	company.POST("/energy/csv", s.IngestRateLimit(), s.ImportEnergyCSV)
	company.GET("/energy", s.ListEnergyUsage)
	company.GET("/energy/region/:region", s.ListEnergyUsageByRegion)
	company.GET("/energy/:id", s.GetEnergyUsage)
	company.DELETE("/energy/:id", s.DeleteEnergyUsage)

	// -------- Carbon --------
	api.GET("/carbon/intensities", s.ListDefaultIntensities)
	company.GET("/carbon/config", s.ListCarbonConfigs)
	company.POST("/carbon/config", s.ConfigureCarbonIntensity)
	company.DELETE("/carbon/config/:region", s.DeleteCarbonConfig)
	company.GET("/carbon/intensity/:region", s.GetEffectiveIntensity)
	company.POST("/carbon/recalculate", s.RecalculateEmissions)

	// -------- Analytics --------
	company.GET("/analytics/trends", s.GetTrends)
	company.GET("/analytics/forecast", s.GetForecast)
	company.GET("/analytics/comparison", s.GetComparison)
	company.GET("/analytics/yoy", s.GetYearOverYear)
	company.GET("/analytics/export.xlsx", s.ExportAnalytics)

	// -------- Alerts --------
	company.GET("/alerts", s.CheckAlerts)
	company.GET("/alerts/thresholds", s.ListThresholds)
	company.POST("/alerts/thresholds", s.ConfigureThreshold)
	company.DELETE("/alerts/thresholds/:id", s.DeleteThreshold)
	company.POST("/alerts/dispatch", s.DispatchAlerts)
	company.GET("/insights", s.GetInsights)

	// -------- Simulation --------
	company.POST("/simulate/growth", s.SimulateGrowth)
	company.POST("/simulate/region", s.SimulateRegionChange)
	company.POST("/simulate/efficiency", s.SimulateEfficiency)
	company.POST("/simulate/save", s.SaveScenario)
	company.GET("/simulate/scenarios", s.ListScenarios)
	company.GET("/simulate/scenarios/:id", s.GetScenario)
	company.DELETE("/simulate/scenarios/:id", s.DeleteScenario)

	// -------- Dashboard --------
	company.GET("/dashboard", s.GetDashboard)
	company.GET("/dashboard/kpis", s.GetDashboardKPIs)
	company.GET("/dashboard/departments", s.GetDashboardDepartments)
	company.GET("/dashboard/regions", s.GetDashboardRegions)
	company.GET("/dashboard/report.pdf", s.GetDashboardReport)

	if !s.cfg.IsProduction() {
		api.POST("/test/cleanup", s.TestCleanup)
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}

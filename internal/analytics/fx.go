package analytics

import (
	"github.com/smallbiznis/ecoai/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(service.New),
)

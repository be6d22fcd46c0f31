package attribution

import (
	"github.com/smallbiznis/ecoai/internal/attribution/service"
	"go.uber.org/fx"
)

var Module = fx.Module("attribution.service",
	fx.Provide(service.New),
)

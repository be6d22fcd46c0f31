package carbon

import (
	"github.com/smallbiznis/ecoai/internal/carbon/repository"
	"github.com/smallbiznis/ecoai/internal/carbon/service"
	"go.uber.org/fx"
)

var Module = fx.Module("carbon.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

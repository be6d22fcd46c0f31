package simulation

import (
	"github.com/smallbiznis/ecoai/internal/simulation/repository"
	"github.com/smallbiznis/ecoai/internal/simulation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("simulation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package alert

import (
	"github.com/smallbiznis/ecoai/internal/alert/notify"
	"github.com/smallbiznis/ecoai/internal/alert/repository"
	"github.com/smallbiznis/ecoai/internal/alert/service"
	"go.uber.org/fx"
)

var Module = fx.Module("alert.service",
	fx.Provide(repository.Provide),
	fx.Provide(notify.New),
	fx.Provide(service.New),
)

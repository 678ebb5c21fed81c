package schedule

import (
	"go.uber.org/fx"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/repository"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/service"
)

var Module = fx.Module("schedule.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package pricing

import (
	"go.uber.org/fx"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/repository"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/pricing/service"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

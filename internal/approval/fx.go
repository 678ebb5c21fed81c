package approval

import (
	"go.uber.org/fx"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/approval/repository"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/approval/service"
)

var Module = fx.Module("approval.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

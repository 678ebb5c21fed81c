package booking

import (
	"go.uber.org/fx"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/booking/repository"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/booking/service"
)

var Module = fx.Module("booking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

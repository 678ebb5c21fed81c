package cart

import (
	"go.uber.org/fx"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/cart/service"
)

var Module = fx.Module("cart.service",
	fx.Provide(service.New),
)

package order

import (
	"github.com/warungkit/warungpos/internal/order/repository"
	"github.com/warungkit/warungpos/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

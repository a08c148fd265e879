package payment

import (
	"github.com/warungkit/warungpos/internal/payment/repository"
	"github.com/warungkit/warungpos/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package live

import (
	paymentdomain "github.com/warungkit/warungpos/internal/payment/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("live",
	fx.Provide(NewHub),
	fx.Provide(func(h *Hub) paymentdomain.Notifier { return h }),
)

package report

import (
	paymentdomain "github.com/warungkit/warungpos/internal/payment/domain"
	"github.com/warungkit/warungpos/internal/report/domain"
	"github.com/warungkit/warungpos/internal/report/repository"
	"github.com/warungkit/warungpos/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(func(s domain.Service) paymentdomain.Recomputer { return s }),
)

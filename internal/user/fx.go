package user

import (
	"github.com/warungkit/warungpos/internal/user/repository"
	"github.com/warungkit/warungpos/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

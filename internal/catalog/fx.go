package catalog

import (
	"github.com/warungkit/warungpos/internal/catalog/repository"
	"github.com/warungkit/warungpos/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/warungkit/warungpos/internal/clock"
	"github.com/warungkit/warungpos/internal/config"
	"github.com/warungkit/warungpos/internal/db"
	"github.com/warungkit/warungpos/internal/idgen"
	"github.com/warungkit/warungpos/internal/logger"
	"github.com/warungkit/warungpos/internal/migration"
	"github.com/warungkit/warungpos/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		idgen.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

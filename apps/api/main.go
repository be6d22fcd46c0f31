// Command api serves the HTTP API against an already migrated database.
package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/ecoai/internal/clock"
	"github.com/smallbiznis/ecoai/internal/config"
	"github.com/smallbiznis/ecoai/internal/observability"
	"github.com/smallbiznis/ecoai/internal/server"
	"github.com/smallbiznis/ecoai/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(2)
	if err != nil {
		panic(err)
	}
	return node
}

package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/joemerrillis/sniffr-staging-sub001/internal/approval"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/booking"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/cart"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/config"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/locks"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/migration"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/observability"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/pricing"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/schedule"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/seed"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/server"
	"github.com/joemerrillis/sniffr-staging-sub001/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		locks.Module,
		migration.Module,

		// Functional domains
		schedule.Module,
		booking.Module,
		approval.Module,
		pricing.Module,
		cart.Module,

		seed.Module,
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

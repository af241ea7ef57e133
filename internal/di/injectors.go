//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"imgstore/internal"
	"imgstore/internal/archive"
	"imgstore/internal/assets"
	"imgstore/internal/controllers"
	"imgstore/internal/providers"
	"imgstore/internal/services"
	"imgstore/internal/structures"
	"imgstore/internal/viewlog"
)

var assetSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	assets.NewAssetStore,
	wire.Bind(new(assets.AssetStoreInterface), new(*assets.AssetStore)),
)

var storageSet = wire.NewSet(
	assetSet,
	viewlog.NewViewLog,
	services.NewViewReportService,
	archive.NewZstdCompressor,
	archive.NewArchiver,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		storageSet,
		providers.NewInstrumentedCacheProvider,

		archive.NewScheduler,
		controllers.NewViewsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}

func InitToolbox(cfg *structures.CliFlags) (*internal.Toolbox, error) {

	wire.Build(
		storageSet,
		internal.NewToolbox,
	)

	return nil, nil
}

func InitAssetTools(cfg *structures.CliFlags) (*internal.AssetTools, error) {

	wire.Build(
		assetSet,
		internal.NewAssetTools,
	)

	return nil, nil
}

package internal

import (
	"imgstore/internal/archive"
	"imgstore/internal/assets"
	"imgstore/internal/providers"
	"imgstore/internal/services"
	"imgstore/internal/structures"
	"imgstore/internal/viewlog"
)

// Toolbox carries the components the command line works with directly,
// without starting the HTTP server.
type Toolbox struct {
	Config   *structures.Config
	Logger   providers.Logger
	Assets   *assets.AssetStore
	ViewLog  viewlog.ViewLogInterface
	Reports  services.ViewReportServiceInterface
	Archiver *archive.Archiver
}

func NewToolbox(conf *structures.Config, logger providers.Logger, assetStore *assets.AssetStore, viewLog viewlog.ViewLogInterface, reports services.ViewReportServiceInterface, archiver *archive.Archiver) *Toolbox {
	return &Toolbox{
		Config:   conf,
		Logger:   logger,
		Assets:   assetStore,
		ViewLog:  viewLog,
		Reports:  reports,
		Archiver: archiver,
	}
}

func (t *Toolbox) Close() {
	t.Archiver.Close()
	if err := t.ViewLog.Close(); err != nil {
		t.Logger.Errorf(providers.TypeApp, "Closing view log: %s", err)
	}
	t.Logger.Close()
}

// AssetTools is the subset of Toolbox the asset commands need. Building it
// never opens the view log.
type AssetTools struct {
	Config *structures.Config
	Logger providers.Logger
	Assets *assets.AssetStore
}

func NewAssetTools(conf *structures.Config, logger providers.Logger, assetStore *assets.AssetStore) *AssetTools {
	return &AssetTools{
		Config: conf,
		Logger: logger,
		Assets: assetStore,
	}
}

func (t *AssetTools) Close() {
	t.Logger.Close()
}

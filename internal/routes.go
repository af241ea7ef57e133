package internal

import (
	"imgstore/internal/assets"
	"imgstore/internal/controllers"
	"imgstore/internal/providers"
	"net/http"
)

func InitRoutes(viewsController *controllers.ViewsController, assetStore *assets.AssetStore) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/views", http.HandlerFunc(viewsController.RecordView))
	routers.Get("/views/today", http.HandlerFunc(viewsController.GetToday))
	routers.Get("/views/day", http.HandlerFunc(viewsController.GetDay))
	routers.Get("/views/counts", http.HandlerFunc(viewsController.GetCounts))
	routers.Get("/views/days", http.HandlerFunc(viewsController.GetDays))

	// local references are site-relative, so the files must be served here
	if local, ok := assetStore.Backend().(*assets.LocalBackend); ok {
		routers.Static(providers.ImagesPathPrefix, http.FileServer(http.Dir(local.Dir())))
	}
	return routers
}

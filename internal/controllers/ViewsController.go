package controllers

import (
	"errors"
	"imgstore/internal/providers"
	"imgstore/internal/services"
	"imgstore/internal/structures"
	"imgstore/internal/viewlog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 16 // 64 KB

type ViewsController struct {
	logger  providers.Logger
	service services.ViewReportServiceInterface
	cache   providers.CacheProviderInterface
	now     func() time.Time
}

type viewRequest struct {
	Username string `json:"username"`
	ImageID  int    `json:"image_id"`
	Caption  string `json:"caption"`
}

func NewViewsController(logger providers.Logger, service services.ViewReportServiceInterface, cache providers.CacheProviderInterface) *ViewsController {
	return &ViewsController{
		logger:  logger,
		service: service,
		cache:   cache,
		now:     time.Now,
	}
}

func (vc *ViewsController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := vc.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		vc.writeError(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vc.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func (vc *ViewsController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, structures.ErrInvalidPartition):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	case errors.Is(err, structures.ErrStorageUnavailable):
		vc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
	default:
		vc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// today keys cache entries by partition so a cached day never outlives it.
func (vc *ViewsController) today() string {
	return viewlog.PartitionKey(vc.now())
}

func (vc *ViewsController) RecordView(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload viewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ImageID <= 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := vc.service.RecordView(r.Context(), payload.Username, payload.ImageID, payload.Caption); err != nil {
		vc.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (vc *ViewsController) GetToday(w http.ResponseWriter, r *http.Request) {
	vc.serveFromCacheOrCompute(w, r, "today:"+vc.today(), func() (any, error) {
		return vc.service.Today(r.Context())
	})
}

func (vc *ViewsController) GetDay(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("d")
	if _, err := viewlog.ParseDay(day); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	vc.serveFromCacheOrCompute(w, r, "day:"+day, func() (any, error) {
		return vc.service.Day(r.Context(), day)
	})
}

func (vc *ViewsController) GetCounts(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("d")
	if day == "" {
		day = vc.today()
	} else if _, err := viewlog.ParseDay(day); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	vc.serveFromCacheOrCompute(w, r, "counts:"+day, func() (any, error) {
		return vc.service.Counts(r.Context(), day)
	})
}

func (vc *ViewsController) GetDays(w http.ResponseWriter, r *http.Request) {
	vc.serveFromCacheOrCompute(w, r, "days:"+vc.today(), func() (any, error) {
		return vc.service.RecentDays(), nil
	})
}

package internal

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"imgstore/internal/assets"
	"imgstore/internal/controllers"
	"imgstore/internal/services"
	"imgstore/internal/structures"
	"imgstore/internal/testutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouteTestStore(t *testing.T) *assets.AssetStore {
	t.Helper()
	backend, err := assets.NewLocalBackend(t.TempDir())
	require.NoError(t, err)
	return assets.NewAssetStoreWithBackend(backend, 1<<20, &testutil.MockLogger{}, &testutil.MockMetrics{})
}

func newRouteTestMux(t *testing.T, store *assets.AssetStore, vl *testutil.MockViewLog) http.Handler {
	t.Helper()
	svc := services.NewViewReportService(vl, store)
	vc := controllers.NewViewsController(&testutil.MockLogger{}, svc, testutil.NewMockCache())
	hc := controllers.NewHealthController(store, svc)
	router := InitRoutes(vc, store)
	return NewHandler(hc, &structures.Config{}, router, &testutil.MockMetrics{})
}

func TestInitRoutes_RegistersRoutes(t *testing.T) {
	store := newRouteTestStore(t)
	svc := services.NewViewReportService(&testutil.MockViewLog{}, store)
	vc := controllers.NewViewsController(&testutil.MockLogger{}, svc, testutil.NewMockCache())

	routes := InitRoutes(vc, store).GetRoutes()
	require.Len(t, routes, 6)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	assert.Contains(t, urls, "/views")
	assert.Contains(t, urls, "/views/today")
	assert.Contains(t, urls, "/views/day")
	assert.Contains(t, urls, "/views/counts")
	assert.Contains(t, urls, "/views/days")
	assert.Contains(t, urls, "/data/images/")
}

func TestInitRoutes_RemoteBackendHasNoStaticRoute(t *testing.T) {
	backend, err := assets.NewRemoteBackend("s3://key:secret@objects.example.com")
	require.NoError(t, err)
	store := assets.NewAssetStoreWithBackend(backend, 1<<20, &testutil.MockLogger{}, &testutil.MockMetrics{})
	svc := services.NewViewReportService(&testutil.MockViewLog{}, store)
	vc := controllers.NewViewsController(&testutil.MockLogger{}, svc, testutil.NewMockCache())

	for _, r := range InitRoutes(vc, store).GetRoutes() {
		assert.NotEqual(t, "/data/images/", r.Url)
	}
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux := newRouteTestMux(t, newRouteTestStore(t), &testutil.MockViewLog{Today: "03072024"})

	// GET route with POST should fail
	req := httptest.NewRequest(http.MethodPost, "/views/today", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	// POST route with GET should fail
	req = httptest.NewRequest(http.MethodGet, "/views", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandler_RecordThenReport(t *testing.T) {
	vl := &testutil.MockViewLog{Today: "03072024"}
	mux := newRouteTestMux(t, newRouteTestStore(t), vl)

	req := httptest.NewRequest(http.MethodPost, "/views", strings.NewReader(`{"username":"alice","image_id":42,"caption":"sunset"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	require.Len(t, vl.Partitions["03072024"], 1)
	assert.Equal(t, "/data/images/img-42.jpg", vl.Partitions["03072024"][0].AssetURI)
}

func TestHandler_ServesStoredImage(t *testing.T) {
	store := newRouteTestStore(t)
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8)), nil))
	require.NoError(t, store.Save(context.Background(), 42, bytes.NewReader(buf.Bytes())))

	mux := newRouteTestMux(t, store, &testutil.MockViewLog{})
	req := httptest.NewRequest(http.MethodGet, store.ResolveReference(42), nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, buf.Bytes(), rr.Body.Bytes())
	assert.Equal(t, "image/jpeg", rr.Header().Get("Content-Type"))

	req = httptest.NewRequest(http.MethodGet, store.ResolveReference(43), nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Health(t *testing.T) {
	mux := newRouteTestMux(t, newRouteTestStore(t), &testutil.MockViewLog{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"asset_backend":"local"`)
}

func TestHandler_MetricsOnlyWhenEnabled(t *testing.T) {
	mux := newRouteTestMux(t, newRouteTestStore(t), &testutil.MockViewLog{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_StaticHidesListingAndUploads(t *testing.T) {
	store := newRouteTestStore(t)
	local := store.Backend().(*assets.LocalBackend)
	require.NoError(t, os.WriteFile(filepath.Join(local.Dir(), ".upload-42.tmp"), []byte("partial"), 0600))
	require.NoError(t, store.Save(context.Background(), 42, bytes.NewReader(jpegFixture(t))))

	mux := newRouteTestMux(t, store, &testutil.MockViewLog{})
	for _, path := range []string{"/data/images/", "/data/images/.upload-42.tmp"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.NotContains(t, rr.Body.String(), "img-42.jpg", path)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, store.ResolveReference(42), nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func jpegFixture(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8)), nil))
	return buf.Bytes()
}

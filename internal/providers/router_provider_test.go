package providers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/views/today", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/views/today", routes[0].Url)
}

func TestRouterProvider_MultipleRoutes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler())
	rp.Post("/b", dummyHandler())
	rp.Static("/c/", dummyHandler())

	assert.Len(t, rp.GetRoutes(), 3)
}

func TestMethodHandler_CorrectMethod(t *testing.T) {
	handler := methodHandler(dummyHandler(), http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestMethodHandler_WrongMethod(t *testing.T) {
	handler := methodHandler(dummyHandler(), http.MethodGet)

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterProvider_GetAcceptsHead(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler())

	req := httptest.NewRequest(http.MethodHead, "/test", nil)
	rr := httptest.NewRecorder()
	rp.GetRoutes()[0].Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouterProvider_PostRouteRejectsGet(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/submit", dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/submit", nil)
	rr := httptest.NewRecorder()
	rp.GetRoutes()[0].Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterProvider_StaticServesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img-7.jpg"), []byte("jpeg"), 0644))

	rp := NewRouterProvider()
	rp.Static(ImagesPathPrefix, http.FileServer(http.Dir(dir)))

	mux := http.NewServeMux()
	for _, r := range rp.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/data/images/img-7.jpg", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "jpeg", rr.Body.String())

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/data/images/img-7.jpg", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterProvider_StaticRefusesDirectoriesAndDotfiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img-7.jpg"), []byte("jpeg"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".upload-123.tmp"), []byte("partial"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "img-8.jpg"), []byte("jpeg"), 0644))

	rp := NewRouterProvider()
	rp.Static(ImagesPathPrefix, http.FileServer(http.Dir(dir)))

	mux := http.NewServeMux()
	for _, r := range rp.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}

	for _, path := range []string{"/data/images/", "/data/images/sub/", "/data/images/.upload-123.tmp"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.NotContains(t, rr.Body.String(), "img-7.jpg", path)
		assert.NotContains(t, rr.Body.String(), "partial", path)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/data/images/sub/img-8.jpg", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

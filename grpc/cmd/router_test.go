package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	overlingoAuth "github.com/overlingo-project/overlingo/grpc/auth"
	"github.com/overlingo-project/overlingo/pkg/detection"
	"github.com/overlingo-project/overlingo/pkg/relay"
)

type fakeGrpcWeb struct {
	served bool
}

func (f *fakeGrpcWeb) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.served = true
	w.WriteHeader(http.StatusTeapot)
}

func (f *fakeGrpcWeb) IsGrpcWebRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc-web")
}

func (f *fakeGrpcWeb) IsAcceptableGrpcCorsRequest(r *http.Request) bool {
	return false
}

type fakeAuth struct{}

func (fakeAuth) Verify(ctx context.Context, token string) (string, error) {
	if token != "good" {
		return "", errors.New("bad token")
	}
	return token, nil
}

type noHarvester struct{}

func (noHarvester) HarvestURL(ctx context.Context, url string) ([]string, error) {
	return []string{}, nil
}

func serve(t *testing.T, router http.Handler, method string, target string, body []byte, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	router := NewRouter(RouterConfig{})

	rec := serve(t, router, http.MethodGet, "/health", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRouterRelayRoutes(t *testing.T) {
	router := NewRouter(RouterConfig{
		Relay: relay.NewHandler(relay.New(relay.NewMemoryStore()), noHarvester{}),
	})

	rec := serve(t, router, http.MethodPost, "/images", []byte(`{"images":["https://example.com/a.png"]}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/images", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"images":["https://example.com/a.png"]}`, rec.Body.String())
}

func TestRouterDetectionRouteIsOptional(t *testing.T) {
	rec := serve(t, NewRouter(RouterConfig{}), http.MethodPost, "/process_image", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	handler := detection.NewHandler(nil, detection.DefaultMergeOptions())
	rec = serve(t, NewRouter(RouterConfig{Detection: handler}), http.MethodPost, "/process_image", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No image file provided")
}

func TestRouterRequiresTokenForAPI(t *testing.T) {
	router := NewRouter(RouterConfig{
		Detection:    detection.NewHandler(nil, detection.DefaultMergeOptions()),
		Relay:        relay.NewHandler(relay.New(relay.NewMemoryStore()), noHarvester{}),
		Authenticate: overlingoAuth.Middleware(fakeAuth{}),
	})

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "harvest", method: http.MethodPost, target: "/harvest", body: `{"url":"http://169.254.169.254/"}`},
		{name: "read images", method: http.MethodGet, target: "/images"},
		{name: "relay images", method: http.MethodPost, target: "/images", body: `{"images":[]}`},
		{name: "detect", method: http.MethodPost, target: "/process_image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, router, tt.method, tt.target, []byte(tt.body), nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = serve(t, router, tt.method, tt.target, []byte(tt.body), http.Header{"Authorization": {"Bearer bad"}})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			rec = serve(t, router, tt.method, tt.target, []byte(tt.body), http.Header{"Authorization": {"Bearer good"}})
			assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
		})
	}

	rec := serve(t, router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterCORS(t *testing.T) {
	router := NewRouter(RouterConfig{AllowedOrigins: []string{"https://ui.example.com"}})

	rec := serve(t, router, http.MethodGet, "/health", nil, http.Header{"Origin": {"https://ui.example.com"}})
	assert.Equal(t, "https://ui.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(t, router, http.MethodGet, "/health", nil, http.Header{"Origin": {"https://evil.example.com"}})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterDefaultHandler(t *testing.T) {
	staticFileDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticFileDir, "index.html"), []byte("<html>overlingo</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(staticFileDir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticFileDir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	grpcWeb := &fakeGrpcWeb{}
	router := NewRouter(RouterConfig{GrpcWeb: grpcWeb, StaticFileDir: staticFileDir})

	t.Run("grpc-web request", func(t *testing.T) {
		rec := serve(t, router, http.MethodPost, "/overlingo.Overlingo/DetectText", nil, http.Header{"Content-Type": {"application/grpc-web+proto"}})
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.True(t, grpcWeb.served)
	})

	t.Run("index", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/some/page", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "overlingo")
	})

	t.Run("assets", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/assets/app.js", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	})
}

func TestRouterWithoutStaticFiles(t *testing.T) {
	rec := serve(t, NewRouter(RouterConfig{}), http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Equal(t, []string{}, splitList(""))
}

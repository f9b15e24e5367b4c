package main

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	ovhttp "github.com/overlingo-project/overlingo/pkg/http"
	"github.com/overlingo-project/overlingo/pkg/relay"
)

// grpcWeb is the part of *grpcweb.WrappedGrpcServer the router needs.
type grpcWeb interface {
	http.Handler
	IsGrpcWebRequest(r *http.Request) bool
	IsAcceptableGrpcCorsRequest(r *http.Request) bool
}

type RouterConfig struct {
	// Wraps the gRPC server. May be nil.
	GrpcWeb grpcWeb
	// Serves POST /process_image. Nil when the detector is itself a remote endpoint.
	Detection http.Handler
	Relay     *relay.Handler
	// Guards the JSON API except /health. Nil leaves it open, e.g. in tests.
	Authenticate func(http.Handler) http.Handler
	// Directory holding index.html and assets/. Empty disables the UI.
	StaticFileDir  string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter routes the web port. gRPC-web requests bypass the JSON API
// middleware since grpcweb handles its own CORS.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(ovhttp.CORS(cfg.AllowedOrigins))
		if cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		}

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			ovhttp.RespondJSON(w, map[string]string{"status": "healthy", "service": "overlingo"}, http.StatusOK)
		})

		r.Group(func(r chi.Router) {
			if cfg.Authenticate != nil {
				r.Use(cfg.Authenticate)
			}
			if cfg.Detection != nil {
				r.Method(http.MethodPost, "/process_image", cfg.Detection)
			}
			if cfg.Relay != nil {
				cfg.Relay.Register(r)
			}
		})
	})

	if cfg.StaticFileDir != "" {
		r.Handle("/assets/*", ovhttp.HandleFileServer(http.FileServer(http.Dir(cfg.StaticFileDir))))
	}

	r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		if cfg.GrpcWeb != nil && (cfg.GrpcWeb.IsGrpcWebRequest(r) || cfg.GrpcWeb.IsAcceptableGrpcCorsRequest(r)) {
			cfg.GrpcWeb.ServeHTTP(w, r)
			return
		}
		if cfg.StaticFileDir == "" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(cfg.StaticFileDir, "index.html"))
	})

	return r
}

// Package debugserver exposes a running vtclient.Client over a small
// read-only HTTP API — /state, /capabilities, and /metrics — the kind of
// sidecar an implement manufacturer runs alongside cmd/vtclient during
// field trials to see what a VT session is doing without attaching a
// debugger.
//
// Grounded on vango-go-vango's use of github.com/go-chi/chi/v5 (see its
// test/integration/chi_test.go): a chi.Mux as the root handler, with
// chi/middleware's Recoverer in the default stack (no Logger).
package debugserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fieldkit/isovt/vtclient"
)

// Server is a read-only HTTP introspection endpoint for one Client.
type Server struct {
	mux *chi.Mux
}

// New builds a Server's handler. If reg is non-nil, /metrics serves it via
// promhttp.HandlerFor; a nil reg serves a 404 on /metrics instead of
// panicking, since metrics registration (internal/metrics.Register) is
// itself opt-in.
func New(client *vtclient.Client, reg *prometheus.Registry) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/state", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, stateResponse{
			State: client.State().String(),
			Stats: client.Stats(),
		})
	})

	r.Get("/capabilities", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, client.Capabilities())
	})

	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	} else {
		r.Get("/metrics", http.NotFound)
	}

	return &Server{mux: r}
}

// ServeHTTP implements http.Handler, so a caller can mount Server under
// its own router or serve it directly with http.ListenAndServe.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type stateResponse struct {
	State string         `json:"state"`
	Stats vtclient.Stats `json:"stats"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

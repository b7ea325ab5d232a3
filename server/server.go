// Package server serves the flow visualizer in a browser.
//
// Endpoints:
//
//	GET /            form with the pattern, domain and view controls
//	GET /plot.png    raster figure of the submitted form
//	GET /plot.svg    vector figure (also /plot.pdf, /plot.eps)
//	GET /api/field   ψ, u and v of the submitted form as JSON
//	GET /api/parse   parse check of ?expr= as JSON
//	GET /health      liveness check
//
// Every endpoint reads the same query parameters as the form submits.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gogpu/flowviz"
	"github.com/gogpu/flowviz/flow"
)

//go:embed templates/*.html
var templates embed.FS

// Messages shown for failed requests.
const (
	msgParse     = "Invalid function expression. Please check syntax."
	msgNonFinite = "The stream function is not finite everywhere on the grid."
	msgInternal  = "Error generating visualization"
)

// Server is the HTTP front end. Create one with New.
type Server struct {
	cfg     Config
	mux     *http.ServeMux
	index   *template.Template
	started time.Time
}

// New returns a Server for cfg.
func New(cfg Config) (*Server, error) {
	index, err := template.New("index.html").Funcs(funcs).ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("server: template: %w", err)
	}
	s := &Server{
		cfg:     cfg.withDefaults(),
		mux:     http.NewServeMux(),
		index:   index,
		started: time.Now(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /plot.png", s.handlePNG)
	for _, f := range []string{"svg", "pdf", "eps"} {
		s.mux.HandleFunc("GET /plot."+f, s.handleVector(f))
	}
	s.mux.HandleFunc("GET /api/field", s.handleField)
	s.mux.HandleFunc("GET /api/parse", s.handleParse)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the HTTP handler of s. Panics in a handler are logged
// and answered with 500.
func (s *Server) Handler() http.Handler {
	return recoverer(s.mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully within Config.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	flowviz.Logger().Info("server: listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	flowviz.Logger().Info("server: shutting down")
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				flowviz.Logger().Error("server: panic",
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()))
				http.Error(w, msgInternal, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// status maps a pipeline error to its HTTP status and user message.
func status(err error) (int, string) {
	var nf *flow.NonFiniteError
	switch {
	case errors.Is(err, errForm):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, flowviz.ErrInvalidSpacing):
		return http.StatusBadRequest, "The grid is too coarse for this domain."
	case errors.Is(err, flowviz.ErrParse):
		return http.StatusUnprocessableEntity, msgParse
	case errors.As(err, &nf):
		return http.StatusUnprocessableEntity, fmt.Sprintf("%s %d samples are NaN or infinite.", msgNonFinite, nf.Count)
	case errors.Is(err, flowviz.ErrNonFinite):
		return http.StatusUnprocessableEntity, msgNonFinite
	}
	return http.StatusInternalServerError, msgInternal
}

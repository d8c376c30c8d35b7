package render

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/raykavin/tradeplot/pkg/logger"
	"github.com/raykavin/tradeplot/pkg/plot"
)

const shutdownTimeout = 5 * time.Second

type entry struct {
	figure   *plot.Figure
	warnings []string
	updated  time.Time
}

// Server previews registered figures in the browser. Pages follow their
// figure over a websocket and redraw when it is registered again.
type Server struct {
	sync.RWMutex
	figures map[string]entry
	page    *Page
	hub     *hub
	router  *mux.Router
	log     logger.Logger
}

// NewServer creates a preview server without figures
func NewServer(log logger.Logger, options ...PageOption) (*Server, error) {
	page, err := NewPage(options...)
	if err != nil {
		return nil, err
	}

	s := &Server{
		figures: make(map[string]entry),
		page:    page,
		hub:     newHub(log),
		router:  mux.NewRouter(),
		log:     log,
	}

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/figure/{name}", s.handleFigure).Methods(http.MethodGet)
	s.router.HandleFunc("/ws/{name}", s.handleWebSocket).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	return s, nil
}

// Register adds or replaces the figure published under name
func (s *Server) Register(name string, fig *plot.Figure, warnings []string) {
	updated := time.Now()

	s.Lock()
	s.figures[name] = entry{figure: fig, warnings: warnings, updated: updated}
	s.Unlock()

	s.hub.notify(name, updated)
}

// Names returns the registered figure names in order
func (s *Server) Names() []string {
	s.RLock()
	defer s.RUnlock()

	names := make([]string, 0, len(s.figures))
	for name := range s.figures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) lookup(name string) (entry, bool) {
	s.RLock()
	defer s.RUnlock()
	e, ok := s.figures[name]
	return e, ok
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	s.log.Infof("chart available at http://%s", addr)

	select {
	case err := <-errs:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down chart server: %w", err)
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close disconnects every page following a figure
func (s *Server) Close() {
	s.hub.close()
}

// handleHealth reports unavailable until a figure is registered
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if len(s.Names()) == 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.log.WithError(err).Error("failed to write health status")
	}
}

// handleIndex renders the page of the figure in the name query parameter,
// redirecting to the first figure when none is given
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		names := s.Names()
		if len(names) == 0 {
			http.Error(w, "no figures registered", http.StatusNotFound)
			return
		}
		http.Redirect(w, r, "/?name="+names[0], http.StatusFound)
		return
	}

	e, ok := s.lookup(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.render(w, e.figure, e.warnings, name); err != nil {
		s.log.WithError(err).Error("template execution failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(mux.Vars(r)["name"])
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := JSON(w, e.figure); err != nil {
		s.log.WithError(err).Error("failed to encode figure")
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	e, ok := s.lookup(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.hub.serve(w, r, name, e.updated)
}

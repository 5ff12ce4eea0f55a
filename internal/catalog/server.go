package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/vovakirdan/kuzu-maze/internal/scoring"
)

// Server answers board lookups over HTTP.
//
//	GET /boards/{date}  catalog entry as JSON
//	GET /healthz        liveness check
//
// Dates missing from the source are generated and solved on the fly.
type Server struct {
	src        Source
	rows, cols int
	solveLimit int
	logger     *log.Logger
	handler    http.Handler
}

// NewServer creates a catalog server. src may be nil to serve generated boards only.
func NewServer(src Source, rows, cols, solveLimit int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		src:        src,
		rows:       rows,
		cols:       cols,
		solveLimit: solveLimit,
		logger:     logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/boards/{date}", s.handleBoard).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Use(s.loggingMiddleware)

	s.handler = cors.New(cors.Options{
		AllowOriginFunc: func(string) bool { return true },
		AllowedMethods:  []string{http.MethodGet, http.MethodHead},
	}).Handler(r)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse(scoring.DateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	var (
		e   Entry
		err error
	)
	if s.src != nil {
		e, err = s.src.Lookup(r.Context(), date)
	} else {
		err = ErrNotFound
	}
	switch {
	case err == nil:
		if _, verr := e.ToBoard(); verr != nil {
			s.logger.Warn("stored entry invalid, regenerating", "date", date, "err", verr)
			e = BuildEntry(date, s.rows, s.cols, s.solveLimit)
		}
	case errors.Is(err, ErrNotFound):
		e = BuildEntry(date, s.rows, s.cols, s.solveLimit)
	default:
		s.logger.Error("catalog lookup failed", "date", date, "err", err)
		writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

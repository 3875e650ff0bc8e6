package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

const maxRequestBody = 1 << 16 // 64 KB

// DefaultAddress is where the service listens unless told otherwise.
const DefaultAddress = ":3000"

// Server exposes a Store over HTTP.
type Server struct {
	store   *Store
	logger  *log.Logger
	handler http.Handler
}

// NewServer wires the API routes for store. A nil logger discards logs.
func NewServer(store *Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{store: store, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/leaderboard", s.list)
	mux.HandleFunc("POST /api/leaderboard", s.create)
	mux.HandleFunc("GET /api/leaderboard/{id}", s.get)
	mux.HandleFunc("PUT /api/leaderboard/{id}", s.update)
	mux.HandleFunc("DELETE /api/leaderboard/{id}", s.delete)
	mux.HandleFunc("POST /api/death", s.death)
	mux.HandleFunc("GET /health", s.health)

	s.handler = s.logRequests(cors(mux))
	return s
}

// Handler returns the full HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("leaderboard listening", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type successResponse struct {
	Success bool   `json:"success"`
	Entry   *Entry `json:"entry,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// createRequest uses pointers so missing fields can be told from zero values.
// Score accepts any JSON number; only whole values are kept.
type createRequest struct {
	Name  *string  `json:"name"`
	Time  *string  `json:"time"`
	Score *float64 `json:"score"`
	Date  *string  `json:"date"`
}

// updateRequest is the wire form of a Patch.
type updateRequest struct {
	Name  *string  `json:"name"`
	Time  *string  `json:"time"`
	Score *float64 `json:"score"`
	Date  *string  `json:"date"`
}

// wholeScore converts a decoded JSON number. ok is false for fractions and
// values beyond exact float precision.
func wholeScore(f float64) (int, bool) {
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int(f), true
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	entries := s.store.List()
	if r.URL.Query().Get("sort") == "time" {
		entries = s.store.Ranked()
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	index, ok := s.index(w, r)
	if !ok {
		return
	}
	e, err := s.store.Get(index)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !s.decode(w, r, &req, msgInvalidCreate) {
		return
	}
	if req.Name == nil || req.Time == nil || req.Score == nil || req.Date == nil {
		s.writeError(w, http.StatusBadRequest, msgInvalidCreate)
		return
	}
	score, ok := wholeScore(*req.Score)
	if !ok {
		s.writeError(w, http.StatusBadRequest, msgInvalidCreate)
		return
	}

	e, err := s.store.Create(Entry{Name: *req.Name, Time: *req.Time, Score: score, Date: *req.Date})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("entry created", "name", e.Name, "time", e.Time, "score", e.Score)
	s.writeJSON(w, http.StatusCreated, successResponse{Success: true, Entry: &e})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	index, ok := s.index(w, r)
	if !ok {
		return
	}
	// Unknown ids are reported before a bad body
	if _, err := s.store.Get(index); err != nil {
		s.writeStoreError(w, err)
		return
	}

	var req updateRequest
	if !s.decode(w, r, &req, msgEmptyPatch) {
		return
	}
	p := Patch{Name: req.Name, Time: req.Time, Date: req.Date}
	if req.Score != nil {
		score, ok := wholeScore(*req.Score)
		if !ok {
			s.writeError(w, http.StatusBadRequest, msgInvalidScore)
			return
		}
		p.Score = &score
	}
	e, err := s.store.Update(index, p)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, successResponse{Success: true, Entry: &e})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	index, ok := s.index(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(index); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("entry deleted", "index", index)
	s.writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Entry deleted"})
}

// death is the old submission endpoint. 307 keeps the method and body.
func (s *Server) death(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/leaderboard", http.StatusTemporaryRedirect)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// index parses the {id} path value. Anything that is not a valid index is
// simply not found.
func (s *Server) index(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

// decode reads a JSON body. An empty body leaves v zero. Wrongly typed
// fields get invalidMsg; anything else unreadable is reported as malformed.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any, invalidMsg string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		s.writeError(w, http.StatusBadRequest, invalidMsg)
	case errors.As(err, &tooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	default:
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body")
	}
	return false
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		s.writeError(w, http.StatusNotFound, msgNotFound)
	case errors.As(err, &verr):
		s.writeError(w, http.StatusBadRequest, verr.Message)
	default:
		s.logger.Error("store error", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}

// cors allows any origin and answers preflight requests itself.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
			if req := r.Header.Get("Access-Control-Request-Headers"); req != "" {
				h.Set("Access-Control-Allow-Headers", req)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

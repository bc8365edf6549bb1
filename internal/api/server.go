// Package api serves the prediction form over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/abhisek/bcdetect/internal/diagnosis"
)

const maxBodyBytes = 1 << 20

// Server exposes a diagnosis.Service over HTTP.
type Server struct {
	svc     *diagnosis.Service
	logger  *zap.Logger
	request *jsonschema.Schema
	router  *chi.Mux
}

// NewServer builds the router for svc. A nil logger disables logging.
func NewServer(svc *diagnosis.Service, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	compiled, err := compileRequestSchema(svc.Schema())
	if err != nil {
		return nil, fmt.Errorf("build request schema: %w", err)
	}

	s := &Server{
		svc:     svc,
		logger:  logger.Named("api"),
		request: compiled,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/api/v1/health", s.handleHealth)
	r.Get("/api/v1/features", s.handleFeatures)
	r.Post("/api/v1/predict", s.handlePredict)

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)),
			zap.String("http_request_id", middleware.GetReqID(r.Context())),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"features": s.svc.Schema().Len(),
		"model":    s.svc.ModelID(),
	})
}

type featureView struct {
	Name     string   `json:"name"`
	Min      *float64 `json:"min,omitempty"`
	Default  *float64 `json:"default,omitempty"`
	Required bool     `json:"required"`
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	specs := s.svc.Schema().Specs()
	out := make([]featureView, len(specs))
	for i, sp := range specs {
		out[i] = featureView{Name: sp.Name, Min: sp.Min, Default: sp.Default, Required: sp.Required}
	}
	respondJSON(w, http.StatusOK, map[string]any{"features": out})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	provider, err := s.providerFor(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	out := s.svc.Submit(r.Context(), provider)
	s.respondOutcome(w, out)
}

// providerFor decodes the request body into an input provider. JSON bodies
// are checked against the request schema; form bodies are parsed per field.
func (s *Server) providerFor(r *http.Request) (diagnosis.InputProvider, error) {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		ct = "application/json"
	}

	switch ct {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		if extra := unknownFormFields(s.svc.Schema(), r.PostForm); len(extra) > 0 {
			sort.Strings(extra)
			return nil, fmt.Errorf("unknown features: %v", extra)
		}
		return formProvider(r.PostForm), nil

	case "application/json":
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		if err := s.request.Validate(parsed); err != nil {
			return nil, fmt.Errorf("schema validation failed: %w", err)
		}
		var req struct {
			Features map[string]float64 `json:"features"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("decode features: %w", err)
		}
		return diagnosis.ValuesProvider(req.Features), nil

	default:
		return nil, fmt.Errorf("unsupported content type %q", ct)
	}
}

type predictResponse struct {
	RequestID string                   `json:"request_id"`
	Diagnosis diagnosis.Label          `json:"diagnosis"`
	Raw       int64                    `json:"raw"`
	Guidance  *diagnosis.GuidanceBlock `json:"guidance"`
}

func (s *Server) respondOutcome(w http.ResponseWriter, out diagnosis.Outcome) {
	if out.State == diagnosis.StateDecided {
		respondJSON(w, http.StatusOK, predictResponse{
			RequestID: out.RequestID,
			Diagnosis: out.Result.Label,
			Raw:       out.Result.Raw,
			Guidance:  out.Guidance,
		})
		return
	}

	body := map[string]any{
		"request_id": out.RequestID,
		"error":      diagnosis.UserMessage(out.Err),
	}
	var status int
	switch diagnosis.KindOf(out.Err) {
	case diagnosis.KindIncomplete:
		status = http.StatusUnprocessableEntity
		body["missing"] = out.Missing
	case diagnosis.KindInvalidInput:
		status = http.StatusBadRequest
	case diagnosis.KindClassifierFailure:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}
	respondJSON(w, status, body)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]string{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

var _ diagnosis.InputProvider = formProvider(nil)

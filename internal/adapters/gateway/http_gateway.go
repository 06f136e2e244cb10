package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
)

const maxRequestBytes = 64 * 1024

// Analyzer is the part of the analysis service the gateways depend on
type Analyzer interface {
	Analyze(ctx context.Context, req core.AnalyzeRequest) (*core.AnalysisResult, error)
	Stats(ctx context.Context) (core.TierCounts, error)
	RandomVerdict(ctx context.Context) (*core.Verdict, error)
}

// HTTPGateway serves the JSON analysis API
type HTTPGateway struct {
	service Analyzer
	cfg     config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewHTTPGateway creates a new HTTP gateway
func NewHTTPGateway(service Analyzer, cfg config.ServerConfig, logger *zap.Logger) *HTTPGateway {
	return &HTTPGateway{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// Name identifies the gateway
func (g *HTTPGateway) Name() string {
	return "http"
}

// Handler returns the routed handler, wrapped with CORS
func (g *HTTPGateway) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /analyze", g.analyze)
	mux.HandleFunc("POST /consultar-modelo", g.analyze)

	mux.HandleFunc("GET /stats", g.stats)
	mux.HandleFunc("GET /estadisticas", g.stats)

	mux.HandleFunc("GET /messages/random", g.random)
	mux.HandleFunc("GET /mensaje-aleatorio", g.random)

	mux.HandleFunc("GET /ping", g.ping)

	return withCORS(mux)
}

// Start starts the HTTP server in the background
func (g *HTTPGateway) Start() error {
	g.server = &http.Server{
		Addr:         g.cfg.ListenAddress,
		Handler:      g.Handler(),
		ReadTimeout:  g.cfg.ReadTimeout,
		WriteTimeout: g.cfg.WriteTimeout,
	}

	g.logger.Info("HTTP gateway starting", zap.String("address", g.cfg.ListenAddress))

	go func() {
		if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the HTTP server down
func (g *HTTPGateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Shutdown(ctx)
}

// withCORS adds CORS headers for browser clients
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

// AnalyzeRequestBody is the request body of POST /analyze
type AnalyzeRequestBody struct {
	Mensaje       string `json:"mensaje"`
	NumeroCelular string `json:"numero_celular,omitempty"`
	Message       string `json:"message,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
}

func (b AnalyzeRequestBody) toRequest() core.AnalyzeRequest {
	req := core.AnalyzeRequest{Message: b.Mensaje, PhoneNumber: b.NumeroCelular}
	if req.Message == "" {
		req.Message = b.Message
	}
	if req.PhoneNumber == "" {
		req.PhoneNumber = b.PhoneNumber
	}
	return req
}

// AnalyzeResponse is the response body of POST /analyze
type AnalyzeResponse struct {
	Message       string             `json:"mensaje"`
	URL           string             `json:"url"`
	Justification string             `json:"analisis_gpt"`
	Tier          core.RiskTier      `json:"analisis_smishguard"`
	TierScore     int                `json:"puntaje"`
	WeightedScore float64            `json:"ponderado"`
	SpamLabel     core.SpamLabel     `json:"resultado_ml"`
	URLReputation core.URLReputation `json:"resultado_url"`
	AnalyzedAt    time.Time          `json:"fecha_analisis"`
	FromCache     bool               `json:"desde_cache"`
}

func newAnalyzeResponse(result *core.AnalysisResult) AnalyzeResponse {
	v := result.Verdict
	return AnalyzeResponse{
		Message:       v.Content,
		URL:           v.ExtractedURL,
		Justification: v.Scores.Justification,
		Tier:          v.RiskTier,
		TierScore:     v.TierScore,
		WeightedScore: v.WeightedScore,
		SpamLabel:     v.Scores.SpamLabel,
		URLReputation: v.Scores.URLReputation,
		AnalyzedAt:    v.AnalyzedAt,
		FromCache:     result.FromCache,
	}
}

func (g *HTTPGateway) analyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}

	ctx := r.Context()
	if g.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.RequestTimeout)
		defer cancel()
	}

	result, err := g.service.Analyze(ctx, body.toRequest())
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			writeError(w, http.StatusBadRequest, "el campo mensaje es obligatorio")
			return
		}
		g.logger.Error("Analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "error interno")
		return
	}

	writeJSON(w, http.StatusOK, newAnalyzeResponse(result))
}

// StatsResponse is the response body of GET /stats
type StatsResponse struct {
	Messages TierCountsBody `json:"mensajes"`
}

// TierCountsBody holds the per-tier counts
type TierCountsBody struct {
	Safe       int `json:"seguros"`
	Suspicious int `json:"sospechosos"`
	Dangerous  int `json:"peligrosos"`
}

func (g *HTTPGateway) stats(w http.ResponseWriter, r *http.Request) {
	counts, err := g.service.Stats(r.Context())
	if err != nil {
		g.logger.Error("Failed to count verdicts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "error interno")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Messages: TierCountsBody{
		Safe:       counts[core.TierSafe],
		Suspicious: counts[core.TierSuspicious],
		Dangerous:  counts[core.TierDangerous],
	}})
}

func (g *HTTPGateway) random(w http.ResponseWriter, r *http.Request) {
	verdict, err := g.service.RandomVerdict(r.Context())
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no hay mensajes almacenados")
		return
	}
	if err != nil {
		g.logger.Error("Failed to read random verdict", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "error interno")
		return
	}

	writeJSON(w, http.StatusOK, map[string]*core.Verdict{"mensaje": verdict})
}

func (g *HTTPGateway) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

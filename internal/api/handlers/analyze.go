package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"riskguard-lab/internal/domain/models"
	"riskguard-lab/internal/domain/services"
	"riskguard-lab/pkg/logger"
)

const maxBatchSize = 100

// AnalyzeHandler handles content analysis endpoints
type AnalyzeHandler struct {
	engine *services.RiskEngine
	logger *logger.Logger
}

// NewAnalyzeHandler creates a new analysis handler
func NewAnalyzeHandler(engine *services.RiskEngine, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		engine: engine,
		logger: log.WithComponent("analyze-handler"),
	}
}

// TextRequest is the request body for text analysis
type TextRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// BatchRequest is the request body for batch text analysis
type BatchRequest struct {
	Items []services.TextInput `json:"items"`
}

// BatchResponse wraps the per-item assessments of a batch
type BatchResponse struct {
	Results []*models.RiskAssessment `json:"results"`
	Count   int                      `json:"count"`
}

// URLRequest is the request body for URL analysis
type URLRequest struct {
	URL     string `json:"url"`
	Context string `json:"context,omitempty"`
}

// CombinedRequest is the request body for combined text and URL analysis
type CombinedRequest struct {
	Text TextRequest `json:"text"`
	URL  URLRequest  `json:"url"`
}

// QRRequest is the request body for QR payload analysis
type QRRequest struct {
	QRData  string `json:"qr_data"`
	Context string `json:"context,omitempty"`
}

// Text handles POST /api/v1/analyze/text
func (h *AnalyzeHandler) Text(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	assessment := h.engine.AnalyzeText(r.Context(), req.Content, req.ContentType)
	writeJSON(w, http.StatusOK, assessment)
}

// TextBatch handles POST /api/v1/analyze/text/batch
func (h *AnalyzeHandler) TextBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "At least one item is required", http.StatusBadRequest)
		return
	}
	if len(req.Items) > maxBatchSize {
		http.Error(w, "Maximum 100 items per batch", http.StatusBadRequest)
		return
	}
	for _, item := range req.Items {
		if item.Content == "" {
			http.Error(w, "Content is required for every item", http.StatusBadRequest)
			return
		}
	}

	results := h.engine.AnalyzeTextBatch(r.Context(), req.Items)
	writeJSON(w, http.StatusOK, BatchResponse{Results: results, Count: len(results)})
}

// URL handles POST /api/v1/analyze/url
func (h *AnalyzeHandler) URL(w http.ResponseWriter, r *http.Request) {
	var req URLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	assessment := h.engine.AnalyzeURL(r.Context(), req.URL, req.Context)
	writeJSON(w, http.StatusOK, assessment)
}

// Combined handles POST /api/v1/analyze/combined
func (h *AnalyzeHandler) Combined(w http.ResponseWriter, r *http.Request) {
	var req CombinedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text.Content == "" {
		http.Error(w, "Text content is required", http.StatusBadRequest)
		return
	}
	if req.URL.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	text := h.engine.AnalyzeText(r.Context(), req.Text.Content, req.Text.ContentType)
	url := h.engine.AnalyzeURL(r.Context(), req.URL.URL, req.URL.Context)

	response := models.CombinedAssessment{
		TextAnalysis: text,
		URLAnalysis:  url,
		Combined:     h.engine.Combine(text, url),
	}
	writeJSON(w, http.StatusOK, response)
}

// QR handles POST /api/v1/analyze/qr. QR payloads are text; only URL
// payloads are assessable.
func (h *AnalyzeHandler) QR(w http.ResponseWriter, r *http.Request) {
	var req QRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.QRData == "" {
		http.Error(w, "QR data is required", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(req.QRData, "http") {
		http.Error(w, "QR payload is not a URL", http.StatusBadRequest)
		return
	}

	assessment := h.engine.AnalyzeURL(r.Context(), req.QRData, req.Context)
	writeJSON(w, http.StatusOK, assessment)
}

// PatternsResponse wraps the exported pattern catalog
type PatternsResponse struct {
	Groups []services.PatternGroup `json:"groups"`
}

// Patterns handles GET /api/v1/patterns
func (h *AnalyzeHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PatternsResponse{Groups: h.engine.PatternCatalog()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"riskguard-lab/internal/domain/models"
	"riskguard-lab/internal/domain/services"
	"riskguard-lab/pkg/logger"
)

func testHandlers() *Handlers {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	engine := services.NewRiskEngine(nil, log)
	return NewHandlers(Dependencies{Engine: engine, Logger: log})
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeText(t *testing.T) {
	h := testHandlers()

	rec := postJSON(t, h.Analyze.Text, `{"content":"Urgent: verify your account now, click here","content_type":"email"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got models.RiskAssessment
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SafetyLabel != models.SafetyLabelUnsafe {
		t.Errorf("SafetyLabel = %v, want UNSAFE", got.SafetyLabel)
	}
	if got.RiskScore != 75 {
		t.Errorf("RiskScore = %d, want 75", got.RiskScore)
	}
	if len(got.Recommendations) == 0 {
		t.Error("missing recommendations")
	}
}

func TestAnalyzeTextValidation(t *testing.T) {
	h := testHandlers()

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{not json`},
		{"missing content", `{"content_type":"email"}`},
		{"empty content", `{"content":"","content_type":"email"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postJSON(t, h.Analyze.Text, tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestAnalyzeTextBatch(t *testing.T) {
	h := testHandlers()

	rec := postJSON(t, h.Analyze.TextBatch,
		`{"items":[{"content":"see you tomorrow"},{"content":"Urgent: verify your account now, click here","content_type":"email"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got BatchResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Count != 2 || len(got.Results) != 2 {
		t.Fatalf("count = %d, results = %d", got.Count, len(got.Results))
	}
	if got.Results[0].SafetyLabel != models.SafetyLabelSafe {
		t.Errorf("first label = %v, want SAFE", got.Results[0].SafetyLabel)
	}
	if got.Results[1].SafetyLabel != models.SafetyLabelUnsafe {
		t.Errorf("second label = %v, want UNSAFE", got.Results[1].SafetyLabel)
	}
}

func TestAnalyzeTextBatchLimits(t *testing.T) {
	h := testHandlers()

	if rec := postJSON(t, h.Analyze.TextBatch, `{"items":[]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty batch status = %d, want 400", rec.Code)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"items":[`)
	for i := 0; i < 101; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"content":"item %d"}`, i)
	}
	buf.WriteString(`]}`)

	if rec := postJSON(t, h.Analyze.TextBatch, buf.String()); rec.Code != http.StatusBadRequest {
		t.Errorf("oversized batch status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeURL(t *testing.T) {
	h := testHandlers()

	rec := postJSON(t, h.Analyze.URL, `{"url":"http://login-paypa1.com/file.exe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got models.RiskAssessment
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RiskLevel != models.RiskLevelHigh {
		t.Errorf("RiskLevel = %v, want HIGH", got.RiskLevel)
	}

	if rec := postJSON(t, h.Analyze.URL, `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing url status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeCombined(t *testing.T) {
	h := testHandlers()

	rec := postJSON(t, h.Analyze.Combined,
		`{"text":{"content":"Urgent: verify your account now, click here","content_type":"email"},"url":{"url":"http://login-paypa1.com/file.exe"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got models.CombinedAssessment
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TextAnalysis == nil || got.URLAnalysis == nil {
		t.Fatal("missing one of the halves")
	}
	if got.Combined == nil {
		t.Fatal("missing combined summary")
	}
	if got.Combined.RiskLevel != models.RiskLevelCritical {
		t.Errorf("combined RiskLevel = %v, want the worse CRITICAL", got.Combined.RiskLevel)
	}
	if len(got.Combined.DetectedRisks) != 3 {
		t.Errorf("combined DetectedRisks = %v, want the union of 3", got.Combined.DetectedRisks)
	}

	if rec := postJSON(t, h.Analyze.Combined, `{"text":{"content":"hello"}}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing url status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeQR(t *testing.T) {
	h := testHandlers()

	rec := postJSON(t, h.Analyze.QR, `{"qr_data":"http://login-paypa1.com/signin"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got models.RiskAssessment
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.DetectedRisks) == 0 {
		t.Error("known-bad QR URL produced no detections")
	}

	if rec := postJSON(t, h.Analyze.QR, `{"qr_data":"WIFI:S:corp;P:secret;;"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("non-URL payload status = %d, want 400", rec.Code)
	}
	if rec := postJSON(t, h.Analyze.QR, `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty payload status = %d, want 400", rec.Code)
	}
}

func TestPatterns(t *testing.T) {
	h := testHandlers()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Analyze.Patterns(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got PatternsResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(got.Groups))
	}
	for _, group := range got.Groups {
		if len(group.Patterns) == 0 {
			t.Errorf("group %s has no patterns", group.Category)
		}
		for _, p := range group.Patterns {
			if p.Name == "" || p.Pattern == "" || p.Weight <= 0 {
				t.Errorf("incomplete pattern %+v in group %s", p, group.Category)
			}
		}
	}
}

func TestStats(t *testing.T) {
	h := testHandlers()

	// Seed a couple of assessments
	postJSON(t, h.Analyze.Text, `{"content":"see you tomorrow"}`)
	postJSON(t, h.Analyze.Text, `{"content":"Urgent: verify your account now, click here","content_type":"email"}`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Stats.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 2 {
		t.Errorf("Total = %d, want 2", got.Total)
	}
	if got.Labels[models.SafetyLabelSafe] != 1 || got.Labels[models.SafetyLabelUnsafe] != 1 {
		t.Errorf("Labels = %v", got.Labels)
	}
}

func TestHealth(t *testing.T) {
	h := testHandlers()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health.Check(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != "healthy" {
		t.Errorf("Status = %q", got.Status)
	}
}

func TestReady(t *testing.T) {
	h := testHandlers()

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	h.Health.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Checks["redis"] != "not configured" {
		t.Errorf("redis check = %q", got.Checks["redis"])
	}
}

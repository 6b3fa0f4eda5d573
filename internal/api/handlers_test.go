package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"lifecoach/internal/analytics"
	"lifecoach/internal/coach"
	"lifecoach/internal/config"
	"lifecoach/internal/llm"
	"lifecoach/internal/memory"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Chat(_ context.Context, _ []llm.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestRouter(t *testing.T, completer llm.Completer) (*gin.Engine, *memory.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs := memory.NewFileStore(filepath.Join(t.TempDir(), "memory.json"))
	mem, err := memory.NewManager(fs, 5)
	if err != nil {
		t.Fatalf("failed to create memory manager: %v", err)
	}

	cfg := &config.Config{}
	engine := coach.NewEngine(mem, completer)
	reporter := analytics.NewReporter(mem)
	return SetupRouter(cfg, mem, engine, reporter), mem
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not valid JSON: %v: %s", err, w.Body.String())
	}
	return out
}

func TestHealthHandler_ReturnsOk(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if body["service"] != "AI Life Coach" {
		t.Errorf("expected service name, got %v", body["service"])
	}
	if body["memory_system"] != "operational" {
		t.Errorf("expected operational memory system, got %v", body["memory_system"])
	}
}

func TestSecurityHeaders_SetOnEveryResponse(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, "GET", "/health", "")
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("expected SAMEORIGIN, got %q", got)
	}
	if got := w.Header().Get("Referrer-Policy"); got != "strict-origin-when-cross-origin" {
		t.Errorf("expected referrer policy, got %q", got)
	}
}

func TestChatHandler_Success(t *testing.T) {
	r, mem := newTestRouter(t, &stubCompleter{reply: "that sounds encouraging"})

	w := doJSON(r, "POST", "/chat", `{"message":"I feel happy about today"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body["success"])
	}
	if body["response"] != "that sounds encouraging" {
		t.Errorf("unexpected response text: %v", body["response"])
	}
	if body["mood"] != "positive" {
		t.Errorf("expected positive mood, got %v", body["mood"])
	}
	if _, present := body["fallback"]; present {
		t.Errorf("fallback flag should be absent on provider responses")
	}

	if got := mem.Summarize().TotalEvents; got != 1 {
		t.Errorf("expected chat turn to be journaled, got %d events", got)
	}
}

func TestChatHandler_FallbackWithoutProvider(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, "POST", "/chat", `{"message":"thinking about my goal"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["fallback"] != true {
		t.Errorf("expected fallback flag, got %v", body["fallback"])
	}
}

func TestChatHandler_Validation(t *testing.T) {
	r, mem := newTestRouter(t, &stubCompleter{reply: "ok"})

	cases := []struct {
		name string
		body string
		want string
	}{
		{"no body", "", "No message provided"},
		{"empty message", `{"message":"   "}`, "Empty message"},
		{"too long", `{"message":"` + strings.Repeat("a", 2001) + `"}`, "Message too long"},
	}
	for _, tc := range cases {
		w := doJSON(r, "POST", "/chat", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
		}
		if !strings.Contains(w.Body.String(), tc.want) {
			t.Errorf("%s: expected %q in body, got %s", tc.name, tc.want, w.Body.String())
		}
	}

	if got := mem.Summarize().TotalEvents; got != 0 {
		t.Errorf("rejected messages must not be journaled, got %d events", got)
	}
}

func TestChatHandler_ProviderFailure(t *testing.T) {
	r, mem := newTestRouter(t, &stubCompleter{err: errors.New("connection refused")})

	w := doJSON(r, "POST", "/chat", `{"message":"hello"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Errorf("expected success false, got %v", body["success"])
	}
	if !strings.Contains(w.Body.String(), "technical difficulties") {
		t.Errorf("expected user-safe error message, got %s", w.Body.String())
	}
	if got := mem.Summarize().TotalEvents; got != 0 {
		t.Errorf("failed turns must not be journaled, got %d events", got)
	}
}

func TestCareerHandler_Success(t *testing.T) {
	r, mem := newTestRouter(t, &stubCompleter{reply: "focus on visible projects"})

	w := doJSON(r, "POST", "/career", `{"message":"started a leadership training"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["response"] != "focus on visible projects" {
		t.Errorf("unexpected response: %v", body["response"])
	}
	steps, ok := body["next_steps"].([]interface{})
	if !ok || len(steps) != 4 {
		t.Errorf("expected 4 next steps, got %v", body["next_steps"])
	}
	if _, ok := body["career_insights"]; !ok {
		t.Errorf("expected career_insights in response")
	}
	if _, ok := body["skill_recommendations"]; !ok {
		t.Errorf("expected skill_recommendations in response")
	}

	events := mem.CareerEvents()
	if len(events) != 1 {
		t.Fatalf("expected career event to be journaled, got %d", len(events))
	}
}

func TestCareerPlanHandler_Success(t *testing.T) {
	r, mem := newTestRouter(t, &stubCompleter{reply: "1. Immediate actions"})

	w := doJSON(r, "POST", "/career/plan", `{"timeframe":"1year"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["plan"] != "1. Immediate actions" {
		t.Errorf("unexpected plan: %v", body["plan"])
	}
	if body["plan_id"] != float64(1) {
		t.Errorf("expected plan_id 1, got %v", body["plan_id"])
	}

	plans := mem.Export().CareerPlans
	if len(plans) != 1 || plans[0].Timeframe != "1year" {
		t.Errorf("expected stored plan with timeframe 1year, got %+v", plans)
	}
}

func TestCareerPlanHandler_NoProvider(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, "POST", "/career/plan", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Failed to create career plan") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestGoalHandlers_Lifecycle(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, "POST", "/goals", `{"goal":"learn spanish","target_date":"2027-01-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	goal, ok := body["goal"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected goal object, got %v", body["goal"])
	}
	if goal["status"] != "active" {
		t.Errorf("new goals must start active, got %v", goal["status"])
	}
	id, _ := goal["id"].(string)
	if id == "" {
		t.Fatalf("expected goal id, got %v", goal["id"])
	}

	w = doJSON(r, "PUT", "/goals/"+id, `{"status":"completed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	updated := body["goal"].(map[string]interface{})
	if updated["status"] != "completed" {
		t.Errorf("expected completed status, got %v", updated["status"])
	}
	if updated["completed_date"] == "" {
		t.Errorf("expected completed_date to be set")
	}

	// Terminal status is sticky
	w = doJSON(r, "PUT", "/goals/"+id, `{"status":"abandoned"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for terminal goal, got %d", w.Code)
	}
}

func TestGoalHandlers_Errors(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, "POST", "/goals", `{"goal":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank goal, got %d", w.Code)
	}

	w = doJSON(r, "PUT", "/goals/no-such-id", `{"status":"completed"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown goal, got %d", w.Code)
	}

	w = doJSON(r, "PUT", "/goals/no-such-id", `{"status":"paused"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", w.Code)
	}
}

func TestMemoryHandler_Summary(t *testing.T) {
	r, mem := newTestRouter(t, nil)

	for _, entry := range []string{"first entry", "second entry", "third entry"} {
		if _, err := mem.AppendEvent(entry, memory.EventGeneral, "neutral"); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	if _, err := mem.AddGoal("read twelve books", ""); err != nil {
		t.Fatalf("add goal failed: %v", err)
	}

	w := doJSON(r, "GET", "/memory", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["total_events"] != float64(3) {
		t.Errorf("expected 3 events, got %v", body["total_events"])
	}
	if body["total_goals"] != float64(1) {
		t.Errorf("expected 1 goal, got %v", body["total_goals"])
	}
	active, ok := body["active_goals"].([]interface{})
	if !ok || len(active) != 1 {
		t.Errorf("expected 1 active goal, got %v", body["active_goals"])
	}
	if _, ok := body["patterns"]; !ok {
		t.Errorf("expected patterns in summary")
	}
}

func TestExportHandler(t *testing.T) {
	r, mem := newTestRouter(t, nil)

	if _, err := mem.AppendEvent("a day worth keeping", memory.EventGeneral, ""); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	w := doJSON(r, "GET", "/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["version"] != "1.0" {
		t.Errorf("expected export version 1.0, got %v", body["version"])
	}
	events, ok := body["life_events"].([]interface{})
	if !ok || len(events) != 1 {
		t.Errorf("expected 1 exported event, got %v", body["life_events"])
	}
	if _, present := body["career_plans"]; present {
		t.Errorf("career_plans should be omitted when empty")
	}
}

func TestAnalyticsHandler(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(r, "GET", "/analytics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("expected success true, got %v", body["success"])
	}
	report, ok := body["report"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected report object, got %v", body["report"])
	}
	if _, ok := report["mood_analysis"]; !ok {
		t.Errorf("expected comprehensive report, got %v", report)
	}

	w = doJSON(r, "GET", "/analytics?type=weekly", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	report = body["report"].(map[string]interface{})
	if report["period"] != "Weekly Report" {
		t.Errorf("expected weekly report, got %v", report["period"])
	}
}

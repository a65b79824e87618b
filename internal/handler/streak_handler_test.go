package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sahxzm/Dreamer/internal/handler"
	"github.com/sahxzm/Dreamer/internal/router"
	"github.com/sahxzm/Dreamer/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return router.SetupRouter(handler.NewAPI(storage.NewMemoryStore()))
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return envelope
}

func TestRecordActivityEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/streaks/activity", `{"activity_type":"tasks","value":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	envelope := decodeEnvelope(t, w)
	if envelope["error"] != nil {
		t.Fatalf("expected nil error, got %v", envelope["error"])
	}

	data := envelope["data"].(map[string]any)
	record := data["record"].(map[string]any)
	if record["activity_type"] != "tasks" || record["value"].(float64) != 3 {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestRecordActivityRejectsUnknownCategory(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/streaks/activity", `{"activity_type":"sleep","value":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	if envelope["error"] == nil || envelope["data"] != nil {
		t.Fatalf("expected error envelope, got %v", envelope)
	}
}

func TestHeatmapEndpointReturnsFullWindow(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/streaks/heatmap", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	heatmap := envelope["data"].(map[string]any)["heatmap"].(map[string]any)
	if len(heatmap) != 366 {
		t.Fatalf("expected 366 entries, got %d", len(heatmap))
	}
}

func TestActivityLevelEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/streaks/level?value=7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	if level := envelope["data"].(map[string]any)["level"].(float64); level != 3 {
		t.Fatalf("expected level 3, got %v", level)
	}

	w = doRequest(t, r, http.MethodGet, "/api/streaks/level?value=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric value, got %d", w.Code)
	}
}

func TestStreakDayEndpointRequiresParams(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/streaks/day", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without params, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/streaks/day?date=2024-05-15&type=tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	if data["value"].(float64) != 0 || data["level"].(float64) != 0 {
		t.Fatalf("expected zero day, got %v", data)
	}
}

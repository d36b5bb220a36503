package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &App{
		WordList: []WordEntry{
			{Word: "grace", Reference: "Ephesians 2:8", Verse: "For by grace are ye saved through faith."},
		},
		DataDir:        t.TempDir(),
		AppURL:         "https://example.test",
		Telemetry:      noopTelemetry{},
		Controllers:    make(map[string]*Controller),
		LimiterMap:     make(map[string]*rate.Limiter),
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		CookieMaxAge:   30 * 24 * time.Hour,
		StoreMaxAge:    60 * 24 * time.Hour,
		StartTime:      time.Now(),
	}
}

// doJSON performs one request against the router, carrying cookies forward.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie) (*httptest.ResponseRecorder, []*http.Cookie) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		cookies = set
	}
	return w, cookies
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestStateHandler_SetsSessionCookie(t *testing.T) {
	app := newTestApp(t)
	router := app.buildRouter()

	w, cookies := doJSON(t, router, http.MethodGet, RouteState, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, body %s", RouteState, w.Code, w.Body.String())
	}
	var found bool
	for _, ck := range cookies {
		if ck.Name == SessionCookieName && ck.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no %s cookie set", SessionCookieName)
	}

	state := decodeBody(t, w)
	if state["dayKey"] != dateKey(time.Now()) {
		t.Errorf("dayKey = %v", state["dayKey"])
	}
	if state["hasActiveAttempt"] != false || state["inputLocked"] != true {
		t.Errorf("fresh session should be locked without an attempt: %v", state)
	}
}

func TestNewAttemptAndKeyFlow(t *testing.T) {
	app := newTestApp(t)
	router := app.buildRouter()

	_, cookies := doJSON(t, router, http.MethodGet, RouteState, nil, nil)

	w, cookies := doJSON(t, router, http.MethodPost, RouteNewAttempt, nil, cookies)
	body := decodeBody(t, w)
	if body["started"] != true {
		t.Fatalf("new attempt refused: %v", body)
	}
	state := body["state"].(map[string]any)
	if state["playCount"].(float64) != 1 || state["inputLocked"] != false {
		t.Errorf("state after start: %v", state)
	}

	for _, letter := range []string{"g", "r", "a", "c", "e"} {
		w, cookies = doJSON(t, router, http.MethodPost, RouteKey, keyRequest{Key: letter}, cookies)
		if w.Code != http.StatusOK {
			t.Fatalf("POST %s %q = %d", RouteKey, letter, w.Code)
		}
	}
	w, cookies = doJSON(t, router, http.MethodPost, RouteKey, keyRequest{Key: KeyEnter}, cookies)
	body = decodeBody(t, w)
	result := body["result"].(map[string]any)
	if result["won"] != true || result["finished"] != true {
		t.Fatalf("winning enter = %v", result)
	}
	state = body["state"].(map[string]any)
	if state["reference"] != "Ephesians 2:8" {
		t.Errorf("finished state should expose the reference: %v", state)
	}

	w, _ = doJSON(t, router, http.MethodGet, RouteShare, nil, cookies)
	share := decodeBody(t, w)
	text, _ := share["text"].(string)
	if text == "" {
		t.Error("share text is empty")
	}
}

func TestKeyHandler_RejectsMissingKey(t *testing.T) {
	app := newTestApp(t)
	router := app.buildRouter()

	_, cookies := doJSON(t, router, http.MethodGet, RouteState, nil, nil)
	w, _ := doJSON(t, router, http.MethodPost, RouteKey, map[string]string{}, cookies)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty body = %d, want 400", w.Code)
	}
}

func TestSession_ReplacesForgedCookie(t *testing.T) {
	app := newTestApp(t)
	router := app.buildRouter()

	// A non-UUID cookie is replaced with a fresh session rather than rejected.
	forged := []*http.Cookie{{Name: SessionCookieName, Value: "../../etc/passwd"}}
	w, _ := doJSON(t, router, http.MethodGet, RouteState, nil, forged)
	if w.Code != http.StatusOK {
		t.Fatalf("forged cookie = %d, body %s", w.Code, w.Body.String())
	}
	state := decodeBody(t, w)
	if state["dayKey"] == nil {
		t.Errorf("no state served for replaced session: %v", state)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	app := newTestApp(t)
	app.RateLimitRPS = 1
	app.RateLimitBurst = 2
	router := app.buildRouter()

	_, cookies := doJSON(t, router, http.MethodGet, RouteState, nil, nil)

	var limited bool
	for i := 0; i < 5; i++ {
		w, _ := doJSON(t, router, http.MethodPost, RouteKey, keyRequest{Key: "a"}, cookies)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("burst of POSTs was never rate limited")
	}
}

func TestHealthzHandler(t *testing.T) {
	app := newTestApp(t)
	router := app.buildRouter()

	w, _ := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
	if body["words_loaded"].(float64) != 1 {
		t.Errorf("words_loaded = %v", body["words_loaded"])
	}
	if body["day_key"] != dateKey(time.Now()) {
		t.Errorf("day_key = %v", body["day_key"])
	}
}

func TestSnapshotSurvivesControllerRebuild(t *testing.T) {
	app := newTestApp(t)
	router := app.buildRouter()

	_, cookies := doJSON(t, router, http.MethodGet, RouteState, nil, nil)
	_, cookies = doJSON(t, router, http.MethodPost, RouteNewAttempt, nil, cookies)
	for _, letter := range []string{"g", "r"} {
		_, cookies = doJSON(t, router, http.MethodPost, RouteKey, keyRequest{Key: letter}, cookies)
	}

	// Dropping the cached controller forces a reload from the player store.
	app.SessionMutex.Lock()
	app.Controllers = make(map[string]*Controller)
	app.SessionMutex.Unlock()

	w, _ := doJSON(t, router, http.MethodGet, RouteState, nil, cookies)
	state := decodeBody(t, w)
	if state["currentCol"].(float64) != 2 {
		t.Errorf("restored cursor col = %v, want 2", state["currentCol"])
	}
	if state["hasActiveAttempt"] != true {
		t.Errorf("restored session lost its active attempt: %v", state)
	}
}

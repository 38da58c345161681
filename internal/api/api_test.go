package api

import (
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"seatapp-web/config"
	"seatapp-web/internal/logging"
	"seatapp-web/internal/upstream"
)

const validSession = "seatapp_session=good"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logging.Init(logging.Config{Level: "disabled"})
	os.Exit(m.Run())
}

// newTestRouter starts upstreamHandler as the mock upstream API and returns a
// router wired to it.
func newTestRouter(t *testing.T, upstreamHandler http.Handler) *gin.Engine {
	t.Helper()
	return routerFor(newUpstream(t, upstreamHandler), nil)
}

// newUpstream starts a mock upstream API and returns its base URL.
func newUpstream(t *testing.T, h http.Handler) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

// deadUpstreamRouter returns a router whose upstream refuses connections.
func deadUpstreamRouter(t *testing.T) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	return routerFor(addr, nil)
}

func routerFor(baseURL string, tweak func(*config.Config)) *gin.Engine {
	cfg := config.Default()
	cfg.Upstream.BaseURL = baseURL
	cfg.Server.LoginRateLimitPerSec = 0
	if tweak != nil {
		tweak(cfg)
	}
	return NewRouter(cfg, upstream.NewClient(cfg.Upstream))
}

// withSession registers an /api/me that accepts only validSession.
func withSession(mux *http.ServeMux, name, upn string) {
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != validSession {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"detail":"Not authenticated"}`)
			return
		}
		writeJSON(w, map[string]any{"id": 7, "name": name, "upn": upn})
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(b)
}

func get(t *testing.T, r http.Handler, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func httptestJSON(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func postForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// text returns the response body with HTML entities decoded.
func text(w *httptest.ResponseRecorder) string {
	return html.UnescapeString(w.Body.String())
}

func requireShell(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Contains(t, w.Body.String(), `<a href="/map">Map</a>`)
	require.Contains(t, w.Body.String(), `<a href="/logout">Logout</a>`)
}

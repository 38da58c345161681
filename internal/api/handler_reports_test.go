package api

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var reportBodies = map[string]string{
	"weekly":  `{"range":{"from":"2026-10-12","to":"2026-10-18"},"data":{"office":3,"remote":1,"no_show":0}}`,
	"monthly": `{"range":{"from":"2026-10-01","to":"2026-10-31"},"data":{"office":12,"remote":4,"no_show":1}}`,
	"yearly":  `{"zeta":1,"alpha":2}`,
}

// barrierReports answers a report only once all three report requests are in
// flight at the same time, so a sequential caller gets a 504 instead.
func barrierReports(mux *http.ServeMux) {
	var arrived sync.WaitGroup
	arrived.Add(len(reportBodies))
	all := make(chan struct{})
	go func() {
		arrived.Wait()
		close(all)
	}()

	mux.HandleFunc("GET /api/reports/{period}", func(w http.ResponseWriter, r *http.Request) {
		body, ok := reportBodies[r.PathValue("period")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		arrived.Done()
		select {
		case <-all:
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, body)
		case <-time.After(3 * time.Second):
			http.Error(w, "reports were not requested concurrently", http.StatusGatewayTimeout)
		}
	})
}

func TestReports_FetchesConcurrentlyAndPrettyPrints(t *testing.T) {
	mux := http.NewServeMux()
	withSession(mux, "Ana", "ana@example.com")
	barrierReports(mux)
	router := newTestRouter(t, mux)

	w := get(t, router, "/reports", validSession)

	assert.Equal(t, http.StatusOK, w.Code, text(w))
	body := text(w)
	assert.Contains(t, body, "{\n  \"range\": {\n    \"from\": \"2026-10-12\",\n    \"to\": \"2026-10-18\"\n  },")
	assert.Contains(t, body, "\"office\": 12,")
	assert.Contains(t, body, "{\n  \"zeta\": 1,\n  \"alpha\": 2\n}")

	weekly := strings.Index(body, "<h3>Weekly</h3>")
	monthly := strings.Index(body, "<h3>Monthly</h3>")
	yearly := strings.Index(body, "<h3>Yearly</h3>")
	assert.True(t, weekly >= 0 && weekly < monthly && monthly < yearly)
	requireShell(t, w)
}

func TestReports_WithoutSessionRedirectsToLogin(t *testing.T) {
	var reportCalls atomic.Int32
	mux := http.NewServeMux()
	withSession(mux, "Ana", "ana@example.com")
	mux.HandleFunc("GET /api/reports/{period}", func(w http.ResponseWriter, r *http.Request) {
		reportCalls.Add(1)
		io.WriteString(w, `{}`)
	})
	router := newTestRouter(t, mux)

	w := get(t, router, "/reports", "seatapp_session=forged")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "<pre>")
	assert.Equal(t, int32(0), reportCalls.Load())
}

func TestReports_OneFailureFailsThePage(t *testing.T) {
	mux := http.NewServeMux()
	withSession(mux, "Ana", "ana@example.com")
	mux.HandleFunc("GET /api/reports/{period}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("period") == "monthly" {
			http.Error(w, "report engine down", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, reportBodies[r.PathValue("period")])
	})
	router := newTestRouter(t, mux)

	w := get(t, router, "/reports", validSession)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, text(w), "monthly report")
	assert.Contains(t, text(w), "report engine down")
	assert.NotContains(t, text(w), "<h3>Weekly</h3>")
	requireShell(t, w)
}

func TestReports_MalformedPayloadIs500(t *testing.T) {
	mux := http.NewServeMux()
	withSession(mux, "Ana", "ana@example.com")
	mux.HandleFunc("GET /api/reports/{period}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":`)
	})
	router := newTestRouter(t, mux)

	w := get(t, router, "/reports", validSession)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, text(w), "report")
}

func TestReports_UpstreamDownIs500(t *testing.T) {
	w := get(t, deadUpstreamRouter(t), "/reports", validSession)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, text(w), "upstream GET /api/me")
}

func TestReports_EscapesReportContent(t *testing.T) {
	mux := http.NewServeMux()
	withSession(mux, "Ana", "ana@example.com")
	mux.HandleFunc("GET /api/reports/{period}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"note":"</pre><script>alert(1)</script>"}`)
	})
	router := newTestRouter(t, mux)

	w := get(t, router, "/reports", validSession)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>")
	assert.NotContains(t, w.Body.String(), "</pre><script>")
}

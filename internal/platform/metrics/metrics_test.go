package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestInstrument_UsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/pets/{petID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pets/"+id, nil))
	}
	m.RateLimited("auth")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	want := `petstore_http_requests_total{method="GET",route="/pets/{petID}",status="404"} 3`
	if !strings.Contains(out, want) {
		t.Fatalf("expected %q in metrics output:\n%s", want, out)
	}
	if !strings.Contains(out, `petstore_http_rate_limited_total{scope="auth"} 1`) {
		t.Fatalf("expected rate limited counter in output")
	}
}

func TestRateLimited_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RateLimited("global")
}

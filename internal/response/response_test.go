package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"secure-petstore/internal/platform/apperr"
	"secure-petstore/internal/platform/logger"
)

func serve(opts Options, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	Middleware(opts)(h).ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestError_ClientFaultRendersFail(t *testing.T) {
	rec := serve(Options{Development: true}, func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, apperr.Validation("Validation failed", []apperr.FieldError{
			{Field: "age", Message: `"age" must be less than or equal to 50`},
		}))
	}, "/api/v1/pets")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != StatusFail || body["message"] != "Validation failed" {
		t.Fatalf("unexpected body: %#v", body)
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 1 {
		t.Fatalf("expected one field error, got %#v", body["errors"])
	}
	if _, ok := body["stack"]; ok {
		t.Fatalf("4xx must never include a stack")
	}
}

func TestError_InternalHidesDetailsOutsideDevelopment(t *testing.T) {
	rec := serve(Options{Development: false}, func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, errors.New("pq: password authentication failed"))
	}, "/x")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != StatusError || body["message"] != "Internal server error" {
		t.Fatalf("unexpected body: %#v", body)
	}
	if _, ok := body["stack"]; ok {
		t.Fatalf("stack must not leak outside development")
	}
}

func TestError_InternalIncludesStackInDevelopment(t *testing.T) {
	rec := serve(Options{Development: true}, func(w http.ResponseWriter, r *http.Request) {
		Error(w, r, errors.New("boom"))
	}, "/x")

	body := decode(t, rec)
	if body["message"] != "boom" {
		t.Fatalf("expected raw message in development, got %#v", body["message"])
	}
	if s, _ := body["stack"].(string); s == "" {
		t.Fatalf("expected stack in development")
	}
}

func TestError_LogLevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})

	h := func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(logger.IntoContext(r.Context(), log))
		Error(w, r, apperr.Unauthorized("Invalid or expired token"))
		Error(httptest.NewRecorder(), r, errors.New("db down"))
	}
	serve(Options{}, h, "/x")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"level":"warn"`) || !strings.Contains(lines[1], `"level":"error"`) {
		t.Fatalf("unexpected levels: %v", lines)
	}
}

func TestNotFound_NamesTheRoute(t *testing.T) {
	rec := serve(Options{}, NotFound, "/api/v1/nope?x=1")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["message"] != "Route /api/v1/nope?x=1 not found" || body["status"] != StatusFail {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestList_IncludesResults(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, 0, map[string]any{"pets": []any{}})

	body := decode(t, rec)
	if body["results"] != float64(0) || body["status"] != StatusSuccess {
		t.Fatalf("unexpected body: %#v", body)
	}
}

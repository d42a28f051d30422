package router_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	tokmem "secure-petstore/internal/adapters/tokens/memory"
	"secure-petstore/internal/config"
	"secure-petstore/internal/domain/users"
	"secure-petstore/internal/router"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.RateLimitRPS = 1000
	cfg.RateLimitBurst = 1000
	cfg.AuthRateLimitRPS = 1000
	cfg.AuthRateLimitBurst = 1000
	return cfg
}

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	if opts.Config == nil {
		opts.Config = testConfig()
	}
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)
	return ts
}

type apiResponse struct {
	Status  int
	Header  http.Header
	Raw     []byte
	Payload map[string]any
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) apiResponse {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := apiResponse{Status: resp.StatusCode, Header: resp.Header, Raw: raw}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && len(raw) > 0 {
		_ = json.Unmarshal(raw, &out.Payload)
	}
	return out
}

func register(t *testing.T, baseURL, username, email, password string) string {
	t.Helper()
	res := doReq(t, baseURL, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": username,
		"email":    email,
		"password": password,
	})
	if res.Status != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", res.Status, res.Raw)
	}
	data := res.Payload["data"].(map[string]any)
	return data["token"].(string)
}

func petFrom(t *testing.T, res apiResponse) map[string]any {
	t.Helper()
	data, ok := res.Payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data: %s", res.Raw)
	}
	pet, ok := data["pet"].(map[string]any)
	if !ok {
		t.Fatalf("missing pet: %s", res.Raw)
	}
	return pet
}

func TestHTTP_EndToEnd_PetLifecycle(t *testing.T) {
	ts := newServer(t, router.Options{})

	// 1) Registro
	res := doReq(t, ts.URL, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "alice123",
		"email":    "alice@example.com",
		"password": "password123",
	})
	if res.Status != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", res.Status, res.Raw)
	}
	if strings.Contains(string(res.Raw), "password") {
		t.Fatalf("response must not include password or hash: %s", res.Raw)
	}
	token := res.Payload["data"].(map[string]any)["token"].(string)
	if token == "" {
		t.Fatalf("expected token")
	}

	// 2) Sin token no se crea nada
	res = doReq(t, ts.URL, "POST", "/api/v1/pets", "", map[string]any{"name": "Rex", "species": "Dog", "age": 3})
	if res.Status != http.StatusUnauthorized || res.Payload["status"] != "fail" {
		t.Fatalf("expected 401 fail, got %d body=%s", res.Status, res.Raw)
	}
	res = doReq(t, ts.URL, "GET", "/api/v1/pets", "", nil)
	if res.Payload["results"] != float64(0) {
		t.Fatalf("nothing must be persisted, got %s", res.Raw)
	}

	// 3) Crear; el id del cliente se ignora
	res = doReq(t, ts.URL, "POST", "/api/v1/pets", token, map[string]any{
		"id": 99, "name": "Rex", "species": "Dog", "age": 3, "breed": "Beagle",
	})
	if res.Status != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d body=%s", res.Status, res.Raw)
	}
	created := petFrom(t, res)
	if created["id"] != float64(1) {
		t.Fatalf("expected store-assigned id 1, got %v", created["id"])
	}

	// 4) Update parcial
	time.Sleep(5 * time.Millisecond)
	res = doReq(t, ts.URL, "PUT", "/api/v1/pets/1", token, map[string]any{"age": 4})
	if res.Status != http.StatusOK {
		t.Fatalf("expected 200 update, got %d body=%s", res.Status, res.Raw)
	}
	updated := petFrom(t, res)
	if updated["age"] != float64(4) {
		t.Fatalf("expected age 4, got %v", updated["age"])
	}
	for _, k := range []string{"name", "species", "breed", "created_at"} {
		if updated[k] != created[k] {
			t.Fatalf("%s changed: %v -> %v", k, created[k], updated[k])
		}
	}
	before, _ := time.Parse(time.RFC3339Nano, created["updated_at"].(string))
	after, _ := time.Parse(time.RFC3339Nano, updated["updated_at"].(string))
	if !after.After(before) {
		t.Fatalf("updated_at must be refreshed: %v -> %v", before, after)
	}

	// 5) Lectura pública
	res = doReq(t, ts.URL, "GET", "/api/v1/pets/1", "", nil)
	if res.Status != http.StatusOK || petFrom(t, res)["age"] != float64(4) {
		t.Fatalf("expected 200 with updated pet, got %d body=%s", res.Status, res.Raw)
	}

	// 6) Delete y luego 404
	res = doReq(t, ts.URL, "DELETE", "/api/v1/pets/1", token, nil)
	if res.Status != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d body=%s", res.Status, res.Raw)
	}
	for _, method := range []string{"GET", "DELETE"} {
		res = doReq(t, ts.URL, method, "/api/v1/pets/1", token, nil)
		if res.Status != http.StatusNotFound || res.Payload["message"] != "Pet with ID 1 not found" {
			t.Fatalf("%s: expected 404, got %d body=%s", method, res.Status, res.Raw)
		}
	}
	res = doReq(t, ts.URL, "PUT", "/api/v1/pets/1", token, map[string]any{"age": 5})
	if res.Status != http.StatusNotFound {
		t.Fatalf("expected 404 update, got %d", res.Status)
	}
}

func TestHTTP_Validation(t *testing.T) {
	ts := newServer(t, router.Options{})
	token := register(t, ts.URL, "bob42", "bob@example.com", "password123")

	res := doReq(t, ts.URL, "POST", "/api/v1/pets", token, map[string]any{"name": "R", "species": "Dog", "age": 51})
	if res.Status != http.StatusBadRequest || res.Payload["message"] != "Validation failed" {
		t.Fatalf("expected 400, got %d body=%s", res.Status, res.Raw)
	}
	errs := res.Payload["errors"].([]any)
	if len(errs) != 2 {
		t.Fatalf("expected name and age violations, got %v", errs)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.(map[string]any)["field"].(string)] = true
	}
	if !fields["name"] || !fields["age"] {
		t.Fatalf("violations must name the fields, got %v", errs)
	}

	res = doReq(t, ts.URL, "POST", "/api/v1/pets", token, `{"name":`)
	if res.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 on malformed json, got %d", res.Status)
	}

	res = doReq(t, ts.URL, "POST", "/api/v1/pets", token, map[string]any{"name": "Rex", "species": "Dog", "age": 3})
	if res.Status != http.StatusCreated {
		t.Fatalf("create: %d", res.Status)
	}
	res = doReq(t, ts.URL, "PUT", "/api/v1/pets/1", token, map[string]any{})
	if res.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 on empty update, got %d body=%s", res.Status, res.Raw)
	}

	// nombres solo con espacios no pasan la validación
	res = doReq(t, ts.URL, "POST", "/api/v1/pets", token, map[string]any{"name": "   ", "species": "Dog", "age": 3})
	if res.Status != http.StatusBadRequest || !hasFieldError(res, "name") {
		t.Fatalf("expected 400 on blank name, got %d body=%s", res.Status, res.Raw)
	}
	res = doReq(t, ts.URL, "PUT", "/api/v1/pets/1", token, map[string]any{"species": "  a  "})
	if res.Status != http.StatusBadRequest || !hasFieldError(res, "species") {
		t.Fatalf("expected 400 on short trimmed species, got %d body=%s", res.Status, res.Raw)
	}
	res = doReq(t, ts.URL, "POST", "/api/v1/pets", token, map[string]any{"name": "Tom", "species": "Cat", "age": 2, "breed": ""})
	if res.Status != http.StatusBadRequest || !hasFieldError(res, "breed") {
		t.Fatalf("expected 400 on empty breed, got %d body=%s", res.Status, res.Raw)
	}

	res = doReq(t, ts.URL, "POST", "/api/v1/pets", token, map[string]any{"name": "  Kiwi ", "species": " Bird", "age": 1})
	if res.Status != http.StatusCreated {
		t.Fatalf("create with padded name: %d body=%s", res.Status, res.Raw)
	}
	if p := petFrom(t, res); p["name"] != "Kiwi" || p["species"] != "Bird" {
		t.Fatalf("expected trimmed values, got %v", p)
	}

	res = doReq(t, ts.URL, "GET", "/api/v1/pets/1", "", nil)
	if p := petFrom(t, res); p["species"] != "Dog" {
		t.Fatalf("rejected update must not persist, got %v", p)
	}

	res = doReq(t, ts.URL, "POST", "/api/v1/auth/register", "", map[string]any{"username": "x", "email": "nope", "password": "1"})
	if res.Status != http.StatusBadRequest || len(res.Payload["errors"].([]any)) != 3 {
		t.Fatalf("expected 3 violations, got %d body=%s", res.Status, res.Raw)
	}
}

func hasFieldError(res apiResponse, field string) bool {
	errs, _ := res.Payload["errors"].([]any)
	for _, e := range errs {
		if m, ok := e.(map[string]any); ok && m["field"] == field {
			return true
		}
	}
	return false
}

func TestHTTP_AuthFailures(t *testing.T) {
	cfg := testConfig()
	ts := newServer(t, router.Options{Config: cfg})
	token := register(t, ts.URL, "alice123", "alice@example.com", "password123")

	// Duplicado => 409
	res := doReq(t, ts.URL, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "other1", "email": "alice@example.com", "password": "password123",
	})
	if res.Status != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", res.Status, res.Raw)
	}

	// Password incorrecto y email desconocido: misma respuesta
	wrong := doReq(t, ts.URL, "POST", "/api/v1/auth/login", "", map[string]any{"email": "alice@example.com", "password": "bad-password"})
	unknown := doReq(t, ts.URL, "POST", "/api/v1/auth/login", "", map[string]any{"email": "ghost@example.com", "password": "password123"})
	if wrong.Status != http.StatusUnauthorized || unknown.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401s, got %d / %d", wrong.Status, unknown.Status)
	}
	if !bytes.Equal(wrong.Raw, unknown.Raw) {
		t.Fatalf("bodies differ: %s vs %s", wrong.Raw, unknown.Raw)
	}

	// Login correcto
	res = doReq(t, ts.URL, "POST", "/api/v1/auth/login", "", map[string]any{"email": "alice@example.com", "password": "password123"})
	if res.Status != http.StatusOK {
		t.Fatalf("expected 200 login, got %d", res.Status)
	}

	// /me con token válido
	res = doReq(t, ts.URL, "GET", "/api/v1/auth/me", token, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("expected 200 me, got %d body=%s", res.Status, res.Raw)
	}
	user := res.Payload["data"].(map[string]any)["user"].(map[string]any)
	if user["username"] != "alice123" {
		t.Fatalf("unexpected user: %v", user)
	}

	// Token alterado
	tampered := token[:len(token)-2] + "xx"
	if token[len(token)-2:] == "xx" {
		tampered = token[:len(token)-2] + "yy"
	}
	res = doReq(t, ts.URL, "GET", "/api/v1/auth/me", tampered, nil)
	if res.Status != http.StatusUnauthorized || res.Payload["message"] != "Invalid or expired token" {
		t.Fatalf("expected 401 on tampered token, got %d body=%s", res.Status, res.Raw)
	}

	// Token vencido firmado con el mismo secreto
	expired, _, err := users.NewTokenIssuer(cfg.JWTSecret, -time.Minute).Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	res = doReq(t, ts.URL, "POST", "/api/v1/pets", expired, map[string]any{"name": "Rex", "species": "Dog", "age": 3})
	if res.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 on expired token, got %d", res.Status)
	}

	// Token válido de un usuario inexistente
	ghost, _, _ := users.NewTokenIssuer(cfg.JWTSecret, time.Hour).Issue(999)
	res = doReq(t, ts.URL, "GET", "/api/v1/auth/me", ghost, nil)
	if res.Status != http.StatusUnauthorized || res.Payload["message"] != "User not found" {
		t.Fatalf("expected 401 user not found, got %d body=%s", res.Status, res.Raw)
	}

	// Logout no existe sin revocación
	res = doReq(t, ts.URL, "POST", "/api/v1/auth/logout", token, nil)
	if res.Status != http.StatusNotFound {
		t.Fatalf("expected 404 logout without revocation, got %d", res.Status)
	}
}

func TestHTTP_LogoutRevokesToken(t *testing.T) {
	ts := newServer(t, router.Options{Denylist: tokmem.NewDenylist()})
	token := register(t, ts.URL, "alice123", "alice@example.com", "password123")

	res := doReq(t, ts.URL, "POST", "/api/v1/auth/logout", token, nil)
	if res.Status != http.StatusNoContent {
		t.Fatalf("expected 204 logout, got %d body=%s", res.Status, res.Raw)
	}

	res = doReq(t, ts.URL, "GET", "/api/v1/auth/me", token, nil)
	if res.Status != http.StatusUnauthorized {
		t.Fatalf("revoked token must be rejected, got %d", res.Status)
	}
}

func TestHTTP_ListIsStableAndOptionalAuth(t *testing.T) {
	ts := newServer(t, router.Options{})
	token := register(t, ts.URL, "alice123", "alice@example.com", "password123")

	for _, n := range []string{"Rex", "Tom", "Kiwi"} {
		res := doReq(t, ts.URL, "POST", "/api/v1/pets", token, map[string]any{"name": n, "species": "Dog", "age": 2})
		if res.Status != http.StatusCreated {
			t.Fatalf("create %s: %d", n, res.Status)
		}
	}

	first := doReq(t, ts.URL, "GET", "/api/v1/pets", "", nil)
	second := doReq(t, ts.URL, "GET", "/api/v1/pets", token, nil)
	// un token inválido en una ruta opcional no corta el request
	third := doReq(t, ts.URL, "GET", "/api/v1/pets", "garbage", nil)

	for _, res := range []apiResponse{first, second, third} {
		if res.Status != http.StatusOK || res.Payload["results"] != float64(3) {
			t.Fatalf("expected 3 pets, got %d body=%s", res.Status, res.Raw)
		}
	}
	if !bytes.Equal(first.Raw, second.Raw) || !bytes.Equal(first.Raw, third.Raw) {
		t.Fatalf("list must be identical without writes")
	}

	list := first.Payload["data"].(map[string]any)["pets"].([]any)
	if list[0].(map[string]any)["name"] != "Kiwi" {
		t.Fatalf("expected newest first, got %v", list[0])
	}
}

func TestHTTP_CorrelationAndRouting(t *testing.T) {
	ts := newServer(t, router.Options{})

	req, _ := http.NewRequest("GET", ts.URL+"/health", nil)
	req.Header.Set("x-correlation-id", "my-id-1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("x-correlation-id") != "my-id-1" {
		t.Fatalf("expected echoed correlation id, got %q", resp.Header.Get("x-correlation-id"))
	}

	res := doReq(t, ts.URL, "GET", "/api/v1/nope", "", nil)
	if res.Status != http.StatusNotFound || res.Payload["message"] != "Route /api/v1/nope not found" {
		t.Fatalf("expected route not found, got %d body=%s", res.Status, res.Raw)
	}
	if len(res.Header.Get("x-correlation-id")) != 36 {
		t.Fatalf("expected generated correlation id on every response")
	}

	res = doReq(t, ts.URL, "PATCH", "/api/v1/pets/1", "", nil)
	if res.Status != http.StatusNotFound {
		t.Fatalf("unsupported method must be 404, got %d", res.Status)
	}

	res = doReq(t, ts.URL, "GET", "/", "", nil)
	if res.Status != http.StatusOK || string(res.Raw) != "Welcome to SecurePetStore Backend API!" {
		t.Fatalf("unexpected welcome: %d %s", res.Status, res.Raw)
	}

	for path, want := range map[string]string{"/health": "healthy", "/health/live": "alive", "/health/ready": "ready"} {
		res = doReq(t, ts.URL, "GET", path, "", nil)
		if res.Status != http.StatusOK || res.Payload["status"] != want {
			t.Fatalf("%s: expected %s, got %d body=%s", path, want, res.Status, res.Raw)
		}
	}

	res = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if res.Status != http.StatusOK || !strings.Contains(string(res.Raw), "petstore_http_requests_total") {
		t.Fatalf("expected prometheus output, got %d", res.Status)
	}

	res = doReq(t, ts.URL, "GET", "/api-docs/doc.json", "", nil)
	if res.Status != http.StatusOK || !strings.Contains(string(res.Raw), "SecurePetStore API") {
		t.Fatalf("expected swagger doc, got %d", res.Status)
	}
}

func TestHTTP_AuthRoutesHaveStricterRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimitRPS = 0.001
	cfg.AuthRateLimitBurst = 2
	ts := newServer(t, router.Options{Config: cfg})

	login := map[string]any{"email": "ghost@example.com", "password": "x"}
	for i := 0; i < 2; i++ {
		res := doReq(t, ts.URL, "POST", "/api/v1/auth/login", "", login)
		if res.Status != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, res.Status)
		}
	}

	res := doReq(t, ts.URL, "POST", "/api/v1/auth/login", "", login)
	if res.Status != http.StatusTooManyRequests || res.Header.Get("Retry-After") == "" {
		t.Fatalf("expected 429 with Retry-After, got %d", res.Status)
	}

	// el resto de la API no comparte el bucket de auth
	res = doReq(t, ts.URL, "GET", "/api/v1/pets", "", nil)
	if res.Status != http.StatusOK {
		t.Fatalf("pets must not be limited by the auth limiter, got %d", res.Status)
	}
}

func TestHTTP_StoreDownServesFallbackAndNotReady(t *testing.T) {
	// puerto 1: conexión rechazada
	db, err := sql.Open("pgx", "postgres://u:p@127.0.0.1:1/petstoredb?sslmode=disable&connect_timeout=1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ts := newServer(t, router.Options{DB: db})

	res := doReq(t, ts.URL, "GET", "/health/ready", "", nil)
	if res.Status != http.StatusServiceUnavailable || res.Payload["database"] != "disconnected" {
		t.Fatalf("expected 503 not ready, got %d body=%s", res.Status, res.Raw)
	}

	res = doReq(t, ts.URL, "GET", "/api/v1/pets", "", nil)
	if res.Status != http.StatusOK || res.Payload["results"] != float64(4) {
		t.Fatalf("expected fallback list, got %d body=%s", res.Status, res.Raw)
	}

	cfg := testConfig()
	cfg.PetsFallback = "false"
	strict := newServer(t, router.Options{DB: db, Config: cfg})
	res = doReq(t, strict.URL, "GET", "/api/v1/pets", "", nil)
	if res.Status != http.StatusInternalServerError || res.Payload["status"] != "error" {
		t.Fatalf("expected 500 without fallback, got %d body=%s", res.Status, res.Raw)
	}
}

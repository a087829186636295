package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/GTDGit/todopro_api/internal/cache"
	"github.com/GTDGit/todopro_api/internal/config"
	"github.com/GTDGit/todopro_api/internal/middleware"
	"github.com/GTDGit/todopro_api/internal/models"
	"github.com/GTDGit/todopro_api/internal/pricing"
	"github.com/GTDGit/todopro_api/internal/repository"
	"github.com/GTDGit/todopro_api/internal/service"
	"github.com/GTDGit/todopro_api/internal/sse"
	"github.com/GTDGit/todopro_api/internal/utils"
)

const (
	testSecret = "test-secret"
	testInvite = "team-invite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return &pq.Error{Code: "23505"}
	}
	u.ID = len(m.users) + 1
	m.users[u.Email] = *u
	return nil
}

type memClients struct {
	clients []models.Client
}

func (m *memClients) ListByUser(_ context.Context, userID int) ([]models.Client, error) {
	out := []models.Client{}
	for _, c := range m.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClients) Create(_ context.Context, c *models.Client) error {
	c.ID = len(m.clients) + 1
	m.clients = append(m.clients, *c)
	return nil
}

type memProducts struct{}

func (memProducts) GetAll(context.Context) ([]models.Product, error) {
	return pricing.DefaultProducts()[:3], nil
}

type stubDB struct {
	err error
}

func (s stubDB) Now(context.Context) (time.Time, error) {
	return time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC), s.err
}

type stubMessenger struct {
	sent []string
}

func (s *stubMessenger) SendText(_ context.Context, to, _ string) (string, error) {
	s.sent = append(s.sent, to)
	return fmt.Sprintf("wamid.%d", len(s.sent)), nil
}

type testServer struct {
	router    *gin.Engine
	token     string
	store     *cache.MemoryStore
	messenger *stubMessenger
	leads     *service.LeadService
	hub       *sse.Hub
}

func newTestServer(t *testing.T, db stubDB) *testServer {
	t.Helper()
	mem := cache.NewMemoryStore()
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)
	messenger := &stubMessenger{}

	authSvc := service.NewAuthService(&memUsers{users: map[string]models.User{}}, testSecret, time.Hour, testInvite)
	catalog := service.NewCatalogService(repository.NewCatalogStore(mem), notifier, pricing.DefaultAdminFee)
	calc := service.NewCalculatorService(catalog)
	quotes := service.NewQuoteService(repository.NewQuoteStore(mem), calc, pricing.NewAssembler(time.Now, utils.GenerateQuoteID), notifier)
	company := config.CompanyConfig{Name: "TODOPRO", Phone: "604 98 00 12", Email: "hola@todopro.es"}
	exports := service.NewExportService(quotes, company, nil, messenger)
	leads := service.NewLeadService(repository.NewCRMStore(mem), notifier, messenger, 5*time.Second)

	h := &Handlers{
		Health:     NewHealthHandler(db, mem, "memory"),
		Auth:       NewAuthHandler(authSvc),
		Client:     NewClientHandler(service.NewClientService(&memClients{})),
		Product:    NewProductHandler(service.NewProductService(memProducts{})),
		Catalog:    NewCatalogHandler(catalog),
		Calculator: NewCalculatorHandler(calc),
		Quote:      NewQuoteHandler(quotes, exports),
		Lead:       NewLeadHandler(leads),
		SSE:        NewSSEHandler(hub),
		Webhook:    NewWebhookHandler(leads, "app-secret", "verify-me"),
	}
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	SetupRoutes(router, h, middleware.NewJWTMiddleware(authSvc, nil))

	token, err := utils.GenerateJWT(1, "owner@todopro.es", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &testServer{router: router, token: token, store: mem, messenger: messenger, leads: leads, hub: hub}
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"requestId"`
		Count     *int   `json:"count"`
	} `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path string, body any, auth bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				t.Fatalf("encode: %v", err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
		msg    string
	}{
		{fmt.Errorf("%w: client name is required", utils.ErrInvalidInput), 400, "INVALID_INPUT", "client name is required"},
		{utils.ErrQuoteNotFound, 404, "QUOTE_NOT_FOUND", "Quote not found"},
		{utils.ErrAlreadyContract, 409, "ALREADY_CONTRACT", "Already contract"},
		{utils.ErrMessagingDisabled, 503, "MESSAGING_DISABLED", "Messaging disabled"},
		{errors.New("redis: connection refused"), 500, "INTERNAL_ERROR", "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(c, tt.err)

			var env envelope
			_ = json.Unmarshal(w.Body.Bytes(), &env)
			if w.Code != tt.status || env.Error == nil || env.Error.Code != tt.code || env.Error.Message != tt.msg {
				t.Fatalf("got %d %+v", w.Code, env.Error)
			}
		})
	}
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t, stubDB{})
	creds := map[string]string{"email": "ana@todopro.es", "password": "secret1", "inviteCode": testInvite}

	w, env := s.do(t, http.MethodPost, "/auth/signup", creds, false)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status %d: %s", w.Code, w.Body.String())
	}
	if tok := decode[map[string]string](t, env.Data)["token"]; tok == "" {
		t.Fatalf("no token in signup response")
	}

	if w, _ := s.do(t, http.MethodPost, "/auth/signup", creds, false); w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status %d", w.Code)
	}

	w, env = s.do(t, http.MethodPost, "/auth/login", creds, false)
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d", w.Code)
	}
	s.token = decode[map[string]string](t, env.Data)["token"]
	if w, _ := s.do(t, http.MethodGet, "/v1/catalog", nil, true); w.Code != http.StatusOK {
		t.Fatalf("login token rejected: %d", w.Code)
	}

	bad := map[string]string{"email": "ana@todopro.es", "password": "wrong!!"}
	if w, env := s.do(t, http.MethodPost, "/auth/login", bad, false); w.Code != http.StatusUnauthorized || env.Error.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("bad login: %d %+v", w.Code, env.Error)
	}
	if w, _ := s.do(t, http.MethodPost, "/auth/login", `{"email":""}`, false); w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: %d", w.Code)
	}
}

func TestSignupIsInviteOnly(t *testing.T) {
	s := newTestServer(t, stubDB{})
	w, env := s.do(t, http.MethodPost, "/v1/quotes", quoteBody, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("owner quote %d", w.Code)
	}
	q := decode[models.Quote](t, env.Data)

	for _, body := range []string{
		`{"email":"eve@example.com","password":"secret1"}`,
		`{"email":"eve@example.com","password":"secret1","inviteCode":"guess"}`,
	} {
		w, env := s.do(t, http.MethodPost, "/auth/signup", body, false)
		if w.Code != http.StatusForbidden || env.Error == nil || env.Error.Code != "SIGNUP_CLOSED" {
			t.Fatalf("signup %s: %d %s", body, w.Code, w.Body.String())
		}
		if strings.Contains(w.Body.String(), "token") {
			t.Fatalf("token issued without invite")
		}
	}
	if w, _ := s.do(t, http.MethodPost, "/auth/login", `{"email":"eve@example.com","password":"secret1"}`, false); w.Code != http.StatusUnauthorized {
		t.Fatalf("rejected signup still created an account: %d", w.Code)
	}

	outsider, err := utils.GenerateJWT(99, "eve@example.com", "another-secret", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	owner := s.token
	s.token = outsider
	if w, _ := s.do(t, http.MethodGet, "/v1/quotes", nil, true); w.Code != http.StatusForbidden {
		t.Fatalf("outsider listed quotes: %d", w.Code)
	}
	if w, _ := s.do(t, http.MethodDelete, "/v1/quotes/"+q.ID, nil, true); w.Code != http.StatusForbidden {
		t.Fatalf("outsider deleted quote: %d", w.Code)
	}
	if w, _ := s.do(t, http.MethodPost, "/v1/catalog/reset", nil, true); w.Code != http.StatusForbidden {
		t.Fatalf("outsider reset catalog: %d", w.Code)
	}

	s.token = owner
	if w, _ := s.do(t, http.MethodGet, "/v1/quotes/"+q.ID, nil, true); w.Code != http.StatusOK {
		t.Fatalf("owner quote gone: %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, stubDB{})
	if w, _ := s.do(t, http.MethodGet, "/clients", nil, false); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", w.Code)
	}
	s.token = "garbage"
	if w, _ := s.do(t, http.MethodGet, "/v1/quotes", nil, true); w.Code != http.StatusForbidden {
		t.Fatalf("bad token: %d", w.Code)
	}
}

func TestClientsAndProducts(t *testing.T) {
	s := newTestServer(t, stubDB{})

	w, env := s.do(t, http.MethodPost, "/clients", map[string]string{"name": "Ana", "dieNie": "X1234567L"}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client %d: %s", w.Code, w.Body.String())
	}
	if c := decode[models.Client](t, env.Data); c.UserID != 1 || c.DieNie != "X1234567L" {
		t.Fatalf("client = %+v", c)
	}

	w, env = s.do(t, http.MethodGet, "/clients", nil, true)
	if w.Code != http.StatusOK || env.Meta.Count == nil || *env.Meta.Count != 1 {
		t.Fatalf("list clients %d %s", w.Code, w.Body.String())
	}

	if w, _ := s.do(t, http.MethodPost, "/clients", map[string]string{"address": "x"}, true); w.Code != http.StatusBadRequest {
		t.Fatalf("client without name: %d", w.Code)
	}

	w, env = s.do(t, http.MethodGet, "/products", nil, true)
	if w.Code != http.StatusOK || len(decode[[]models.Product](t, env.Data)) != 3 {
		t.Fatalf("products %d %s", w.Code, w.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, stubDB{})
	w, _ := s.do(t, http.MethodGet, "/test-db", nil, false)
	var body struct {
		Success   bool      `json:"success"`
		Timestamp time.Time `json:"timestamp"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || !body.Success || body.Timestamp.Year() != 2024 {
		t.Fatalf("test-db %d %s", w.Code, w.Body.String())
	}

	down := newTestServer(t, stubDB{err: errors.New("connection refused")})
	if w, _ := down.do(t, http.MethodGet, "/test-db", nil, false); w.Code != http.StatusInternalServerError {
		t.Fatalf("test-db with db down: %d", w.Code)
	}
	w, env := down.do(t, http.MethodGet, "/v1/health", nil, false)
	health := decode[map[string]any](t, env.Data)
	if w.Code != http.StatusOK || health["status"] != "degraded" {
		t.Fatalf("health = %v", health)
	}
}

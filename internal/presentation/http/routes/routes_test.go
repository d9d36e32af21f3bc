package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bizbooks/bizbooks-api/internal/application/service"
	"github.com/bizbooks/bizbooks-api/internal/config"
	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/handler"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/middleware"
	"github.com/bizbooks/bizbooks-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// In-memory stores backing the full router under test.

type memTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]entity.Transaction
}

func (m *memTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	m.transactions[t.ID] = *t
	return nil
}

func (m *memTransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	copied := t
	return &copied, nil
}

func (m *memTransactionRepo) GetAll(_ context.Context) ([]entity.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]entity.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all, nil
}

func (m *memTransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[t.ID] = *t
	return nil
}

func (m *memTransactionRepo) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return false, nil
	}
	delete(m.transactions, id)
	return true, nil
}

type memSequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
}

func (m *memSequenceRepo) Increment(_ context.Context, year int, t enum.TransactionType) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := fmt.Sprintf("%d/%s", year, t)
	m.counters[key]++
	return m.counters[key], nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := &memUserRepo{users: make(map[uuid.UUID]entity.User)}
	hash, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := userRepo.Create(context.Background(), &entity.User{
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: hash,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tokenManager := utils.NewTokenManager("test-secret", time.Hour)
	transactionRepo := &memTransactionRepo{transactions: make(map[string]entity.Transaction)}
	sequenceRepo := &memSequenceRepo{counters: make(map[string]int64)}

	authService := service.NewAuthService(userRepo, tokenManager)
	billingService := service.NewBillNumberService(sequenceRepo)
	transactionService := service.NewTransactionService(transactionRepo, billingService)
	dashboardService := service.NewDashboardService(transactionRepo)

	handlers := &Handlers{
		Auth:        handler.NewAuthHandler(authService, 3600, false),
		Transaction: handler.NewTransactionHandler(transactionService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
	}

	cfg := &config.Config{
		App:       config.AppConfig{Name: "bizbooks-api", Env: "test"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}

	return Setup(handlers, &Deps{
		TokenManager: tokenManager,
		Cfg:          cfg,
	})
}

func doJSON(router *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AuthCookieName {
			return c
		}
	}
	return nil
}

func login(t *testing.T, router *gin.Engine) *http.Cookie {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "admin@example.com",
		"password": "secret123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	cookie := authCookie(w)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("login did not set the auth-token cookie")
	}
	return cookie
}

func TestLoginSetsAuthCookie(t *testing.T) {
	router := newTestRouter(t)

	cookie := login(t, router)
	if !cookie.HttpOnly {
		t.Error("auth cookie must be httpOnly")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "admin@example.com",
		"password": "wrong",
	}, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if authCookie(w) != nil {
		t.Error("failed login must not set a cookie")
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Errorf(`expected {"error": ...} body, got %s`, w.Body.String())
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/transactions", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Authentication required" {
		t.Errorf("error = %q, want Authentication required", body["error"])
	}
}

func TestCurrentUserEndpoint(t *testing.T) {
	router := newTestRouter(t)
	cookie := login(t, router)

	w := doJSON(router, http.MethodGet, "/api/auth/me", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var user map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if user["email"] != "admin@example.com" || user["name"] != "Admin" {
		t.Errorf("user = %v", user)
	}
	if id, _ := user["id"].(string); id == "" {
		t.Error("expected the user id in the response")
	}

	w = doJSON(router, http.MethodGet, "/api/auth/me", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", w.Code)
	}
}

func TestInvalidTokenGets401JSON(t *testing.T) {
	router := newTestRouter(t)

	bad := &http.Cookie{Name: middleware.AuthCookieName, Value: "not-a-token"}
	w := doJSON(router, http.MethodGet, "/api/transactions", nil, bad)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected a JSON error body, got %q: %v", w.Body.String(), err)
	}
	if body["error"] != "Authentication required" {
		t.Errorf("error = %q, want Authentication required", body["error"])
	}
}

func TestTransactionCRUDFlow(t *testing.T) {
	router := newTestRouter(t)
	cookie := login(t, router)

	// Create
	w := doJSON(router, http.MethodPost, "/api/transactions", gin.H{
		"type":     "Sale",
		"date":     "2024-05-15",
		"party":    "Acme Traders",
		"items":    "Office supplies",
		"amount":   1000,
		"billDate": "15/05/2024",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created["billNumber"] != "S2024001" {
		t.Errorf("billNumber = %v, want S2024001", created["billNumber"])
	}
	if created["month"] != "May-2024" {
		t.Errorf("month = %v, want May-2024", created["month"])
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("created transaction has no id")
	}

	// List
	w = doJSON(router, http.MethodGet, "/api/transactions", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	// Update party only
	w = doJSON(router, http.MethodPut, "/api/transactions/"+id, gin.H{
		"party": "New Party Ltd",
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	var updated map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated["party"] != "New Party Ltd" {
		t.Errorf("party = %v, want New Party Ltd", updated["party"])
	}
	if updated["billNumber"] != "S2024001" {
		t.Errorf("party-only update changed billNumber to %v", updated["billNumber"])
	}

	// Dashboard reflects the transaction
	w = doJSON(router, http.MethodGet, "/api/dashboard", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", w.Code)
	}
	var dashboard struct {
		Stats struct {
			TotalSales        int     `json:"totalSales"`
			TotalRevenue      float64 `json:"totalRevenue"`
			TotalTransactions int     `json:"totalTransactions"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dashboard.Stats.TotalSales != 1 || dashboard.Stats.TotalTransactions != 1 {
		t.Errorf("dashboard stats = %+v", dashboard.Stats)
	}
	if dashboard.Stats.TotalRevenue != 1180 {
		t.Errorf("totalRevenue = %v, want 1180", dashboard.Stats.TotalRevenue)
	}

	// Delete
	w = doJSON(router, http.MethodDelete, "/api/transactions/"+id, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", w.Code, w.Body.String())
	}

	// Deleting again answers 404
	w = doJSON(router, http.MethodDelete, "/api/transactions/"+id, nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	router := newTestRouter(t)
	cookie := login(t, router)

	w := doJSON(router, http.MethodPost, "/api/transactions", gin.H{
		"type":     "Refund",
		"date":     "2024-05-15",
		"party":    "Acme Traders",
		"items":    "Office supplies",
		"amount":   1000,
		"billDate": "15/05/2024",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHealthEndpointIsPublic(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/logout", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	cookie := authCookie(w)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Error("logout should expire the auth cookie")
	}
}

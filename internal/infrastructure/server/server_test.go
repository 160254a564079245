package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/core/internal/infrastructure/config"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/infrastructure/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront", Version: "test", Environment: "test"},
		Auth: config.AuthConfig{
			TokenMode:      config.TokenModeOpaque,
			PasswordScheme: config.PasswordSchemeSHA256,
		},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
			RateLimitRequests:  1000,
			RateLimitWindow:    time.Minute,
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	store := storage.New(t.TempDir())
	srv, err := New(cfg, store, logger.NewNop())
	require.NoError(t, err)
	return srv
}

func request(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProductCRUDFlow(t *testing.T) {
	srv := newTestServer(t, testConfig())

	// Create
	rec := request(t, srv, http.MethodPost, "/api/admin/products", `{"name":"Keyboard","price":49.9}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, "success", created["status"])
	data := created["data"].(map[string]interface{})
	id := data["_id"].(string)
	assert.True(t, strings.HasPrefix(id, "product_"))
	assert.Equal(t, data["createdAt"], data["updatedAt"])

	// List
	rec = request(t, srv, http.MethodGet, "/api/admin/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)
	require.Len(t, list["data"], 1)

	// Get
	rec = request(t, srv, http.MethodGet, "/api/admin/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Keyboard", got["name"])

	// Update merges the patch, preserving untouched fields.
	rec = request(t, srv, http.MethodPut, "/api/admin/products/"+id, `{"price":59.9}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 59.9, updated["price"])
	assert.Equal(t, "Keyboard", updated["name"])
	assert.Equal(t, id, updated["_id"])

	// Delete
	rec = request(t, srv, http.MethodDelete, "/api/admin/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decode(t, rec)["status"])

	rec = request(t, srv, http.MethodGet, "/api/admin/products/"+id, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])
}

func TestNotFoundMessagesPerResource(t *testing.T) {
	srv := newTestServer(t, testConfig())

	cases := map[string]string{
		"products":      "Product not found",
		"categories":    "Category not found",
		"brands":        "Brand not found",
		"subcategories": "Subcategory not found",
		"orders":        "Order not found",
	}

	for resource, want := range cases {
		rec := request(t, srv, http.MethodGet, "/api/admin/"+resource+"/missing_1_abc", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, resource)
		assert.Equal(t, want, decode(t, rec)["error"], resource)
	}
}

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer(t, testConfig())

	// Missing fields
	rec := request(t, srv, http.MethodPost, "/api/admin/users", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name, email, and password are required", decode(t, rec)["error"])

	// Short password
	rec = request(t, srv, http.MethodPost, "/api/admin/users", `{"name":"A","email":"a@x.com","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 6 characters", decode(t, rec)["error"])

	// Create
	rec = request(t, srv, http.MethodPost, "/api/admin/users", `{"name":"A","email":"A@X.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["data"].(map[string]interface{})
	id := user["_id"].(string)
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.Equal(t, true, user["active"])

	// Duplicate email, any case
	rec = request(t, srv, http.MethodPost, "/api/admin/users", `{"name":"B","email":"a@X.COM","password":"secret2"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already exists", decode(t, rec)["error"])

	// List strips passwords
	rec = request(t, srv, http.MethodGet, "/api/admin/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode(t, rec)["data"].([]interface{})
	require.Len(t, users, 1)
	assert.NotContains(t, users[0].(map[string]interface{}), "password")

	// Email is immutable through updates.
	rec = request(t, srv, http.MethodPut, "/api/admin/users/"+id, `{"email":"evil@x.com","name":"Alice"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "a@x.com", patched["email"])
	assert.Equal(t, "Alice", patched["name"])

	// Toggle active
	rec = request(t, srv, http.MethodPut, "/api/admin/users/"+id+"/toggle-active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, toggled["active"])
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t, testConfig())

	// Register
	rec := request(t, srv, http.MethodPost, "/api/auth/local/register", `{"name":"A","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	reg := decode(t, rec)["data"].(map[string]interface{})
	token := reg["token"].(string)
	assert.True(t, strings.HasPrefix(token, "local_user_token_"))
	regUser := reg["user"].(map[string]interface{})
	assert.NotContains(t, regUser, "password")

	// Duplicate register
	rec = request(t, srv, http.MethodPost, "/api/auth/local/register", `{"name":"B","email":"A@x.com","password":"secret2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Login
	rec = request(t, srv, http.MethodPost, "/api/auth/local/login", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, regUser["_id"], login["user"].(map[string]interface{})["_id"])

	// Wrong password
	rec = request(t, srv, http.MethodPost, "/api/auth/local/login", `{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decode(t, rec)["error"])

	// Missing fields
	rec = request(t, srv, http.MethodPost, "/api/auth/local/login", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Inactive account with correct credentials
	id := regUser["_id"].(string)
	rec = request(t, srv, http.MethodPut, "/api/admin/users/"+id+"/toggle-active", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, srv, http.MethodPost, "/api/auth/local/login", `{"email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Account is inactive. Please contact support.", decode(t, rec)["error"])
}

func TestDashboardStats(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for _, body := range []string{`{"totalOrderPrice":10}`, `{"totalOrderPrice":25}`} {
		rec := request(t, srv, http.MethodPost, "/api/admin/orders", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := request(t, srv, http.MethodPost, "/api/admin/products", `{"name":"Keyboard"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, srv, http.MethodGet, "/api/admin/dashboard/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["totalProducts"])
	assert.Equal(t, 2.0, stats["totalOrders"])
	assert.Equal(t, 0.0, stats["totalUsers"])
	assert.Equal(t, 35.0, stats["totalRevenue"])
}

func TestAdminAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	cfg.Security.AdminAuth = true
	srv := newTestServer(t, cfg)

	rec := request(t, srv, http.MethodGet, "/api/admin/products", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set(echo.HeaderAuthorization, fmt.Sprintf("Bearer %s", storage.NewToken()))
	out := httptest.NewRecorder()
	srv.echo.ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)

	// Auth endpoints stay public.
	rec = request(t, srv, http.MethodPost, "/api/auth/local/register", `{"name":"A","email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rec := request(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, srv, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, srv, http.MethodGet, "/health/detailed", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	checks := decode(t, rec)["checks"].(map[string]interface{})
	storageCheck := checks["storage"].(map[string]interface{})
	assert.Equal(t, "ok", storageCheck["status"])
}

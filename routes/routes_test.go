package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"motodealer-api/config"
	"motodealer-api/database"
	"motodealer-api/database/dbtest"
	"motodealer-api/middleware"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T, strict bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:              "test-secret",
		JWTTTL:                 time.Hour,
		StrictAdminMutations:   strict,
		CORSAllowedOrigin:      "*",
		AuthRateLimitPerMinute: 600,
		AuthRateLimitBurst:     100,
		AdminName:              "Administrator",
		AdminEmail:             "admin@motodealer.local",
		AdminPassword:          "admin123",
	}

	db := dbtest.Open(t)
	require.NoError(t, database.SeedAdmin(db, cfg))

	router := gin.New()
	SetupRoutes(router, db, cfg, nil, middleware.NewRateLimiter(cfg.AuthRateLimitPerMinute, cfg.AuthRateLimitBurst))
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "198.51.100.10:5000"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w.Code, decoded
}

func (s *testServer) list(path, token string) []map[string]interface{} {
	s.t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var items []map[string]interface{}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &items))
	return items
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()

	code, body := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code, body)
	return body["token"].(string)
}

func (s *testServer) register(name, email string) string {
	s.t.Helper()

	code, body := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, code, body)
	return body["token"].(string)
}

func (s *testServer) createMotorcycle(adminToken string) string {
	s.t.Helper()

	code, body := s.do(http.MethodPost, "/api/v1/motorcycles", adminToken, gin.H{
		"brand": "Honda", "model": "CB500", "year": 2022, "price": 35990.5,
	})
	require.Equal(s.t, http.StatusCreated, code, body)
	return body["id"].(string)
}

func TestSaleLifecycle(t *testing.T) {
	s := newTestServer(t, false)
	adminToken := s.login("admin@motodealer.local", "admin123")
	userToken := s.register("Carlos", "carlos@example.com")

	// Regular users cannot add inventory
	code, body := s.do(http.MethodPost, "/api/v1/motorcycles", userToken, gin.H{
		"brand": "Honda", "model": "CB500", "year": 2022, "price": 35990.5,
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied. Administrators only.", body["error"])

	code, body = s.do(http.MethodPost, "/api/v1/motorcycles", adminToken, gin.H{
		"brand": "Honda", "model": "CB500", "year": 2022, "price": 35990.5,
	})
	require.Equal(t, http.StatusCreated, code, body)
	motorcycleID := body["id"].(string)
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, float64(0), body["mileage"])

	catalog := s.list("/api/v1/motorcycles/public", userToken)
	require.Len(t, catalog, 1)
	assert.Equal(t, motorcycleID, catalog[0]["id"])

	sale := gin.H{
		"motorcycle_id":  motorcycleID,
		"customer_name":  "Ana Souza",
		"customer_email": "ana@example.com",
		"sale_price":     35000,
	}
	code, body = s.do(http.MethodPost, "/api/v1/sales", adminToken, sale)
	require.Equal(t, http.StatusCreated, code, body)
	saleID := body["id"].(string)
	assert.Equal(t, float64(1), body["installments"])
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "sold", body["motorcycle"].(map[string]interface{})["status"])

	code, body = s.do(http.MethodPost, "/api/v1/sales", adminToken, sale)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Motorcycle is not available for sale", body["error"])

	assert.Empty(t, s.list("/api/v1/motorcycles/public", userToken))
	assert.Len(t, s.list("/api/v1/sales", adminToken), 1)

	code, body = s.do(http.MethodGet, "/api/v1/motorcycles/"+motorcycleID, userToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "sold", body["status"])

	code, body = s.do(http.MethodDelete, "/api/v1/sales/"+saleID, adminToken, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Sale deleted successfully", body["message"])

	code, body = s.do(http.MethodGet, "/api/v1/motorcycles/"+motorcycleID, userToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "available", body["status"])

	code, _ = s.do(http.MethodGet, "/api/v1/sales/"+saleID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t, false)
	userToken := s.register("Carlos", "carlos@example.com")

	code, body := s.do(http.MethodGet, "/api/v1/auth/me", userToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "carlos@example.com", body["email"])
	assert.Equal(t, "user", body["role"])
	assert.NotContains(t, body, "password")

	code, body = s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Carlos", "email": "carlos@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email already registered", body["error"])

	code, unknown := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, code)
	code, wrong := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "carlos@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, unknown, wrong)

	code, _ = s.do(http.MethodGet, "/api/v1/sales", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodGet, "/api/v1/sales", userToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, "/api/v1/dashboard/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestPerIDMutations(t *testing.T) {
	t.Run("authenticated callers by default", func(t *testing.T) {
		s := newTestServer(t, false)
		adminToken := s.login("admin@motodealer.local", "admin123")
		userToken := s.register("Carlos", "carlos@example.com")
		motorcycleID := s.createMotorcycle(adminToken)

		code, body := s.do(http.MethodDelete, "/api/v1/motorcycles/"+motorcycleID, userToken, nil)
		assert.Equal(t, http.StatusOK, code, body)
	})

	t.Run("administrators only in strict mode", func(t *testing.T) {
		s := newTestServer(t, true)
		adminToken := s.login("admin@motodealer.local", "admin123")
		userToken := s.register("Carlos", "carlos@example.com")
		motorcycleID := s.createMotorcycle(adminToken)

		code, _ := s.do(http.MethodDelete, "/api/v1/motorcycles/"+motorcycleID, userToken, nil)
		assert.Equal(t, http.StatusForbidden, code)

		code, _ = s.do(http.MethodDelete, "/api/v1/motorcycles/"+motorcycleID, adminToken, nil)
		assert.Equal(t, http.StatusOK, code)
	})
}

func TestUserAdministration(t *testing.T) {
	s := newTestServer(t, true)
	adminToken := s.login("admin@motodealer.local", "admin123")

	code, body := s.do(http.MethodPost, "/api/v1/users", adminToken, gin.H{
		"name": "Bia", "email": "bia@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "user", body["role"])
	assert.NotContains(t, body, "password")
	userID := body["id"].(string)

	code, body = s.do(http.MethodPut, "/api/v1/users/"+userID, adminToken, gin.H{
		"name": "Beatriz", "email": "bia@example.com", "role": "admin",
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "admin", body["role"])

	// password unchanged by the update
	s.login("bia@example.com", "secret123")

	assert.Len(t, s.list("/api/v1/users", adminToken), 2)

	code, _ = s.do(http.MethodDelete, "/api/v1/users/"+userID, adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, "/api/v1/users/"+userID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDashboardAndHealth(t *testing.T) {
	s := newTestServer(t, false)
	adminToken := s.login("admin@motodealer.local", "admin123")
	s.createMotorcycle(adminToken)

	code, body := s.do(http.MethodGet, "/api/v1/dashboard/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["total_users"])
	assert.Equal(t, float64(1), body["total_motorcycles"])
	assert.Equal(t, float64(0), body["conversion_rate"])

	code, body = s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body["message"])
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t, false)
	adminToken := s.login("admin@motodealer.local", "admin123")

	code, body := s.do(http.MethodPost, "/api/v1/motorcycles", adminToken, gin.H{"brand": "Honda"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["error"])

	code, _ = s.do(http.MethodPost, "/api/v1/sales", adminToken, gin.H{
		"motorcycle_id": "x", "customer_name": "A", "customer_email": "a@example.com", "sale_price": 0,
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

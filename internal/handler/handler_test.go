package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/database"
	"letly-be-svc/internal/lock"
	"letly-be-svc/internal/metrics"
	"letly-be-svc/internal/middleware"
	"letly-be-svc/internal/notifier"
	"letly-be-svc/internal/repository"
	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.NewNopLogger()
	users := repository.NewUserRepository(db.DB)
	properties := repository.NewPropertyRepository(db.DB)
	bills := repository.NewBillRepository(db.DB)
	jwtManager := auth.NewJWTManager("handler-test-secret", time.Hour)
	m := metrics.New()

	services := Services{
		User:          service.NewUserService(users, jwtManager, log),
		Property:      service.NewPropertyService(properties, users, log),
		Bill:          service.NewBillService(bills, properties, lock.NewLocal(), notifier.Nop{}, m, log),
		Maintenance:   service.NewMaintenanceService(repository.NewMaintenanceRepository(db.DB), properties, notifier.Nop{}, log),
		PasswordReset: service.NewPasswordResetService(users, repository.NewPasswordResetRepository(db.DB), notifier.Nop{}, "http://app.test", log),
	}

	router := gin.New()
	router.Use(m.Middleware())
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	SetupRoutes(router, services, jwtManager, m, db, log)
	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) register(t *testing.T, name, email, role string) (string, uint) {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret1", "role": role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token, data.User.ID
}

func TestBillingFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	landlord, _ := s.register(t, "Lana", "lana@example.com", "landlord")
	tenant, tenantID := s.register(t, "Ari", "ari@example.com", "rentee")

	w, env := s.do(t, http.MethodPost, "/api/v1/properties", landlord, gin.H{
		"name":        "Maple House",
		"rent_amount": 1500,
		"utilities":   []gin.H{{"name": "Electricity", "amount": 200, "split_type": "equal"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var property struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &property))

	w, _ = s.do(t, http.MethodPost, "/api/v1/properties/add-tenant", landlord, gin.H{"property_id": property.ID, "email": "ari@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(t, http.MethodPost, "/api/v1/bills/generate", tenant, gin.H{"property_id": property.ID, "period": "2025-03"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/bills/generate", landlord, gin.H{"property_id": property.ID, "period": "2025-13"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/bills/generate", landlord, gin.H{"property_id": property.ID, "period": "2025-03", "due_date": "2025-03-05"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var generated struct {
		Bills []struct {
			ID       uint    `json:"id"`
			TenantID uint    `json:"tenant_id"`
			Category string  `json:"category"`
			Amount   float64 `json:"amount"`
		} `json:"bills"`
		Summary struct {
			TotalAmount float64 `json:"total_amount"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &generated))
	require.Len(t, generated.Bills, 2)
	assert.InDelta(t, 1700, generated.Summary.TotalAmount, 1e-6)
	assert.Equal(t, tenantID, generated.Bills[0].TenantID)

	w, env = s.do(t, http.MethodGet, "/api/v1/bills/tenant?period=2025-03", tenant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Len(t, listed, 2)

	w, _ = s.do(t, http.MethodGet, "/api/v1/bills/landlord?period=2025-03&limit=1", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var paged struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Page       int   `json:"page"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paged))
	assert.Len(t, paged.Data, 1)
	assert.Equal(t, 1, paged.Pagination.Page)
	assert.Equal(t, int64(2), paged.Pagination.Total)
	assert.Equal(t, 2, paged.Pagination.TotalPages)

	w, _ = s.do(t, http.MethodGet, "/api/v1/bills/landlord?limit=500", landlord, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	paidPath := fmt.Sprintf("/api/v1/bills/%d/paid", generated.Bills[0].ID)
	w, _ = s.do(t, http.MethodPut, paidPath, tenant, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, _ = s.do(t, http.MethodPut, paidPath, landlord, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/v1/bills/summary", tenant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		PaidBills    int `json:"paid_bills"`
		PendingBills int `json:"pending_bills"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.PaidBills)
	assert.Equal(t, 1, summary.PendingBills)

	w, _ = s.do(t, http.MethodGet, "/api/v1/bills/landlord/export?period=2025-03", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bills_export_")
}

func TestAuthGate(t *testing.T) {
	s := newTestServer(t)
	tenant, _ := s.register(t, "Ari", "ari@example.com", "tenant")

	w, _ := s.do(t, http.MethodGet, "/api/v1/bills/tenant", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/bills/tenant", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/bills/landlord", tenant, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/v1/auth/me", tenant, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "ari@example.com")
	assert.NotContains(t, string(env.Data), "password")

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Ari", "email": "ari@example.com", "password": "secret1", "role": "tenant",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ari@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "letly_http_requests_total")

	w, env := s.do(t, http.MethodPost, "/api/v1/password-reset/request", "", gin.H{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = s.do(t, http.MethodGet, "/api/v1/password-reset/verify?email=ghost@example.com&token=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

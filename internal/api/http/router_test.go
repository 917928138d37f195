package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/family-service/internal/api/http/handlers"
	"github.com/spec-kit/family-service/internal/auth"
	"github.com/spec-kit/family-service/internal/config"
	"github.com/spec-kit/family-service/internal/i18n"
	"github.com/spec-kit/family-service/internal/observability"
	"github.com/spec-kit/family-service/internal/repository"
	"github.com/spec-kit/family-service/internal/service"
	"github.com/spec-kit/family-service/internal/validation"
)

type testEnv struct {
	app  *fiber.App
	auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	translator, err := i18n.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
	}, repository.NewMemoryUserRepository())
	familyService := service.NewFamilyService(repository.NewMemoryFamilyRepository())
	validate := validation.New()

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), translator, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(),
		Auth:           handlers.NewAuthHandler(authService, validate),
		Family:         handlers.NewFamilyHandler(familyService, validate, logger),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	return &testEnv{app: app, auth: authService}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func registerBody(username, email, password string) map[string]string {
	return map[string]string{"username": username, "email": email, "password": password}
}

func familyBody(username string) map[string]string {
	return map[string]string{
		"username":   username,
		"fatherName": "Bob",
		"motherName": "Carol",
		"familyName": "Smith",
		"date":       "2001-06-15",
	}
}

func fieldErrors(body map[string]any) map[string]any {
	errs, _ := body["errors"].(map[string]any)
	return errs
}

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "POST", "/api/v1/auth/register",
		registerBody("alice", "alice@example.com", "secret"), nil)

	require.Equal(t, nethttp.StatusCreated, status)
	assert.Equal(t, "registration_successful", body["message"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["name"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotEmpty(t, user["id"])

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	claims, err := env.auth.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.ID)
	assert.Equal(t, "alice", claims.Name)
}

func TestRegister_CollectsAllFieldErrors(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "POST", "/api/v1/auth/register",
		registerBody("", "bad-email", "x"), nil)

	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "validation_failed", body["message"])
	errs := fieldErrors(body)
	assert.Equal(t, "username_required", errs["username"])
	assert.Equal(t, "email_invalid", errs["email"])
	assert.Equal(t, "password_min", errs["password"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, "POST", "/api/v1/auth/register",
		registerBody("alice", "alice@example.com", "secret"), nil)
	require.Equal(t, nethttp.StatusCreated, status)

	status, body := env.request(t, "POST", "/api/v1/auth/register",
		registerBody("someone-else", "alice@example.com", "secret"), nil)

	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "email_exists", fieldErrors(body)["email"])
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, "POST", "/api/v1/auth/register",
		registerBody("alice", "alice@example.com", "secret"), nil)
	require.Equal(t, nethttp.StatusCreated, status)

	status, body := env.request(t, "POST", "/api/v1/auth/register",
		registerBody("alice", "other@example.com", "secret"), nil)

	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "username_taken", fieldErrors(body)["username"])
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, "POST", "/api/v1/auth/register",
		registerBody("alice", "alice@example.com", "secret"), nil)

	status, body := env.request(t, "POST", "/api/v1/auth/login",
		map[string]string{"email": "alice@example.com", "password": "wrong"}, nil)

	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "invalid_credentials", fieldErrors(body)["password"])
	assert.NotContains(t, body, "token")
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "POST", "/api/v1/auth/login",
		map[string]string{"email": "nobody@example.com", "password": "secret"}, nil)

	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "invalid_credentials", fieldErrors(body)["email"])
	assert.NotContains(t, body, "token")
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "POST", "/api/v1/auth/login",
		map[string]string{"email": "alice@example.com"}, nil)

	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "email_password_required", fieldErrors(body)["email"])
}

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, "POST", "/api/v1/auth/register",
		registerBody("alice", "alice@example.com", "secret"), nil)

	status, body := env.request(t, "POST", "/api/v1/auth/login",
		map[string]string{"email": "alice@example.com", "password": "secret"}, nil)

	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "login_successful", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestDashboard_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, "GET", "/api/v1/auth/dashboard", nil, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	status, _ = env.request(t, "GET", "/api/v1/auth/dashboard", nil,
		map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	status, _ = env.request(t, "GET", "/api/v1/auth/dashboard", nil,
		map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, nethttp.StatusUnauthorized, status)
}

func TestDashboard_WithValidToken(t *testing.T) {
	env := newTestEnv(t)
	_, body := env.request(t, "POST", "/api/v1/auth/register",
		registerBody("alice", "alice@example.com", "secret"), nil)
	token := body["token"].(string)

	status, body := env.request(t, "GET", "/api/v1/auth/dashboard", nil,
		map[string]string{"Authorization": "Bearer " + token})

	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, body["message"], "alice")
	assert.NotEmpty(t, body["secret"])
}

func TestListUsers_OmitsPasswordHash(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, "POST", "/api/v1/auth/register",
		registerBody("alice", "alice@example.com", "secret"), nil)

	status, body := env.request(t, "GET", "/api/v1/auth/users", nil, nil)

	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "users_retrieved", body["message"])
	users := body["users"].([]any)
	require.Len(t, users, 1)
	user := users[0].(map[string]any)
	assert.Equal(t, "alice", user["name"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
}

func TestFamilyCreate_ListsAllViolations(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "POST", "/api/v1/family",
		map[string]string{"username": "  "}, nil)

	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["error"])
	assert.Len(t, body["messages"].([]any), 5)
}

func TestFamilyCRUD(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "POST", "/api/v1/family", familyBody("Alice"), nil)
	require.Equal(t, nethttp.StatusCreated, status)
	created := body["data"].(map[string]any)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	status, body = env.request(t, "GET", "/api/v1/family/"+id, nil, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Alice", body["data"].(map[string]any)["username"])

	update := familyBody("Alice")
	update["familyName"] = "Jones"
	status, body = env.request(t, "PUT", "/api/v1/family/"+id, update, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Jones", body["data"].(map[string]any)["familyName"])

	status, body = env.request(t, "DELETE", "/api/v1/family/"+id, nil, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Family member deleted successfully", body["message"])

	status, _ = env.request(t, "GET", "/api/v1/family/"+id, nil, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestFamilyGet_BadID(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "GET", "/api/v1/family/not-a-uuid", nil, nil)
	require.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "Invalid family member ID format", body["error"])
}

func TestFamilyList_Pagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 12; i++ {
		status, _ := env.request(t, "POST", "/api/v1/family",
			familyBody(fmt.Sprintf("member-%02d", i)), nil)
		require.Equal(t, nethttp.StatusCreated, status)
	}

	status, body := env.request(t, "GET", "/api/v1/family?page=2&limit=5", nil, nil)
	require.Equal(t, nethttp.StatusOK, status)

	assert.Equal(t, float64(5), body["count"])
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(3), pagination["pages"])
	assert.Equal(t, float64(12), pagination["total"])

	// Newest first: page 2 holds records 6..10 of the sorted sequence.
	data := body["data"].([]any)
	require.Len(t, data, 5)
	assert.Equal(t, "member-07", data[0].(map[string]any)["username"])
	assert.Equal(t, "member-03", data[4].(map[string]any)["username"])
}

func TestHealth_Localized(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "GET", "/health", nil, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "Server is up and running", body["message"])
	assert.NotEmpty(t, body["timestamp"])

	_, body = env.request(t, "GET", "/health?lng=ar", nil, nil)
	assert.Equal(t, "الخادم يعمل", body["message"])
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, "GET", "/nope", nil, nil)
	require.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["error"])
}

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/api"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/router"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/service"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/testhelpers"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	log := zerolog.Nop()
	tokens := service.NewTokenService("test-secret-for-handler-tests", time.Hour)
	auth := service.NewAuthService(db, tokens, log)
	recipes := service.NewRecipeService(db, log)

	engine := router.Setup(
		api.NewAuthHandler(auth, log),
		api.NewRecipeHandler(recipes, nil, log),
		nil,
		auth,
		[]string{"http://localhost:5173"},
		log,
	)
	return engine, db
}

func postJSON(r *gin.Engine, path string, body any, token string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getJSON(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, r *gin.Engine, username string) types.AuthResponse {
	t.Helper()
	rec := postJSON(r, "/api/v1/auth/register", types.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := setupTestServer(t)

	resp := registerUser(t, r, "alice")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "alice", resp.User.Username)

	rec := postJSON(r, "/api/v1/auth/login", types.LoginRequest{
		UsernameOrEmail: "alice@example.com",
		Password:        "password123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login types.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	r, _ := setupTestServer(t)

	rec := postJSON(r, "/api/v1/auth/register", gin.H{
		"username": "ab",
		"email":    "not-an-email",
		"password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := setupTestServer(t)
	registerUser(t, r, "alice")

	rec := postJSON(r, "/api/v1/auth/register", types.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupTestServer(t)
	registerUser(t, r, "alice")

	rec := postJSON(r, "/api/v1/auth/login", types.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshReturnsNewPair(t *testing.T) {
	r, _ := setupTestServer(t)
	resp := registerUser(t, r, "alice")

	rec := postJSON(r, "/api/v1/auth/refresh", types.RefreshRequest{RefreshToken: resp.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed types.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	r, _ := setupTestServer(t)
	resp := registerUser(t, r, "alice")

	rec := postJSON(r, "/api/v1/auth/refresh", types.RefreshRequest{RefreshToken: resp.AccessToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidateEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	resp := registerUser(t, r, "alice")

	rec := postJSON(r, "/api/v1/auth/validate", types.ValidateTokenRequest{Token: resp.AccessToken}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid": true}`, rec.Body.String())

	rec = postJSON(r, "/api/v1/auth/validate", types.ValidateTokenRequest{Token: "garbage"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid": false}`, rec.Body.String())
}

func TestMeRequiresAuth(t *testing.T) {
	r, _ := setupTestServer(t)
	resp := registerUser(t, r, "alice")

	assert.Equal(t, http.StatusUnauthorized, getJSON(r, "/api/v1/auth/me", "").Code)

	rec := getJSON(r, "/api/v1/auth/me", resp.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var info types.UserInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, resp.User.ID, info.ID)
}

func TestCheckAvailabilityEndpoints(t *testing.T) {
	r, _ := setupTestServer(t)
	registerUser(t, r, "alice")

	rec := getJSON(r, "/api/v1/auth/check-username?username=alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"available": false}`, rec.Body.String())

	rec = getJSON(r, "/api/v1/auth/check-username?username=bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"available": true}`, rec.Body.String())

	rec = getJSON(r, "/api/v1/auth/check-email?email=alice@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"available": false}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, getJSON(r, "/api/v1/auth/check-username", "").Code)
	assert.Equal(t, http.StatusBadRequest, getJSON(r, "/api/v1/auth/check-email", "").Code)
}

func TestChangePasswordFlow(t *testing.T) {
	r, _ := setupTestServer(t)
	resp := registerUser(t, r, "alice")

	rec := postJSON(r, "/api/v1/auth/change-password", types.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "even-better-secret",
	}, resp.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(r, "/api/v1/auth/login", types.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(r, "/api/v1/auth/login", types.LoginRequest{
		UsernameOrEmail: "alice",
		Password:        "even-better-secret",
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	r, _ := setupTestServer(t)
	resp := registerUser(t, r, "alice")

	rec := postJSON(r, "/api/v1/auth/change-password", types.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "even-better-secret",
	}, resp.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)

	rec := getJSON(r, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

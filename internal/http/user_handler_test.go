package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/service"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.usersByID[user.ID] = user
	if user.Email != "" {
		m.usersByEmail[user.Email] = user.ID
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, user domain.User) error {
	if _, ok := m.usersByID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.usersByID[user.ID] = user
	return nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(string) bool { return true }

func newUserTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMockUserRepo()
	userSvc := service.NewUserService(zap.NewNop(), repo, allowAllLimiter{})
	jwtSvc := service.NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, service.NewMemoryRefreshTokenStore())
	handler := NewUserHandler(zap.NewNop(), userSvc, jwtSvc)

	r := gin.New()
	r.POST("/users", handler.CreateUser)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.RefreshToken)
	r.POST("/auth/logout", handler.Logout)
	protected := r.Group("/", JWTAuthMiddleware(jwtSvc))
	protected.GET("/profile", handler.GetProfile)
	protected.PUT("/profile/setup", handler.SetupProfile)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUserHandler_RegisterAndLogin(t *testing.T) {
	r := newUserTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/users", "", gin.H{
		"email":        "ana@example.com",
		"display_name": "Ana",
		"password":     "segura-123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "ana@example.com",
		"password": "segura-123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Tokens service.TokenPair `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", resp.Tokens)
	}
}

func TestUserHandler_LoginWrongPassword(t *testing.T) {
	r := newUserTestRouter(t)

	doJSON(r, http.MethodPost, "/users", "", gin.H{
		"email":    "ana@example.com",
		"password": "segura-123",
	})

	rec := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "ana@example.com",
		"password": "equivocada",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandler_WeakPasswordRejected(t *testing.T) {
	r := newUserTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/users", "", gin.H{
		"email":    "ana@example.com",
		"password": "corta",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_RefreshRotation(t *testing.T) {
	r := newUserTestRouter(t)

	doJSON(r, http.MethodPost, "/users", "", gin.H{
		"email":    "ana@example.com",
		"password": "segura-123",
	})
	rec := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "ana@example.com",
		"password": "segura-123",
	})
	var login struct {
		Tokens service.TokenPair `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rec = doJSON(r, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": login.Tokens.RefreshToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// El refresh token anterior queda revocado.
	rec = doJSON(r, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": login.Tokens.RefreshToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after rotation, got %d", rec.Code)
	}
}

func TestUserHandler_SetupProfileAndGetProfile(t *testing.T) {
	r := newUserTestRouter(t)

	doJSON(r, http.MethodPost, "/users", "", gin.H{
		"email":    "ana@example.com",
		"password": "segura-123",
	})
	rec := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "ana@example.com",
		"password": "segura-123",
	})
	var login struct {
		Tokens service.TokenPair `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	token := login.Tokens.AccessToken

	rec = doJSON(r, http.MethodPut, "/profile/setup", token, gin.H{
		"gender":     "female",
		"birth_year": 1998,
		"height_cm":  170,
		"weight_kg":  58,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var setup struct {
		BMIBand string `json:"bmi_band"`
		User    struct {
			SetupCompleted bool `json:"setup_completed"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &setup); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !setup.User.SetupCompleted || setup.BMIBand != domain.BMIBandNormal {
		t.Fatalf("unexpected setup response: %s", rec.Body.String())
	}

	rec = doJSON(r, http.MethodGet, "/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Sin token la ruta es inaccesible.
	rec = doJSON(r, http.MethodGet, "/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

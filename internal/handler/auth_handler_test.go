package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/handler"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/repository"
	"github.com/dropfixer/dropfixer-api/internal/service"
)

func newAuthApp(t *testing.T, name string) *fiber.App {
	t.Helper()

	db := newTestDB(t, name)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: "Rahul Sharma", Email: "student@demo.com", PasswordHash: string(hash), Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	svc := service.NewAuthService(repository.NewUserRepository(db), "secret", time.Hour, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())

	app := fiber.New()
	handler.NewAuthHandler(svc, validate, zerolog.Nop()).Register(app.Group("/auth"))
	return app
}

func TestAuthHandler_Login(t *testing.T) {
	app := newAuthApp(t, "handler_login")

	body := `{"email":"student@demo.com","password":"demo123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Token)
	require.Equal(t, "Rahul Sharma", payload.User.Name)
	require.Equal(t, models.RoleStudent, payload.User.Role)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	app := newAuthApp(t, "handler_login_bad")

	body := `{"email":"student@demo.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "Invalid credentials", payload["error"])
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	app := newAuthApp(t, "handler_login_missing")

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"student@demo.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

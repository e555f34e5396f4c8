package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/repository"
)

const testJWTSecret = "test-secret"

func TestAuthServiceLogin(t *testing.T) {
	db := newTestDB(t, "auth_login")
	svc := NewAuthService(repository.NewUserRepository(db), testJWTSecret, time.Hour, zerolog.Nop())

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: "Rahul Sharma", Email: "student@demo.com", PasswordHash: string(hash), Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "student@demo.com", Password: "demo123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Rahul Sharma", resp.User.Name)
	require.Equal(t, models.RoleStudent, resp.User.Role)
	require.NotNil(t, resp.User.LastLogin)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(user.ID), claims["sub"])
	require.Equal(t, models.RoleStudent, claims["role"])

	// Login also records last_login on the account.
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotNil(t, stored.LastLogin)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	db := newTestDB(t, "auth_wrong_password")
	svc := NewAuthService(repository.NewUserRepository(db), testJWTSecret, time.Hour, zerolog.Nop())

	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: "Rahul Sharma", Email: "student@demo.com", PasswordHash: string(hash), Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "student@demo.com", Password: "nope"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	db := newTestDB(t, "auth_unknown_email")
	svc := NewAuthService(repository.NewUserRepository(db), testJWTSecret, time.Hour, zerolog.Nop())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@demo.com", Password: "demo123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceCurrentUser(t *testing.T) {
	db := newTestDB(t, "auth_current")
	svc := NewAuthService(repository.NewUserRepository(db), testJWTSecret, time.Hour, zerolog.Nop())

	user := models.User{Name: "Dr. Mike Chen", Email: "counselor@demo.com", PasswordHash: "x", Role: models.RoleCounselor}
	require.NoError(t, db.Create(&user).Error)

	resp, err := svc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "Dr. Mike Chen", resp.Name)
	require.Equal(t, models.RoleCounselor, resp.Role)

	_, err = svc.CurrentUser(context.Background(), 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

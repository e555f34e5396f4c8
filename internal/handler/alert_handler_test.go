package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dropfixer/dropfixer-api/internal/dto"
	"github.com/dropfixer/dropfixer-api/internal/handler"
	"github.com/dropfixer/dropfixer-api/internal/models"
	"github.com/dropfixer/dropfixer-api/internal/repository"
	"github.com/dropfixer/dropfixer-api/internal/service"
)

func newAlertApp(t *testing.T, name string) (*fiber.App, service.AlertService, models.User) {
	t.Helper()

	db := newTestDB(t, name)

	student := models.User{Name: "Sneha Singh", Email: "sneha@demo.com", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&student).Error)

	svc := service.NewAlertService(repository.NewAlertRepository(db), nil, zerolog.Nop())

	app := fiber.New()
	handler.NewAlertHandler(svc, zerolog.Nop()).Register(app.Group("/"))
	return app, svc, student
}

func TestAlertHandler_ListAndAcknowledge(t *testing.T) {
	app, svc, student := newAlertApp(t, "handler_alerts")

	req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var empty []dto.AlertResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&empty))
	require.Empty(t, empty)

	require.NoError(t, svc.EnsureOpenAlert(context.Background(), student, models.RiskHigh))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/alerts", nil))
	require.NoError(t, err)

	var alerts []dto.AlertResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&alerts))
	require.Len(t, alerts, 1)
	require.Equal(t, "Sneha Singh", alerts[0].StudentName)
	require.False(t, alerts[0].Acknowledged)

	ackPath := "/alerts/1/acknowledge"
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, ackPath, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ack map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	require.Equal(t, "Alert acknowledged", ack["message"])

	// Acknowledging again reports the no-op instead of failing.
	resp, err = app.Test(httptest.NewRequest(http.MethodPost, ackPath, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	require.Equal(t, "Alert already acknowledged", ack["message"])
}

func TestAlertHandler_AcknowledgeUnknownAlert(t *testing.T) {
	app, _, _ := newAlertApp(t, "handler_alert_404")

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/alerts/42/acknowledge", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "Alert not found", payload["error"])
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminance-clinic/backend-clinic/config"
	"github.com/luminance-clinic/backend-clinic/models"
)

// These tests cover the paths that reject a request before any backend
// call is made, so the handlers run against a nil client.

func postJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func validBooking() map[string]interface{} {
	return map[string]interface{}{
		"first_name":     "Jane",
		"last_name":      "Doe",
		"email":          "jane@example.com",
		"phone":          "555-0101",
		"service":        "Acne Treatment",
		"preferred_date": time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		"preferred_time": "10:00 AM",
		"message":        "First visit",
	}
}

func bookingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	models.InitValidation()
	cfg := &config.Config{JWTSecret: "test-secret", BookingDedupWindow: time.Minute}
	h := NewAppointmentHandler(nil, cfg, nil, logrus.New())
	r := gin.New()
	r.POST("/appointments", h.CreateAppointment)
	r.PATCH("/appointments/:id/status", h.UpdateAppointmentStatus)
	return r
}

func TestCreateAppointmentRejectsMissingFields(t *testing.T) {
	r := bookingRouter()

	w := postJSON(t, r, http.MethodPost, "/appointments", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	details, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "is required", details["first_name"])
	assert.Equal(t, "is required", details["message"])
}

func TestCreateAppointmentRejectsBadEmail(t *testing.T) {
	r := bookingRouter()

	body := validBooking()
	body["email"] = "not-an-email"
	w := postJSON(t, r, http.MethodPost, "/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	details := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "must be a valid email", details["email"])
}

func TestCreateAppointmentRejectsPastDate(t *testing.T) {
	r := bookingRouter()

	body := validBooking()
	body["preferred_date"] = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	w := postJSON(t, r, http.MethodPost, "/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	details := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Contains(t, details, "preferred_date")
}

func TestCreateAppointmentRejectsUnknownService(t *testing.T) {
	r := bookingRouter()

	body := validBooking()
	body["service"] = "Haircut"
	w := postJSON(t, r, http.MethodPost, "/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	details := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Contains(t, details, "service")
}

func TestUpdateAppointmentStatusRejectsUnknownStatus(t *testing.T) {
	r := bookingRouter()

	w := postJSON(t, r, http.MethodPatch, "/appointments/some-id/status",
		map[string]interface{}{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeResponse(t, w).Error, "archived")
}

func TestAdminRegisterCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	models.InitValidation()

	newRouter := func(code string) *gin.Engine {
		cfg := &config.Config{JWTSecret: "test-secret", AdminRegistrationCode: code}
		h := NewAuthHandler(nil, cfg, logrus.New())
		r := gin.New()
		r.POST("/admin-register", h.AdminRegister)
		return r
	}

	registration := map[string]interface{}{
		"name":       "Ops",
		"email":      "ops@example.com",
		"password":   "longenough1",
		"admin_code": "wrong-code",
	}

	t.Run("wrong code", func(t *testing.T) {
		w := postJSON(t, newRouter("clinic-setup"), http.MethodPost, "/admin-register", registration)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no code configured disables endpoint", func(t *testing.T) {
		w := postJSON(t, newRouter(""), http.MethodPost, "/admin-register", registration)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing code field", func(t *testing.T) {
		body := map[string]interface{}{
			"name":     "Ops",
			"email":    "ops@example.com",
			"password": "longenough1",
		}
		w := postJSON(t, newRouter("clinic-setup"), http.MethodPost, "/admin-register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

package handlers

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	supa "github.com/supabase-community/supabase-go"

	"github.com/luminance-clinic/backend-clinic/config"
	"github.com/luminance-clinic/backend-clinic/models"
)

// Integration tests against a live Supabase project. Skipped unless the
// environment is configured.
func integrationSetup(t *testing.T) *gin.Engine {
	t.Helper()
	_ = godotenv.Load("../.env")
	if os.Getenv("SUPABASE_URL") == "" || os.Getenv("JWT_SECRET") == "" {
		t.Skip("SUPABASE_URL or JWT_SECRET not set")
	}

	gin.SetMode(gin.TestMode)
	models.InitValidation()

	cfg := &config.Config{
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Environment:        "test",
		BookingDedupWindow: time.Minute,
	}

	client, err := supa.NewClient(cfg.SupabaseURL, cfg.APIKey(), nil)
	require.NoError(t, err)

	log := logrus.New()
	appointmentHandler := NewAppointmentHandler(client, cfg, nil, log)
	offerHandler := NewOfferHandler(client, cfg, log)

	// Handlers are wired directly; middleware gating has its own tests.
	r := gin.New()
	r.POST("/appointments", appointmentHandler.CreateAppointment)
	r.GET("/admin/appointments", appointmentHandler.GetAllAppointments)
	r.PATCH("/admin/appointments/:id/status", appointmentHandler.UpdateAppointmentStatus)
	r.DELETE("/admin/appointments/:id", appointmentHandler.DeleteAppointment)
	r.GET("/offers", offerHandler.GetActiveOffers)
	r.GET("/admin/offers", offerHandler.GetAllOffers)
	r.POST("/admin/offers", offerHandler.CreateOffer)
	r.PUT("/admin/offers/:id", offerHandler.UpdateOffer)
	r.DELETE("/admin/offers/:id", offerHandler.DeleteOffer)
	return r
}

func bookingPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":     "Test",
		"last_name":      "Patient",
		"email":          fmt.Sprintf("test-%s@example.com", uuid.New().String()[:8]),
		"phone":          "555-0101",
		"service":        "General Consultation",
		"preferred_date": time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		"preferred_time": "10:00 AM",
		"message":        "integration test booking",
	}
}

func dataAsMap(t *testing.T, resp models.Response) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object payload, got %T", resp.Data)
	return m
}

func TestBookingLifecycle(t *testing.T) {
	r := integrationSetup(t)

	// Public submit lands in pending with the doctor unassigned.
	w := postJSON(t, r, http.MethodPost, "/appointments", bookingPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataAsMap(t, decodeResponse(t, w))
	assert.Equal(t, models.StatusPending, created["status"])
	assert.Equal(t, models.DoctorUnassigned, created["doctor"])
	id := created["id"].(string)

	// pending -> confirmed -> completed
	w = postJSON(t, r, http.MethodPatch, "/admin/appointments/"+id+"/status",
		map[string]interface{}{"status": models.StatusConfirmed})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postJSON(t, r, http.MethodPatch, "/admin/appointments/"+id+"/status",
		map[string]interface{}{"status": models.StatusCompleted})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// completed is terminal
	w = postJSON(t, r, http.MethodPatch, "/admin/appointments/"+id+"/status",
		map[string]interface{}{"status": models.StatusCancelled})
	assert.Equal(t, http.StatusConflict, w.Code)

	// cleanup; repeated delete is a handled 404
	w = postJSON(t, r, http.MethodDelete, "/admin/appointments/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, r, http.MethodDelete, "/admin/appointments/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOfferLifecycle(t *testing.T) {
	r := integrationSetup(t)

	offer := map[string]interface{}{
		"title":          "New Patient Special " + uuid.New().String()[:8],
		"discount":       "50% OFF",
		"original_price": 300,
		"sale_price":     150,
		"service":        "General Consultation",
		"description":    "integration test offer",
		"valid_until":    time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		"terms":          "a, b ,c",
		"popular":        false,
		"color":          "green",
		"active":         true,
	}

	w := postJSON(t, r, http.MethodPost, "/admin/offers", offer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataAsMap(t, decodeResponse(t, w))
	id := created["id"].(string)
	assert.Equal(t, []interface{}{"a", "b", "c"}, created["terms"])

	// Active offers are visible on the public page.
	w = postJSON(t, r, http.MethodGet, "/offers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)

	// Deactivating hides it publicly without deleting the row.
	offer["active"] = false
	w = postJSON(t, r, http.MethodPut, "/admin/offers/"+id, offer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postJSON(t, r, http.MethodGet, "/offers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), id)

	w = postJSON(t, r, http.MethodGet, "/admin/offers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)

	// cleanup; repeated delete is a handled 404
	w = postJSON(t, r, http.MethodDelete, "/admin/offers/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, r, http.MethodDelete, "/admin/offers/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

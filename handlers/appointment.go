package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/luminance-clinic/backend-clinic/config"
	"github.com/luminance-clinic/backend-clinic/models"
	"github.com/luminance-clinic/backend-clinic/services"
)

type AppointmentHandler struct {
	supabase *supa.Client
	config   *config.Config
	cache    *services.Cache
	log      *logrus.Logger
}

func NewAppointmentHandler(supabase *supa.Client, cfg *config.Config, cache *services.Cache, log *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		supabase: supabase,
		config:   cfg,
		cache:    cache,
		log:      log,
	}
}

// CreateAppointment is the public booking form submit. It always creates
// the record in pending status with the doctor still unassigned.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
			Data:    models.ValidationDetails(err),
		})
		return
	}

	if problems := req.Validate(time.Now()); problems != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Validation failed",
			Data:    problems,
		})
		return
	}

	ctx := c.Request.Context()
	dedupKey := "booking:" + req.DedupKey()
	if !h.cache.Acquire(ctx, dedupKey, h.config.BookingDedupWindow) {
		c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Error:   "A matching appointment request was just submitted. Please wait before retrying.",
		})
		return
	}

	appointmentData := map[string]interface{}{
		"id":             uuid.New().String(),
		"patient_name":   req.PatientName(),
		"patient_email":  req.Email,
		"patient_phone":  req.Phone,
		"service":        req.Service,
		"doctor":         models.DoctorUnassigned,
		"preferred_date": req.PreferredDate,
		"preferred_time": req.PreferredTime,
		"message":        req.Message,
		"status":         models.StatusPending,
	}

	var created []models.Appointment
	data, _, err := h.supabase.From("appointments").
		Insert(appointmentData, false, "", "", "").
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &created)
	}

	if err != nil || len(created) == 0 {
		// Free the dedup slot so the visitor's retry is not rejected.
		h.cache.Release(ctx, dedupKey)
		h.log.WithError(err).Error("failed to create appointment")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to submit appointment request",
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Appointment request submitted successfully",
		Data:    created[0],
	})
}

// GetMyAppointments lists the authenticated customer's own requests.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	email, _ := c.Get("email")

	var appointments []models.Appointment
	data, _, err := h.supabase.From("appointments").
		Select("*", "", false).
		Eq("patient_email", email.(string)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &appointments)
	}

	if err != nil {
		h.log.WithError(err).Error("failed to fetch appointments")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch appointments",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    appointments,
	})
}

func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	status := c.Query("status")

	query := h.supabase.From("appointments").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})

	if status != "" {
		query = query.Eq("status", status)
	}

	var appointments []models.Appointment
	data, _, err := query.Execute()
	if err == nil {
		err = json.Unmarshal(data, &appointments)
	}

	if err != nil {
		h.log.WithError(err).Error("failed to fetch appointments")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch appointments",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    appointments,
	})
}

// UpdateAppointmentStatus moves an appointment along its lifecycle.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID := c.Param("id")

	var req models.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
			Data:    models.ValidationDetails(err),
		})
		return
	}

	if !models.IsAppointmentStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   fmt.Sprintf("Unknown status %q", req.Status),
		})
		return
	}

	var appointments []models.Appointment
	data, _, err := h.supabase.From("appointments").
		Select("*", "", false).
		Eq("id", appointmentID).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &appointments)
	}

	if err != nil || len(appointments) == 0 {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Appointment not found",
		})
		return
	}

	current := appointments[0]
	if !models.CanTransition(current.Status, req.Status) {
		c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Error:   fmt.Sprintf("Cannot move appointment from %s to %s", current.Status, req.Status),
		})
		return
	}

	updateData := map[string]interface{}{
		"status":     req.Status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	var updated []models.Appointment
	data, _, err = h.supabase.From("appointments").
		Update(updateData, "", "").
		Eq("id", appointmentID).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &updated)
	}

	if err != nil || len(updated) == 0 {
		h.log.WithError(err).WithField("appointment_id", appointmentID).Error("failed to update appointment status")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to update appointment",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Appointment updated successfully",
		Data:    updated[0],
	})
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	// Check existence first so a repeated delete is a clean 404.
	var rows []map[string]interface{}
	data, _, err := h.supabase.From("appointments").
		Select("id", "", false).
		Eq("id", appointmentID).
		Execute()
	if err != nil || json.Unmarshal(data, &rows) != nil || len(rows) == 0 {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Appointment not found",
		})
		return
	}

	if _, _, err := h.supabase.From("appointments").
		Delete("", "").
		Eq("id", appointmentID).
		Execute(); err != nil {
		h.log.WithError(err).WithField("appointment_id", appointmentID).Error("failed to delete appointment")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to delete appointment",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Appointment deleted successfully",
	})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"github.com/luminance-clinic/backend-clinic/config"
	"github.com/luminance-clinic/backend-clinic/models"
)

type DoctorHandler struct {
	supabase *supa.Client
	config   *config.Config
	log      *logrus.Logger
}

func NewDoctorHandler(supabase *supa.Client, cfg *config.Config, log *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{
		supabase: supabase,
		config:   cfg,
		log:      log,
	}
}

func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	data, _, err := h.supabase.From("doctors").
		Select("*", "", false).
		Eq("active", "true").
		Order("name", nil).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &doctors)
	}

	if err != nil {
		h.log.WithError(err).Error("failed to fetch doctors")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch doctors",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    doctors,
	})
}

func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctorID := c.Param("id")

	var doctors []models.Doctor
	data, _, err := h.supabase.From("doctors").
		Select("*", "", false).
		Eq("id", doctorID).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &doctors)
	}

	if err != nil || len(doctors) == 0 {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Doctor not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    doctors[0],
	})
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req models.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
			Data:    models.ValidationDetails(err),
		})
		return
	}

	record := req.ToRecord()
	record["id"] = uuid.New().String()

	var created []models.Doctor
	data, _, err := h.supabase.From("doctors").
		Insert(record, false, "", "", "").
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &created)
	}

	if err != nil || len(created) == 0 {
		h.log.WithError(err).Error("failed to create doctor")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to create doctor",
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Doctor created successfully",
		Data:    created[0],
	})
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var req models.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
			Data:    models.ValidationDetails(err),
		})
		return
	}

	var updated []models.Doctor
	data, _, err := h.supabase.From("doctors").
		Update(req.ToRecord(), "", "").
		Eq("id", doctorID).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &updated)
	}

	if err != nil {
		h.log.WithError(err).WithField("doctor_id", doctorID).Error("failed to update doctor")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to update doctor",
		})
		return
	}

	if len(updated) == 0 {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Doctor not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Doctor updated successfully",
		Data:    updated[0],
	})
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var rows []map[string]interface{}
	data, _, err := h.supabase.From("doctors").
		Select("id", "", false).
		Eq("id", doctorID).
		Execute()
	if err != nil || json.Unmarshal(data, &rows) != nil || len(rows) == 0 {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Doctor not found",
		})
		return
	}

	if _, _, err := h.supabase.From("doctors").
		Delete("", "").
		Eq("id", doctorID).
		Execute(); err != nil {
		h.log.WithError(err).WithField("doctor_id", doctorID).Error("failed to delete doctor")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to delete doctor",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Doctor deleted successfully",
	})
}

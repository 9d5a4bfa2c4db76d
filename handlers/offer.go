package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/luminance-clinic/backend-clinic/config"
	"github.com/luminance-clinic/backend-clinic/models"
)

type OfferHandler struct {
	supabase *supa.Client
	config   *config.Config
	log      *logrus.Logger
}

func NewOfferHandler(supabase *supa.Client, cfg *config.Config, log *logrus.Logger) *OfferHandler {
	return &OfferHandler{
		supabase: supabase,
		config:   cfg,
		log:      log,
	}
}

// GetActiveOffers is the public offers page: active rows only. Expiry of
// valid_until is display-side, not enforced here.
func (h *OfferHandler) GetActiveOffers(c *gin.Context) {
	var offers []models.Offer
	data, _, err := h.supabase.From("offers").
		Select("*", "", false).
		Eq("active", "true").
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &offers)
	}

	if err != nil {
		h.log.WithError(err).Error("failed to fetch offers")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch offers",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    offers,
	})
}

func (h *OfferHandler) GetAllOffers(c *gin.Context) {
	var offers []models.Offer
	data, _, err := h.supabase.From("offers").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &offers)
	}

	if err != nil {
		h.log.WithError(err).Error("failed to fetch offers")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to fetch offers",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Data:    offers,
	})
}

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var req models.OfferRequest
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

	var created []models.Offer
	data, _, err := h.supabase.From("offers").
		Insert(record, false, "", "", "").
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &created)
	}

	if err != nil || len(created) == 0 {
		h.log.WithError(err).Error("failed to create offer")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to create offer",
		})
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Offer created successfully",
		Data:    created[0],
	})
}

func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	offerID := c.Param("id")

	var req models.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Error:   "Invalid request body",
			Data:    models.ValidationDetails(err),
		})
		return
	}

	record := req.ToRecord()
	record["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	var updated []models.Offer
	data, _, err := h.supabase.From("offers").
		Update(record, "", "").
		Eq("id", offerID).
		Execute()
	if err == nil {
		err = json.Unmarshal(data, &updated)
	}

	if err != nil {
		h.log.WithError(err).WithField("offer_id", offerID).Error("failed to update offer")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to update offer",
		})
		return
	}

	if len(updated) == 0 {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Offer not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Offer updated successfully",
		Data:    updated[0],
	})
}

func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	offerID := c.Param("id")

	// Check existence first so a repeated delete is a clean 404.
	var rows []map[string]interface{}
	data, _, err := h.supabase.From("offers").
		Select("id", "", false).
		Eq("id", offerID).
		Execute()
	if err != nil || json.Unmarshal(data, &rows) != nil || len(rows) == 0 {
		c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Error:   "Offer not found",
		})
		return
	}

	if _, _, err := h.supabase.From("offers").
		Delete("", "").
		Eq("id", offerID).
		Execute(); err != nil {
		h.log.WithError(err).WithField("offer_id", offerID).Error("failed to delete offer")
		c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Error:   "Failed to delete offer",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Offer deleted successfully",
	})
}

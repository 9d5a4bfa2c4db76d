package models

import (
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// DoctorUnassigned is the placeholder doctor until an administrator
// assigns a real one.
const DoctorUnassigned = "To be assigned"

type Appointment struct {
	ID            string    `json:"id" db:"id"`
	PatientName   string    `json:"patient_name" db:"patient_name"`
	PatientEmail  string    `json:"patient_email" db:"patient_email"`
	PatientPhone  string    `json:"patient_phone" db:"patient_phone"`
	Service       string    `json:"service" db:"service"`
	Doctor        string    `json:"doctor" db:"doctor"`
	PreferredDate string    `json:"preferred_date" db:"preferred_date"`
	PreferredTime string    `json:"preferred_time" db:"preferred_time"`
	Message       string    `json:"message" db:"message"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// statusTransitions are the only edges an administrator may follow.
// Cancelled and completed are terminal.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

func IsAppointmentStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether a status change follows the lifecycle.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type CreateAppointmentRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Service       string `json:"service" binding:"required"`
	PreferredDate string `json:"preferred_date" binding:"required"`
	PreferredTime string `json:"preferred_time" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

// Validate applies the rules binding tags cannot express. The returned
// map is keyed by JSON field name; nil means the request is acceptable.
func (r *CreateAppointmentRequest) Validate(now time.Time) map[string]string {
	problems := make(map[string]string)

	if !IsService(r.Service) {
		problems["service"] = "please select a service"
	}
	if !IsTimeSlot(r.PreferredTime) {
		problems["preferred_time"] = "please select a valid time slot"
	}

	date, err := time.ParseInLocation("2006-01-02", r.PreferredDate, now.Location())
	if err != nil {
		problems["preferred_date"] = "must be a date in YYYY-MM-DD format"
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if date.Before(today) {
			problems["preferred_date"] = "must be today or later"
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}

// PatientName joins the form's split name fields into the stored shape.
func (r *CreateAppointmentRequest) PatientName() string {
	return strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName)
}

// DedupKey identifies a booking attempt for duplicate-submit detection:
// the same person asking for the same service at the same slot.
func (r *CreateAppointmentRequest) DedupKey() string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.Email)),
		r.Service,
		r.PreferredDate,
		r.PreferredTime,
	}, "|")
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

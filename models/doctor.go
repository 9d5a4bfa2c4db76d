package models

import "time"

// Doctor is practitioner reference data shown on the public site.
type Doctor struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Title          string    `json:"title" db:"title"`
	Specialties    []string  `json:"specialties" db:"specialties"`
	Experience     string    `json:"experience" db:"experience"`
	Education      []string  `json:"education" db:"education"`
	Certifications []string  `json:"certifications" db:"certifications"`
	Achievements   []string  `json:"achievements" db:"achievements"`
	Bio            string    `json:"bio" db:"bio"`
	Languages      []string  `json:"languages" db:"languages"`
	ImageURL       *string   `json:"image_url,omitempty" db:"image_url"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type DoctorRequest struct {
	Name           string   `json:"name" binding:"required"`
	Title          string   `json:"title" binding:"required"`
	Specialties    []string `json:"specialties" binding:"required,min=1"`
	Experience     string   `json:"experience"`
	Education      []string `json:"education"`
	Certifications []string `json:"certifications"`
	Achievements   []string `json:"achievements"`
	Bio            string   `json:"bio"`
	Languages      []string `json:"languages"`
	ImageURL       *string  `json:"image_url,omitempty"`
	Active         bool     `json:"active"`
}

func (r *DoctorRequest) ToRecord() map[string]interface{} {
	record := map[string]interface{}{
		"name":           r.Name,
		"title":          r.Title,
		"specialties":    r.Specialties,
		"experience":     r.Experience,
		"education":      r.Education,
		"certifications": r.Certifications,
		"achievements":   r.Achievements,
		"bio":            r.Bio,
		"languages":      r.Languages,
		"active":         r.Active,
	}
	if r.ImageURL != nil && *r.ImageURL != "" {
		record["image_url"] = *r.ImageURL
	}
	return record
}

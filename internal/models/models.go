package models

import (
	"time"
)

// User represents an authenticated user of the system.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// WorkExperience is one job entry extracted from a resume.
// A nil EndYear means the position is current.
type WorkExperience struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	StartYear int    `json:"start_year"`
	EndYear   *int   `json:"end_year"`
}

// Resume represents one parsed resume row.
// Skills and WorkExperience are stored as JSONB columns.
type Resume struct {
	ID                   string           `db:"id" json:"id"`
	UploadedBy           string           `db:"uploaded_by" json:"uploaded_by"`
	Filename             string           `db:"filename" json:"filename"`
	Name                 string           `db:"name" json:"name,omitempty"`
	Email                string           `db:"email" json:"email,omitempty"`
	Phone                string           `db:"phone" json:"phone,omitempty"`
	Linkedin             string           `db:"linkedin" json:"linkedin,omitempty"`
	Github               string           `db:"github" json:"github,omitempty"`
	Skills               []string         `db:"skills" json:"skills"`
	UGDegree             string           `db:"ug_degree" json:"ug_degree,omitempty"`
	UGCollege            string           `db:"ug_college" json:"ug_college,omitempty"`
	UGYear               *int             `db:"ug_year" json:"ug_year,omitempty"`
	PGDegree             string           `db:"pg_degree" json:"pg_degree,omitempty"`
	PGCollege            string           `db:"pg_college" json:"pg_college,omitempty"`
	PGYear               *int             `db:"pg_year" json:"pg_year,omitempty"`
	TotalExperienceYears string           `db:"total_experience_years" json:"total_experience_years,omitempty"`
	WorkExperience       []WorkExperience `db:"work_experience" json:"work_experience"`
	StorageURL           string           `db:"storage_url" json:"storage_url,omitempty"`
	ObjectKey            string           `db:"object_key" json:"-"`
	ContentType          string           `db:"content_type" json:"content_type,omitempty"`
	ContentHash          string           `db:"content_hash" json:"-"`
	CreatedAt            time.Time        `db:"created_at" json:"created_at"`
}

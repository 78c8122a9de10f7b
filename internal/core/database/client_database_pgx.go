package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/Resumely/internal/config"
	"github.com/markdave123-py/Resumely/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	const q = `
		INSERT INTO users (id, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
	`
	_, err := c.db.ExecContext(ctx, q,
		user.ID, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt)
	return err
}

func (c *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT id, email, password_hash, is_admin, created_at
		FROM users WHERE email = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertResume inserts a parsed resume or, when the same user re-uploads the
// same filename, replaces the previous parse.
func (c *DatabaseClient) UpsertResume(ctx context.Context, resume *models.Resume) error {
	if resume == nil {
		return errors.New("nil resume")
	}

	skills, err := json.Marshal(resume.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	workExp, err := json.Marshal(resume.WorkExperience)
	if err != nil {
		return fmt.Errorf("marshal work experience: %w", err)
	}

	const q = `
		INSERT INTO resumes
			(id, uploaded_by, filename, name, email, phone, linkedin, github,
			 skills, ug_degree, ug_college, ug_year, pg_degree, pg_college, pg_year,
			 total_experience_years, work_experience, storage_url, object_key,
			 content_type, content_hash, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8,
			 $9, $10, $11, $12, $13, $14, $15,
			 $16, $17, $18, $19, $20, $21, COALESCE($22, now()))
		ON CONFLICT (uploaded_by, filename) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			linkedin = EXCLUDED.linkedin,
			github = EXCLUDED.github,
			skills = EXCLUDED.skills,
			ug_degree = EXCLUDED.ug_degree,
			ug_college = EXCLUDED.ug_college,
			ug_year = EXCLUDED.ug_year,
			pg_degree = EXCLUDED.pg_degree,
			pg_college = EXCLUDED.pg_college,
			pg_year = EXCLUDED.pg_year,
			total_experience_years = EXCLUDED.total_experience_years,
			work_experience = EXCLUDED.work_experience,
			storage_url = EXCLUDED.storage_url,
			object_key = EXCLUDED.object_key,
			content_type = EXCLUDED.content_type,
			content_hash = EXCLUDED.content_hash
	`
	_, err = c.db.ExecContext(ctx, q,
		resume.ID, resume.UploadedBy, resume.Filename,
		nullable(resume.Name), nullable(resume.Email), nullable(resume.Phone),
		nullable(resume.Linkedin), nullable(resume.Github),
		skills,
		nullable(resume.UGDegree), nullable(resume.UGCollege), resume.UGYear,
		nullable(resume.PGDegree), nullable(resume.PGCollege), resume.PGYear,
		nullable(resume.TotalExperienceYears), workExp,
		nullable(resume.StorageURL), nullable(resume.ObjectKey),
		nullable(resume.ContentType), nullable(resume.ContentHash),
		resume.CreatedAt)
	return err
}

const resumeColumns = `
	id, uploaded_by, filename,
	COALESCE(name, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(linkedin, ''), COALESCE(github, ''),
	skills,
	COALESCE(ug_degree, ''), COALESCE(ug_college, ''), ug_year,
	COALESCE(pg_degree, ''), COALESCE(pg_college, ''), pg_year,
	COALESCE(total_experience_years, ''), work_experience,
	COALESCE(storage_url, ''), COALESCE(object_key, ''),
	COALESCE(content_type, ''), COALESCE(content_hash, ''),
	created_at`

func scanResume(row interface{ Scan(dest ...any) error }) (*models.Resume, error) {
	var r models.Resume
	var skills, workExp []byte
	err := row.Scan(
		&r.ID, &r.UploadedBy, &r.Filename,
		&r.Name, &r.Email, &r.Phone, &r.Linkedin, &r.Github,
		&skills,
		&r.UGDegree, &r.UGCollege, &r.UGYear,
		&r.PGDegree, &r.PGCollege, &r.PGYear,
		&r.TotalExperienceYears, &workExp,
		&r.StorageURL, &r.ObjectKey, &r.ContentType, &r.ContentHash,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Skills = []string{}
	if len(skills) > 0 {
		_ = json.Unmarshal(skills, &r.Skills)
	}
	r.WorkExperience = []models.WorkExperience{}
	if len(workExp) > 0 {
		_ = json.Unmarshal(workExp, &r.WorkExperience)
	}
	return &r, nil
}

func (c *DatabaseClient) GetResumeByID(ctx context.Context, id string) (*models.Resume, error) {
	q := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	r, err := scanResume(c.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// FindResumeByContentHash detects a re-upload of byte-identical content by
// the same user.
func (c *DatabaseClient) FindResumeByContentHash(ctx context.Context, userID, contentHash string) (*models.Resume, error) {
	q := `SELECT ` + resumeColumns + ` FROM resumes WHERE uploaded_by = $1 AND content_hash = $2 LIMIT 1`
	r, err := scanResume(c.db.QueryRowContext(ctx, q, userID, contentHash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

func (c *DatabaseClient) ListResumes(ctx context.Context) ([]models.Resume, error) {
	q := `SELECT ` + resumeColumns + ` FROM resumes ORDER BY created_at DESC`
	return c.queryResumes(ctx, q)
}

func (c *DatabaseClient) ListResumesByUser(ctx context.Context, userID string) ([]models.Resume, error) {
	q := `SELECT ` + resumeColumns + ` FROM resumes WHERE uploaded_by = $1 ORDER BY created_at DESC`
	return c.queryResumes(ctx, q, userID)
}

func (c *DatabaseClient) queryResumes(ctx context.Context, q string, args ...any) ([]models.Resume, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Resume
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// ListSkills returns every distinct skill string across all stored resumes.
func (c *DatabaseClient) ListSkills(ctx context.Context) ([]string, error) {
	const q = `
		SELECT DISTINCT skill
		FROM resumes, jsonb_array_elements_text(skills) AS skill
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// nullable maps "" to NULL so absent fields stay NULL in the row.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

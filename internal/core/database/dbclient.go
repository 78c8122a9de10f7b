package db

import (
	"context"

	"github.com/markdave123-py/Resumely/internal/models"
)

// DbClient defines all persistence operations the handlers need.
// It abstracts Postgres so higher layers never depend on a specific DB.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	UpsertResume(ctx context.Context, resume *models.Resume) error
	GetResumeByID(ctx context.Context, id string) (*models.Resume, error)
	FindResumeByContentHash(ctx context.Context, userID, contentHash string) (*models.Resume, error)
	ListResumes(ctx context.Context) ([]models.Resume, error)
	ListResumesByUser(ctx context.Context, userID string) ([]models.Resume, error)
	ListSkills(ctx context.Context) ([]string, error)

	Close() error
}

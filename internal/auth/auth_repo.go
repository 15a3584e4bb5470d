package auth

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	// Create exists for the out-of-band seed command only; the API never
	// writes credentials.
	Create(ctx context.Context, cred *Credential) error
	MaxSequenceID(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*Credential, error) {
	var cred Credential
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&cred).Error
	return &cred, err
}

func (r *repository) Create(ctx context.Context, cred *Credential) error {
	return r.db.WithContext(ctx).Create(cred).Error
}

func (r *repository) MaxSequenceID(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).
		Model(&Credential{}).
		Select("COALESCE(MAX(sequence_id), 0)").
		Scan(&max).Error
	return max, err
}

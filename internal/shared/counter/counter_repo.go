package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// SequenceCounter backs the monotonic id sequences. Values only ever
// grow, so ids are never reused after a delete.
type SequenceCounter struct {
	Name      string `gorm:"primaryKey;type:varchar(64)"`
	LastValue int64
	UpdatedAt time.Time
}

func (SequenceCounter) TableName() string {
	return "sequence_counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	NextValue(ctx context.Context, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// NextValue increments and returns the named sequence in a single atomic
// UPSERT, so concurrent callers can never observe the same value.
func (r *repository) NextValue(ctx context.Context, name string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (name, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (name) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, name).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

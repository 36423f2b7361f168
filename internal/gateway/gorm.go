package gateway

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one stored collection in the kv_entries table
type Entry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:64"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for Entry
func (Entry) TableName() string {
	return "kv_entries"
}

// GormGateway stores collections in a single SQL table through gorm.
// It works with both the sqlite and postgres dialectors.
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway wraps db. The kv_entries table must already exist, see database.RunMigrations.
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

func (g *GormGateway) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	err := g.db.WithContext(ctx).First(&e, "entry_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMissing
	}
	if err != nil {
		return nil, err
	}
	return []byte(e.Value), nil
}

func (g *GormGateway) Put(ctx context.Context, key string, value []byte) error {
	e := Entry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (g *GormGateway) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Delete(&Entry{}, "entry_key = ?", key).Error
}

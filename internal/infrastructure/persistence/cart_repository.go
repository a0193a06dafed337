package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vapeshop/storefront/internal/domain/cart"
)

// CartSnapshot is the stored form of a cart, keyed by its logical name
// The payload holds only (productID, flavorID, quantity) triples; product
// details re-resolve from the catalog on load
type CartSnapshot struct {
	Key       string `gorm:"primaryKey;type:varchar(100)"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}

// GormCartRepository implements cart.Repository using GORM over SQLite
type GormCartRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB, logger *zap.Logger) *GormCartRepository {
	return &GormCartRepository{db: db, logger: logger}
}

// Load returns the persisted cart for the key, or an empty cart when no
// snapshot exists. A payload that fails to parse is discarded and the
// session starts empty; a broken snapshot must never break the session.
func (r *GormCartRepository) Load(ctx context.Context, key string) (cart.Cart, error) {
	var snapshot CartSnapshot
	if err := r.db.WithContext(ctx).First(&snapshot, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.New(), nil
		}
		return cart.New(), err
	}

	var lines []cart.Line
	if err := json.Unmarshal([]byte(snapshot.Payload), &lines); err != nil {
		r.logger.Warn("discarding malformed cart snapshot",
			zap.String("key", key),
			zap.Error(err))
		return cart.New(), nil
	}

	return cart.NewFromLines(lines), nil
}

// Save upserts the cart snapshot for the key
func (r *GormCartRepository) Save(ctx context.Context, key string, c cart.Cart) error {
	payload, err := json.Marshal(c.Lines())
	if err != nil {
		return err
	}

	snapshot := CartSnapshot{
		Key:       key,
		Payload:   string(payload),
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snapshot).Error
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PushSubscription is one browser subscription as recorded by the endpoint.
type PushSubscription struct {
	Endpoint  string `gorm:"column:endpoint;primaryKey"`
	P256dh    string `gorm:"column:p256dh"`
	Auth      string `gorm:"column:auth"`
	Browser   string `gorm:"column:browser"`
	Group     string `gorm:"column:group_name;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SubscriptionStore struct {
	db        *gorm.DB
	tableName string
}

func NewSubscriptionStore(db *gorm.DB, tableName string) *SubscriptionStore {
	if tableName == "" {
		tableName = "push_subscriptions"
	}
	return &SubscriptionStore{
		db:        db,
		tableName: tableName,
	}
}

// Migrate creates or updates the subscriptions table.
func (s *SubscriptionStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).Table(s.tableName).AutoMigrate(&PushSubscription{})
}

// Save upserts a subscription keyed by its endpoint. Re-subscribing the same
// browser refreshes keys, browser and group.
func (s *SubscriptionStore) Save(ctx context.Context, sub PushSubscription) error {
	now := time.Now().UTC()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now
	return s.db.WithContext(ctx).Table(s.tableName).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "browser", "group_name", "updated_at"}),
		}).Create(&sub).Error
}

// Delete removes the subscription for endpoint and reports whether a row
// existed.
func (s *SubscriptionStore) Delete(ctx context.Context, endpoint string) (bool, error) {
	res := s.db.WithContext(ctx).Table(s.tableName).
		Where("endpoint = ?", endpoint).
		Delete(&PushSubscription{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountByGroup returns how many subscriptions are stored for group.
func (s *SubscriptionStore) CountByGroup(ctx context.Context, group string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Table(s.tableName).
		Where("group_name = ?", group).
		Count(&count).Error
	return count, err
}

package model

import "time"

// KeyValueEntry is one persisted engagement value.
type KeyValueEntry struct {
	Namespace string    `gorm:"primaryKey;size:128"`
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name.
func (KeyValueEntry) TableName() string {
	return "engagement_kv"
}

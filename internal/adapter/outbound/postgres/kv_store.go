package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/bloomcycle/engagement/internal/model"
	"github.com/bloomcycle/engagement/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvStore implements outbound.KeyValuePort on the engagement_kv table.
type kvStore struct {
	db        *gorm.DB
	namespace string
}

// NewKeyValueStore creates a Postgres-backed key-value store scoped to namespace.
func NewKeyValueStore(db *gorm.DB, namespace string) outbound.KeyValuePort {
	return &kvStore{db: db, namespace: namespace}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, error) {
	var entry model.KeyValueEntry
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", outbound.ErrKeyNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	entry := &model.KeyValueEntry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(upsertClause()).Create(entry).Error
}

// upsertClause overwrites the value of an existing (namespace, key) row.
func upsertClause() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}
}

// Compile-time check
var _ outbound.KeyValuePort = (*kvStore)(nil)

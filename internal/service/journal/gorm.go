package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meltyapp/backend/internal/model/journal"
)

// GormStore 用 journal_entries 表持久化日记。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection as a journal Store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, entry journal.Entry) (journal.Entry, error) {
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return journal.Entry{}, fmt.Errorf("create journal entry: %w", err)
	}
	return entry, nil
}

func (s *GormStore) List(ctx context.Context, userID string) ([]journal.Entry, error) {
	var entries []journal.Entry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

func (s *GormStore) Delete(ctx context.Context, userID, entryID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&journal.Entry{})
	if res.Error != nil {
		return fmt.Errorf("delete journal entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

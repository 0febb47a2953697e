package journal

import (
	"context"
	"errors"

	"github.com/meltyapp/backend/internal/model/journal"
)

var ErrEntryNotFound = errors.New("journal entry not found")

// Store persists journal entries per user.
type Store interface {
	Create(ctx context.Context, entry journal.Entry) (journal.Entry, error)
	List(ctx context.Context, userID string) ([]journal.Entry, error)
	Delete(ctx context.Context, userID, entryID string) error
}

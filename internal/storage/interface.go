package storage

import (
	"context"
	"errors"

	"github.com/yourname/timebalance/internal"
)

var (
	ErrNotFound        = errors.New("storage: document not found")
	ErrCorruptDocument = errors.New("storage: corrupt document")
)

// DocumentStore persists one document per user. Set replaces the whole
// document; there is no partial update.
type DocumentStore interface {
	Get(ctx context.Context, userKey string) (*internal.UserDocument, error)
	Set(ctx context.Context, userKey string, doc *internal.UserDocument) error
	Close() error
}

// UserKey scopes a user's document inside a shared store.
func UserKey(userID string) string {
	return "tb_data_" + userID
}

package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/models"
)

// SystemKVEntry is a system-level key-value pair stored in BadgerDB.
type SystemKVEntry struct {
	Key   string `badgerhold:"key"`
	Value string
}

// InternalStorage holds underwriter accounts, per-user config, and system KV
// in one badger store, separate from submission data.
type InternalStorage struct {
	store  *Store
	logger *common.Logger
}

var _ interfaces.InternalStore = (*InternalStorage)(nil)

// NewInternalStorage creates a new InternalStore backed by BadgerHold.
func NewInternalStorage(store *Store, logger *common.Logger) *InternalStorage {
	return &InternalStorage{store: store, logger: logger}
}

func (s *InternalStorage) GetUser(_ context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.store.db.Get(username, &user)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("user '%s' not found", username)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", username, err)
	}
	return &user, nil
}

func (s *InternalStorage) SaveUser(_ context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.UpdatedAt
	}
	if user.Role == "" {
		user.Role = models.RoleUnderwriter
	}

	if err := s.store.db.Upsert(user.Username, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	s.logger.Debug().Str("username", user.Username).Str("role", user.Role).Msg("User saved")
	return nil
}

func (s *InternalStorage) DeleteUser(_ context.Context, username string) error {
	err := s.store.db.Delete(username, models.User{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete user '%s': %w", username, err)
	}
	return nil
}

func (s *InternalStorage) ListUsers(_ context.Context) ([]string, error) {
	var users []models.User
	if err := s.store.db.Find(&users, nil); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names, nil
}

func (s *InternalStorage) GetUserKV(_ context.Context, userID, key string) (*models.UserKeyValue, error) {
	var entry models.UserKeyValue
	err := s.store.db.Get(userID+"/"+key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("key '%s' not found for user '%s'", key, userID)
		}
		return nil, fmt.Errorf("failed to get key '%s' for user '%s': %w", key, userID, err)
	}
	return &entry, nil
}

func (s *InternalStorage) SetUserKV(_ context.Context, userID, key, value string) error {
	entry := models.UserKeyValue{
		ID:        userID + "/" + key,
		UserID:    userID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := s.store.db.Upsert(entry.ID, &entry); err != nil {
		return fmt.Errorf("failed to set key '%s' for user '%s': %w", key, userID, err)
	}
	return nil
}

func (s *InternalStorage) DeleteUserKV(_ context.Context, userID, key string) error {
	err := s.store.db.Delete(userID+"/"+key, models.UserKeyValue{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete key '%s' for user '%s': %w", key, userID, err)
	}
	return nil
}

func (s *InternalStorage) ListUserKV(_ context.Context, userID string) ([]*models.UserKeyValue, error) {
	var entries []models.UserKeyValue
	query := badgerhold.Where("UserID").Eq(userID).Index("UserID")
	if err := s.store.db.Find(&entries, query); err != nil {
		return nil, fmt.Errorf("failed to list keys for user '%s': %w", userID, err)
	}
	out := make([]*models.UserKeyValue, len(entries))
	for i := range entries {
		out[i] = &entries[i]
	}
	return out, nil
}

func (s *InternalStorage) GetSystemKV(_ context.Context, key string) (string, error) {
	var entry SystemKVEntry
	err := s.store.db.Get(key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return "", fmt.Errorf("key '%s' not found", key)
		}
		return "", fmt.Errorf("failed to get key '%s': %w", key, err)
	}
	return entry.Value, nil
}

func (s *InternalStorage) SetSystemKV(_ context.Context, key, value string) error {
	entry := SystemKVEntry{Key: key, Value: value}
	if err := s.store.db.Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	return nil
}

func (s *InternalStorage) Close() error {
	return s.store.Close()
}

package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
)

// ErrNoRemoteStore is returned by operations that cannot run without a remote store
var ErrNoRemoteStore = errors.New("remote store not configured")

// LoadSession reads the persisted session and its token
func LoadSession(storage port.KeyValueStore) (*entity.Session, error) {
	raw, ok, err := storage.GetItem(entity.StorageKeyUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok || raw == "" {
		return nil, entity.ErrNoSession
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if token, ok, err := storage.GetItem(entity.StorageKeyJWT); err == nil && ok {
		session.JWT = token
	}
	return &session, nil
}

// saveSession persists the user record; the token lives under its own key
func saveSession(storage port.KeyValueStore, session *entity.Session) error {
	record := *session
	record.JWT = ""
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := storage.SetItem(entity.StorageKeyUser, string(data)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

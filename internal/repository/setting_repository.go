package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/model"
)

// SettingRepository provides data access methods for the system_setting
// table. Provider API keys live here fernet-encrypted; the repository
// itself stores values verbatim.
type SettingRepository struct {
	q querier
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{q: db}
}

// Get retrieves one setting by key.
func (r *SettingRepository) Get(key string) (model.SystemSetting, error) {
	query := `SELECT id, "key", value, updated_at FROM system_setting WHERE "key" = ?`

	var s model.SystemSetting
	var updatedAt sql.NullString

	err := r.q.QueryRow(query, key).Scan(&s.ID, &s.Key, &s.Value, &updatedAt)
	if err == sql.ErrNoRows {
		return model.SystemSetting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.SystemSetting{}, fmt.Errorf("failed to query system_setting: %w", err)
	}

	if updatedAt.Valid {
		s.UpdatedAt, err = ParseTime(updatedAt.String)
		if err != nil {
			return model.SystemSetting{}, err
		}
	}

	return s, nil
}

// Upsert stores a setting value, replacing any existing row for the key.
func (r *SettingRepository) Upsert(key, value string) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.q.Exec(query, uuid.NewString(), key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}

	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/forgo/community/api/internal/database"
)

// SettingsRepository stores site-wide flags keyed by name
type SettingsRepository struct {
	db database.Database
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db database.Database) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetBool returns the stored flag and whether it has ever been set
func (r *SettingsRepository) GetBool(ctx context.Context, key string) (bool, bool, error) {
	result, err := r.db.QueryOne(ctx, `SELECT * FROM type::thing("setting", $key)`, map[string]interface{}{"key": key})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, false, nil
		}
		return false, false, err
	}

	row := singleRow(result)
	if row == nil {
		return false, false, nil
	}
	v, ok := row["bool_value"].(bool)
	return v, ok, nil
}

// SetBool stores a flag
func (r *SettingsRepository) SetBool(ctx context.Context, key string, value bool) error {
	query := `UPSERT type::thing("setting", $key) SET bool_value = $value, updated_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{
		"key":   key,
		"value": value,
	})
}

// ToggleBool flips a flag in a single statement. An unset flag starts from def.
func (r *SettingsRepository) ToggleBool(ctx context.Context, key string, def bool) (bool, error) {
	query := `
		UPSERT type::thing("setting", $key) SET
			bool_value = !(IF bool_value = NONE THEN $default ELSE bool_value END),
			updated_on = time::now()
		RETURN AFTER
	`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{
		"key":     key,
		"default": def,
	})
	if err != nil {
		return false, err
	}

	row := singleRow(result)
	if row == nil {
		return false, database.ErrQuery
	}
	return getBool(row, "bool_value"), nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
)

// UserRepository handles account data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new account under the id issued by the service
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE type::thing("user", $id) CONTENT {
			email: $email,
			name: $name,
			hash: $hash,
			profile_picture: $profile_picture,
			bio: $bio,
			banner_url: $banner_url,
			is_admin: $is_admin,
			is_banned: $is_banned,
			ban_reason: $ban_reason,
			temp_banned_until: $temp_banned_until,
			discord_id: $discord_id,
			username: $username,
			created_on: $created_on,
			updated_on: $updated_on
		}
	`

	vars := userVars(user)
	vars["created_on"] = dateTime(user.CreatedAt)

	if _, err := r.db.Query(ctx, query, vars); err != nil {
		if errors.Is(err, database.ErrDuplicate) || isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}
	return nil
}

// GetByID retrieves an account by ID. A missing account is (nil, nil).
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::thing("user", $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserResult(result)
}

// GetByEmail retrieves an account by email, ignoring case
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email_lower = string::lowercase($email) LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserResult(result)
}

// Update replaces every mutable field of an account
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE type::thing("user", $id) SET
			email = $email,
			name = $name,
			hash = $hash,
			profile_picture = $profile_picture,
			bio = $bio,
			banner_url = $banner_url,
			is_admin = $is_admin,
			is_banned = $is_banned,
			ban_reason = $ban_reason,
			temp_banned_until = $temp_banned_until,
			discord_id = $discord_id,
			username = $username,
			updated_on = $updated_on
	`

	result, err := r.db.Query(ctx, query, userVars(user))
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) || isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}
	if len(rowsOf(result)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// ClearLapsedTempBans clears lapsed tempbans in one conditional update.
// A permanent ban keeps its reason.
func (r *UserRepository) ClearLapsedTempBans(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE user SET
			temp_banned_until = NONE,
			ban_reason = IF is_banned THEN ban_reason ELSE NONE END,
			updated_on = $now
		WHERE type::is::datetime(temp_banned_until) AND temp_banned_until <= $now
		RETURN id
	`
	vars := map[string]interface{}{"now": dateTime(now)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, err
	}
	return len(rowsOf(result)), nil
}

// List returns every account, oldest first
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM user ORDER BY created_on ASC`, nil)
	if err != nil {
		return nil, err
	}

	rows := rowsOf(result)
	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, parseUserRow(row))
	}
	return users, nil
}

// Helper functions

func userVars(user *model.User) map[string]interface{} {
	return map[string]interface{}{
		"id":                user.ID,
		"email":             user.Email,
		"name":              user.Name,
		"hash":              ptrToNone(user.Hash),
		"profile_picture":   ptrToNone(user.ProfilePicture),
		"bio":               ptrToNone(user.Bio),
		"banner_url":        ptrToNone(user.BannerURL),
		"is_admin":          user.IsAdmin,
		"is_banned":         user.IsBanned,
		"ban_reason":        ptrToNone(user.BanReason),
		"temp_banned_until": dateTimePtr(user.TempBannedUntil),
		"discord_id":        ptrToNone(user.DiscordID),
		"username":          ptrToNone(user.Username),
		"updated_on":        dateTime(user.UpdatedAt),
	}
}

func parseUserResult(result interface{}) (*model.User, error) {
	// Navigate through SurrealDB response structure
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			result = resp["result"]
		}
	}

	row := singleRow(result)
	if row == nil {
		return nil, nil
	}
	return parseUserRow(row), nil
}

func parseUserRow(m map[string]interface{}) *model.User {
	user := &model.User{
		ID:              recordKey(m["id"]),
		Email:           getString(m, "email"),
		Name:            getString(m, "name"),
		Hash:            getStringPtr(m, "hash"),
		ProfilePicture:  getStringPtr(m, "profile_picture"),
		Bio:             getStringPtr(m, "bio"),
		BannerURL:       getStringPtr(m, "banner_url"),
		IsAdmin:         getBool(m, "is_admin"),
		IsBanned:        getBool(m, "is_banned"),
		BanReason:       getStringPtr(m, "ban_reason"),
		TempBannedUntil: getTime(m, "temp_banned_until"),
		DiscordID:       getStringPtr(m, "discord_id"),
		Username:        getStringPtr(m, "username"),
		CreatedAt:       parseTime(m["created_on"]),
		UpdatedAt:       parseTime(m["updated_on"]),
	}
	return user
}

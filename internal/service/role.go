package service

import (
	"strings"
	"time"

	"github.com/forgo/community/api/internal/model"
	"github.com/google/uuid"
)

// Administrator allow-list. Matching either value grants the admin role.
const (
	AdminEmail           = "zshihadeh671@gmail.com"
	AdminDiscordUsername = "zaidshihadehgaming"
)

// ClassifyRole derives the role an identity is entitled to from the
// allow-list. Comparison is case-insensitive.
func ClassifyRole(id model.Identity) model.UserRole {
	if id.Email != "" && strings.EqualFold(strings.TrimSpace(id.Email), AdminEmail) {
		return model.UserRoleAdmin
	}
	if id.Username != "" && strings.EqualFold(strings.TrimSpace(id.Username), AdminDiscordUsername) {
		return model.UserRoleAdmin
	}
	return model.UserRoleUser
}

// identityOf returns the role-deciding fields of an account
func identityOf(u *model.User) model.Identity {
	id := model.Identity{Email: u.Email}
	if u.Username != nil {
		id.Username = *u.Username
	}
	return id
}

// promoteIfAllowListed raises the stored role when the identity is
// allow-listed. It never demotes. Reports whether the account changed.
func promoteIfAllowListed(u *model.User) bool {
	if u.IsAdmin {
		return false
	}
	if ClassifyRole(identityOf(u)) == model.UserRoleAdmin {
		u.IsAdmin = true
		return true
	}
	return false
}

// newID returns a fresh record id with the given table prefix
func newID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func defaultClock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/forgo/community/api/internal/model"
)

// KickRepository stores kick tombstones.
// Kick removes the account and writes the record as one atomic step.
type KickRepository interface {
	Kick(ctx context.Context, userID string, record *model.KickRecord) error
	List(ctx context.Context) ([]*model.KickRecord, error)
}

// AccountService handles profile edits and administrator account management
type AccountService struct {
	userRepo UserRepository
	kickRepo KickRepository
	hub      *EventHub
	now      func() time.Time
}

// AccountServiceConfig holds configuration for the account service
type AccountServiceConfig struct {
	UserRepo UserRepository
	KickRepo KickRepository
	Hub      *EventHub
	Now      func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(cfg AccountServiceConfig) *AccountService {
	return &AccountService{
		userRepo: cfg.UserRepo,
		kickRepo: cfg.KickRepo,
		hub:      cfg.Hub,
		now:      defaultClock(cfg.Now),
	}
}

// List returns every account
func (s *AccountService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// ListKicks returns the kick audit trail
func (s *AccountService) ListKicks(ctx context.Context) ([]*model.KickRecord, error) {
	return s.kickRepo.List(ctx)
}

// UpdateProfile applies the supplied fields and leaves the rest untouched.
// An empty optional field clears it.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrMissingFields
		}
		if len(name) > model.MaxTitleLength {
			return nil, ErrFieldTooLong
		}
		user.Name = name
	}
	if req.Bio != nil {
		if len(*req.Bio) > model.MaxDescriptionLength {
			return nil, ErrFieldTooLong
		}
		user.Bio = stringPtr(*req.Bio)
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = stringPtr(strings.TrimSpace(*req.ProfilePicture))
	}
	if req.BannerURL != nil {
		user.BannerURL = stringPtr(strings.TrimSpace(*req.BannerURL))
	}

	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ApplyAction bans, unbans, tempbans or kicks an account on behalf of actorID
func (s *AccountService) ApplyAction(ctx context.Context, actorID string, req model.UserActionRequest) (*model.UserActionResult, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || req.Action == "" {
		return nil, ErrMissingFields
	}
	action := model.UserAction(strings.ToLower(strings.TrimSpace(req.Action)))
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}

	var hours int
	if action == model.UserActionTempban {
		var ok bool
		if hours, ok = req.DurationHours(); !ok {
			return nil, ErrInvalidDuration
		}
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	if target.ID == actorID {
		return nil, ErrCannotSanctionSelf
	}
	if target.IsAdmin {
		return nil, ErrCannotSanctionAdmin
	}

	reason := ""
	if req.Reason != nil {
		reason = strings.TrimSpace(*req.Reason)
	}
	now := s.now()

	if action == model.UserActionKick {
		record := &model.KickRecord{
			ID:       newID("kick"),
			UserID:   target.ID,
			Email:    target.Email,
			Name:     target.Name,
			Reason:   reason,
			KickedBy: actorID,
			KickedAt: now,
		}
		if err := s.kickRepo.Kick(ctx, target.ID, record); err != nil {
			return nil, err
		}
		slog.Info("account kicked",
			slog.String("user_id", target.ID),
			slog.String("actor_id", actorID),
		)
		s.hub.emit(HubUserKicked, actorID, record, now)
		return &model.UserActionResult{Action: action, Kick: record}, nil
	}

	var eventType HubEventType
	switch action {
	case model.UserActionBan:
		target.IsBanned = true
		target.BanReason = stringPtr(reason)
		eventType = HubUserBanned
	case model.UserActionUnban:
		target.IsBanned = false
		target.TempBannedUntil = nil
		target.BanReason = nil
		eventType = HubUserUnbanned
	case model.UserActionTempban:
		until := now.Add(time.Duration(hours) * time.Hour)
		target.TempBannedUntil = &until
		target.BanReason = stringPtr(reason)
		eventType = HubUserTempbanned
	}

	target.UpdatedAt = now
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	slog.Info("account sanctioned",
		slog.String("action", string(action)),
		slog.String("user_id", target.ID),
		slog.String("actor_id", actorID),
	)
	s.hub.emit(eventType, actorID, map[string]interface{}{
		"userId":          target.ID,
		"name":            target.Name,
		"reason":          reason,
		"tempBannedUntil": target.TempBannedUntil,
	}, now)
	return &model.UserActionResult{Action: action, User: target}, nil
}

// SetRole grants or revokes the administrator role. An actor cannot
// revoke their own role.
func (s *AccountService) SetRole(ctx context.Context, actorID string, req model.SetRoleRequest) (*model.User, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrMissingFields
	}
	if userID == actorID && !req.IsAdmin {
		return nil, ErrCannotDemoteSelf
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsAdmin == req.IsAdmin {
		return user, nil
	}

	user.IsAdmin = req.IsAdmin
	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("role changed",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role())),
		slog.String("actor_id", actorID),
	)
	return user, nil
}

// ClearExpiredTempBans resets tempBannedUntil on accounts whose window has
// closed. Returns the number of accounts updated. Only the tempban fields are
// written, so a ban or edit applied meanwhile is kept.
func (s *AccountService) ClearExpiredTempBans(ctx context.Context) (int, error) {
	return s.userRepo.ClearLapsedTempBans(ctx, s.now())
}

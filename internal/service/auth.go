package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// bcrypt ignores input past 72 bytes
	maxPasswordLength = 72
)

// Seeded demo account
const (
	TestAccountEmail    = "test123@gmail.com"
	TestAccountPassword = "Test123"
	TestAccountName     = "Test Account"
)

// UserRepository defines the interface for account storage.
// Lookups return (nil, nil) when no account matches.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]*model.User, error)
	// ClearLapsedTempBans drops tempBannedUntil where it is at or before now,
	// in place, and returns how many accounts changed
	ClearLapsedTempBans(ctx context.Context, now time.Time) (int, error)
}

// AuthService handles sign-up, sign-in and session resolution
type AuthService struct {
	userRepo     UserRepository
	tokenService *TokenService
	bcryptCost   int
	autoRegister bool
	testAccount  bool
	now          func() time.Time
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
	// BcryptCost defaults to 12
	BcryptCost int
	// AutoRegister creates an account on first sign-in for an unknown email
	AutoRegister bool
	// TestAccount enables the seeded demo account and its fixed password
	TestAccount bool
	Now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcryptCost
	}
	return &AuthService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
		bcryptCost:   cfg.BcryptCost,
		autoRegister: cfg.AutoRegister,
		testAccount:  cfg.TestAccount,
		now:          defaultClock(cfg.Now),
	}
}

// SeedTestAccount creates the demo account when it does not exist yet
func (s *AuthService) SeedTestAccount(ctx context.Context) error {
	if !s.testAccount {
		return nil
	}
	existing, err := s.userRepo.GetByEmail(ctx, TestAccountEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.createAccount(ctx, TestAccountEmail, TestAccountPassword, TestAccountName)
	if errors.Is(err, ErrEmailAlreadyExists) {
		return nil
	}
	return err
}

// SignUp registers a new email/password account
func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.AuthResult, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		return nil, ErrMissingFields
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	user, err := s.createAccount(ctx, email, req.Password, name)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// SignIn authenticates with email/password. Unknown emails are registered
// on the spot when auto-registration is enabled.
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (*model.AuthResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	isTest := s.testAccount && email == TestAccountEmail
	if isTest && req.Password != TestAccountPassword {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		if !s.autoRegister && !isTest {
			return nil, ErrInvalidCredentials
		}
		if !isValidEmail(email) {
			return nil, ErrInvalidEmail
		}
		if err := validatePassword(req.Password); err != nil {
			return nil, err
		}
		name := localPart(email)
		if isTest {
			name = TestAccountName
		}
		user, err = s.createAccount(ctx, email, req.Password, name)
		if err != nil {
			return nil, err
		}
	} else {
		if !user.HasPassword() || !checkPassword(req.Password, *user.Hash) {
			return nil, ErrInvalidCredentials
		}
		if promoteIfAllowListed(user) {
			user.UpdatedAt = s.now()
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	if err := s.checkBan(user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// DiscordSync creates or merges an account from an identity resolved by
// the external OAuth provider and returns a fresh credential for it
func (s *AuthService) DiscordSync(ctx context.Context, req model.DiscordSyncRequest) (*model.AuthResult, error) {
	id := strings.TrimSpace(req.ID)
	var user *model.User
	var err error

	if id != "" {
		user, err = s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	// Accounts merge on id only; an email held by another account is a conflict
	email := normalizeEmail(req.Email)

	now := s.now()
	if user == nil {
		if id == "" {
			id = newID("user")
		}
		if email == "" {
			email = normalizeEmail(firstNonEmpty(req.Username, req.Name, "user") + "@example.com")
		}
		user = &model.User{
			ID:             id,
			Email:          email,
			Name:           firstNonEmpty(req.Name, req.Username, model.DefaultCredit),
			ProfilePicture: stringPtr(req.ProfilePicture),
			DiscordID:      stringPtr(req.DiscordID),
			Username:       stringPtr(req.Username),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		user.IsAdmin = ClassifyRole(identityOf(user)) == model.UserRoleAdmin
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return nil, ErrEmailAlreadyExists
			}
			return nil, err
		}
	} else {
		if email != "" {
			user.Email = email
		}
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.ProfilePicture != "" {
			user.ProfilePicture = stringPtr(req.ProfilePicture)
		}
		if req.DiscordID != "" {
			user.DiscordID = stringPtr(req.DiscordID)
		}
		if req.Username != "" {
			user.Username = stringPtr(req.Username)
		}
		promoteIfAllowListed(user)
		user.UpdatedAt = now
		if err := s.userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return nil, ErrEmailAlreadyExists
			}
			return nil, err
		}
	}

	if err := s.checkBan(user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// ResolveSession turns a bearer credential into the live account it binds
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.tokenService.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// GetUserByID retrieves an account by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// StartEmailChange checks that newEmail is usable. Verification codes are
// delivered by the external identity platform.
func (s *AuthService) StartEmailChange(ctx context.Context, userID, newEmail string) error {
	email := normalizeEmail(newEmail)
	if email == "" {
		return ErrNewEmailRequired
	}
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.ensureEmailFree(ctx, userID, email); err != nil {
		return err
	}
	slog.Info("email change requested", slog.String("user_id", userID))
	return nil
}

// ChangeEmail moves the account to newEmail
func (s *AuthService) ChangeEmail(ctx context.Context, userID string, req model.ChangeEmailRequest) (*model.User, error) {
	email := normalizeEmail(req.NewEmail)
	if email == "" {
		return nil, ErrNewEmailRequired
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, userID, email); err != nil {
		return nil, err
	}
	// An unverified change must not claim the allow-listed address
	if !user.IsAdmin && ClassifyRole(model.Identity{Email: email}) == model.UserRoleAdmin {
		return nil, ErrForbidden
	}

	user.Email = email
	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ensureEmailFree(ctx context.Context, userID, email string) error {
	other, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != userID {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *AuthService) createAccount(ctx context.Context, email, password, name string) (*model.User, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &model.User{
		ID:        newID("user"),
		Email:     email,
		Name:      name,
		Hash:      &hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.IsAdmin = ClassifyRole(identityOf(user)) == model.UserRoleAdmin

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) checkBan(user *model.User) error {
	now := s.now()
	if !user.EffectiveBanned(now) {
		return nil
	}
	if user.IsBanned {
		reason := derefString(user.BanReason)
		if reason == "" {
			reason = model.DefaultBanReason
		}
		return &BannedError{Reason: reason}
	}
	until := *user.TempBannedUntil
	reason := fmt.Sprintf("Temporarily banned until %s", until.UTC().Format(time.RFC3339))
	if r := derefString(user.BanReason); r != "" {
		reason += ": " + r
	}
	return &BannedError{Reason: reason, Until: &until}
}

func (s *AuthService) issue(user *model.User) (*model.AuthResult, error) {
	token, err := s.tokenService.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &model.AuthResult{User: user, Token: token}, nil
}

// Helper functions

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrMissingFields
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

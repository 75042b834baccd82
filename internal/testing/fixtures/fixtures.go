// Package fixtures provides test data factories for repository and
// acceptance tests.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories write through the storage
// interfaces, so the same fixtures serve the memory store and SurrealDB.
//
// Usage:
//
//	f := fixtures.New(fixtures.Stores{Users: users, Media: media})
//	user := f.CreateUser(t)
//	admin := f.CreateUser(t, fixtures.WithAdmin())
//	item := f.CreateMedia(t, user, model.MediaStatusApproved)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password given to every fixture account
const DefaultPassword = "testpass123"

// Stores are the repositories the factory writes through. Nil stores are
// only a problem for the factory methods that need them.
type Stores struct {
	Users  service.UserRepository
	Media  service.MediaRepository
	Events service.EventRepository
}

// Factory creates test entities
type Factory struct {
	stores Stores
	now    time.Time
}

// New creates a new fixture factory
func New(stores Stores) *Factory {
	return &Factory{stores: stores, now: time.Now().UTC().Truncate(time.Millisecond)}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email    string
	Name     string
	Password string
	IsAdmin  bool
	IsBanned bool
	Username *string
}

// WithEmail sets the account email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// WithAdmin stores the account with the admin role
func WithAdmin() func(*UserOpts) {
	return func(o *UserOpts) { o.IsAdmin = true }
}

// WithBanned stores the account permanently banned
func WithBanned() func(*UserOpts) {
	return func(o *UserOpts) { o.IsBanned = true }
}

// WithPassword sets the account password
func WithPassword(password string) func(*UserOpts) {
	return func(o *UserOpts) { o.Password = password }
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	id := randomID()
	o := &UserOpts{
		Email:    fmt.Sprintf("user_%s@test.local", id),
		Name:     "User " + id[:6],
		Password: DefaultPassword,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}
	h := string(hash)

	user := &model.User{
		ID:        "u_" + id,
		Email:     o.Email,
		Name:      o.Name,
		Hash:      &h,
		IsAdmin:   o.IsAdmin,
		IsBanned:  o.IsBanned,
		Username:  o.Username,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	if err := f.stores.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// ============================================================================
// Content Fixtures
// ============================================================================

// CreateMedia stores a media item owned by user in the given state
func (f *Factory) CreateMedia(t *testing.T, user *model.User, status model.MediaStatus) *model.MediaItem {
	t.Helper()

	id := randomID()
	item := &model.MediaItem{
		ID:         "m_" + id,
		UserID:     user.ID,
		Title:      "Clip " + id[:6],
		URL:        "https://clips.test.local/" + id,
		CreditName: user.Name,
		Status:     status,
		CreatedAt:  f.now,
	}
	if err := f.stores.Media.Create(context.Background(), item); err != nil {
		t.Fatalf("fixtures: failed to create media: %v", err)
	}
	return item
}

// CreateEvent schedules an event starting after the given offset from now
func (f *Factory) CreateEvent(t *testing.T, startsIn time.Duration) *model.Event {
	t.Helper()

	id := randomID()
	event := &model.Event{
		ID:        "e_" + id,
		Title:     "Event " + id[:6],
		StartsAt:  f.now.Add(startsIn),
		CreatedAt: f.now,
	}
	if err := f.stores.Events.Create(context.Background(), event); err != nil {
		t.Fatalf("fixtures: failed to create event: %v", err)
	}
	return event
}

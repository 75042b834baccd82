// Package memory implements the service storage interfaces in process.
//
// A Store keeps every table behind one RWMutex so multi-record writes
// such as Kick are atomic. Records are copied on the way in and out;
// callers never share memory with the store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

var (
	_ service.UserRepository         = (*UserRepo)(nil)
	_ service.KickRepository         = (*KickRepo)(nil)
	_ service.EventRepository        = (*EventRepo)(nil)
	_ service.RSVPRepository         = (*RSVPRepo)(nil)
	_ service.MediaRepository        = (*MediaRepo)(nil)
	_ service.CommentRepository      = (*CommentRepo)(nil)
	_ service.ReportRepository       = (*ReportRepo)(nil)
	_ service.ContactRepository      = (*ContactRepo)(nil)
	_ service.NotificationRepository = (*NotificationRepo)(nil)
	_ service.SettingsRepository     = (*SettingsRepo)(nil)
)

// Store holds all in-memory tables
type Store struct {
	mu sync.RWMutex

	users         map[string]*model.User
	kicks         []*model.KickRecord
	events        map[string]*model.Event
	rsvps         map[string]map[string]struct{} // [eventID][userID]
	media         map[string]*model.MediaItem
	comments      []*model.Comment
	reports       map[string]*model.Report
	contacts      map[string]*model.ContactMessage
	notifications []*model.Notification
	settings      map[string]bool
}

// New creates an empty store
func New() *Store {
	return &Store{
		users:    make(map[string]*model.User),
		events:   make(map[string]*model.Event),
		rsvps:    make(map[string]map[string]struct{}),
		media:    make(map[string]*model.MediaItem),
		reports:  make(map[string]*model.Report),
		contacts: make(map[string]*model.ContactMessage),
		settings: make(map[string]bool),
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Accessors for the per-table repositories

func (s *Store) Users() *UserRepo                 { return &UserRepo{s} }
func (s *Store) Kicks() *KickRepo                 { return &KickRepo{s} }
func (s *Store) Events() *EventRepo               { return &EventRepo{s} }
func (s *Store) RSVPs() *RSVPRepo                 { return &RSVPRepo{s} }
func (s *Store) Media() *MediaRepo                { return &MediaRepo{s} }
func (s *Store) Comments() *CommentRepo           { return &CommentRepo{s} }
func (s *Store) Reports() *ReportRepo             { return &ReportRepo{s} }
func (s *Store) Contacts() *ContactRepo           { return &ContactRepo{s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s} }
func (s *Store) Settings() *SettingsRepo          { return &SettingsRepo{s} }

// ============================================================================
// Users
// ============================================================================

// UserRepo stores accounts. Email uniqueness ignores case.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return database.ErrDuplicate
	}
	if r.s.emailTaken(user.Email, "") {
		return database.ErrDuplicate
	}
	r.s.users[user.ID] = user.Clone()
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users[id].Clone(), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return database.ErrNotFound
	}
	if r.s.emailTaken(user.Email, user.ID) {
		return database.ErrDuplicate
	}
	r.s.users[user.ID] = user.Clone()
	return nil
}

// ClearLapsedTempBans checks and clears each account under the write lock
func (r *UserRepo) ClearLapsedTempBans(ctx context.Context, now time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cleared := 0
	for _, u := range r.s.users {
		if u.TempBannedUntil == nil || u.TempBannedUntil.After(now) {
			continue
		}
		u.TempBannedUntil = nil
		if !u.IsBanned {
			u.BanReason = nil
		}
		u.UpdatedAt = now
		cleared++
	}
	return cleared, nil
}

// List returns every account, oldest first
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// emailTaken must be called with mu held
func (s *Store) emailTaken(email, exceptID string) bool {
	for id, u := range s.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// KickRepo removes accounts and keeps their tombstones
type KickRepo struct{ s *Store }

// Kick deletes the account and records the tombstone under one lock
func (r *KickRepo) Kick(ctx context.Context, userID string, record *model.KickRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[userID]; !ok {
		return database.ErrNotFound
	}
	delete(r.s.users, userID)
	c := *record
	r.s.kicks = append(r.s.kicks, &c)
	return nil
}

// List returns every tombstone, newest first
func (r *KickRepo) List(ctx context.Context) ([]*model.KickRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.KickRecord, 0, len(r.s.kicks))
	for i := len(r.s.kicks) - 1; i >= 0; i-- {
		c := *r.s.kicks[i]
		out = append(out, &c)
	}
	return out, nil
}

// ============================================================================
// Events
// ============================================================================

// EventRepo stores scheduled events
type EventRepo struct{ s *Store }

func (r *EventRepo) Create(ctx context.Context, event *model.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[event.ID]; ok {
		return database.ErrDuplicate
	}
	c := *event
	r.s.events[event.ID] = &c
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, nil
	}
	c := *e
	return &c, nil
}

// List returns every event by start time
func (r *EventRepo) List(ctx context.Context) ([]*model.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out, nil
}

// RSVPRepo stores one attendance mark per (event, user)
type RSVPRepo struct{ s *Store }

func (r *RSVPRepo) Toggle(ctx context.Context, eventID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set := r.s.rsvps[eventID]
	if set == nil {
		set = make(map[string]struct{})
		r.s.rsvps[eventID] = set
	}
	if _, ok := set[userID]; ok {
		delete(set, userID)
		return false, nil
	}
	set[userID] = struct{}{}
	return true, nil
}

func (r *RSVPRepo) Has(ctx context.Context, eventID, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.rsvps[eventID][userID]
	return ok, nil
}

func (r *RSVPRepo) Count(ctx context.Context, eventID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.rsvps[eventID]), nil
}

// ============================================================================
// Media
// ============================================================================

// MediaRepo stores media submissions
type MediaRepo struct{ s *Store }

func (r *MediaRepo) Create(ctx context.Context, item *model.MediaItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.media[item.ID]; ok {
		return database.ErrDuplicate
	}
	c := *item
	r.s.media[item.ID] = &c
	return nil
}

func (r *MediaRepo) GetByID(ctx context.Context, id string) (*model.MediaItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.media[id]
	if !ok {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (r *MediaRepo) Update(ctx context.Context, item *model.MediaItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.media[item.ID]; !ok {
		return database.ErrNotFound
	}
	c := *item
	r.s.media[item.ID] = &c
	return nil
}

// ListByStatus returns items in one moderation state, newest first
func (r *MediaRepo) ListByStatus(ctx context.Context, status model.MediaStatus) ([]*model.MediaItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.MediaItem, 0)
	for _, item := range r.s.media {
		if item.Status == status {
			c := *item
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CommentRepo stores immutable media comments in insertion order
type CommentRepo struct{ s *Store }

func (r *CommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *comment
	r.s.comments = append(r.s.comments, &c)
	return nil
}

// ListByMedia returns the comments on one item, oldest first
func (r *CommentRepo) ListByMedia(ctx context.Context, mediaID string) ([]*model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Comment, 0)
	for _, comment := range r.s.comments {
		if comment.MediaID == mediaID {
			c := *comment
			out = append(out, &c)
		}
	}
	return out, nil
}

// ============================================================================
// Moderation
// ============================================================================

// ReportRepo stores reports
type ReportRepo struct{ s *Store }

func (r *ReportRepo) Create(ctx context.Context, report *model.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[report.ID]; ok {
		return database.ErrDuplicate
	}
	c := *report
	r.s.reports[report.ID] = &c
	return nil
}

func (r *ReportRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	report, ok := r.s.reports[id]
	if !ok {
		return nil, nil
	}
	c := *report
	return &c, nil
}

func (r *ReportRepo) Update(ctx context.Context, report *model.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[report.ID]; !ok {
		return database.ErrNotFound
	}
	c := *report
	r.s.reports[report.ID] = &c
	return nil
}

func (r *ReportRepo) List(ctx context.Context) ([]*model.Report, error) {
	return r.filter(func(*model.Report) bool { return true }), nil
}

func (r *ReportRepo) ListByUser(ctx context.Context, userID string) ([]*model.Report, error) {
	return r.filter(func(rep *model.Report) bool { return rep.UserID == userID }), nil
}

// filter returns matching reports, newest first
func (r *ReportRepo) filter(keep func(*model.Report) bool) []*model.Report {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Report, 0)
	for _, report := range r.s.reports {
		if keep(report) {
			c := *report
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ContactRepo stores the support inbox
type ContactRepo struct{ s *Store }

func (r *ContactRepo) Create(ctx context.Context, contact *model.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contacts[contact.ID]; ok {
		return database.ErrDuplicate
	}
	c := *contact
	r.s.contacts[contact.ID] = &c
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	contact, ok := r.s.contacts[id]
	if !ok {
		return nil, nil
	}
	c := *contact
	return &c, nil
}

func (r *ContactRepo) Update(ctx context.Context, contact *model.ContactMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contacts[contact.ID]; !ok {
		return database.ErrNotFound
	}
	c := *contact
	r.s.contacts[contact.ID] = &c
	return nil
}

func (r *ContactRepo) List(ctx context.Context) ([]*model.ContactMessage, error) {
	return r.filter(func(*model.ContactMessage) bool { return true }), nil
}

func (r *ContactRepo) ListByUser(ctx context.Context, userID string) ([]*model.ContactMessage, error) {
	return r.filter(func(c *model.ContactMessage) bool { return c.UserID == userID }), nil
}

// filter returns matching messages, newest first
func (r *ContactRepo) filter(keep func(*model.ContactMessage) bool) []*model.ContactMessage {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.ContactMessage, 0)
	for _, contact := range r.s.contacts {
		if keep(contact) {
			c := *contact
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ============================================================================
// Notifications and settings
// ============================================================================

// NotificationRepo stores in-app notices
type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *n
	r.s.notifications = append(r.s.notifications, &c)
	return nil
}

// ListByUser returns one account's notices, newest first
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Notification, 0)
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		if n := r.s.notifications[i]; n.UserID == userID {
			c := *n
			out = append(out, &c)
		}
	}
	return out, nil
}

// SettingsRepo stores named site flags
type SettingsRepo struct{ s *Store }

func (r *SettingsRepo) GetBool(ctx context.Context, key string) (bool, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.settings[key]
	return v, ok, nil
}

func (r *SettingsRepo) SetBool(ctx context.Context, key string, value bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[key] = value
	return nil
}

// ToggleBool flips a flag under the write lock. An unset flag starts from def.
func (r *SettingsRepo) ToggleBool(ctx context.Context, key string, def bool) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.settings[key]
	if !ok {
		v = def
	}
	r.s.settings[key] = !v
	return !v, nil
}

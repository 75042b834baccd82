package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	mu        sync.Mutex
	users     map[string]*model.User
	createErr error
	getErr    error
	updateErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return database.ErrDuplicate
		}
	}
	m.users[user.ID] = user.Clone()
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[id].Clone(), nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return database.ErrNotFound
	}
	for id, u := range m.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return database.ErrDuplicate
		}
	}
	m.users[user.ID] = user.Clone()
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) ClearLapsedTempBans(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	cleared := 0
	for _, u := range m.users {
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

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// put stores an account directly
func (m *mockUserRepo) put(u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u.Clone()
}

type mockKickRepo struct {
	users   *mockUserRepo
	records []*model.KickRecord
	kickErr error
}

func (m *mockKickRepo) Kick(ctx context.Context, userID string, record *model.KickRecord) error {
	if m.kickErr != nil {
		return m.kickErr
	}
	if err := m.users.Delete(ctx, userID); err != nil {
		return err
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockKickRepo) List(ctx context.Context) ([]*model.KickRecord, error) {
	return m.records, nil
}

type mockMediaRepo struct {
	items map[string]*model.MediaItem
}

func newMockMediaRepo() *mockMediaRepo {
	return &mockMediaRepo{items: make(map[string]*model.MediaItem)}
}

func (m *mockMediaRepo) Create(ctx context.Context, item *model.MediaItem) error {
	c := *item
	m.items[item.ID] = &c
	return nil
}

func (m *mockMediaRepo) GetByID(ctx context.Context, id string) (*model.MediaItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (m *mockMediaRepo) Update(ctx context.Context, item *model.MediaItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return database.ErrNotFound
	}
	c := *item
	m.items[item.ID] = &c
	return nil
}

func (m *mockMediaRepo) ListByStatus(ctx context.Context, status model.MediaStatus) ([]*model.MediaItem, error) {
	var out []*model.MediaItem
	for _, item := range m.items {
		if item.Status == status {
			c := *item
			out = append(out, &c)
		}
	}
	return out, nil
}

type mockCommentRepo struct {
	comments []*model.Comment
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	m.comments = append(m.comments, comment)
	return nil
}

func (m *mockCommentRepo) ListByMedia(ctx context.Context, mediaID string) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range m.comments {
		if c.MediaID == mediaID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockEventRepo struct {
	events map[string]*model.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.Event) error {
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return m.events[id], nil
}

func (m *mockEventRepo) List(ctx context.Context) ([]*model.Event, error) {
	out := make([]*model.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

type mockRSVPRepo struct {
	rsvps map[string]map[string]bool
}

func newMockRSVPRepo() *mockRSVPRepo {
	return &mockRSVPRepo{rsvps: make(map[string]map[string]bool)}
}

func (m *mockRSVPRepo) Toggle(ctx context.Context, eventID, userID string) (bool, error) {
	set := m.rsvps[eventID]
	if set == nil {
		set = make(map[string]bool)
		m.rsvps[eventID] = set
	}
	if set[userID] {
		delete(set, userID)
		return false, nil
	}
	set[userID] = true
	return true, nil
}

func (m *mockRSVPRepo) Has(ctx context.Context, eventID, userID string) (bool, error) {
	return m.rsvps[eventID][userID], nil
}

func (m *mockRSVPRepo) Count(ctx context.Context, eventID string) (int, error) {
	return len(m.rsvps[eventID]), nil
}

type mockReportRepo struct {
	reports map[string]*model.Report
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{reports: make(map[string]*model.Report)}
}

func (m *mockReportRepo) Create(ctx context.Context, r *model.Report) error {
	c := *r
	m.reports[r.ID] = &c
	return nil
}

func (m *mockReportRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (m *mockReportRepo) Update(ctx context.Context, r *model.Report) error {
	c := *r
	m.reports[r.ID] = &c
	return nil
}

func (m *mockReportRepo) List(ctx context.Context) ([]*model.Report, error) {
	var out []*model.Report
	for _, r := range m.reports {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockReportRepo) ListByUser(ctx context.Context, userID string) ([]*model.Report, error) {
	var out []*model.Report
	for _, r := range m.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockContactRepo struct {
	contacts  map[string]*model.ContactMessage
	createErr error
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{contacts: make(map[string]*model.ContactMessage)}
}

func (m *mockContactRepo) Create(ctx context.Context, c *model.ContactMessage) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *c
	m.contacts[c.ID] = &cp
	return nil
}

func (m *mockContactRepo) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	c, ok := m.contacts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockContactRepo) Update(ctx context.Context, c *model.ContactMessage) error {
	cp := *c
	m.contacts[c.ID] = &cp
	return nil
}

func (m *mockContactRepo) List(ctx context.Context) ([]*model.ContactMessage, error) {
	var out []*model.ContactMessage
	for _, c := range m.contacts {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockContactRepo) ListByUser(ctx context.Context, userID string) ([]*model.ContactMessage, error) {
	var out []*model.ContactMessage
	for _, c := range m.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockNotificationRepo struct {
	items []*model.Notification
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	m.items = append(m.items, n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	var out []*model.Notification
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].UserID == userID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

type mockSettingsRepo struct {
	values map[string]bool
	getErr error
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{values: make(map[string]bool)}
}

func (m *mockSettingsRepo) GetBool(ctx context.Context, key string) (bool, bool, error) {
	if m.getErr != nil {
		return false, false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockSettingsRepo) SetBool(ctx context.Context, key string, value bool) error {
	m.values[key] = value
	return nil
}

func (m *mockSettingsRepo) ToggleBool(ctx context.Context, key string, def bool) (bool, error) {
	v, ok := m.values[key]
	if !ok {
		v = def
	}
	m.values[key] = !v
	return !v, nil
}

package app

import (
	"context"

	"github.com/forgo/community/api/internal/config"
	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/repository"
	"github.com/forgo/community/api/internal/repository/memory"
	"github.com/forgo/community/api/internal/service"
)

// Storage bundles the repositories behind every service
type Storage struct {
	Name string

	Users         service.UserRepository
	Kicks         service.KickRepository
	Events        service.EventRepository
	RSVPs         service.RSVPRepository
	Media         service.MediaRepository
	Comments      service.CommentRepository
	Reports       service.ReportRepository
	Contacts      service.ContactRepository
	Notifications service.NotificationRepository
	Settings      service.SettingsRepository

	// Ping probes the backend for the health endpoint
	Ping func(ctx context.Context) error
}

// MemoryStorage serves every repository from one in-process store
func MemoryStorage(store *memory.Store) Storage {
	return Storage{
		Name:          config.StorageMemory,
		Users:         store.Users(),
		Kicks:         store.Kicks(),
		Events:        store.Events(),
		RSVPs:         store.RSVPs(),
		Media:         store.Media(),
		Comments:      store.Comments(),
		Reports:       store.Reports(),
		Contacts:      store.Contacts(),
		Notifications: store.Notifications(),
		Settings:      store.Settings(),
		Ping:          store.Ping,
	}
}

// SurrealStorage serves every repository from a SurrealDB connection
func SurrealStorage(db database.Database) Storage {
	return Storage{
		Name:          config.StorageSurrealDB,
		Users:         repository.NewUserRepository(db),
		Kicks:         repository.NewKickRepository(db),
		Events:        repository.NewEventRepository(db),
		RSVPs:         repository.NewRSVPRepository(db),
		Media:         repository.NewMediaRepository(db),
		Comments:      repository.NewCommentRepository(db),
		Reports:       repository.NewReportRepository(db),
		Contacts:      repository.NewContactRepository(db),
		Notifications: repository.NewNotificationRepository(db),
		Settings:      repository.NewSettingsRepository(db),
		Ping:          db.Ping,
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error {
	if f == nil {
		return nil
	}
	return f(ctx)
}

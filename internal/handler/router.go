package handler

import (
	"net/http"

	"github.com/forgo/community/api/internal/middleware"
	"github.com/forgo/community/api/internal/service"
)

// RouterConfig holds the services behind the public API
type RouterConfig struct {
	AuthService         *service.AuthService
	AccountService      *service.AccountService
	EventService        *service.EventService
	MediaService        *service.MediaService
	ModerationService   *service.ModerationService
	NotificationService *service.NotificationService
	SiteService         *service.SiteService
	EventHub            *service.EventHub
	Sweeper             TempbanSweep

	// Storage backs the administrator health probe
	Storage     Pinger
	StorageName string
}

// NewRouter registers every /api route on a new mux.
// Global middleware is applied by the caller.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := func(h http.Handler) http.Handler {
		return authMiddleware(middleware.RequireAdmin(h))
	}
	auth := func(fn http.HandlerFunc) http.Handler { return authMiddleware(fn) }
	admin := func(fn http.HandlerFunc) http.Handler { return adminMiddleware(fn) }

	siteHandler := NewSiteHandler(cfg.SiteService)
	authHandler := NewAuthHandler(cfg.AuthService, cfg.AccountService)
	usersHandler := NewUsersHandler(cfg.AccountService)
	eventHandler := NewEventHandler(cfg.EventService)
	notificationHandler := NewNotificationHandler(cfg.NotificationService)
	mediaHandler := NewMediaHandler(cfg.MediaService)
	moderationHandler := NewModerationHandler(cfg.ModerationService)
	eventsHandler := NewEventsHandler(cfg.EventHub)
	adminHandler := NewAdminHandler(AdminHandlerConfig{
		Sweeper:     cfg.Sweeper,
		Hub:         cfg.EventHub,
		Storage:     cfg.Storage,
		StorageName: cfg.StorageName,
	})

	// Liveness and site flag (public)
	mux.HandleFunc("GET /api/ping", siteHandler.Ping)
	mux.HandleFunc("GET /api/demo", siteHandler.Demo)
	mux.HandleFunc("GET /api/site-status", siteHandler.Status)
	mux.Handle("POST /api/admin/site-status", admin(siteHandler.Set))
	mux.Handle("POST /api/admin/site-status/toggle", admin(siteHandler.Toggle))

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/signup", authHandler.SignUp)
	mux.HandleFunc("POST /api/auth/signin", authHandler.SignIn)
	mux.HandleFunc("POST /api/auth/discord-sync", authHandler.DiscordSync)
	mux.Handle("GET /api/auth/status", auth(authHandler.Status))
	mux.Handle("PUT /api/auth/update-profile", auth(authHandler.UpdateProfile))
	mux.Handle("POST /api/auth/start-email-change", auth(authHandler.StartEmailChange))
	mux.Handle("POST /api/auth/change-email", auth(authHandler.ChangeEmail))

	// Account administration
	mux.Handle("GET /api/users", admin(usersHandler.List))
	mux.Handle("POST /api/users/action", admin(usersHandler.Action))
	mux.Handle("POST /api/users/role", admin(usersHandler.SetRole))
	mux.Handle("GET /api/users/kicks", admin(usersHandler.ListKicks))

	// Events and notifications
	mux.HandleFunc("GET /api/events", eventHandler.List)
	mux.Handle("POST /api/events", admin(eventHandler.Create))
	mux.Handle("GET /api/events/{id}/rsvp", auth(eventHandler.GetRSVP))
	mux.Handle("POST /api/events/{id}/rsvp", auth(eventHandler.ToggleRSVP))
	mux.Handle("GET /api/notifications", auth(notificationHandler.List))

	// Media
	mux.HandleFunc("GET /api/media", mediaHandler.List)
	mux.Handle("POST /api/media", auth(mediaHandler.Create))
	mux.Handle("GET /api/media/pending", admin(mediaHandler.ListPending))
	mux.Handle("POST /api/media/{id}/approve", admin(mediaHandler.Approve))
	mux.Handle("POST /api/media/{id}/reject", admin(mediaHandler.Reject))
	mux.HandleFunc("GET /api/media/{id}/comments", mediaHandler.ListComments)
	mux.Handle("POST /api/media/{id}/comments", auth(mediaHandler.AddComment))

	// Reports
	mux.Handle("POST /api/reports", auth(moderationHandler.CreateReport))
	mux.Handle("GET /api/reports/my", auth(moderationHandler.MyReports))
	mux.Handle("GET /api/reports", admin(moderationHandler.ListReports))
	mux.Handle("POST /api/reports/update", admin(moderationHandler.UpdateReport))

	// Contact inbox
	mux.Handle("POST /api/contact", auth(moderationHandler.CreateContact))
	mux.Handle("GET /api/contact/my", auth(moderationHandler.MyContacts))
	mux.Handle("GET /api/contact", admin(moderationHandler.ListContacts))
	mux.Handle("POST /api/contact/update", admin(moderationHandler.UpdateContact))

	// Admin operations
	mux.Handle("GET /api/admin/health", admin(adminHandler.Health))
	mux.Handle("POST /api/admin/backfill", admin(adminHandler.Backfill))
	mux.Handle("GET /api/admin/stream", admin(eventsHandler.Stream))

	return mux
}

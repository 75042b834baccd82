package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/forgo/community/api/internal/config"
	"github.com/forgo/community/api/internal/handler"
	"github.com/forgo/community/api/internal/jobs"
	"github.com/forgo/community/api/internal/middleware"
	"github.com/forgo/community/api/internal/notify"
	"github.com/forgo/community/api/internal/service"
	"github.com/forgo/community/api/pkg/jwt"
)

const (
	hubHeartbeat      = 30 * time.Second
	sweeperStartDelay = 5 * time.Second
)

// Options configures an App
type Options struct {
	Config  *config.Config
	Storage Storage

	// Optional overrides, mostly for tests
	Now          func() time.Time
	BcryptCost   int
	HubHeartbeat time.Duration // negative disables keepalives
	SweeperDelay time.Duration
	DiscordSend  notify.SendFunc
}

// Services exposes the wired services
type Services struct {
	Auth          *service.AuthService
	Accounts      *service.AccountService
	Events        *service.EventService
	Media         *service.MediaService
	Moderation    *service.ModerationService
	Notifications *service.NotificationService
	Site          *service.SiteService
	Hub           *service.EventHub
}

// App is the assembled API: services, background workers and the
// fully wrapped HTTP handler
type App struct {
	Services Services
	Handler  http.Handler

	limiter  *middleware.RateLimiter
	notifier *notify.DiscordNotifier
	sweeper  *jobs.TempbanSweeper
}

// New wires every service over opts.Storage. Nothing runs in the
// background until Start.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}

	jwtService, err := jwt.NewService(jwt.Config{
		Secret:     cfg.SigningSecret(),
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration(),
		Now:        opts.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("app: jwt service: %w", err)
	}

	heartbeat := opts.HubHeartbeat
	if heartbeat == 0 {
		heartbeat = hubHeartbeat
	}
	hub := service.NewEventHub(heartbeat)

	st := opts.Storage
	tokenService := service.NewTokenService(service.TokenServiceConfig{JWTService: jwtService})
	notificationService := service.NewNotificationService(service.NotificationServiceConfig{
		Repo: st.Notifications,
		Now:  opts.Now,
	})
	svc := Services{
		Auth: service.NewAuthService(service.AuthServiceConfig{
			UserRepo:     st.Users,
			TokenService: tokenService,
			BcryptCost:   opts.BcryptCost,
			AutoRegister: cfg.Site.AutoRegister,
			TestAccount:  cfg.Site.SeedTestAccount,
			Now:          opts.Now,
		}),
		Accounts: service.NewAccountService(service.AccountServiceConfig{
			UserRepo: st.Users,
			KickRepo: st.Kicks,
			Hub:      hub,
			Now:      opts.Now,
		}),
		Events: service.NewEventService(service.EventServiceConfig{
			EventRepo: st.Events,
			RSVPRepo:  st.RSVPs,
			Now:       opts.Now,
		}),
		Media: service.NewMediaService(service.MediaServiceConfig{
			MediaRepo:   st.Media,
			CommentRepo: st.Comments,
			UserRepo:    st.Users,
			Hub:         hub,
			Now:         opts.Now,
		}),
		Moderation: service.NewModerationService(service.ModerationServiceConfig{
			ReportRepo:  st.Reports,
			ContactRepo: st.Contacts,
			Notifier:    notificationService,
			Hub:         hub,
			Now:         opts.Now,
		}),
		Notifications: notificationService,
		Site: service.NewSiteService(service.SiteServiceConfig{
			Repo:              st.Settings,
			UnderConstruction: cfg.Site.UnderConstruction,
		}),
		Hub: hub,
	}

	sweeperDelay := opts.SweeperDelay
	if sweeperDelay == 0 {
		sweeperDelay = sweeperStartDelay
	}
	sweeper := jobs.NewTempbanSweeper(jobs.TempbanSweeperConfig{
		Clearer:    svc.Accounts,
		Interval:   cfg.Jobs.TempbanSweepInterval,
		StartDelay: sweeperDelay,
	})

	router := handler.NewRouter(handler.RouterConfig{
		AuthService:         svc.Auth,
		AccountService:      svc.Accounts,
		EventService:        svc.Events,
		MediaService:        svc.Media,
		ModerationService:   svc.Moderation,
		NotificationService: svc.Notifications,
		SiteService:         svc.Site,
		EventHub:            hub,
		Sweeper:             sweeper,
		Storage:             pingFunc(st.Ping),
		StorageName:         st.Name,
	})

	root := http.NewServeMux()
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/", middleware.Metrics(router))

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:   cfg.RateLimit.RPS,
		Burst: cfg.RateLimit.Burst,
		Now:   opts.Now,
	})

	a := &App{
		Services: svc,
		Handler: middleware.Chain(
			root,
			middleware.RequestID,
			middleware.Logger,
			middleware.Recovery,
			middleware.CORS(cfg.Server.AllowedOrigins),
			middleware.RateLimit(limiter),
			middleware.Compress,
		),
		limiter: limiter,
		notifier: notify.NewDiscordNotifier(notify.DiscordNotifierConfig{
			Hub:        hub,
			WebhookURL: cfg.Discord.WebhookURL,
			Username:   cfg.Discord.WebhookUsername,
			Send:       opts.DiscordSend,
		}),
		sweeper: sweeper,
	}
	return a, nil
}

// Start seeds the demo account and launches the background workers
func (a *App) Start(ctx context.Context) error {
	if err := a.Services.Auth.SeedTestAccount(ctx); err != nil {
		return fmt.Errorf("seeding test account: %w", err)
	}
	a.notifier.Start(ctx)
	a.sweeper.Start()
	return nil
}

// Close stops background workers and disconnects stream subscribers
func (a *App) Close() {
	a.sweeper.Stop()
	a.notifier.Stop()
	a.limiter.Stop()
	a.Services.Hub.Close()
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/forgo/community/api/internal/jobs"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/repository/memory"
	"github.com/forgo/community/api/internal/service"
	"github.com/forgo/community/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const adminEmail = "zshihadeh671@gmail.com"

// testClock is a settable clock shared by every service in a harness
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	store   *memory.Store
	hub     *service.EventHub
	clock   *testClock
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := memory.New()
	hub := service.NewEventHub(0)
	t.Cleanup(hub.Close)

	tokens := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwt.NewTestService("handler-test-secret-handler-test-secret", "community-test", service.DefaultSessionDuration, clock.Now),
	})
	notifications := service.NewNotificationService(service.NotificationServiceConfig{
		Repo: store.Notifications(),
		Now:  clock.Now,
	})

	accounts := service.NewAccountService(service.AccountServiceConfig{
		UserRepo: store.Users(),
		KickRepo: store.Kicks(),
		Hub:      hub,
		Now:      clock.Now,
	})

	mux := NewRouter(RouterConfig{
		AuthService: service.NewAuthService(service.AuthServiceConfig{
			UserRepo:     store.Users(),
			TokenService: tokens,
			BcryptCost:   bcrypt.MinCost,
			AutoRegister: true,
			TestAccount:  true,
			Now:          clock.Now,
		}),
		AccountService: accounts,
		EventService: service.NewEventService(service.EventServiceConfig{
			EventRepo: store.Events(),
			RSVPRepo:  store.RSVPs(),
			Now:       clock.Now,
		}),
		MediaService: service.NewMediaService(service.MediaServiceConfig{
			MediaRepo:   store.Media(),
			CommentRepo: store.Comments(),
			UserRepo:    store.Users(),
			Hub:         hub,
			Now:         clock.Now,
		}),
		ModerationService: service.NewModerationService(service.ModerationServiceConfig{
			ReportRepo:  store.Reports(),
			ContactRepo: store.Contacts(),
			Notifier:    notifications,
			Hub:         hub,
			Now:         clock.Now,
		}),
		NotificationService: notifications,
		SiteService:         service.NewSiteService(service.SiteServiceConfig{Repo: store.Settings()}),
		EventHub:            hub,
		Sweeper:             jobs.NewTempbanSweeper(jobs.TempbanSweeperConfig{Clearer: accounts}),
		Storage:             store,
		StorageName:         "memory",
	})

	return &testAPI{t: t, handler: mux, store: store, hub: hub, clock: clock}
}

// do sends a JSON request and decodes the response body
func (a *testAPI) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)

	var out map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		a.t.Fatalf("%s %s: failed to decode response %q: %v", method, path, rr.Body.String(), err)
	}
	return rr.Code, out
}

// signUp registers an account and returns its id and token
func (a *testAPI) signUp(email, name string) (string, string) {
	a.t.Helper()
	code, body := a.do(http.MethodPost, "/api/auth/signup", "", model.SignUpRequest{
		Email:    email,
		Password: "hunter2hunter2",
		Name:     name,
	})
	if code != http.StatusOK {
		a.t.Fatalf("signup %s: expected 200, got %d: %v", email, code, body)
	}
	user := body["user"].(map[string]interface{})
	return user["id"].(string), body["token"].(string)
}

func (a *testAPI) admin() (string, string) {
	return a.signUp(adminEmail, "Zaid")
}

func expectSuccess(t *testing.T, body map[string]interface{}, want bool) {
	t.Helper()
	got, _ := body["success"].(bool)
	if got != want {
		t.Errorf("expected success=%v, got body %v", want, body)
	}
}

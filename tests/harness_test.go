// Package tests contains end-to-end acceptance tests for the community API.
//
// Every test drives the fully assembled handler (middleware chain included)
// over HTTP. forEachStorage runs a test once against the in-memory store and
// once against SurrealDB; the SurrealDB pass is skipped when no server is
// reachable.
//
// To run the SurrealDB pass:
//  1. Start SurrealDB: surreal start memory -A --user root --pass root
//  2. Run tests: go test ./tests/...
//
// Environment variables:
//
//	TEST_DB_HOST     - SurrealDB host (default: localhost)
//	TEST_DB_PORT     - SurrealDB port (default: 8000)
//	TEST_DB_USER     - SurrealDB username (default: root)
//	TEST_DB_PASSWORD - SurrealDB password (default: root)
//	TEST_DB_SKIP     - skip the SurrealDB pass entirely
package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/community/api/internal/app"
	"github.com/forgo/community/api/internal/config"
	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/repository/memory"
	"github.com/forgo/community/api/internal/testing/fixtures"
	"github.com/forgo/community/api/internal/testing/helpers"
	"github.com/forgo/community/api/internal/testing/testdb"
)

const (
	adminEmail      = "zshihadeh671@gmail.com"
	adminUsername   = "zaidshihadehgaming"
	defaultPassword = "hunter2hunter2"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// env is one assembled API with its storage and clock
type env struct {
	t        *testing.T
	api      *app.App
	storage  app.Storage
	db       database.Database // nil for the memory pass
	clock    *clock
	jwt      *helpers.JWTHelper
	fixtures *fixtures.Factory
}

func forEachStorage(t *testing.T, fn func(t *testing.T, e *env)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, newEnv(t, app.MemoryStorage(memory.New()), nil))
	})
	t.Run("surrealdb", func(t *testing.T) {
		tdb := testdb.New(t)
		t.Cleanup(tdb.Close)
		fn(t, newEnv(t, app.SurrealStorage(tdb.DB), tdb.DB))
	})
}

func newEnv(t *testing.T, storage app.Storage, db database.Database) *env {
	t.Helper()

	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Env: "test", AllowedOrigins: []string{"*"}},
		Storage:   config.StorageConfig{Driver: storage.Name},
		JWT:       config.JWTConfig{Secret: helpers.TestSecret, Issuer: helpers.TestIssuer, ExpirationHours: 720},
		Site:      config.SiteConfig{SeedTestAccount: true, AutoRegister: true},
		RateLimit: config.RateLimitConfig{RPS: 1000, Burst: 100000},
		Jobs:      config.JobsConfig{TempbanSweepInterval: time.Hour},
	}

	a, err := app.New(app.Options{
		Config:       cfg,
		Storage:      storage,
		Now:          c.Now,
		BcryptCost:   bcrypt.MinCost,
		HubHeartbeat: -1,
		SweeperDelay: time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, a.Start(context.Background()))
	t.Cleanup(a.Close)

	return &env{
		t:       t,
		api:     a,
		storage: storage,
		db:      db,
		clock:   c,
		jwt:     helpers.NewJWTHelper(t, c.Now),
		fixtures: fixtures.New(fixtures.Stores{
			Users:  storage.Users,
			Media:  storage.Media,
			Events: storage.Events,
		}),
	}
}

func (e *env) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	rb := helpers.NewRequest(e.t, method, path).WithToken(token)
	if body != nil {
		rb = rb.WithBody(body)
	}
	return rb.Do(e.api.Handler)
}

// signUp registers through the API and returns the account and its token
func (e *env) signUp(email, name string) (*model.User, string) {
	e.t.Helper()
	rec := e.request(http.MethodPost, "/api/auth/signup", "", model.SignUpRequest{
		Email: email, Password: defaultPassword, Name: name,
	})
	helpers.AssertStatus(e.t, rec, http.StatusOK)
	var result model.AuthResult
	helpers.DecodeResponse(e.t, rec, &result)
	require.NotNil(e.t, result.User)
	require.NotEmpty(e.t, result.Token)
	return result.User, result.Token
}

func (e *env) signIn(email, password string) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.request(http.MethodPost, "/api/auth/signin", "", model.SignInRequest{Email: email, Password: password})
}

func (e *env) admin() (*model.User, string) {
	e.t.Helper()
	return e.signUp(adminEmail, "Zaid")
}

func (e *env) action(token string, req model.UserActionRequest) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.request(http.MethodPost, "/api/users/action", token, req)
}

func hours(h float64) *float64 { return &h }

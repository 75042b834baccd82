package tests

import (
	"compress/gzip"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/community/api/internal/testing/helpers"
)

/*
FEATURE: Infrastructure Smoke Test
DOMAIN: Infrastructure

ACCEPTANCE CRITERIA:
===================

AC-SMOKE-001: Liveness
  GIVEN the assembled API
  WHEN /api/ping is requested
  THEN it answers with the fixed greeting

AC-SMOKE-002: Health
  GIVEN an administrator
  WHEN /api/admin/health is requested
  THEN the storage backend is named and reachable

AC-SMOKE-003: Site flag
  GIVEN the public site-status endpoint
  WHEN an administrator toggles the flag
  THEN the public endpoint follows

AC-SMOKE-004: Middleware
  GIVEN a client accepting gzip
  THEN JSON responses are compressed
  AND every response carries a request id
*/

func TestSmoke_Ping(t *testing.T) {
	// AC-SMOKE-001
	forEachStorage(t, func(t *testing.T, e *env) {
		rec := e.request(http.MethodGet, "/api/ping", "", nil)
		helpers.AssertStatus(t, rec, http.StatusOK)
		helpers.AssertJSONContains(t, rec, map[string]interface{}{
			"success": true,
			"message": "Hello from Express server!",
		})
	})
}

func TestSmoke_Health(t *testing.T) {
	// AC-SMOKE-002
	forEachStorage(t, func(t *testing.T, e *env) {
		_, adminToken := e.admin()

		rec := e.request(http.MethodGet, "/api/admin/health", adminToken, nil)
		helpers.AssertStatus(t, rec, http.StatusOK)
		helpers.AssertJSONContains(t, rec, map[string]interface{}{
			"status":  "ok",
			"storage": e.storage.Name,
		})
	})
}

func TestSmoke_SiteStatusToggle(t *testing.T) {
	// AC-SMOKE-003
	forEachStorage(t, func(t *testing.T, e *env) {
		_, adminToken := e.admin()

		helpers.AssertJSONContains(t, e.request(http.MethodGet, "/api/site-status", "", nil), map[string]interface{}{"underConstruction": false})

		rec := e.request(http.MethodPost, "/api/admin/site-status/toggle", adminToken, nil)
		helpers.AssertJSONContains(t, rec, map[string]interface{}{"underConstruction": true})

		helpers.AssertJSONContains(t, e.request(http.MethodGet, "/api/site-status", "", nil), map[string]interface{}{"underConstruction": true})

		rec = e.request(http.MethodPost, "/api/admin/site-status", adminToken, map[string]interface{}{"underConstruction": "maybe"})
		helpers.AssertAPIError(t, rec, http.StatusBadRequest, "underConstruction boolean required")
	})
}

func TestSmoke_Middleware(t *testing.T) {
	// AC-SMOKE-004
	forEachStorage(t, func(t *testing.T, e *env) {
		rec := helpers.NewRequest(t, http.MethodGet, "/api/demo").
			WithHeader("Accept-Encoding", "gzip").
			Do(e.api.Handler)

		helpers.AssertStatus(t, rec, http.StatusOK)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Demo endpoint working")
	})
}

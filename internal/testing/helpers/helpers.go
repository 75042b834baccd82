// Package helpers provides common test utilities for e2e testing.
//
// This package includes HTTP request builders, response validators,
// and assertion helpers for testing API endpoints.
package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/forgo/community/api/internal/database"
	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/pkg/jwt"
)

// TestSecret signs every token minted by JWTHelper
const TestSecret = "helpers-test-secret-helpers-test-secret"

// TestIssuer is the issuer stamped on test tokens
const TestIssuer = "community-test"

// ============================================================================
// JWT Helpers
// ============================================================================

// JWTHelper provides JWT token generation for tests
type JWTHelper struct {
	service *jwt.Service
	now     func() time.Time
}

// NewJWTHelper creates a JWT helper sharing TestSecret. A nil clock uses time.Now.
func NewJWTHelper(t *testing.T, now func() time.Time) *JWTHelper {
	t.Helper()
	if now == nil {
		now = time.Now
	}
	return &JWTHelper{
		service: jwt.NewTestService(TestSecret, TestIssuer, 30*24*time.Hour, now),
		now:     now,
	}
}

// GenerateToken creates a valid JWT token for testing
func (h *JWTHelper) GenerateToken(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := h.service.Sign(jwt.Claims{UserID: user.ID})
	if err != nil {
		t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// GenerateExpiredToken creates a token whose expiry is already past
func (h *JWTHelper) GenerateExpiredToken(t *testing.T, user *model.User) string {
	t.Helper()
	issued := h.now().Add(-2 * time.Hour)
	token, err := h.service.Sign(jwt.Claims{
		UserID: user.ID,
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(issued),
			ExpiresAt: gojwt.NewNumericDate(issued.Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// ============================================================================
// Request Builder Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	headers map[string]string
	token   string
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithToken sends token as a bearer credential
func (rb *RequestBuilder) WithToken(token string) *RequestBuilder {
	rb.token = token
	return rb
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	if rb.body != nil {
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)

	// Set content type for requests with body
	if rb.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}

	if rb.token != "" {
		req.Header.Set("Authorization", "Bearer "+rb.token)
	}

	return req
}

// Do builds the request and serves it through h
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, rb.Build())
	return rec
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertAPIError validates a {"success": false, "message": ...} envelope.
// An empty message only checks the status and success flag.
func AssertAPIError(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) *model.APIError {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	var apiErr model.APIError
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &apiErr); err != nil {
		t.Fatalf("failed to decode error envelope: %v. Body: %s", err, string(bodyBytes))
	}

	if apiErr.Success {
		t.Errorf("expected success=false, body: %s", string(bodyBytes))
	}
	if expectedMessage != "" && apiErr.Message != expectedMessage {
		t.Errorf("expected message %q, got %q", expectedMessage, apiErr.Message)
	}
	return &apiErr
}

// AssertJSONContains checks that the response body contains expected key-value pairs
func AssertJSONContains(t *testing.T, resp *httptest.ResponseRecorder, expected map[string]interface{}) {
	t.Helper()

	var actual map[string]interface{}
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &actual); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}

	for key, expectedVal := range expected {
		actualVal, ok := actual[key]
		if !ok {
			t.Errorf("expected key %q not found in response", key)
			continue
		}

		if !jsonEqual(expectedVal, actualVal) {
			t.Errorf("for key %q: expected %v, got %v", key, expectedVal, actualVal)
		}
	}
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// ============================================================================
// Database Assertion Helpers
// ============================================================================

// AssertRecordExists checks that a record exists in the database
func AssertRecordExists(t *testing.T, db database.Database, table, id string) {
	t.Helper()
	found, err := recordExists(db, table, id)
	if err != nil {
		t.Fatalf("failed to query for record: %v", err)
	}
	if !found {
		t.Errorf("expected record %s:%s to exist, but it doesn't", table, id)
	}
}

// AssertRecordNotExists checks that a record does not exist
func AssertRecordNotExists(t *testing.T, db database.Database, table, id string) {
	t.Helper()
	found, err := recordExists(db, table, id)
	if err != nil {
		// Query error might mean not found, which is what we want
		return
	}
	if found {
		t.Errorf("expected record %s:%s to not exist, but it does", table, id)
	}
}

func recordExists(db database.Database, table, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Accept either a bare key or a full table:key thing ID
	if prefix := table + ":"; strings.HasPrefix(id, prefix) {
		id = strings.TrimPrefix(id, prefix)
	}

	results, err := db.Query(ctx, "SELECT * FROM type::thing($table, $id)", map[string]interface{}{
		"table": table,
		"id":    id,
	})
	if err != nil {
		return false, err
	}
	return hasResults(results), nil
}

// hasResults checks if SurrealDB query returned any results
func hasResults(results []interface{}) bool {
	if len(results) == 0 {
		return false
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return false
	}

	result, ok := resp["result"]
	if !ok {
		return false
	}

	switch v := result.(type) {
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return true
	case nil:
		return false
	default:
		return true
	}
}

// ============================================================================
// Utility Helpers
// ============================================================================

// jsonEqual compares two JSON values for equality
func jsonEqual(a, b interface{}) bool {
	aBytes, _ := json.Marshal(a)
	bBytes, _ := json.Marshal(b)
	return string(aBytes) == string(bBytes)
}

// StringPtr returns a pointer to the string
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the bool
func BoolPtr(b bool) *bool {
	return &b
}

// TimePtr returns a pointer to the time
func TimePtr(t time.Time) *time.Time {
	return &t
}

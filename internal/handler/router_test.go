package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// ============================================================================
// Public Endpoints
// ============================================================================

func TestPingAndDemo(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	code, body := api.do(http.MethodGet, "/api/ping", "", nil)
	if code != http.StatusOK || body["message"] != "Hello from Express server!" {
		t.Errorf("unexpected ping response %d %v", code, body)
	}
	code, body = api.do(http.MethodGet, "/api/demo", "", nil)
	if code != http.StatusOK || body["message"] != "Demo endpoint working" {
		t.Errorf("unexpected demo response %d %v", code, body)
	}
}

func TestSiteStatus_AdminSetAndToggle(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()

	code, body := api.do(http.MethodGet, "/api/site-status", "", nil)
	if code != http.StatusOK || body["underConstruction"] != false {
		t.Fatalf("unexpected initial status %d %v", code, body)
	}

	code, body = api.do(http.MethodPost, "/api/admin/site-status", adminToken, map[string]interface{}{"underConstruction": "yes"})
	if code != http.StatusBadRequest || body["message"] != "underConstruction boolean required" {
		t.Errorf("expected 400 for non-boolean, got %d %v", code, body)
	}
	code, _ = api.do(http.MethodPost, "/api/admin/site-status", adminToken, map[string]interface{}{})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing flag, got %d", code)
	}

	code, body = api.do(http.MethodPost, "/api/admin/site-status", adminToken, map[string]interface{}{"underConstruction": true})
	if code != http.StatusOK || body["underConstruction"] != true {
		t.Errorf("expected flag on, got %d %v", code, body)
	}
	_, body = api.do(http.MethodPost, "/api/admin/site-status/toggle", adminToken, nil)
	if body["underConstruction"] != false {
		t.Errorf("expected toggle to turn flag off, got %v", body)
	}
	_, body = api.do(http.MethodGet, "/api/site-status", "", nil)
	if body["underConstruction"] != false {
		t.Errorf("expected public status to follow toggle, got %v", body)
	}
}

// ============================================================================
// Gates
// ============================================================================

func TestGates(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, userToken := api.signUp("alice@example.com", "Alice")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"status without token", http.MethodGet, "/api/auth/status", "", http.StatusUnauthorized},
		{"status with garbage", http.MethodGet, "/api/auth/status", "garbage", http.StatusUnauthorized},
		{"users as user", http.MethodGet, "/api/users", userToken, http.StatusForbidden},
		{"reports as user", http.MethodGet, "/api/reports", userToken, http.StatusForbidden},
		{"pending media anonymous", http.MethodGet, "/api/media/pending", "", http.StatusUnauthorized},
		{"health as user", http.MethodGet, "/api/admin/health", userToken, http.StatusForbidden},
		{"create event as user", http.MethodPost, "/api/events", userToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := api.do(tt.method, tt.path, tt.token, nil)
			if code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, code)
			}
			expectSuccess(t, body, false)
		})
	}
}

// ============================================================================
// Auth Flow
// ============================================================================

func TestAuth_SignUpSignInStatus(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	userID, _ := api.signUp("alice@example.com", "Alice")

	code, body := api.do(http.MethodPost, "/api/auth/signin", "", model.SignInRequest{
		Email: "ALICE@example.com", Password: "hunter2hunter2",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", code, body)
	}
	token := body["token"].(string)

	code, body = api.do(http.MethodGet, "/api/auth/status", token, nil)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["user"].(map[string]interface{})["id"] != userID {
		t.Errorf("expected status for %s, got %v", userID, body["user"])
	}
}

func TestAuth_WrongPasswordReturnsNoToken(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.signUp("alice@example.com", "Alice")

	code, body := api.do(http.MethodPost, "/api/auth/signin", "", model.SignInRequest{
		Email: "alice@example.com", Password: "wrong-password",
	})
	if code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
	expectSuccess(t, body, false)
	if _, ok := body["token"]; ok {
		t.Error("expected no token on failed sign-in")
	}
	if body["message"] != "Invalid credentials" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestAuth_SignUpValidation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	api.signUp("alice@example.com", "Alice")

	code, body := api.do(http.MethodPost, "/api/auth/signup", "", model.SignUpRequest{Email: "bob@example.com"})
	if code != http.StatusBadRequest || body["message"] != "Missing fields" {
		t.Errorf("expected 400 Missing fields, got %d %v", code, body)
	}

	code, body = api.do(http.MethodPost, "/api/auth/signup", "", model.SignUpRequest{
		Email: "Alice@Example.com", Password: "another-pass", Name: "Alice Two",
	})
	if code != http.StatusConflict || body["message"] != "Email already registered" {
		t.Errorf("expected 409 for duplicate email, got %d %v", code, body)
	}

	code, _ = api.do(http.MethodPost, "/api/auth/signin", "", model.SignInRequest{Email: "alice@example.com"})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing password, got %d", code)
	}
}

func TestAuth_UpdateProfileKeepsUntouchedFields(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, token := api.signUp("alice@example.com", "Alice")

	pic := "https://cdn.example.com/a.png"
	api.do(http.MethodPut, "/api/auth/update-profile", token, model.UpdateProfileRequest{ProfilePicture: &pic})

	bio := "speedrunner"
	code, body := api.do(http.MethodPut, "/api/auth/update-profile", token, model.UpdateProfileRequest{Bio: &bio})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", code, body)
	}
	user := body["user"].(map[string]interface{})
	if user["bio"] != bio || user["name"] != "Alice" || user["profilePicture"] != pic {
		t.Errorf("unexpected profile %v", user)
	}
}

func TestAuth_EmailChange(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, token := api.signUp("alice@example.com", "Alice")
	api.signUp("bob@example.com", "Bob")

	code, body := api.do(http.MethodPost, "/api/auth/start-email-change", token, model.StartEmailChangeRequest{})
	if code != http.StatusBadRequest || body["message"] != "New email required" {
		t.Errorf("expected 400 New email required, got %d %v", code, body)
	}
	code, body = api.do(http.MethodPost, "/api/auth/start-email-change", token, model.StartEmailChangeRequest{NewEmail: "alice@new.example.com"})
	if code != http.StatusOK || body["message"] != "Verification codes sent" {
		t.Errorf("unexpected response %d %v", code, body)
	}

	code, _ = api.do(http.MethodPost, "/api/auth/change-email", token, model.ChangeEmailRequest{NewEmail: "bob@example.com"})
	if code != http.StatusConflict {
		t.Errorf("expected 409 for a taken email, got %d", code)
	}
	code, body = api.do(http.MethodPost, "/api/auth/change-email", token, model.ChangeEmailRequest{NewEmail: "alice@new.example.com"})
	if code != http.StatusOK || body["user"].(map[string]interface{})["email"] != "alice@new.example.com" {
		t.Errorf("unexpected response %d %v", code, body)
	}
}

func TestAuth_DiscordSyncPromotesAllowListedUsername(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	code, body := api.do(http.MethodPost, "/api/auth/discord-sync", "", model.DiscordSyncRequest{
		ID: "discord-1", Username: "ZaidShihadehGaming", DiscordID: "991",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", code, body)
	}
	user := body["user"].(map[string]interface{})
	if user["isAdmin"] != true {
		t.Errorf("expected allow-listed username to be admin, got %v", user)
	}
	if user["email"] != "zaidshihadehgaming@example.com" {
		t.Errorf("unexpected fallback email %v", user["email"])
	}
}

// ============================================================================
// Sanctions
// ============================================================================

func TestUsersAction_BanBlocksSignIn(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()
	aliceID, aliceToken := api.signUp("alice@example.com", "Alice")

	reason := "spam"
	code, body := api.do(http.MethodPost, "/api/users/action", adminToken, model.UserActionRequest{
		UserID: aliceID, Action: "ban", Reason: &reason,
	})
	if code != http.StatusOK || body["action"] != "ban" {
		t.Fatalf("unexpected ban response %d %v", code, body)
	}

	code, body = api.do(http.MethodPost, "/api/auth/signin", "", model.SignInRequest{
		Email: "alice@example.com", Password: "hunter2hunter2",
	})
	if code != http.StatusForbidden || body["kickReason"] != "spam" {
		t.Errorf("expected 403 with kickReason, got %d %v", code, body)
	}

	// Existing sessions are not re-checked
	code, _ = api.do(http.MethodGet, "/api/auth/status", aliceToken, nil)
	if code != http.StatusOK {
		t.Errorf("expected pre-ban token to remain usable, got %d", code)
	}
}

func TestUsersAction_TempbanExpires(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()
	aliceID, _ := api.signUp("alice@example.com", "Alice")

	zero := 0.0
	code, _ := api.do(http.MethodPost, "/api/users/action", adminToken, model.UserActionRequest{
		UserID: aliceID, Action: "tempban", Duration: &zero,
	})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero duration, got %d", code)
	}

	hour := 1.0
	code, body := api.do(http.MethodPost, "/api/users/action", adminToken, model.UserActionRequest{
		UserID: aliceID, Action: "tempban", Duration: &hour,
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", code, body)
	}

	signIn := model.SignInRequest{Email: "alice@example.com", Password: "hunter2hunter2"}
	if code, _ := api.do(http.MethodPost, "/api/auth/signin", "", signIn); code != http.StatusForbidden {
		t.Errorf("expected tempban to be effective, got %d", code)
	}

	api.clock.Advance(time.Hour + time.Second)
	if code, _ := api.do(http.MethodPost, "/api/auth/signin", "", signIn); code != http.StatusOK {
		t.Errorf("expected tempban to have lapsed, got %d", code)
	}
}

func TestUsersAction_KickThenResignup(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()
	aliceID, aliceToken := api.signUp("alice@example.com", "Alice")

	code, body := api.do(http.MethodPost, "/api/users/action", adminToken, model.UserActionRequest{
		UserID: aliceID, Action: "kick",
	})
	if code != http.StatusOK || body["kick"] == nil {
		t.Fatalf("unexpected kick response %d %v", code, body)
	}

	if code, _ := api.do(http.MethodGet, "/api/auth/status", aliceToken, nil); code != http.StatusUnauthorized {
		t.Errorf("expected kicked session to be rejected, got %d", code)
	}
	if _, body := api.do(http.MethodGet, "/api/users/kicks", adminToken, nil); len(body["kicks"].([]interface{})) != 1 {
		t.Errorf("expected one kick record, got %v", body["kicks"])
	}
	api.signUp("alice@example.com", "Alice Again")
}

func TestUsersAction_CannotSanctionAdmin(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	adminID, adminToken := api.admin()

	code, _ := api.do(http.MethodPost, "/api/users/action", adminToken, model.UserActionRequest{UserID: adminID, Action: "ban"})
	if code != http.StatusForbidden {
		t.Errorf("expected 403 for self sanction, got %d", code)
	}
	code, _ = api.do(http.MethodPost, "/api/users/action", adminToken, model.UserActionRequest{UserID: "nobody", Action: "ban"})
	if code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %d", code)
	}
	code, _ = api.do(http.MethodPost, "/api/users/role", adminToken, model.SetRoleRequest{UserID: adminID, IsAdmin: false})
	if code != http.StatusForbidden {
		t.Errorf("expected 403 for self demotion, got %d", code)
	}
}

// ============================================================================
// Events
// ============================================================================

func TestEvents_CreateListAndRSVP(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()
	_, userToken := api.signUp("alice@example.com", "Alice")

	code, _ := api.do(http.MethodPost, "/api/events", adminToken, map[string]interface{}{"title": "No start"})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 without startsAt, got %d", code)
	}

	later := api.clock.Now().Add(48 * time.Hour)
	sooner := api.clock.Now().Add(24 * time.Hour)
	api.do(http.MethodPost, "/api/events", adminToken, model.CreateEventRequest{Title: "Later", StartsAt: &later})
	_, body := api.do(http.MethodPost, "/api/events", adminToken, model.CreateEventRequest{Title: "Sooner", StartsAt: &sooner})
	eventID := body["event"].(map[string]interface{})["id"].(string)

	_, body = api.do(http.MethodGet, "/api/events", "", nil)
	events := body["events"].([]interface{})
	if len(events) != 2 || events[0].(map[string]interface{})["title"] != "Sooner" {
		t.Errorf("expected events sorted by start, got %v", events)
	}

	_, body = api.do(http.MethodPost, "/api/events/"+eventID+"/rsvp", userToken, nil)
	if body["rsvp"] != true || body["count"] != float64(1) {
		t.Errorf("expected rsvp on, got %v", body)
	}
	_, body = api.do(http.MethodGet, "/api/events/"+eventID+"/rsvp", userToken, nil)
	if body["rsvp"] != true {
		t.Errorf("expected rsvp lookup on, got %v", body)
	}
	_, body = api.do(http.MethodPost, "/api/events/"+eventID+"/rsvp", userToken, nil)
	if body["rsvp"] != false || body["count"] != float64(0) {
		t.Errorf("expected rsvp off, got %v", body)
	}

	code, body = api.do(http.MethodPost, "/api/events/missing/rsvp", userToken, nil)
	if code != http.StatusNotFound || body["message"] != "Event not found" {
		t.Errorf("expected 404 Event not found, got %d %v", code, body)
	}
}

func TestNotifications_WelcomeSeeded(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, token := api.signUp("alice@example.com", "Alice")

	_, body := api.do(http.MethodGet, "/api/notifications", token, nil)
	list := body["notifications"].([]interface{})
	if len(list) != 1 || list[0].(map[string]interface{})["title"] != model.WelcomeTitle {
		t.Errorf("expected welcome notice, got %v", list)
	}
}

// ============================================================================
// Media
// ============================================================================

func TestMedia_ReviewFlow(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()
	_, userToken := api.signUp("alice@example.com", "Alice")

	code, _ := api.do(http.MethodPost, "/api/media", userToken, model.CreateMediaRequest{Title: "Clip"})
	if code != http.StatusBadRequest {
		t.Errorf("expected 400 without url, got %d", code)
	}

	_, body := api.do(http.MethodPost, "/api/media", userToken, model.CreateMediaRequest{Title: "Clip", URL: "https://clips.example.com/1"})
	item := body["item"].(map[string]interface{})
	if item["status"] != "pending" || item["creditName"] != "Alice" {
		t.Errorf("unexpected submission %v", item)
	}
	mediaID := item["id"].(string)

	if _, body := api.do(http.MethodGet, "/api/media", "", nil); len(body["items"].([]interface{})) != 0 {
		t.Error("pending media must not appear in the public feed")
	}
	if _, body := api.do(http.MethodGet, "/api/media/pending", adminToken, nil); len(body["items"].([]interface{})) != 1 {
		t.Error("expected one pending item")
	}

	code, body = api.do(http.MethodPost, "/api/media/"+mediaID+"/approve", adminToken, nil)
	if code != http.StatusOK || body["item"].(map[string]interface{})["status"] != "approved" {
		t.Fatalf("unexpected approve response %d %v", code, body)
	}
	if code, _ := api.do(http.MethodPost, "/api/media/"+mediaID+"/reject", adminToken, nil); code != http.StatusConflict {
		t.Errorf("expected 409 on re-review, got %d", code)
	}
	if code, _ := api.do(http.MethodPost, "/api/media/unknown/approve", adminToken, nil); code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown media, got %d", code)
	}
	if _, body := api.do(http.MethodGet, "/api/media", "", nil); len(body["items"].([]interface{})) != 1 {
		t.Error("expected approved item in the public feed")
	}
}

func TestMedia_Comments(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, token := api.signUp("alice@example.com", "Alice")
	_, body := api.do(http.MethodPost, "/api/media", token, model.CreateMediaRequest{Title: "Clip", URL: "https://clips.example.com/1"})
	mediaID := body["item"].(map[string]interface{})["id"].(string)

	code, body := api.do(http.MethodPost, "/api/media/nope/comments", token, model.CreateCommentRequest{Message: "hi"})
	if code != http.StatusNotFound || body["message"] != "Media not found" {
		t.Errorf("expected 404 Media not found, got %d %v", code, body)
	}
	code, body = api.do(http.MethodPost, "/api/media/"+mediaID+"/comments", token, model.CreateCommentRequest{})
	if code != http.StatusBadRequest || body["message"] != "Message required" {
		t.Errorf("expected 400 Message required, got %d %v", code, body)
	}
	api.do(http.MethodPost, "/api/media/"+mediaID+"/comments", token, model.CreateCommentRequest{Message: "first"})
	api.do(http.MethodPost, "/api/media/"+mediaID+"/comments", token, model.CreateCommentRequest{Message: "second"})

	_, body = api.do(http.MethodGet, "/api/media/"+mediaID+"/comments", "", nil)
	comments := body["comments"].([]interface{})
	if len(comments) != 2 || comments[0].(map[string]interface{})["message"] != "first" {
		t.Errorf("expected comments in posting order, got %v", comments)
	}
}

// ============================================================================
// Reports and Contacts
// ============================================================================

func TestReports_MirrorIntoContacts(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()
	_, token := api.signUp("alice@example.com", "Alice")

	code, body := api.do(http.MethodPost, "/api/reports", token, model.CreateReportRequest{
		Type: "bug", Title: "Broken", Description: "It crashes",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d %v", code, body)
	}
	reportID := body["report"].(map[string]interface{})["id"].(string)

	_, body = api.do(http.MethodGet, "/api/reports/my", token, nil)
	mine := body["reports"].([]interface{})
	if len(mine) != 1 || mine[0].(map[string]interface{})["status"] != "pending" {
		t.Errorf("expected one pending report, got %v", mine)
	}

	_, body = api.do(http.MethodGet, "/api/contact/my", token, nil)
	contacts := body["contacts"].([]interface{})
	if len(contacts) != 1 {
		t.Fatalf("expected mirrored contact, got %v", contacts)
	}
	contact := contacts[0].(map[string]interface{})
	if contact["subject"] != "Report: Broken" || contact["category"] != "technical" || contact["status"] != "pending" {
		t.Errorf("unexpected mirrored contact %v", contact)
	}

	msg := "Fixed in next patch"
	status := "accepted"
	code, body = api.do(http.MethodPost, "/api/reports/update", adminToken, model.UpdateReportRequest{
		ID: reportID, Status: &status, AdminMessage: &msg,
	})
	report := body["report"].(map[string]interface{})
	if code != http.StatusOK || report["status"] != "accepted" || report["adminMessage"] != msg {
		t.Errorf("unexpected update %d %v", code, body)
	}

	bogus := "closed"
	if code, _ := api.do(http.MethodPost, "/api/reports/update", adminToken, model.UpdateReportRequest{ID: reportID, Status: &bogus}); code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", code)
	}
	if code, _ := api.do(http.MethodPost, "/api/reports/update", adminToken, model.UpdateReportRequest{ID: "missing", Status: &status}); code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown report, got %d", code)
	}
}

func TestContacts_SubmitAndRespond(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()
	_, token := api.signUp("alice@example.com", "Alice")

	code, body := api.do(http.MethodPost, "/api/contact", token, model.CreateContactRequest{
		Subject: "Hello", Category: "general", Message: "Love the streams",
	})
	if code != http.StatusOK || body["message"] != "Contact message submitted" {
		t.Fatalf("unexpected response %d %v", code, body)
	}
	contactID, _ := body["contactId"].(string)
	if contactID == "" {
		t.Fatal("expected contactId")
	}

	response := "Thanks!"
	status := "resolved"
	_, body = api.do(http.MethodPost, "/api/contact/update", adminToken, model.UpdateContactRequest{
		ID: contactID, Status: &status, Response: &response,
	})
	contact := body["contact"].(map[string]interface{})
	if contact["status"] != "resolved" || contact["respondedAt"] == nil {
		t.Errorf("unexpected contact %v", contact)
	}

	if _, body := api.do(http.MethodGet, "/api/contact", adminToken, nil); len(body["contacts"].([]interface{})) != 1 {
		t.Errorf("expected one contact in the admin inbox, got %v", body["contacts"])
	}
}

// ============================================================================
// Admin Operations
// ============================================================================

func TestAdmin_HealthAndBackfill(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()

	code, body := api.do(http.MethodGet, "/api/admin/health", adminToken, nil)
	if code != http.StatusOK || body["status"] != "ok" || body["storage"] != "memory" {
		t.Errorf("unexpected health %d %v", code, body)
	}
	if body["sweeperRunning"] != false || body["streamSubscribers"] != float64(0) {
		t.Errorf("unexpected worker state %v", body)
	}

	past := api.clock.Now().Add(-time.Minute)
	lapsed := &model.User{ID: "u_lapsed", Email: "lapsed@example.com", Name: "Lapsed", TempBannedUntil: &past}
	if err := api.store.Users().Create(context.Background(), lapsed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	code, body = api.do(http.MethodPost, "/api/admin/backfill", adminToken, nil)
	if code != http.StatusOK || body["message"] != "Backfill completed" || body["cleared"] != float64(1) {
		t.Errorf("unexpected backfill %d %v", code, body)
	}
}

func TestAdmin_StreamDeliversHubEvents(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	_, adminToken := api.admin()

	server := httptest.NewServer(api.handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/admin/stream", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to open stream: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event stream, got %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		t.Helper()
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				t.Fatalf("stream read failed: %v", err)
			}
			if strings.HasPrefix(line, "event: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "event: "))
			}
		}
	}

	if ev := readEvent(); ev != "connected" {
		t.Fatalf("expected connected event, got %q", ev)
	}
	api.hub.Publish(service.NewHubEvent(service.HubReportFiled, "u1", map[string]string{"title": "Broken"}))
	if ev := readEvent(); ev != string(service.HubReportFiled) {
		t.Errorf("expected %s, got %q", service.HubReportFiled, ev)
	}
}

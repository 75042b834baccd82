package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/forgo/community/api/internal/model"
	"github.com/forgo/community/api/internal/service"
)

// SessionResolver turns a bearer token into the live account it binds
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.User, error)
}

// Auth returns a middleware that requires a valid bearer token bound to an
// existing account. Ban status is not re-checked here.
func Auth(resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				model.NewUnauthorizedError("").WriteJSON(w)
				return
			}

			user, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) || errors.Is(err, service.ErrTokenExpired) {
					model.NewUnauthorizedError("").WriteJSON(w)
					return
				}
				slog.Error("session lookup failed",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				model.NewInternalError("").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin rejects callers whose stored role is not administrator.
// It must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil {
			model.NewUnauthorizedError("").WriteJSON(w)
			return
		}
		if !user.IsAdmin {
			model.NewForbiddenError("").WriteJSON(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUser extracts the authenticated account from context
func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserKey).(*model.User); ok {
		return user
	}
	return nil
}

// WithUser returns a copy of ctx carrying user, as Auth sets it
func WithUser(ctx context.Context, user *model.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	return context.WithValue(ctx, UserKey, user)
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/pkg/jwt"
	"nueracare-api/pkg/response"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	TokenIDKey   contextKey = "token_id"
	SessionKey   contextKey = "session"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate rejects requests without a valid identity session token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// IdentifySession attaches the session state without rejecting anonymous
// callers. A missing or invalid token yields a loaded, signed-out session.
func (m *AuthMiddleware) IdentifySession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := entity.SessionState{IsSessionLoaded: true}

		if tokenString, ok := bearerToken(r.Header.Get("Authorization")); ok {
			if claims, err := m.jwtService.ValidateToken(tokenString); err == nil {
				ctx = withClaims(ctx, claims)
				session.IsSignedIn = true
				session.UserID = claims.UserID()
			}
		}

		ctx = context.WithValue(ctx, SessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	// Extract token from "Bearer <token>"
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID())
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	ctx = context.WithValue(ctx, TokenIDKey, claims.SessionID)
	ctx = context.WithValue(ctx, SessionKey, entity.SessionState{
		IsSessionLoaded: true,
		IsSignedIn:      true,
		UserID:          claims.UserID(),
	})
	return ctx
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// GetSessionFromContext returns the identity session. Without one the
// session is reported as not yet loaded.
func GetSessionFromContext(ctx context.Context) entity.SessionState {
	session, ok := ctx.Value(SessionKey).(entity.SessionState)
	if !ok {
		return entity.SessionState{}
	}
	return session
}

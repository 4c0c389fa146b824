package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/pkg/response"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const actorKey contextKey = "actor"

// Claims is the token payload issued by the auth service.
type Claims struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ActorFrom returns the authenticated caller stored by AuthMiddleware.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// WithActor stores actor in ctx the way AuthMiddleware does.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// AuthMiddleware verifies HS256 bearer tokens and attaches the caller as a domain.Actor.
// Identities are trusted as issued; nothing is looked up.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "No token provided, authorization denied")
				return
			}

			// Extract the token from "Bearer <token>"
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				response.Unauthorized(w, "Invalid Authorization header format")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "Invalid token")
				return
			}

			actor, ok := actorFromClaims(claims)
			if !ok {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// actorFromClaims maps a token onto an actor. A missing type means a user token.
func actorFromClaims(claims *Claims) (domain.Actor, bool) {
	if claims.ID == "" {
		return domain.Actor{}, false
	}

	kind := domain.ActorUser
	if claims.Type != "" {
		kind = domain.ActorKind(claims.Type)
	}
	if !kind.IsValid() {
		return domain.Actor{}, false
	}

	actor := domain.Actor{Kind: kind, ID: claims.ID}
	if kind == domain.ActorUser {
		actor.Role = claims.Role
		if actor.Role == "" {
			actor.Role = domain.RoleUser
		}
	}
	return actor, true
}

// RequireRole lets through users holding one of roles. API clients are refused.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFrom(r.Context())
			if !ok || actor.Kind != domain.ActorUser {
				response.Forbidden(w, "Access denied. User authentication required.")
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "Access denied. Insufficient permissions.")
		})
	}
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response recorder to capture the status code
			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", recorder.statusCode),
				zap.Duration("duration", time.Since(start)),
			}

			switch {
			case recorder.statusCode >= 500:
				log.Error("request", fields...)
			case recorder.statusCode >= 400:
				log.Warn("request", fields...)
			default:
				log.Info("request", fields...)
			}
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *responseRecorder) WriteHeader(statusCode int) {
	rec.statusCode = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Ariel200609/TuTurnoYa/pkg/jwt"
	"github.com/Ariel200609/TuTurnoYa/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	ActorIDKey    contextKey = "actor_id"
	ActorTypeKey  contextKey = "actor_type"
	ActorEmailKey contextKey = "actor_email"
	TokenIDKey    contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		tokenString := parts[1]

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Check if token exists in Redis (not revoked)
		tokenKey := fmt.Sprintf("access_token:%s:%s", claims.ActorID.String(), claims.TokenID)
		exists, err := m.redisClient.Exists(r.Context(), tokenKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), ActorIDKey, claims.ActorID)
		ctx = context.WithValue(ctx, ActorTypeKey, claims.ActorType)
		ctx = context.WithValue(ctx, ActorEmailKey, claims.Email)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActorIDFromContext extracts the authenticated actor's ID from context
func GetActorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	actorID, ok := ctx.Value(ActorIDKey).(uuid.UUID)
	return actorID, ok
}

// GetActorTypeFromContext extracts the actor type from context
func GetActorTypeFromContext(ctx context.Context) (jwt.ActorType, bool) {
	actorType, ok := ctx.Value(ActorTypeKey).(jwt.ActorType)
	return actorType, ok
}

// GetActorEmailFromContext extracts the actor email from context
func GetActorEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ActorEmailKey).(string)
	return email, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

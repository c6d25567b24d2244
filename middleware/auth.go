package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	actorKey           = "actor"
	sessionCachePrefix = "session:"
)

// SessionAuthMiddleware verifies the bearer session token issued by the auth
// service and stores the resulting Actor in the context. Verified sessions are
// cached in Redis under the token hash; cache may be nil.
func SessionAuthMiddleware(secret []byte, cache *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := c.Request.Context()
		cacheKey := sessionCachePrefix + utils.HashToken(tokenString)

		claims, err := cachedSession(ctx, cache, cacheKey)
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Warn("Session cache lookup failed, verifying token", zap.Error(err))
		}
		if claims == nil {
			claims, err = utils.ValidateToken(secret, tokenString)
			if err != nil {
				utils.JSONError(c, http.StatusUnauthorized, "Invalid session token")
				return
			}
			cacheSession(ctx, cache, cacheKey, claims, ttl)
		}

		role, err := models.ParseRole(claims.Role)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unknown role")
			return
		}

		c.Set(actorKey, models.Actor{UserID: claims.UserID, Email: claims.Email, Role: role})
		c.Next()
	}
}

func cachedSession(ctx context.Context, cache *redis.Client, key string) (*utils.SessionClaims, error) {
	if cache == nil {
		return nil, nil
	}
	raw, err := cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var claims utils.SessionClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, err
	}
	if !claims.ExpiresAt.IsZero() && time.Now().After(claims.ExpiresAt) {
		return nil, nil
	}
	return &claims, nil
}

// cacheSession stores the claims until the token expires or ttl elapses, whichever is sooner.
func cacheSession(ctx context.Context, cache *redis.Client, key string, claims *utils.SessionClaims, ttl time.Duration) {
	if cache == nil || ttl <= 0 {
		return
	}
	if !claims.ExpiresAt.IsZero() {
		if remaining := time.Until(claims.ExpiresAt); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, key, raw, ttl).Err(); err != nil {
		zap.L().Warn("Failed to cache session", zap.Error(err))
	}
}

// ActorFromContext returns the authenticated actor, or the zero Actor.
func ActorFromContext(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}

// WithActor stores an actor in the context. Used by tests and internal callers.
func WithActor(c *gin.Context, actor models.Actor) {
	c.Set(actorKey, actor)
}

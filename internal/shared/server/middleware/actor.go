package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/auth"
	"recruit-backend/internal/shared/server/respond"
)

const (
	actorIDKey   = "actorId"
	actorRoleKey = "actorRole"
)

// Recognized actor roles.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// Actor resolves who is acting on every request and stores the identity in
// context. Identity comes from a signed token, or in non-production
// environments from X-Actor-Id/X-Actor-Role headers. There is no ambient
// process-wide current user; every downstream call receives the actor ID
// explicitly.
func Actor(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/auth/google/") || path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			c.Set(actorIDKey, claims.Sub)
			c.Set(actorRoleKey, normalizeRole(claims.Role))
			c.Next()
			return
		}

		if env == "production" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		actorID := strings.TrimSpace(c.GetHeader("X-Actor-Id"))
		if actorID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		c.Set(actorIDKey, actorID)
		c.Set(actorRoleKey, normalizeRole(c.GetHeader("X-Actor-Role")))
		c.Next()
	}
}

// ActorIDFromContext fetches the actor ID set by the Actor middleware.
func ActorIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(actorIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// ActorRoleFromContext fetches the actor role set by the Actor middleware.
func ActorRoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(actorRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}

// IsAdmin reports whether the acting identity has the admin role.
func IsAdmin(c *gin.Context) bool {
	return ActorRoleFromContext(c) == RoleAdmin
}

func normalizeRole(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RoleRecruiter:
		return RoleRecruiter
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleCandidate
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newActorRouter(env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Actor(env))
	r.GET("/api/v1/applications", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"actorId":   ActorIDFromContext(c),
			"actorRole": ActorRoleFromContext(c),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestActorDevHeaders(t *testing.T) {
	r := newActorRouter("dev")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("X-Actor-Id", "recruiter-1")
	req.Header.Set("X-Actor-Role", "recruiter")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
}

func TestActorMissingIdentityRejected(t *testing.T) {
	r := newActorRouter("dev")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestActorProductionIgnoresDevHeaders(t *testing.T) {
	r := newActorRouter("production")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("X-Actor-Id", "admin-1")
	req.Header.Set("X-Actor-Role", "admin")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without a signed token", resp.Code)
	}
}

func TestActorMalformedBearerRejected(t *testing.T) {
	r := newActorRouter("dev")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestActorSkipsHealth(t *testing.T) {
	r := newActorRouter("production")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 without identity", resp.Code)
	}
}

func TestActorAllowsOptionsWithoutIdentity(t *testing.T) {
	r := newActorRouter("production")
	r.OPTIONS("/api/v1/applications", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/applications", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.Code)
	}
}

func TestNormalizeRoleDefaultsToCandidate(t *testing.T) {
	cases := map[string]string{
		"recruiter": RoleRecruiter,
		"admin":     RoleAdmin,
		"candidate": RoleCandidate,
		"":          RoleCandidate,
		"root":      RoleCandidate,
	}
	for raw, want := range cases {
		if got := normalizeRole(raw); got != want {
			t.Fatalf("normalizeRole(%q) = %s, want %s", raw, got, want)
		}
	}
}

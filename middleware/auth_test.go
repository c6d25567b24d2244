package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/utils"

	"github.com/gin-gonic/gin"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{SessionAuthMiddleware(testSecret, nil, time.Minute)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		actor := ActorFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": actor.UserID, "role": actor.Role.String()})
	})
	r.GET("/me", handlers...)
	return r
}

func token(t *testing.T, claims utils.SessionClaims, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateToken(testSecret, claims, ttl)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionAuthAcceptsValidToken(t *testing.T) {
	r := newAuthRouter()
	tok := token(t, utils.SessionClaims{UserID: "S1", Email: "s1@example.com", Role: "user"}, time.Hour)

	w := doGet(r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"role":"user","userId":"S1"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestSessionAuthRejects(t *testing.T) {
	r := newAuthRouter()
	otherSecret, _ := utils.GenerateToken([]byte("other"), utils.SessionClaims{UserID: "S1"}, time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + otherSecret},
		{"expired", "Bearer " + token(t, utils.SessionClaims{UserID: "S1"}, -time.Minute)},
		{"unknown role", "Bearer " + token(t, utils.SessionClaims{UserID: "S1", Role: "superuser"}, time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, tt.header)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newAuthRouter(RequireRole(models.RoleProvider))

	seeker := token(t, utils.SessionClaims{UserID: "S1", Role: "user"}, time.Hour)
	if w := doGet(r, "Bearer "+seeker); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seeker, got %d", w.Code)
	}

	provider := token(t, utils.SessionClaims{UserID: "P1-owner", Role: "service_provider"}, time.Hour)
	if w := doGet(r, "Bearer "+provider); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for provider, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other clients must not share a limiter, got %d", w.Code)
	}
}

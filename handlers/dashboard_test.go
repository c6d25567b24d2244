package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Oumer1234/service-marketplace/middleware"
	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/utils"

	"github.com/gin-gonic/gin"
)

func newDashboardRouter(svc *stubBookingService, actor models.Actor) *gin.Engine {
	h := NewDashboardHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.WithActor(c, actor)
		c.Next()
	})
	r.GET("/dashboard", h.OverviewHandler)
	r.GET("/dashboard/provider/bookings", h.ProviderBookingsHandler)
	r.GET("/dashboard/provider/stats", h.ProviderStatsHandler)
	r.GET("/dashboard/user/bookings", h.UserBookingsHandler)
	return r
}

func TestDashboardHandlers(t *testing.T) {
	owner := models.Actor{UserID: "P1-owner", Role: models.RoleProvider}
	r := newDashboardRouter(&stubBookingService{}, owner)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/dashboard/provider/stats", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"totalRevenue":100`) {
		t.Fatalf("unexpected stats response %d %s", w.Code, w.Body.String())
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/dashboard/provider/bookings", nil))
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("unexpected bookings response %d %s", w.Code, w.Body.String())
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"role":"service_provider"`) {
		t.Fatalf("unexpected overview response %d %s", w.Code, w.Body.String())
	}
}

func TestDashboardInternalErrorIsHidden(t *testing.T) {
	r := newDashboardRouter(&stubBookingService{err: errors.New("cursor timeout")}, seeker)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/dashboard/user/bookings", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "cursor") {
		t.Fatalf("internal error leaked: %s", w.Body.String())
	}
}

type stubInbox struct {
	userID string
	err    error
}

func (s *stubInbox) Inbox(_ context.Context, userID string) ([]models.Notification, error) {
	s.userID = userID
	if s.err != nil {
		return nil, s.err
	}
	return []models.Notification{{ID: "n1", RecipientID: userID, Type: models.NotificationBookingAccepted}}, nil
}

func TestListNotificationsHandler(t *testing.T) {
	inbox := &stubInbox{}
	h := NewNotificationHandler(inbox)

	r := gin.New()
	r.GET("/notifications", func(c *gin.Context) {
		middleware.WithActor(c, seeker)
		c.Next()
	}, h.ListNotificationsHandler)
	r.GET("/anon/notifications", h.ListNotificationsHandler)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	if w.Code != http.StatusOK || inbox.userID != "S1" || !strings.Contains(w.Body.String(), `"id":"n1"`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/anon/notifications", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHealthHandlerBeforeFirstCheck(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthHandler(utils.NewHealthMonitor(nil)))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before any check, got %d", w.Code)
	}
}

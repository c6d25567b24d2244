package handlers

import (
	"net/http"

	"github.com/Oumer1234/service-marketplace/middleware"
	"github.com/Oumer1234/service-marketplace/services/booking"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc booking.BookingService
}

func NewDashboardHandler(svc booking.BookingService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// OverviewHandler handles GET /dashboard.
func (h *DashboardHandler) OverviewHandler(c *gin.Context) {
	overview, err := h.svc.Overview(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ProviderBookingsHandler handles GET /dashboard/provider/bookings.
func (h *DashboardHandler) ProviderBookingsHandler(c *gin.Context) {
	bookings, err := h.svc.ListProviderBookings(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ProviderStatsHandler handles GET /dashboard/provider/stats.
func (h *DashboardHandler) ProviderStatsHandler(c *gin.Context) {
	stats, err := h.svc.ComputeStats(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UserBookingsHandler handles GET /dashboard/user/bookings.
func (h *DashboardHandler) UserBookingsHandler(c *gin.Context) {
	bookings, err := h.svc.ListSeekerBookings(c.Request.Context(), middleware.ActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

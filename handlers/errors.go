package handlers

import (
	"github.com/Oumer1234/service-marketplace/services/booking"
	"github.com/Oumer1234/service-marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error onto the JSON error envelope.
func respondError(c *gin.Context, err error) {
	code := booking.ErrorCode(err)
	status := booking.HTTPStatus(code)
	if code == booking.CodeInternal {
		getLogger(c).Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	utils.JSONError(c, status, booking.PublicMessage(err))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorly/models"
	"mentorly/services/booking"
	"mentorly/utils"
)

// BookingHandler exposes the booking orchestrator.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// BookAppointment handles POST /api/book-appointment.
func (h *BookingHandler) BookAppointment(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Info("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Code: "invalidInput", Message: "Invalid booking request", Details: err.Error()})
		return
	}

	result, err := h.Service.BookAppointment(c.Request.Context(), req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

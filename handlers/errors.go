package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorly/database/repository"
	"mentorly/services/admin"
	"mentorly/services/booking"
	"mentorly/utils"
)

var bookingStatus = map[booking.ErrorKind]int{
	booking.KindNotFound:        http.StatusNotFound,
	booking.KindIneligible:      http.StatusUnprocessableEntity,
	booking.KindInvalidWindow:   http.StatusBadRequest,
	booking.KindSlotUnavailable: http.StatusConflict,
	booking.KindDataIntegrity:   http.StatusInternalServerError,
	booking.KindStorageFailure:  http.StatusInternalServerError,
}

// writeBookingError maps a booking failure to its HTTP status. Operator
// faults keep their details out of the response body.
func writeBookingError(c *gin.Context, err error) {
	kind := booking.KindOf(err)
	status, ok := bookingStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	var be *booking.BookingError
	message := "Booking failed"
	if errors.As(err, &be) && be.ClientError() {
		message = be.Message
	}
	if status >= http.StatusInternalServerError {
		getLogger(c).Error("Booking failed", zap.String("kind", string(kind)), zap.Error(err))
	} else {
		getLogger(c).Info("Booking rejected", zap.String("kind", string(kind)), zap.Error(err))
	}
	c.JSON(status, utils.ErrorResponse{Code: string(kind), Message: message})
}

// writeStoreError maps admin and repository failures.
func writeStoreError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, admin.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "invalidInput", action, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "notFound", action, err.Error())
	case errors.Is(err, repository.ErrReferenced):
		utils.JSONError(c, http.StatusConflict, "referenced", action, err.Error())
	case errors.Is(err, repository.ErrDataIntegrity):
		getLogger(c).Error(action, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "dataIntegrity", action, "")
	default:
		getLogger(c).Error(action, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "storageFailure", action, "")
	}
}

package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking endpoints
	BookAppointment gin.HandlerFunc

	// Directory endpoints
	RegisterMentor    gin.HandlerFunc
	ListMentors       gin.HandlerFunc
	DeleteMentor      gin.HandlerFunc
	DeleteAllMentors  gin.HandlerFunc
	RegisterStudent   gin.HandlerFunc
	ListStudents      gin.HandlerFunc
	DeleteStudent     gin.HandlerFunc
	DeleteAllStudents gin.HandlerFunc

	// Ledger endpoints
	ListAppointments      gin.HandlerFunc
	DeleteAppointment     gin.HandlerFunc
	DeleteAllAppointments gin.HandlerFunc
	ListPayments          gin.HandlerFunc
	DeleteAllPayments     gin.HandlerFunc
}

// NewHandlerBundle wires the booking and admin handlers into a bundle.
func NewHandlerBundle(bh *BookingHandler, ah *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		BookAppointment: bh.BookAppointment,

		RegisterMentor:    ah.RegisterMentorHandler,
		ListMentors:       ah.ListMentorsHandler,
		DeleteMentor:      ah.DeleteMentorHandler,
		DeleteAllMentors:  ah.DeleteAllMentorsHandler,
		RegisterStudent:   ah.RegisterStudentHandler,
		ListStudents:      ah.ListStudentsHandler,
		DeleteStudent:     ah.DeleteStudentHandler,
		DeleteAllStudents: ah.DeleteAllStudentsHandler,

		ListAppointments:      ah.ListAppointmentsHandler,
		DeleteAppointment:     ah.DeleteAppointmentHandler,
		DeleteAllAppointments: ah.DeleteAllAppointmentsHandler,
		ListPayments:          ah.ListPaymentsHandler,
		DeleteAllPayments:     ah.DeleteAllPaymentsHandler,
	}
}

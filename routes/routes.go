package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mentorly/handlers"
	"mentorly/utils"
)

// RegisterBookingRoutes registers the booking endpoint.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/book-appointment", hb.BookAppointment)
}

// RegisterDirectoryRoutes registers mentor and student management endpoints.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	mentors := r.Group("/api/mentors")
	{
		mentors.POST("", hb.RegisterMentor)
		mentors.GET("", hb.ListMentors)
		mentors.DELETE("", hb.DeleteAllMentors)
		mentors.DELETE("/:id", hb.DeleteMentor)
	}

	students := r.Group("/api/students")
	{
		students.POST("", hb.RegisterStudent)
		students.GET("", hb.ListStudents)
		students.DELETE("", hb.DeleteAllStudents)
		students.DELETE("/:id", hb.DeleteStudent)
	}
}

// RegisterLedgerRoutes registers appointment and payment admin endpoints.
func RegisterLedgerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	appointments := r.Group("/api/appointments")
	{
		appointments.GET("", hb.ListAppointments)
		appointments.DELETE("", hb.DeleteAllAppointments)
		appointments.DELETE("/:id", hb.DeleteAppointment)
	}

	payments := r.Group("/api/payments")
	{
		payments.GET("", hb.ListPayments)
		payments.DELETE("", hb.DeleteAllPayments)
	}
}

// RegisterHealthRoute reports the latest snapshot from the health monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterLedgerRoutes(r, hb)
	RegisterHealthRoute(r)
}

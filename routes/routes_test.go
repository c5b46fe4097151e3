package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	memoryRepo "mentorly/database/repository/memory"
	"mentorly/handlers"
	"mentorly/models"
	"mentorly/services/admin"
	"mentorly/services/booking"
	"mentorly/utils"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func createTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	store := memoryRepo.NewStore()

	bookingSvc := booking.NewBookingService(store, store, logger)
	adminSvc := admin.NewAdminService(store, store, logger)
	hb := handlers.NewHandlerBundle(handlers.NewBookingHandler(bookingSvc), handlers.NewAdminHandler(adminSvc))

	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, hb)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestBookingFlow(t *testing.T) {
	r := createTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/mentors", models.MentorInput{Name: "Rosalind", Expertise: []string{"biology"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	mentor := decode[models.Mentor](t, w)

	w = doJSON(t, r, http.MethodPost, "/api/students", models.StudentInput{Name: "Sam", AreaOfInterest: "biology"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	student := decode[models.Student](t, w)

	w = doJSON(t, r, http.MethodPost, "/api/students", models.StudentInput{Name: "Frida", AreaOfInterest: "art"})
	require.Equal(t, http.StatusCreated, w.Code)
	artist := decode[models.Student](t, w)

	req := models.BookingRequest{StudentID: student.ID, MentorID: mentor.ID, Date: "2024-05-01", StartTime: "10:00", Duration: 30, Amount: 2500}
	w = doJSON(t, r, http.MethodPost, "/api/book-appointment", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	result := decode[models.BookingResult](t, w)
	assert.Equal(t, models.StateCommitted, result.State)
	assert.Equal(t, result.Appointment.ID, result.Payment.AppointmentID)

	tests := []struct {
		name   string
		mutate func(r *models.BookingRequest)
		status int
		code   string
	}{
		{"overlap", func(r *models.BookingRequest) { r.StartTime = "10:15" }, http.StatusConflict, "slotUnavailable"},
		{"unknown student", func(r *models.BookingRequest) { r.StudentID = "nobody" }, http.StatusNotFound, "notFound"},
		{"ineligible", func(r *models.BookingRequest) { r.StudentID = artist.ID; r.StartTime = "12:00" }, http.StatusUnprocessableEntity, "ineligible"},
		{"whole day", func(r *models.BookingRequest) { r.StartTime = "12:00"; r.Duration = 1440 }, http.StatusBadRequest, "invalidWindow"},
		{"oversized duration", func(r *models.BookingRequest) { r.StartTime = "12:00"; r.Duration = math.MaxInt }, http.StatusBadRequest, "invalidWindow"},
		{"negative amount", func(r *models.BookingRequest) { r.StartTime = "12:00"; r.Amount = -1 }, http.StatusBadRequest, "invalidInput"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := req
			tt.mutate(&body)
			w := doJSON(t, r, http.MethodPost, "/api/book-appointment", body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[utils.ErrorResponse](t, w).Code)
		})
	}

	w = doJSON(t, r, http.MethodGet, "/api/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	appts := decode[map[string][]models.Appointment](t, w)
	assert.Len(t, appts["appointments"], 1)

	// Referenced rows cannot be deleted until payments are gone.
	w = doJSON(t, r, http.MethodDelete, "/api/mentors/"+mentor.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/appointments/"+result.Appointment.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[models.DeleteSummary](t, w).Deleted)
	w = doJSON(t, r, http.MethodDelete, "/api/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/mentors/"+mentor.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/mentors/"+mentor.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := createTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/mentors", map[string]any{"name": "NoTags"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/mentors", models.MentorInput{Name: "Blank", Expertise: []string{" "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalidInput", decode[utils.ErrorResponse](t, w).Code)

	w = doJSON(t, r, http.MethodPost, "/api/book-appointment", map[string]any{"student_id": "s"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthRoute(t *testing.T) {
	r := createTestRouter(t)

	utils.CheckHealth(context.Background(), map[string]utils.Pinger{"store": stubPinger{}})
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	utils.CheckHealth(context.Background(), map[string]utils.Pinger{"store": stubPinger{err: context.DeadlineExceeded}})
	w = doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, decode[utils.HealthStatus](t, w).Checks["store"])
}

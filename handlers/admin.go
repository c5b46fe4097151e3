package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorly/models"
	"mentorly/services/admin"
	"mentorly/utils"
)

// AdminHandler serves registration and the bulk admin routes.
type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) RegisterMentorHandler(c *gin.Context) {
	var in models.MentorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		getLogger(c).Info("Invalid mentor registration", zap.Error(err))
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Code: "invalidInput", Message: "Invalid mentor", Details: err.Error()})
		return
	}
	mentor, err := h.Service.RegisterMentor(c.Request.Context(), in)
	if err != nil {
		writeStoreError(c, "Failed to register mentor", err)
		return
	}
	c.JSON(http.StatusCreated, mentor)
}

func (h *AdminHandler) RegisterStudentHandler(c *gin.Context) {
	var in models.StudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		getLogger(c).Info("Invalid student registration", zap.Error(err))
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Code: "invalidInput", Message: "Invalid student", Details: err.Error()})
		return
	}
	student, err := h.Service.RegisterStudent(c.Request.Context(), in)
	if err != nil {
		writeStoreError(c, "Failed to register student", err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (h *AdminHandler) ListMentorsHandler(c *gin.Context) {
	mentors, err := h.Service.ListMentors(c.Request.Context())
	if err != nil {
		writeStoreError(c, "Failed to fetch mentors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

func (h *AdminHandler) ListStudentsHandler(c *gin.Context) {
	students, err := h.Service.ListStudents(c.Request.Context())
	if err != nil {
		writeStoreError(c, "Failed to fetch students", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *AdminHandler) ListAppointmentsHandler(c *gin.Context) {
	appts, err := h.Service.ListAppointments(c.Request.Context())
	if err != nil {
		writeStoreError(c, "Failed to fetch appointments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *AdminHandler) ListPaymentsHandler(c *gin.Context) {
	payments, err := h.Service.ListPayments(c.Request.Context())
	if err != nil {
		writeStoreError(c, "Failed to fetch payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h *AdminHandler) DeleteMentorHandler(c *gin.Context) {
	h.deleteOne(c, "Failed to delete mentor", h.Service.DeleteMentor)
}

func (h *AdminHandler) DeleteStudentHandler(c *gin.Context) {
	h.deleteOne(c, "Failed to delete student", h.Service.DeleteStudent)
}

func (h *AdminHandler) DeleteAppointmentHandler(c *gin.Context) {
	h.deleteOne(c, "Failed to delete appointment", h.Service.DeleteAppointment)
}

func (h *AdminHandler) DeleteAllMentorsHandler(c *gin.Context) {
	h.deleteAll(c, "Failed to delete mentors", h.Service.DeleteAllMentors)
}

func (h *AdminHandler) DeleteAllStudentsHandler(c *gin.Context) {
	h.deleteAll(c, "Failed to delete students", h.Service.DeleteAllStudents)
}

func (h *AdminHandler) DeleteAllAppointmentsHandler(c *gin.Context) {
	h.deleteAll(c, "Failed to delete appointments", h.Service.DeleteAllAppointments)
}

func (h *AdminHandler) DeleteAllPaymentsHandler(c *gin.Context) {
	h.deleteAll(c, "Failed to delete payments", h.Service.DeleteAllPayments)
}

type deleteOneFunc func(ctx context.Context, id string) error

func (h *AdminHandler) deleteOne(c *gin.Context, action string, del deleteOneFunc) {
	id := c.Param("id")
	if err := del(c.Request.Context(), id); err != nil {
		writeStoreError(c, action, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *AdminHandler) deleteAll(c *gin.Context, action string, del func(ctx context.Context) (int64, error)) {
	n, err := del(c.Request.Context())
	if err != nil {
		writeStoreError(c, action, err)
		return
	}
	c.JSON(http.StatusOK, models.DeleteSummary{Deleted: n})
}

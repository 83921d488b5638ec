package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dental-clinic-api/internal/model"
	"dental-clinic-api/internal/slots"
	"dental-clinic-api/internal/store"
)

func (h *Handler) GenerateTimeSlots(c *gin.Context) {
	if err := h.gen.Generate(c.Request.Context(), slots.DefaultDaysAhead); err != nil {
		h.log.Error("slot generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slots."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slots generated successfully."})
}

type scheduleRequest struct {
	UserID     string `json:"userId"`
	DentistID  string `json:"dentistId"`
	TimeSlotID string `json:"timeSlotId"`
}

func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return
	}
	if req.UserID == "" || req.DentistID == "" || req.TimeSlotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return
	}

	slot, err := h.store.TimeSlotByID(c.Request.Context(), req.TimeSlotID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found."})
		return
	}
	if err != nil {
		h.log.Error("schedule: slot lookup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}
	if slot.IsBooked {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot is already booked."})
		return
	}

	appt := &model.Appointment{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		DentistID:  req.DentistID,
		TimeSlotID: req.TimeSlotID,
	}
	if err := h.store.BookAppointment(c.Request.Context(), appt); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			// lost the slot between the check above and the write
			c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot is already booked."})
			return
		}
		h.log.Error("schedule: booking failed", zap.String("timeSlotId", req.TimeSlotID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked successfully.", "appointment": appt})
}

func (h *Handler) GetTimeSlots(c *gin.Context) {
	dentistID := c.Param("dentistId")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date query parameter is required."})
		return
	}

	available, err := h.store.AvailableSlots(c.Request.Context(), dentistID, date)
	if err != nil {
		h.log.Error("fetching slots failed", zap.String("dentistId", dentistID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
		return
	}
	if available == nil {
		available = []model.TimeSlot{}
	}
	c.JSON(http.StatusOK, available)
}

func (h *Handler) GetAllDentists(c *gin.Context) {
	dentists, err := h.store.ListDentists(c.Request.Context())
	if err != nil {
		h.log.Error("fetching dentists failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dentists."})
		return
	}
	if dentists == nil {
		dentists = []model.Dentist{}
	}
	c.JSON(http.StatusOK, dentists)
}

func (h *Handler) GetUserAppointments(c *gin.Context) {
	userID := c.Param("userId")

	appointments, err := h.store.AppointmentsByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("fetching appointments failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments."})
		return
	}
	if appointments == nil {
		appointments = []model.AppointmentDetail{}
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id := c.Param("id")

	err := h.store.CancelAppointment(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found."})
		return
	}
	if err != nil {
		h.log.Error("cancel failed", zap.String("appointmentId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully."})
}

type updateAppointmentRequest struct {
	NewTimeSlotID string `json:"newTimeSlotId"`
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id := c.Param("id")

	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewTimeSlotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New time slot ID is required."})
		return
	}

	appt, err := h.store.AppointmentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found."})
			return
		}
		h.log.Error("update: appointment lookup", zap.String("appointmentId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment."})
		return
	}

	// rebooking the slot already held: slot stays booked, nothing to move
	if appt.TimeSlotID == req.NewTimeSlotID {
		c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully.", "updatedAppointment": appt})
		return
	}

	newSlot, err := h.store.TimeSlotByID(c.Request.Context(), req.NewTimeSlotID)
	if err != nil || newSlot.IsBooked {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			h.log.Error("update: slot lookup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected time slot is not available."})
		return
	}

	updated, err := h.store.RescheduleAppointment(c.Request.Context(), id, req.NewTimeSlotID)
	if err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Selected time slot is not available."})
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found."})
			return
		}
		h.log.Error("update: reschedule failed", zap.String("appointmentId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully.", "updatedAppointment": updated})
}

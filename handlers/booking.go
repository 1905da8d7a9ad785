package handlers

import (
	"net/http"
	"strconv"

	"fixitnow/middleware"
	"fixitnow/models"
	"fixitnow/services/booking"
	"fixitnow/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.CreateBooking(middleware.ActorID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking request created successfully",
		"booking": resp,
	})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	resp, err := h.Service.GetBooking(c.Param("id"), middleware.ActorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles PUT /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var update models.BookingStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.UpdateStatus(c.Param("id"), middleware.ActorID(c), update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking status updated successfully",
		"booking": resp,
	})
}

// ListMyBookings handles the party-scoped list endpoints.
func (h *BookingHandler) ListMyBookings(asProvider bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status *models.BookingStatus
		if raw := c.Query("status"); raw != "" {
			s := models.BookingStatus(raw)
			status = &s
		}

		page := models.PageRequest{
			Page:      queryInt(c, "page", 0),
			Size:      queryInt(c, "size", 20),
			SortBy:    c.Query("sort_by"),
			SortOrder: c.Query("sort_order"),
		}

		result, err := h.Service.ListBookings(middleware.ActorID(c), asProvider, status, page)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ListUpcoming handles the party-scoped upcoming endpoints.
func (h *BookingHandler) ListUpcoming(asProvider bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := h.Service.ListUpcoming(middleware.ActorID(c), asProvider)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

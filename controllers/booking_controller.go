package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dorm-backend/middleware"
	"dorm-backend/services"
	"dorm-backend/utils"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

// GetBookings lists the caller's bookings; staff see everyone's.
func (bc *BookingController) GetBookings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	bookings, err := bc.Bookings.List(user)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CreateBooking registers a pending booking for the authenticated
// student, subject to the room-exists, room-full and gender gates.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var in services.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	booking, err := bc.Bookings.Create(user, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (bc *BookingController) GetBookingDetails(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	booking, err := bc.Bookings.GetByID(user, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking is the staff review flow: approve (assigning a bed),
// reject (with a reason) or adjust dates.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in services.UpdateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	booking, err := bc.Bookings.Update(id, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking cancels a booking and releases its bed, if one was
// assigned.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := bc.Bookings.Delete(user, id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Booking canceled successfully"})
}

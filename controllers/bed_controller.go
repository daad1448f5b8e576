package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dorm-backend/services"
	"dorm-backend/utils"
)

type BedController struct {
	Beds *services.BedService
}

func NewBedController(beds *services.BedService) *BedController {
	return &BedController{Beds: beds}
}

// GetBeds lists beds, filterable by room_id, bed_number and is_occupied
// query params.
func (bc *BedController) GetBeds(c *gin.Context) {
	var number *string
	if raw := c.Query("bed_number"); raw != "" {
		number = &raw
	}

	beds, err := bc.Beds.List(services.BedFilter{
		RoomID:     uintQuery(c, "room_id"),
		BedNumber:  number,
		IsOccupied: boolQuery(c, "is_occupied"),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, beds)
}

// CreateBed adds a bed to a room, subject to the capacity guard.
func (bc *BedController) CreateBed(c *gin.Context) {
	var in services.CreateBedInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	bed, err := bc.Beds.Create(in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bed)
}

// UpdateBed changes occupancy or display number and recomputes the
// owning room's full flag.
func (bc *BedController) UpdateBed(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in services.UpdateBedInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	bed, err := bc.Beds.Update(id, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bed)
}

// DeleteBed removes a bed; surviving siblings are renumbered.
func (bc *BedController) DeleteBed(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := bc.Beds.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Bed deleted successfully"})
}

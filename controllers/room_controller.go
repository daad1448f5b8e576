package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dorm-backend/services"
	"dorm-backend/utils"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

// GetRooms lists rooms, filterable by dorm_id, floor and capacity query
// params.
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.Rooms.List(services.RoomFilter{
		DormID:   uintQuery(c, "dorm_id"),
		Floor:    intQuery(c, "floor"),
		Capacity: uintQuery(c, "capacity"),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// CreateRoom creates a room. Without an explicit room_number the next
// number on that floor is assigned; with a capacity, beds are
// auto-populated.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var in services.CreateRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room, err := rc.Rooms.Create(in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (rc *RoomController) GetRoomDetails(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	room, err := rc.Rooms.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetAvailableBeds reports the current count of unoccupied beds.
func (rc *RoomController) GetAvailableBeds(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	free, err := rc.Rooms.AvailableBeds(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": id, "available_beds": free})
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := rc.Rooms.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room deleted successfully"})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dorm-backend/services"
	"dorm-backend/utils"
)

type DormController struct {
	Dorms *services.DormService
}

func NewDormController(dorms *services.DormService) *DormController {
	return &DormController{Dorms: dorms}
}

// GetDorms lists dorms, filterable by name, location and
// gender_restriction query params.
func (dc *DormController) GetDorms(c *gin.Context) {
	dorms, err := dc.Dorms.List(services.DormFilter{
		Name:              c.Query("name"),
		Location:          c.Query("location"),
		GenderRestriction: c.Query("gender_restriction"),
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dorms)
}

func (dc *DormController) CreateDorm(c *gin.Context) {
	var in services.CreateDormInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	dorm, err := dc.Dorms.Create(in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dorm)
}

// GetDormDetails returns one dorm with its rooms and beds preloaded.
func (dc *DormController) GetDormDetails(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	dorm, err := dc.Dorms.GetByID(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dorm)
}

func (dc *DormController) DeleteDorm(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := dc.Dorms.Delete(id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Dorm deleted successfully"})
}

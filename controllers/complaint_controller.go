package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dorm-backend/middleware"
	"dorm-backend/services"
	"dorm-backend/utils"
)

type ComplaintController struct {
	Complaints *services.ComplaintService
}

func NewComplaintController(complaints *services.ComplaintService) *ComplaintController {
	return &ComplaintController{Complaints: complaints}
}

func (cc *ComplaintController) GetComplaints(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	complaints, err := cc.Complaints.List(user)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (cc *ComplaintController) CreateComplaint(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var in services.CreateComplaintInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	complaint, err := cc.Complaints.Create(user, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

func (cc *ComplaintController) DeleteComplaint(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := cc.Complaints.Delete(user, id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Complaint deleted successfully"})
}

func (cc *ComplaintController) GetMessages(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	msgs, err := cc.Complaints.Messages(user, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (cc *ComplaintController) CreateMessage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in services.CreateMessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	msg, err := cc.Complaints.AddMessage(user, id, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (cc *ComplaintController) UpdateMessage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var in services.CreateMessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	msg, err := cc.Complaints.UpdateMessage(user, id, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (cc *ComplaintController) DeleteMessage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := cc.Complaints.DeleteMessage(user, id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Message deleted successfully"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dafoundation/disaster-relief-api/internal/dto"
	"github.com/dafoundation/disaster-relief-api/internal/flash"
	"github.com/dafoundation/disaster-relief-api/internal/middleware"
	"github.com/dafoundation/disaster-relief-api/internal/services"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

const volunteerIndexPath = "/volunteers"

// VolunteerHandler serves personal volunteer commitments.
type VolunteerHandler struct {
	volunteers *services.VolunteerService
}

// NewVolunteerHandler creates a new VolunteerHandler
func NewVolunteerHandler(volunteers *services.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{volunteers: volunteers}
}

func (h *VolunteerHandler) List(c *gin.Context) {
	caller := middleware.CurrentCaller(c)
	params := utils.GetPaginationParams(c)

	volunteers, total, err := h.volunteers.List(caller, params)
	if err != nil {
		respondServiceError(c, err, volunteerIndexPath)
		return
	}

	successes, errs := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"volunteers": volunteers,
		"success":    successes,
		"errors":     errs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func (h *VolunteerHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	volunteer, err := h.volunteers.Get(middleware.CurrentCaller(c), id)
	if err != nil {
		respondServiceError(c, err, volunteerIndexPath)
		return
	}

	c.JSON(http.StatusOK, gin.H{"volunteer": volunteer})
}

func (h *VolunteerHandler) Create(c *gin.Context) {
	var form dto.VolunteerForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.volunteers.Create(middleware.CurrentCaller(c), services.VolunteerInput{
		Task:          form.Task,
		ScheduledDate: form.ScheduledDate,
		IsCompleted:   form.IsCompleted,
	})
	if err != nil {
		respondServiceError(c, err, volunteerIndexPath)
		return
	}

	flash.Success(c, "Volunteer commitment created successfully!")
	c.Redirect(http.StatusSeeOther, volunteerIndexPath)
}

func (h *VolunteerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.VolunteerForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.volunteers.Update(middleware.CurrentCaller(c), id, services.VolunteerInput{
		Task:          form.Task,
		ScheduledDate: form.ScheduledDate,
		IsCompleted:   form.IsCompleted,
	})
	if err != nil {
		respondServiceError(c, err, volunteerIndexPath)
		return
	}

	flash.Success(c, "Volunteer commitment updated successfully!")
	c.Redirect(http.StatusSeeOther, volunteerIndexPath)
}

func (h *VolunteerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.volunteers.Delete(middleware.CurrentCaller(c), id); err != nil {
		respondServiceError(c, err, volunteerIndexPath)
		return
	}

	flash.Success(c, "Volunteer commitment deleted.")
	c.Redirect(http.StatusSeeOther, volunteerIndexPath)
}

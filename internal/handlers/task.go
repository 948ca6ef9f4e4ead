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

const taskIndexPath = "/tasks"

// TaskHandler serves volunteer task metadata CRUD.
type TaskHandler struct {
	tasks *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List returns the caller's assigned tasks; admins see every task.
func (h *TaskHandler) List(c *gin.Context) {
	caller := middleware.CurrentCaller(c)
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.tasks.List(caller, params)
	if err != nil {
		respondServiceError(c, err, taskIndexPath)
		return
	}

	successes, errs := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"tasks":   tasks,
		"success": successes,
		"errors":  errs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(middleware.CurrentCaller(c), id)
	if err != nil {
		respondServiceError(c, err, taskIndexPath)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Create(c *gin.Context) {
	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.tasks.Create(middleware.CurrentCaller(c), taskInput(form))
	if err != nil {
		respondServiceError(c, err, taskIndexPath)
		return
	}

	flash.Success(c, "Volunteer task created successfully!")
	c.Redirect(http.StatusSeeOther, taskIndexPath)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.tasks.Update(middleware.CurrentCaller(c), id, taskInput(form))
	if err != nil {
		respondServiceError(c, err, taskIndexPath)
		return
	}

	flash.Success(c, "Volunteer task updated successfully!")
	c.Redirect(http.StatusSeeOther, taskIndexPath)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(middleware.CurrentCaller(c), id); err != nil {
		respondServiceError(c, err, taskIndexPath)
		return
	}

	flash.Success(c, "Volunteer task deleted.")
	c.Redirect(http.StatusSeeOther, taskIndexPath)
}

func taskInput(form dto.TaskForm) services.TaskInput {
	return services.TaskInput{
		Title:          form.Title,
		Description:    form.Description,
		StartAt:        form.StartAt,
		EndAt:          form.EndAt,
		Status:         form.Status,
		Notes:          form.Notes,
		Location:       form.Location,
		Priority:       form.Priority,
		Category:       form.Category,
		MaxVolunteers:  form.MaxVolunteers,
		RequiredSkills: form.RequiredSkills,
	}
}

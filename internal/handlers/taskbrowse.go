package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/dafoundation/disaster-relief-api/internal/errors"
	"github.com/dafoundation/disaster-relief-api/internal/flash"
	"github.com/dafoundation/disaster-relief-api/internal/middleware"
	"github.com/dafoundation/disaster-relief-api/internal/models"
	"github.com/dafoundation/disaster-relief-api/internal/repository"
	"github.com/dafoundation/disaster-relief-api/internal/services"
)

const taskBrowsePath = "/taskbrowse"

// TaskBrowseHandler serves the volunteer-facing task board and the
// join/leave lifecycle.
type TaskBrowseHandler struct {
	assignments *services.AssignmentService
	tasks       *services.TaskService
}

// NewTaskBrowseHandler creates a new TaskBrowseHandler
func NewTaskBrowseHandler(assignments *services.AssignmentService, tasks *services.TaskService) *TaskBrowseHandler {
	return &TaskBrowseHandler{assignments: assignments, tasks: tasks}
}

// Browse lists joinable tasks with optional category/priority/status
// filters.
func (h *TaskBrowseHandler) Browse(c *gin.Context) {
	filter := repository.BrowseFilter{
		Category: c.Query("category"),
		Priority: c.Query("priority"),
	}
	if statusParam := c.Query("status"); statusParam != "" {
		status, err := models.ParseTaskStatus(statusParam)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		filter.Status = &status
	}

	tasks, categories, err := h.assignments.Browse(middleware.CurrentCaller(c), filter)
	if err != nil {
		respondServiceError(c, err, taskBrowsePath)
		return
	}

	successes, errs := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"tasks":      tasks,
		"categories": categories,
		"priorities": []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical},
		"success":    successes,
		"errors":     errs,
	})
}

// Details shows a single task on the board.
func (h *TaskBrowseHandler) Details(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(middleware.CurrentCaller(c), id)
	if err != nil {
		respondServiceError(c, err, taskBrowsePath)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Join attaches the caller to a task.
func (h *TaskBrowseHandler) Join(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.assignments.Join(middleware.CurrentCaller(c), id); err != nil {
		respondServiceError(c, err, taskBrowsePath)
		return
	}

	flash.Success(c, "You have successfully joined the task!")
	c.Redirect(http.StatusSeeOther, taskBrowsePath)
}

// Leave detaches the caller from a task.
func (h *TaskBrowseHandler) Leave(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.assignments.Leave(middleware.CurrentCaller(c), id); err != nil {
		respondServiceError(c, err, taskBrowsePath)
		return
	}

	flash.Success(c, "You have successfully left the task.")
	c.Redirect(http.StatusSeeOther, taskBrowsePath)
}

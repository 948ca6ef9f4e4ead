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

const reportIndexPath = "/reports"

// ReportHandler serves the disaster report resource.
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// List returns the reports visible to the caller.
func (h *ReportHandler) List(c *gin.Context) {
	caller := middleware.CurrentCaller(c)
	params := utils.GetPaginationParams(c)

	reports, total, err := h.reports.List(caller, params)
	if err != nil {
		respondServiceError(c, err, reportIndexPath)
		return
	}

	successes, errs := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"success": successes,
		"errors":  errs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns one report, ownership-checked.
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := h.reports.Get(middleware.CurrentCaller(c), id)
	if err != nil {
		respondServiceError(c, err, reportIndexPath)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Create files a new report owned by the caller.
func (h *ReportHandler) Create(c *gin.Context) {
	var form dto.ReportForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.reports.Create(middleware.CurrentCaller(c), services.ReportInput{
		Location:     form.Location,
		DisasterType: form.DisasterType,
		Description:  form.Description,
		DateReported: form.DateReported,
	})
	if err != nil {
		respondServiceError(c, err, reportIndexPath)
		return
	}

	flash.Success(c, "Disaster report submitted successfully!")
	c.Redirect(http.StatusSeeOther, reportIndexPath)
}

// Update edits a report, ownership-checked.
func (h *ReportHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.ReportForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.reports.Update(middleware.CurrentCaller(c), id, services.ReportInput{
		Location:     form.Location,
		DisasterType: form.DisasterType,
		Description:  form.Description,
		DateReported: form.DateReported,
	})
	if err != nil {
		respondServiceError(c, err, reportIndexPath)
		return
	}

	flash.Success(c, "Disaster report updated successfully!")
	c.Redirect(http.StatusSeeOther, reportIndexPath)
}

// Delete removes a report, ownership-checked.
func (h *ReportHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.reports.Delete(middleware.CurrentCaller(c), id); err != nil {
		respondServiceError(c, err, reportIndexPath)
		return
	}

	flash.Success(c, "Disaster report deleted.")
	c.Redirect(http.StatusSeeOther, reportIndexPath)
}

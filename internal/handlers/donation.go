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

const donationIndexPath = "/donations"

// DonationHandler serves the donation resource, including the
// admin-only distribution workflow and inventory view.
type DonationHandler struct {
	donations *services.DonationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donations *services.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

// List returns the donations visible to the caller.
func (h *DonationHandler) List(c *gin.Context) {
	caller := middleware.CurrentCaller(c)
	params := utils.GetPaginationParams(c)

	donations, total, err := h.donations.List(caller, params)
	if err != nil {
		respondServiceError(c, err, donationIndexPath)
		return
	}

	successes, errs := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"donations": donations,
		"success":   successes,
		"errors":    errs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns one donation, ownership-checked.
func (h *DonationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	donation, err := h.donations.Get(middleware.CurrentCaller(c), id)
	if err != nil {
		respondServiceError(c, err, donationIndexPath)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donation": donation})
}

// Create records a donation owned by the caller.
func (h *DonationHandler) Create(c *gin.Context) {
	var form dto.DonationForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.donations.Create(middleware.CurrentCaller(c), services.DonationInput{
		ResourceType: form.ResourceType,
		Quantity:     form.Quantity,
		Note:         form.Note,
		DateDonated:  form.DateDonated,
	})
	if err != nil {
		respondServiceError(c, err, donationIndexPath)
		return
	}

	flash.Success(c, "Donation created successfully!")
	c.Redirect(http.StatusSeeOther, donationIndexPath)
}

// Update edits a donation's donor fields, ownership-checked.
func (h *DonationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.DonationForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.donations.Update(middleware.CurrentCaller(c), id, services.DonationInput{
		ResourceType: form.ResourceType,
		Quantity:     form.Quantity,
		Note:         form.Note,
		DateDonated:  form.DateDonated,
	})
	if err != nil {
		respondServiceError(c, err, donationIndexPath)
		return
	}

	flash.Success(c, "Donation updated successfully!")
	c.Redirect(http.StatusSeeOther, donationIndexPath)
}

// Delete removes a donation, ownership-checked.
func (h *DonationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.donations.Delete(middleware.CurrentCaller(c), id); err != nil {
		respondServiceError(c, err, donationIndexPath)
		return
	}

	flash.Success(c, "Donation deleted.")
	c.Redirect(http.StatusSeeOther, donationIndexPath)
}

// Distribute applies an admin status transition.
func (h *DonationHandler) Distribute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.DistributeForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.donations.Distribute(middleware.CurrentCaller(c), id, services.DistributeInput{
		Status:            form.Status,
		Location:          form.Location,
		DistributionNotes: form.DistributionNotes,
	})
	if err != nil {
		respondServiceError(c, err, donationIndexPath)
		return
	}

	flash.Success(c, "Donation status updated successfully!")
	c.Redirect(http.StatusSeeOther, donationIndexPath)
}

// Inventory returns the admin-only per-resource aggregate.
func (h *DonationHandler) Inventory(c *gin.Context) {
	items, err := h.donations.Inventory(middleware.CurrentCaller(c))
	if err != nil {
		respondServiceError(c, err, donationIndexPath)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inventory": items})
}

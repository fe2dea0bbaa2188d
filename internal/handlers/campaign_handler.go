package handlers

import (
	"net/http"

	"github.com/zakatfund/backend/internal/auth"
	"github.com/zakatfund/backend/internal/models"
	"github.com/zakatfund/backend/internal/services"
)

type CampaignHandler struct {
	service   *services.CampaignService
	validator *services.ValidationHelper
}

func NewCampaignHandler(service *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

type InitializeRequest struct {
	Admin string `json:"admin" validate:"required,max=256"`
}

type CreateCampaignRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Category     string `json:"category" validate:"required,category"`
	TargetAmount int64  `json:"targetAmount" validate:"required,gt=0"`
	Recipient    string `json:"recipient" validate:"required,max=256"`
}

type DonateRequest struct {
	Amount      int64 `json:"amount" validate:"required,gt=0"`
	IsAnonymous bool  `json:"isAnonymous"`
}

func bearer(r *http.Request) auth.Token {
	token, _ := auth.TokenFromContext(r.Context())
	return token
}

// Initialize sets the ledger admin
// @Summary Initialize ledger
// @Description Record the ledger administrator. The bearer token must belong to the admin being recorded.
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InitializeRequest true "Admin identity"
// @Success 200 {object} object{admin=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /ledger/initialize [post]
func (h *CampaignHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req InitializeRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.service.Initialize(r.Context(), bearer(r), models.Principal(req.Admin)); err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"admin": req.Admin})
}

// GetAdmin returns the ledger admin
// @Summary Get admin
// @Tags Ledger
// @Produce json
// @Success 200 {object} object{admin=string}
// @Failure 404 {object} services.ErrorResponse
// @Router /ledger/admin [get]
func (h *CampaignHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	admin, err := h.service.GetAdmin(r.Context())
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admin": admin})
}

// CreateCampaign opens a campaign
// @Summary Create campaign
// @Description Open a fundraising campaign. Admin only.
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCampaignRequest true "Campaign"
// @Success 201 {object} object{id=int}
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /campaigns [post]
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	id, err := h.service.CreateCampaign(r.Context(), bearer(r), services.NewCampaign{
		Title:        req.Title,
		Description:  req.Description,
		Category:     models.CampaignCategory(req.Category),
		TargetAmount: req.TargetAmount,
		Recipient:    models.Principal(req.Recipient),
	})
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// ListCampaigns lists every campaign
// @Summary List campaigns
// @Tags Campaigns
// @Produce json
// @Success 200 {array} models.Campaign
// @Router /campaigns [get]
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.service.GetCampaigns(r.Context())
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// GetCampaign returns one campaign
// @Summary Get campaign
// @Tags Campaigns
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.Campaign
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDParam(r)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	campaign, err := h.service.GetCampaign(r.Context(), id)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// GetCampaignDonations lists a campaign's donations
// @Summary List campaign donations
// @Tags Donations
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {array} models.Donation
// @Router /campaigns/{id}/donations [get]
func (h *CampaignHandler) GetCampaignDonations(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDParam(r)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	donations, err := h.service.GetCampaignDonations(r.Context(), id)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donations)
}

// GetCampaignStats summarises a campaign
// @Summary Campaign statistics
// @Tags Campaigns
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} models.CampaignStats
// @Failure 404 {object} services.ErrorResponse
// @Router /campaigns/{id}/stats [get]
func (h *CampaignHandler) GetCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDParam(r)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	stats, err := h.service.GetCampaignStats(r.Context(), id)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Donate contributes to a campaign
// @Summary Donate
// @Description Donate to an active campaign. The campaign completes once its target is reached.
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Param request body DonateRequest true "Donation"
// @Success 201 {object} models.Donation
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /campaigns/{id}/donations [post]
func (h *CampaignHandler) Donate(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDParam(r)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	var req DonateRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	donation, err := h.service.Donate(r.Context(), bearer(r), id, req.Amount, req.IsAnonymous)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, donation)
}

// CloseCampaign closes a campaign
// @Summary Close campaign
// @Description Close a campaign. Recipient only; the balance is kept.
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} object{id=int,status=string}
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /campaigns/{id}/close [post]
func (h *CampaignHandler) CloseCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDParam(r)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	if err := h.service.CloseCampaign(r.Context(), bearer(r), id); err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": models.CampaignStatusClosed})
}

// Withdraw releases a completed campaign's funds
// @Summary Withdraw
// @Description Withdraw the full balance of a completed campaign and close it. Recipient only.
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID"
// @Success 200 {object} object{id=int,amount=int}
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /campaigns/{id}/withdraw [post]
func (h *CampaignHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDParam(r)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	amount, err := h.service.Withdraw(r.Context(), bearer(r), id)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "amount": amount})
}

// ListDonations lists every donation
// @Summary List all donations
// @Tags Donations
// @Produce json
// @Success 200 {array} models.Donation
// @Router /donations [get]
func (h *CampaignHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.service.GetAllDonations(r.Context())
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, donations)
}

// GetTotalDonations returns the cumulative donation total
// @Summary Total donations
// @Tags Donations
// @Produce json
// @Success 200 {object} object{total=int}
// @Router /donations/total [get]
func (h *CampaignHandler) GetTotalDonations(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.GetTotalDonations(r.Context())
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": total})
}

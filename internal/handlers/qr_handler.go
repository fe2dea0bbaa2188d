package handlers

import (
	"net/http"

	"github.com/zakatfund/backend/internal/services"
)

type QRHandler struct {
	service   *services.QRService
	validator *services.ValidationHelper
}

func NewQRHandler(service *services.QRService) *QRHandler {
	return &QRHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

type GenerateQRRequest struct {
	Amount int64 `json:"amount" validate:"gte=0"`
}

type ResolveQRRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

// GenerateQR generates a donation QR code for a campaign
// @Summary Generate donation QR code
// @Description Generate a single-use QR code that opens the donation page of an active campaign
// @Tags QR
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param request body GenerateQRRequest true "Suggested amount, 0 to let the donor choose"
// @Success 200 {object} object{intent=services.DonationIntent,qrImage=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /campaigns/{id}/qr [post]
func (h *QRHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDParam(r)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	var req GenerateQRRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	intent, qrImage, err := h.service.GenerateQRCode(r.Context(), id, req.Amount)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"intent":  intent,
		"qrImage": qrImage,
	})
}

// ResolveQR resolves a scanned donation QR code
// @Summary Resolve donation QR code
// @Description Resolve a scanned QR code into its donation intent. Each code resolves once.
// @Tags QR
// @Accept json
// @Produce json
// @Param request body ResolveQRRequest true "Scanned code"
// @Success 200 {object} object{intent=services.DonationIntent}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /qr/resolve [post]
func (h *QRHandler) ResolveQR(w http.ResponseWriter, r *http.Request) {
	var req ResolveQRRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	intent, err := h.service.ResolveQRCode(r.Context(), req.Code)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"intent":  intent,
	})
}

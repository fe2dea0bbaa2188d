package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/zakatfund/backend/internal/models"
	"github.com/zakatfund/backend/internal/services"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 1000
)

// RecentEvents reads the newest donation events, oldest first.
type RecentEvents interface {
	Recent(ctx context.Context, n int64) ([]models.DonationEvent, error)
}

// FeedHandler serves donation events: a replay of recent ones and the live
// WebSocket stream. Either side may be nil.
type FeedHandler struct {
	recent RecentEvents
	live   http.HandlerFunc
}

func NewFeedHandler(recent RecentEvents, live http.HandlerFunc) *FeedHandler {
	return &FeedHandler{recent: recent, live: live}
}

// RecentDonations returns the newest donation events
// @Summary Recent donation events
// @Description Replay the newest donation events, oldest first
// @Tags Donations
// @Produce json
// @Param limit query int false "Number of events (1-1000, default 50)"
// @Success 200 {array} models.DonationEvent
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /donations/recent [get]
func (h *FeedHandler) RecentDonations(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultRecentLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > maxRecentLimit {
			services.SendServiceError(w, fmt.Errorf("%w: limit must be between 1 and %d", models.ErrInvalidArgument, maxRecentLimit))
			return
		}
		limit = n
	}

	events, err := h.recent.Recent(r.Context(), limit)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	mW "github.com/zakatfund/backend/internal/middleware"
)

const requestTimeout = 60 * time.Second

// APIRoutes mounts the ledger API. qr and feed are optional and their routes
// are skipped when nil.
func APIRoutes(campaigns *CampaignHandler, qr *QRHandler, feed *FeedHandler) func(chi.Router) {
	return func(r chi.Router) {
		// The live feed is long-lived so it stays outside the request timeout
		if feed != nil && feed.live != nil {
			r.Get("/ws/donations", feed.live)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))

			// Public endpoints
			r.Get("/ledger/admin", campaigns.GetAdmin)
			r.Get("/campaigns", campaigns.ListCampaigns)
			r.Get("/campaigns/{id}", campaigns.GetCampaign)
			r.Get("/campaigns/{id}/donations", campaigns.GetCampaignDonations)
			r.Get("/campaigns/{id}/stats", campaigns.GetCampaignStats)
			r.Get("/donations", campaigns.ListDonations)
			r.Get("/donations/total", campaigns.GetTotalDonations)

			if feed != nil && feed.recent != nil {
				r.Get("/donations/recent", feed.RecentDonations)
			}
			if qr != nil {
				r.Post("/campaigns/{id}/qr", qr.GenerateQR)
				r.Post("/qr/resolve", qr.ResolveQR)
			}

			// Mutations carry a bearer token
			r.Group(func(r chi.Router) {
				r.Use(mW.BearerToken)

				r.Post("/ledger/initialize", campaigns.Initialize)
				r.Post("/campaigns", campaigns.CreateCampaign)
				r.Post("/campaigns/{id}/donations", campaigns.Donate)
				r.Post("/campaigns/{id}/close", campaigns.CloseCampaign)
				r.Post("/campaigns/{id}/withdraw", campaigns.Withdraw)
			})
		})
	}
}

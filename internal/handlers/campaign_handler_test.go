package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakatfund/backend/internal/auth"
	"github.com/zakatfund/backend/internal/models"
	"github.com/zakatfund/backend/internal/services"
	"github.com/zakatfund/backend/internal/store"
)

func newTestRouter(t *testing.T, initialized bool) http.Handler {
	t.Helper()

	mem := store.NewMemory()
	if initialized {
		require.NoError(t, mem.InitAdmin(context.Background(), "GADMIN"))
	}
	authorizer := auth.Static{
		"admin-token":     "GADMIN",
		"recipient-token": "GRECIPIENT",
		"donor-token":     "GDONOR",
	}
	svc := services.NewCampaignService(mem, authorizer, nil, nil, zerolog.Nop())

	r := chi.NewRouter()
	r.Route("/api/v1", APIRoutes(NewCampaignHandler(svc), nil, nil))
	return r
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func createCampaign(t *testing.T, h http.Handler, target int64) uint32 {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/v1/campaigns", "admin-token", CreateCampaignRequest{
		Title:        "Orphan sponsorship",
		Category:     "Education",
		TargetAmount: target,
		Recipient:    "GRECIPIENT",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint32 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestCampaignHandler_Initialize(t *testing.T) {
	h := newTestRouter(t, false)

	t.Run("admin not set", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/ledger/admin", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("requires a bearer token", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/ledger/initialize", "", InitializeRequest{Admin: "GADMIN"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for another identity", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/ledger/initialize", "donor-token", InitializeRequest{Admin: "GADMIN"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("initializes once", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/ledger/initialize", "admin-token", InitializeRequest{Admin: "GADMIN"})
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(t, h, http.MethodPost, "/api/v1/ledger/initialize", "admin-token", InitializeRequest{Admin: "GADMIN"})
		assert.Equal(t, http.StatusConflict, w.Code)

		var resp services.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "AlreadyInitialized", resp.Kind)

		w = do(t, h, http.MethodGet, "/api/v1/ledger/admin", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"admin":"GADMIN"}`, w.Body.String())
	})
}

func TestCampaignHandler_CreateCampaign(t *testing.T) {
	h := newTestRouter(t, true)

	t.Run("created", func(t *testing.T) {
		assert.Equal(t, uint32(1), createCampaign(t, h, 500))

		w := do(t, h, http.MethodGet, "/api/v1/campaigns/1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var c models.Campaign
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
		assert.Equal(t, models.CampaignStatusActive, c.Status)
		assert.Equal(t, int64(500), c.TargetAmount)
		assert.Equal(t, models.CategoryEducation, c.Category)
	})

	t.Run("validation failure", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/campaigns", "admin-token", CreateCampaignRequest{
			Title: "x", Category: "Lottery", TargetAmount: 0, Recipient: "GRECIPIENT",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp services.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Details, "Category")
		assert.Contains(t, resp.Details, "TargetAmount")
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/campaigns", "admin-token", map[string]any{
			"title": "x", "category": "Zakat", "targetAmount": 5, "recipient": "GRECIPIENT", "status": "Closed",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-admin", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/api/v1/campaigns", "donor-token", CreateCampaignRequest{
			Title: "x", Category: "Zakat", TargetAmount: 5, Recipient: "GRECIPIENT",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCampaignHandler_Lifecycle(t *testing.T) {
	h := newTestRouter(t, true)
	id := createCampaign(t, h, 100)

	donate := func(token string, amount int64) *httptest.ResponseRecorder {
		return do(t, h, http.MethodPost, "/api/v1/campaigns/1/donations", token, DonateRequest{Amount: amount})
	}

	w := donate("donor-token", 60)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/v1/campaigns/1/withdraw", "recipient-token", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "active campaigns cannot be withdrawn")

	w = donate("donor-token", 50)
	require.Equal(t, http.StatusCreated, w.Code)

	w = donate("donor-token", 1)
	assert.Equal(t, http.StatusConflict, w.Code, "completed campaigns reject donations")

	w = do(t, h, http.MethodPost, "/api/v1/campaigns/1/withdraw", "donor-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/campaigns/1/withdraw", "recipient-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"amount":110}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/v1/campaigns/1/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.CampaignStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, id, stats.CampaignID)
	assert.Equal(t, int64(110), stats.Withdrawn)
	assert.Equal(t, models.CampaignStatusClosed, stats.Status)

	w = do(t, h, http.MethodGet, "/api/v1/donations/total", "", nil)
	assert.JSONEq(t, `{"total":110}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/v1/campaigns/1/donations", "", nil)
	var donations []models.Donation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &donations))
	assert.Len(t, donations, 2)
}

func TestCampaignHandler_CloseCampaign(t *testing.T) {
	h := newTestRouter(t, true)
	createCampaign(t, h, 100)

	w := do(t, h, http.MethodPost, "/api/v1/campaigns/1/donations", "donor-token", DonateRequest{Amount: 40})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/campaigns/1/close", "admin-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/campaigns/1/close", "recipient-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/campaigns/1", "", nil)
	var c models.Campaign
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, models.CampaignStatusClosed, c.Status)
	assert.Equal(t, int64(40), c.CurrentAmount)

	w = do(t, h, http.MethodPost, "/api/v1/campaigns/1/donations", "donor-token", DonateRequest{Amount: 5})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCampaignHandler_Reads(t *testing.T) {
	h := newTestRouter(t, true)

	t.Run("empty lists are arrays", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/campaigns", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())

		w = do(t, h, http.MethodGet, "/api/v1/donations", "", nil)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/campaigns/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, h, http.MethodGet, "/api/v1/campaigns/4294967296", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/api/v1/campaigns/7", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, h, http.MethodPost, "/api/v1/campaigns/7/donations", "donor-token", DonateRequest{Amount: 5})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

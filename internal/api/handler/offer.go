// internal/api/handler/offer.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"offer-ledger/internal/api/types"
	"offer-ledger/internal/domain"
	"offer-ledger/internal/service"
	"offer-ledger/internal/util"
)

// DefaultTimeout bounds every request handled by the router.
const DefaultTimeout = 30 * time.Second

// OfferHandler handles HTTP requests related to offers and balances.
type OfferHandler struct {
	service  service.OfferService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(svc service.OfferService, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{
		service:  svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func errorBody(message string) types.ErrorResponse {
	return types.ErrorResponse{Error: message}
}

func (h *OfferHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func (h *OfferHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case util.IsError(err, util.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	case util.IsError(err, util.ErrForbidden):
		statusCode = http.StatusForbidden
		message = err.Error()
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, errorBody(message))
}

func (h *OfferHandler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := CallerFrom(r.Context())
	if !ok {
		h.respondWithJSON(w, http.StatusUnauthorized, errorBody("missing caller identity"))
	}
	return userID, ok
}

// CreateOfferRequest represents the request body for creating an offer.
type CreateOfferRequest struct {
	WalletID   string          `json:"walletId" validate:"required,uuid"`
	CurrencyID string          `json:"currencyId" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

// CreateOffer handles the create offer request.
// POST /offers?userId=
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, fmt.Errorf("%w: malformed request body", util.ErrInvalidInput))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, fmt.Errorf("%w: %s", util.ErrInvalidInput, err.Error()))
		return
	}
	if !req.Amount.IsPositive() || !req.UnitPrice.IsPositive() {
		h.respondWithError(w, fmt.Errorf("%w: amount and unitPrice must be positive", util.ErrInvalidInput))
		return
	}

	offer, err := h.service.CreateOffer(r.Context(), service.CreateOfferInput{
		UserID:     userID,
		WalletID:   uuid.MustParse(req.WalletID),
		CurrencyID: uuid.MustParse(req.CurrencyID),
		Amount:     req.Amount,
		UnitPrice:  req.UnitPrice,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, offer)
}

// ListOffers handles the list offers request.
// GET /offers?userId=&paginated=&page=&limit=
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	paginated, err := parseFlag(query.Get("paginated"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	page, err := parsePositive(query.Get("page"), "page")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	limit, err := parsePositive(query.Get("limit"), "limit")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	result, err := h.service.ListOffers(r.Context(), service.ListOffersInput{
		UserID:    userID,
		Paginated: paginated,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	response := types.PaginatedResponse[domain.OfferView]{Data: result.Offers}
	if response.Data == nil {
		response.Data = []domain.OfferView{}
	}
	if result.Paginated {
		response.CurrentPage = &result.CurrentPage
		response.LastPage = &result.LastPage
	}
	h.respondWithJSON(w, http.StatusOK, response)
}

// UnlistOffer handles the unlist offer request.
// DELETE /offers/{offerID}?userId=
func (h *OfferHandler) UnlistOffer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	offerID, err := parseID(chi.URLParam(r, "offerID"), "offerId")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.service.UnlistOffer(r.Context(), userID, offerID); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.MessageResponse{Message: "Offer unlisted"})
}

// GetAvailableBalance handles the wallet balance request.
// GET /wallets/{walletID}/balances/{currencyID}?userId=
func (h *OfferHandler) GetAvailableBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.caller(w, r)
	if !ok {
		return
	}
	walletID, err := parseID(chi.URLParam(r, "walletID"), "walletId")
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	currencyID, err := parseID(chi.URLParam(r, "currencyID"), "currencyId")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	balance, err := h.service.GetAvailableBalance(r.Context(), userID, walletID, currencyID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, balance)
}

func parseID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", util.ErrInvalidInput, name)
	}
	return id, nil
}

// parseFlag accepts true/1 and false/0. An empty value means false.
func parseFlag(raw string) (bool, error) {
	switch raw {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w: paginated must be true, false, 1 or 0", util.ErrInvalidInput)
	}
}

// parsePositive returns 0 for an empty value so the service applies its default.
func parsePositive(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", util.ErrInvalidInput, name)
	}
	return n, nil
}

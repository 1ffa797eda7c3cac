package transport

import (
	"net/http"
	"strconv"

	"github.com/Gaurav-0801/E-com-Platform/internal/middleware"
	"github.com/Gaurav-0801/E-com-Platform/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddToCartRequest represents the add/update cart line payload. A second
// add of the same product overwrites its quantity.
type AddToCartRequest struct {
	ProductID int64  `json:"productId" validate:"required"`
	Quantity  int    `json:"qty" validate:"required,gte=1"`
	UserID    string `json:"userId"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/", h.AddOrUpdate)
		r.Delete("/{id}", h.Remove)
	})
}

// resolveUser prefers an explicit body user id over the one the identity
// middleware resolved from the request.
func resolveUser(r *http.Request, bodyUserID string) string {
	if bodyUserID != "" {
		return bodyUserID
	}
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		return userID
	}
	return middleware.PlaceholderUserID
}

// AddOrUpdate handles adding a product to the cart or overwriting its
// quantity.
func (h *CartHandler) AddOrUpdate(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := resolveUser(r, req.UserID)

	line, err := h.cartService.AddOrUpdate(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to add item to cart")
		return
	}

	h.logger.Info("Cart item upserted",
		zap.String("user_id", userID),
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	middleware.RespondWithJSONMessage(w, http.StatusCreated, line, "Item added to cart")
}

// Get returns the cart lines with subtotals and the running total
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := resolveUser(r, "")

	cart, err := h.cartService.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to load cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cart)
}

// Remove deletes a cart line owned by the requesting user
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	lineID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	userID := resolveUser(r, "")

	if err := h.cartService.Remove(r.Context(), userID, lineID); err != nil {
		handleServiceError(w, h.logger, err, "failed to remove cart item")
		return
	}

	h.logger.Info("Cart item removed",
		zap.String("user_id", userID),
		zap.Int64("line_id", lineID),
	)
	middleware.RespondWithJSONMessage(w, http.StatusOK, nil, "Item removed from cart")
}

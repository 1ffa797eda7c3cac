package transport

import (
	"net/http"

	"github.com/Gaurav-0801/E-com-Platform/internal/middleware"
	"github.com/Gaurav-0801/E-com-Platform/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutItem is one line of the submitted cart snapshot. Quantities
// are charged as submitted; prices are re-read from the catalog.
type CheckoutItem struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	Name      string         `json:"name" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	CartItems []CheckoutItem `json:"cartItems" validate:"required,min=1,dive"`
	UserID    string         `json:"userId"`
}

// CheckoutHandler handles HTTP requests for checkout
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/checkout", h.Checkout)
}

// Checkout converts the submitted cart snapshot into a persisted order
// and returns the receipt.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := resolveUser(r, req.UserID)

	items := make([]service.SnapshotLine, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, service.SnapshotLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	receipt, err := h.checkoutService.Checkout(r.Context(), service.CheckoutInput{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Items:  items,
	})
	if err != nil {
		handleServiceError(w, h.logger, err, "failed to place order")
		return
	}

	h.logger.Info("Order placed",
		zap.String("user_id", userID),
		zap.String("order_id", receipt.OrderID.String()),
		zap.String("total", receipt.Total.String()),
	)
	middleware.RespondWithJSONMessage(w, http.StatusCreated, receipt, "Order placed successfully")
}

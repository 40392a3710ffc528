package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/clarkeinon-bit/ecommerce1/internal/cart"
	"github.com/clarkeinon-bit/ecommerce1/internal/middleware"
	"github.com/clarkeinon-bit/ecommerce1/internal/repository"
	"github.com/clarkeinon-bit/ecommerce1/internal/services"
)

// CheckoutHandler exposes the checkout workflow and the payment
// confirmation redirect.
type CheckoutHandler struct {
	svc  *services.CheckoutService
	repo repository.OrderRepository
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(svc *services.CheckoutService, repo repository.OrderRepository) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, repo: repo}
}

// Checkout converts the cart cookie into an order.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.repo.FindUser(c.Context(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var details services.ShippingDetails
	if err := c.BodyParser(&details); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	items := cart.ReadCookie(c)

	result, err := h.svc.PlaceOrder(c.Context(), user, items, details)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"errors":  verr.Fields,
			})
		case errors.Is(err, services.ErrEmptyCart):
			return fiber.NewError(fiber.StatusBadRequest, "cart is empty, please add items to proceed")
		case errors.Is(err, services.ErrPaymentSession):
			return fiber.NewError(fiber.StatusBadGateway, "payment processing failed, please try again")
		default:
			return err
		}
	}

	if result.CartCleared {
		cart.ClearCookie(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order_id":       result.Order.ID,
			"payment_method": result.Order.PaymentMethod,
			"payment_status": result.Order.PaymentStatus,
			"status":         result.Order.Status,
			"grand_total":    result.Order.GrandTotal,
			"currency":       result.Order.Currency,
			"redirect_url":   result.RedirectURL,
		},
	})
}

// Success handles both the gateway's return redirect (session_id present)
// and the clean confirmation view (order_id only).
func (h *CheckoutHandler) Success(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	orderID := parseOrderID(c.Query("order_id"))

	if sessionID != "" {
		return h.confirmSession(c, sessionID, orderID)
	}

	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	order, err := h.svc.ResolveOrder(c.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			// Never leak whether the order exists for someone else.
			return c.Redirect("/?error=order_not_found", fiber.StatusFound)
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

func (h *CheckoutHandler) confirmSession(c *fiber.Ctx, sessionID string, orderID uuid.UUID) error {
	result, err := h.svc.ConfirmSession(c.Context(), sessionID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaleSessionToken):
			return fiber.NewError(fiber.StatusBadRequest, "invalid payment session token")
		case errors.Is(err, services.ErrSessionRetrieval):
			return fiber.NewError(fiber.StatusBadGateway, "payment verification failed, please contact support")
		case errors.Is(err, repository.ErrOrderNotFound):
			return c.Redirect("/?error=order_not_found", fiber.StatusFound)
		default:
			return err
		}
	}

	if result.ClearCart {
		cart.ClearCookie(c)
	}

	if !result.Paid {
		return c.Redirect("/api/checkout/cancel", fiber.StatusFound)
	}

	// Strip the one-time session token from the address bar; the clean URL
	// is bookmarkable and replay-safe.
	return c.Redirect("/api/checkout/success?order_id="+result.Order.ID.String(), fiber.StatusFound)
}

// Cancel is the landing view for abandoned or failed payments.
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": false,
		"message": "payment was cancelled or failed, your order has not been charged",
	})
}

func parseOrderID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

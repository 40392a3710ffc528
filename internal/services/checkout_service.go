package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/clarkeinon-bit/ecommerce1/internal/cart"
	"github.com/clarkeinon-bit/ecommerce1/internal/config"
	"github.com/clarkeinon-bit/ecommerce1/internal/models"
	"github.com/clarkeinon-bit/ecommerce1/internal/repository"
)

var (
	// ErrEmptyCart aborts checkout before anything is persisted.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPaymentSession means the gateway refused the session; the order
	// created for this attempt has been rolled back.
	ErrPaymentSession = errors.New("payment session could not be created")
	// ErrSessionRetrieval means the gateway could not report the session
	// state during confirmation.
	ErrSessionRetrieval = errors.New("payment session could not be verified")
	// ErrStaleSessionToken rejects the gateway's unresolved URL template
	// being passed through as a real token.
	ErrStaleSessionToken = errors.New("unresolved session token")
)

// ValidationError carries field-level messages for checkout input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid checkout input"
}

// PaymentProvider is the slice of the gateway client the workflow needs.
type PaymentProvider interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// OrderMailer delivers the order-placed notification.
type OrderMailer interface {
	SendOrderPlaced(order *models.Order, toEmail string) error
}

// ShippingDetails is the validated checkout form input.
type ShippingDetails struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	PaymentMethod string `json:"payment_method"`
}

// Validate returns field-level errors for any missing input.
func (d ShippingDetails) Validate() map[string]string {
	errs := map[string]string{}

	required := map[string]string{
		"first_name":     d.FirstName,
		"last_name":      d.LastName,
		"phone":          d.Phone,
		"street_address": d.StreetAddress,
		"city":           d.City,
		"state":          d.State,
		"zip_code":       d.ZipCode,
		"payment_method": d.PaymentMethod,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "required"
		}
	}

	if d.PaymentMethod != "" &&
		d.PaymentMethod != models.PaymentMethodCard &&
		d.PaymentMethod != models.PaymentMethodCOD {
		errs["payment_method"] = "must be card or cod"
	}

	return errs
}

// CheckoutService drives the cart-to-order workflow and the payment
// confirmation step.
type CheckoutService struct {
	repo     repository.OrderRepository
	provider PaymentProvider
	mailer   OrderMailer
	cfg      *config.Config
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(repo repository.OrderRepository, provider PaymentProvider, mailer OrderMailer, cfg *config.Config) *CheckoutService {
	return &CheckoutService{repo: repo, provider: provider, mailer: mailer, cfg: cfg}
}

// PlacementResult reports where the customer goes next and whether the cart
// is done. For card payments the cart survives until confirmed payment.
type PlacementResult struct {
	Order       *models.Order
	RedirectURL string
	CartCleared bool
}

// PlaceOrder converts the cart into a persisted order aggregate and either
// opens a gateway session (card) or finalizes immediately (pay on delivery).
func (s *CheckoutService) PlaceOrder(ctx context.Context, user *models.User, items []cart.Item, details ShippingDetails) (*PlacementResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if errs := details.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	order := &models.Order{
		UserID:         user.ID,
		PaymentMethod:  details.PaymentMethod,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         models.OrderStatusNew,
		Currency:       s.cfg.Currency,
		ShippingAmount: s.cfg.ShippingAmount,
		ShippingMethod: s.cfg.ShippingMethod,
		GrandTotal:     cart.GrandTotal(items).Add(s.cfg.ShippingAmount),
		Notes:          "Order placed by " + user.Name,
		Address: &models.Address{
			FirstName:     details.FirstName,
			LastName:      details.LastName,
			Phone:         details.Phone,
			StreetAddress: details.StreetAddress,
			City:          details.City,
			State:         details.State,
			ZipCode:       details.ZipCode,
		},
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitAmount:  item.UnitAmount,
			TotalAmount: item.TotalAmount,
		})
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if details.PaymentMethod == models.PaymentMethodCard {
		return s.openPaymentSession(ctx, user, order, items)
	}

	return s.finalizeCashOrder(ctx, user, order)
}

func (s *CheckoutService) openPaymentSession(ctx context.Context, user *models.User, order *models.Order, items []cart.Item) (*PlacementResult, error) {
	lineItems := make([]SessionLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, SessionLineItem{
			Name:       item.Name,
			UnitAmount: MinorUnits(item.UnitAmount),
			Quantity:   item.Quantity,
		})
	}

	session, err := s.provider.CreateSession(ctx, CreateSessionParams{
		LineItems:     lineItems,
		Currency:      s.cfg.Currency,
		CustomerEmail: user.Email,
		SuccessURL:    s.successURL(order.ID) + "&session_id=" + SessionIDPlaceholder,
		CancelURL:     s.cfg.BaseURL + "/api/checkout/cancel",
		OrderID:       order.ID.String(),
	})
	if err != nil {
		// Compensate: the order must not survive a failed session, or a
		// pending order with no payment path would linger forever.
		if delErr := s.repo.DeleteOrder(ctx, order.ID); delErr != nil {
			log.Printf("[Checkout] compensating delete failed for order %s: %v", order.ID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}

	return &PlacementResult{
		Order:       order,
		RedirectURL: session.URL,
		CartCleared: false,
	}, nil
}

func (s *CheckoutService) finalizeCashOrder(ctx context.Context, user *models.User, order *models.Order) (*PlacementResult, error) {
	if err := s.repo.FinalizeCashOrder(ctx, order.ID); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusProcessing
	order.PaymentStatus = models.PaymentStatusPaid

	go func(o models.Order, email string) {
		if err := s.mailer.SendOrderPlaced(&o, email); err != nil {
			log.Printf("[Checkout] order email failed for order %s: %v", o.ID, err)
		}
	}(*order, user.Email)

	return &PlacementResult{
		Order:       order,
		RedirectURL: s.successURL(order.ID),
		CartCleared: true,
	}, nil
}

func (s *CheckoutService) successURL(orderID uuid.UUID) string {
	return fmt.Sprintf("%s/api/checkout/success?order_id=%s", s.cfg.BaseURL, orderID)
}

// ConfirmResult reports the reconciled state after a gateway redirect.
type ConfirmResult struct {
	Order *models.Order
	// Paid is the final payment state after this call.
	Paid bool
	// ClearCart is set only on the call that transitioned the order to
	// paid; replays never re-clear.
	ClearCart bool
}

// ConfirmSession reconciles a returned session token against the gateway and
// settles the order's payment status exactly once. Re-invoking it for an
// already finalized order is a no-op.
func (s *CheckoutService) ConfirmSession(ctx context.Context, sessionID string, fallbackOrderID uuid.UUID) (*ConfirmResult, error) {
	if sessionID == SessionIDPlaceholder {
		return nil, ErrStaleSessionToken
	}

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		// A pending order must not hang forever when the gateway cannot
		// answer; settle it as failed if the redirect told us which one.
		if fallbackOrderID != uuid.Nil {
			if order, findErr := s.repo.FindByID(ctx, fallbackOrderID); findErr == nil &&
				order.PaymentStatus == models.PaymentStatusPending {
				if markErr := s.repo.UpdatePaymentStatus(ctx, order.ID, models.PaymentStatusFailed); markErr != nil {
					log.Printf("[Checkout] failed to mark order %s failed: %v", order.ID, markErr)
				}
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionRetrieval, err)
	}

	orderID, err := uuid.Parse(session.OrderID)
	if err != nil {
		return nil, repository.ErrOrderNotFound
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := &ConfirmResult{Order: order}

	switch {
	case session.PaymentStatus == SessionStatusPaid && order.PaymentStatus != models.PaymentStatusPaid:
		if err := s.repo.UpdatePaymentStatus(ctx, order.ID, models.PaymentStatusPaid); err != nil {
			return nil, err
		}
		order.PaymentStatus = models.PaymentStatusPaid
		result.ClearCart = true
	case session.PaymentStatus != SessionStatusPaid && order.PaymentStatus != models.PaymentStatusFailed:
		if err := s.repo.UpdatePaymentStatus(ctx, order.ID, models.PaymentStatusFailed); err != nil {
			return nil, err
		}
		order.PaymentStatus = models.PaymentStatusFailed
	}

	result.Paid = order.PaymentStatus == models.PaymentStatusPaid
	return result, nil
}

// ResolveOrder loads an order for the confirmation page without a session
// token: by explicit id scoped to the owner, or the owner's most recent
// order when no id is supplied.
func (s *CheckoutService) ResolveOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if orderID != uuid.Nil {
		return s.repo.FindByIDForUser(ctx, orderID, userID)
	}
	return s.repo.LatestForUser(ctx, userID)
}

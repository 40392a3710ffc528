package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/clarkeinon-bit/ecommerce1/internal/models"
	"github.com/clarkeinon-bit/ecommerce1/internal/repository"
)

// fakeOrderRepo implements repository.OrderRepository in memory.
type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    []*models.Order
	users     map[uuid.UUID]*models.User
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Address != nil {
		order.Address.OrderID = order.ID
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	r.orders = append(r.orders, &stored)
	return nil
}

func (r *fakeOrderRepo) DeleteOrder(_ context.Context, orderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, order := range r.orders {
		if order.ID == orderID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, orderID uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.ID == orderID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByIDForUser(_ context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.ID == orderID && order.UserID == userID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) LatestForUser(_ context.Context, userID uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			copied := *r.orders[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) UpdatePaymentStatus(_ context.Context, orderID uuid.UUID, paymentStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.ID == orderID {
			order.PaymentStatus = paymentStatus
		}
	}
	return nil
}

func (r *fakeOrderRepo) FinalizeCashOrder(_ context.Context, orderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.ID == orderID {
			order.Status = models.OrderStatusProcessing
			order.PaymentStatus = models.PaymentStatusPaid
		}
	}
	return nil
}

func (r *fakeOrderRepo) FindUser(_ context.Context, userID uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[userID]; ok {
		return user, nil
	}
	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

// fakeProvider implements PaymentProvider.
type fakeProvider struct {
	createErr   error
	retrieveErr error
	session     *CheckoutSession
	lastCreate  CreateSessionParams
	createCalls int
}

func (p *fakeProvider) CreateSession(_ context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	p.createCalls++
	p.lastCreate = params
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &CheckoutSession{
		ID:      "cs_test_123",
		URL:     "https://gateway.example.com/pay/cs_test_123",
		OrderID: params.OrderID,
	}, nil
}

func (p *fakeProvider) RetrieveSession(_ context.Context, _ string) (*CheckoutSession, error) {
	if p.retrieveErr != nil {
		return nil, p.retrieveErr
	}
	return p.session, nil
}

// fakeMailer records order emails on a channel so tests can wait for the
// fire-and-forget send.
type fakeMailer struct {
	sent chan string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan string, 4)}
}

func (m *fakeMailer) SendOrderPlaced(_ *models.Order, toEmail string) error {
	m.sent <- toEmail
	return nil
}

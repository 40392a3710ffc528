package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clarkeinon-bit/ecommerce1/internal/models"
)

// ErrOrderNotFound is returned when no order matches the lookup, including
// lookups scoped to a user that does not own the order.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists and loads order aggregates.
type OrderRepository interface {
	// CreateOrder writes the order together with its address and items in
	// one transaction.
	CreateOrder(ctx context.Context, order *models.Order) error
	// DeleteOrder removes the full aggregate, compensating a failed
	// payment-session creation.
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	LatestForUser(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, paymentStatus string) error
	// FinalizeCashOrder marks a pay-on-delivery order processing and paid.
	FinalizeCashOrder(ctx context.Context, orderID uuid.UUID) error
	FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// GormOrderRepository is the postgres-backed OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository constructs a GormOrderRepository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *GormOrderRepository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", orderID).Error
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Address").
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Address").
		First(&order, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) LatestForUser(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Address").
		Where("user_id = ?", userID).
		Order("created_at desc").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, paymentStatus string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", paymentStatus).Error
}

func (r *GormOrderRepository) FinalizeCashOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"status":         models.OrderStatusProcessing,
			"payment_status": models.PaymentStatusPaid,
		}).Error
}

func (r *GormOrderRepository) FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

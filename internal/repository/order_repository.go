package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/model"
)

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Create inserts the order, assigning the next sequential order number
	// for its restaurant atomically.
	Create(ctx context.Context, order *model.Order) error

	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetByTrackingCode(ctx context.Context, code string) (*model.Order, error)

	// ListByRestaurant returns every order of the restaurant in ascending
	// creation order.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*model.Order, error)

	// ListByRestaurantSince restricts the list to created_at >= since.
	ListByRestaurantSince(ctx context.Context, restaurantID string, since time.Time) ([]*model.Order, error)

	// Update persists the mutable order fields. Order number and tracking
	// code are never touched.
	Update(ctx context.Context, order *model.Order) error

	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)
	Delete(ctx context.Context, id string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create assigns order_number via an atomic increment on the restaurant's
// order_seq column inside the insert transaction, so concurrent creates
// never observe the same sequence value.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Restaurant{}).
			Where("id = ?", order.RestaurantID).
			UpdateColumn("order_seq", gorm.Expr("order_seq + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var restaurant model.Restaurant
		if err := tx.Select("order_seq").
			Where("id = ?", order.RestaurantID).
			First(&restaurant).Error; err != nil {
			return err
		}
		order.OrderNumber = restaurant.OrderSeq
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByTrackingCode(ctx context.Context, code string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("tracking_code = ?", code).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByRestaurantSince(ctx context.Context, restaurantID string, since time.Time) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND created_at >= ?", restaurantID, since).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", order.ID).
		Select("client_name", "client_phone", "items", "notes", "status",
			"service_type", "address", "payment_method", "total_price",
			"subtotal", "discount", "delivery_fee", "origin", "pdv_order_id",
			"updated_at").
		Updates(order).Error
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Order{}).Error
}

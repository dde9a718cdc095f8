package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/repository"
	"github.com/comandahq/comanda/internal/status"
)

// OrderInput carries the already-validated order payload. When OrderID is
// set the call updates that order in place instead of creating a new one.
type OrderInput struct {
	RestaurantID  string
	OrderID       string
	ClientName    string
	ClientPhone   string
	Items         []string
	Notes         string
	ServiceType   string
	Address       string
	PaymentMethod string
	TotalPrice    float64
	Subtotal      float64
	Discount      float64
	DeliveryFee   float64
	Origin        string
	Status        string
	PDVOrderID    string
}

// TrackingInfo is the public view behind a tracking token.
type TrackingInfo struct {
	OrderNumber int64     `json:"order_number"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderService 订单服务
type OrderService struct {
	orders    repository.OrderRepository
	directory *DirectoryReplicator
	baseURL   string
}

func NewOrderService(orders repository.OrderRepository, directory *DirectoryReplicator, baseURL string) *OrderService {
	return &OrderService{orders: orders, directory: directory, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Create inserts a new order (or updates an existing one when
// in.OrderID is set) and returns it along with its tracking URL.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*model.Order, string, bool, error) {
	if in.OrderID != "" {
		order, err := s.update(ctx, in)
		if err != nil {
			return nil, "", false, err
		}
		return order, s.trackingURL(order.TrackingCode), false, nil
	}

	if in.Status != "" && !status.IsAllowed(in.Status) {
		return nil, "", false, ErrInvalidStatus
	}

	order := &model.Order{
		ID:            uuid.New().String(),
		RestaurantID:  in.RestaurantID,
		ClientName:    in.ClientName,
		Items:         in.Items,
		Notes:         in.Notes,
		Status:        in.Status,
		ServiceType:   in.ServiceType,
		Address:       in.Address,
		PaymentMethod: in.PaymentMethod,
		TotalPrice:    in.TotalPrice,
		Subtotal:      in.Subtotal,
		Discount:      in.Discount,
		DeliveryFee:   in.DeliveryFee,
		Origin:        in.Origin,
		PDVOrderID:    in.PDVOrderID,
		TrackingCode:  newTrackingCode(),
	}
	if order.Status == "" {
		order.Status = status.Pending
	}
	if order.Origin == "" {
		order.Origin = model.OriginIAWhatsApp
	}
	if phone := model.NormalizePhone(in.ClientPhone); phone != "" {
		order.ClientPhone = &phone
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", false, ErrRestaurantNotFound
		}
		return nil, "", false, fmt.Errorf("create order: %w", err)
	}

	// directory upsert is asynchronous and never rolled back
	if s.directory != nil && order.ClientPhone != nil {
		s.directory.Enqueue(model.Client{
			ID:           uuid.New().String(),
			RestaurantID: order.RestaurantID,
			Phone:        *order.ClientPhone,
			Name:         order.ClientName,
		})
	}

	return order, s.trackingURL(order.TrackingCode), true, nil
}

func (s *OrderService) update(ctx context.Context, in OrderInput) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if in.Status != "" && !status.IsAllowed(in.Status) {
		return nil, ErrInvalidStatus
	}

	if in.ClientName != "" {
		order.ClientName = in.ClientName
	}
	if phone := model.NormalizePhone(in.ClientPhone); phone != "" {
		order.ClientPhone = &phone
	}
	if in.Items != nil {
		order.Items = in.Items
	}
	order.Notes = in.Notes
	if in.Status != "" {
		order.Status = in.Status
	}
	if in.ServiceType != "" {
		order.ServiceType = in.ServiceType
	}
	if in.Address != "" {
		order.Address = in.Address
	}
	if in.PaymentMethod != "" {
		order.PaymentMethod = in.PaymentMethod
	}
	order.TotalPrice = in.TotalPrice
	order.Subtotal = in.Subtotal
	order.Discount = in.Discount
	order.DeliveryFee = in.DeliveryFee
	if in.Origin != "" {
		order.Origin = in.Origin
	}
	if in.PDVOrderID != "" {
		order.PDVOrderID = in.PDVOrderID
	}
	order.UpdatedAt = time.Now()

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

// List returns every order of the restaurant, oldest first.
func (s *OrderService) List(ctx context.Context, restaurantID string) ([]*model.Order, error) {
	return s.orders.ListByRestaurant(ctx, restaurantID)
}

// UpdateStatus validates the status token before writing it.
func (s *OrderService) UpdateStatus(ctx context.Context, id, newStatus string) (*model.Order, error) {
	if !status.IsAllowed(newStatus) {
		return nil, ErrInvalidStatus
	}
	order, err := s.orders.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// Delete removes the order by id. Deleting an absent order is not an
// error.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// Track resolves a public tracking token to its order's board status.
func (s *OrderService) Track(ctx context.Context, code string) (*TrackingInfo, error) {
	order, err := s.orders.GetByTrackingCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &TrackingInfo{
		OrderNumber: order.OrderNumber,
		Status:      status.ToBoard(order.Status),
		UpdatedAt:   order.UpdatedAt,
	}, nil
}

func (s *OrderService) trackingURL(code string) string {
	return s.baseURL + "/t/" + code
}

// newTrackingCode returns a short uppercase token for customer-facing
// order lookup.
func newTrackingCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
